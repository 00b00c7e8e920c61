package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/juancruzdillon/portfolitok/internal/captcha"
	"github.com/juancruzdillon/portfolitok/internal/chat"
	"github.com/juancruzdillon/portfolitok/internal/comments"
	"github.com/juancruzdillon/portfolitok/internal/config"
	"github.com/juancruzdillon/portfolitok/internal/content"
	"github.com/juancruzdillon/portfolitok/internal/game"
	"github.com/juancruzdillon/portfolitok/internal/handler"
	"github.com/juancruzdillon/portfolitok/internal/logger"
	"github.com/juancruzdillon/portfolitok/internal/mailer"
	"github.com/juancruzdillon/portfolitok/internal/metrics"
	"github.com/juancruzdillon/portfolitok/internal/middleware"
	"github.com/juancruzdillon/portfolitok/internal/security"
	"github.com/juancruzdillon/portfolitok/internal/worker/expire"

	"github.com/prometheus/client_golang/prometheus"
)

// Init loads the configuration and installs the JSON structured
// logger at the configured level. Logs go to w; production passes
// os.Stdout.
func Init(w io.Writer, args []string) (*config.Config, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.SetupDefault(w, logger.ParseLevel(cfg.Log.Level))

	return cfg, nil
}

// Run is the application entrypoint. It parses the subcommand from
// the argument list and starts the matching mode. Pass os.Args[1:].
func Run(w io.Writer, args []string) error {
	cmd, rest := ParseCommand(args)

	// healthcheck is a lightweight subcommand and skips full init
	if cmd == CommandHealthcheck {
		port := os.Getenv("PORTFOLITOK_SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w, rest)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.Server.Port),
		slog.String("cors_origin", cfg.CORS.Origin),
	)

	return runServe(cfg)
}

// runServe wires all dependencies and starts the API server. A SIGINT
// or SIGTERM triggers a graceful shutdown.
func runServe(cfg *config.Config) error {
	// 1. security services and the outbound HTTP client
	sanitizer := security.NewSanitizer()
	guard := security.NewOutboundGuard()

	if err := guard.ValidateURL(cfg.Mail.Relay); err != nil {
		return fmt.Errorf("mail relay URL refused: %w", err)
	}
	if cfg.Captcha.Verify != "" {
		if err := guard.ValidateURL(cfg.Captcha.Verify); err != nil {
			return fmt.Errorf("captcha verify URL refused: %w", err)
		}
	}
	httpClient := guard.NewSafeClient(cfg.Outbound.Timeout)

	// 2. portfolio content, compiled-in unless overridden
	data, err := content.Load(cfg.Content.File)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	contentStore := content.NewStore(data, sanitizer)

	// 3. metrics
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	// 4. outbound clients
	mailClient := mailer.NewClient(httpClient, cfg.Mail.Relay, slog.Default())

	var chatVerifier chat.Verifier
	var contactVerifier handler.CaptchaVerifier
	if cfg.Captcha.Verify != "" {
		c := captcha.NewClient(httpClient, cfg.Captcha.Verify, slog.Default())
		chatVerifier, contactVerifier = c, c
		slog.Info("captcha verification enabled")
	} else {
		slog.Info("captcha verification disabled")
	}

	// 5. domain services
	gameStore := game.NewStore(contentStore, game.Config{
		MismatchDelay: cfg.Game.Delay,
		FlawlessMoves: cfg.Game.Flawless,
	}, collector, slog.Default())

	chatFlow := chat.NewFlow(mailClient, chatVerifier, collector, slog.Default())
	commentStore := comments.NewStore(contentStore)

	// 6. session expiry job
	expireJob := expire.NewJob(slog.Default())
	expireJob.TTL = cfg.Session.TTL
	expireJob.Register("game", gameStore)
	expireJob.Register("chat", chatFlow)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go expireJob.Start(ctx, cfg.Session.Sweep)

	// 7. router
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(cfg.RateLimit.General) / 60.0),
		GeneralBurst:    cfg.RateLimit.General,
		DispatchRate:    rate.Limit(float64(cfg.RateLimit.Dispatch) / 60.0),
		DispatchBurst:   cfg.RateLimit.Dispatch,
		CleanupInterval: 5 * time.Minute,
	})
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORS.Origin,
		RateLimiter:       rateLimiter,

		MetricsHandler: metrics.Handler(reg),

		Content:  contentStore,
		Game:     gameStore,
		Chat:     chatFlow,
		Comments: commentStore,

		Mailer:    mailClient,
		Verifier:  contactVerifier,
		Sanitizer: sanitizer,

		ContactRecorder: collector,
		CommentRecorder: collector,
	})

	// 8. HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runHealthcheck probes the running server's /health endpoint. Used as
// the Docker healthcheck in the distroless image, which has no shell
// or curl.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
