package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juancruzdillon/portfolitok/internal/middleware"
	"github.com/juancruzdillon/portfolitok/internal/security"
)

// RouterDeps bundles the dependencies NewRouter needs.
type RouterDeps struct {
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// MetricsHandler serves GET /metrics; nil disables the endpoint.
	MetricsHandler http.Handler

	Content  ContentStoreInterface
	Game     GameServiceInterface
	Chat     ChatServiceInterface
	Comments CommentServiceInterface

	Mailer    Mailer
	Verifier  CaptchaVerifier // nil disables captcha on the contact form
	Sanitizer security.SanitizerService

	ContactRecorder ContactRecorder
	CommentRecorder CommentRecorder
}

// NewRouter wires all endpoints and the middleware chain.
//
// Middleware order, outermost first:
//
//	CORS → security headers → logging → recovery → rate limit (general)
//
// The endpoints that dispatch mail (inbox messages, contact form) get
// the stricter dispatch rate limit on top. /health and /metrics sit
// outside the rate limits so probes and scrapes never starve.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())

	contentHandler := NewContentHandler(deps.Content)
	gameHandler := NewGameHandler(deps.Game)
	chatHandler := NewChatHandler(deps.Chat)
	contactHandler := NewContactHandler(deps.Mailer, deps.Verifier, deps.Sanitizer, deps.ContactRecorder, deps.Logger)
	commentHandler := NewCommentHandler(deps.Comments, deps.Sanitizer, deps.CommentRecorder)

	r.Get("/health", healthHandler)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// portfolio content
		r.Get("/api/profile", contentHandler.GetProfile)
		r.Get("/api/sections", contentHandler.ListSections)
		r.Get("/api/experience", contentHandler.ListExperience)
		r.Route("/api/projects", func(r chi.Router) {
			r.Get("/", contentHandler.ListProjects)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", contentHandler.GetProject)
				r.Get("/comments", commentHandler.ListComments)
			})
		})

		// memo game sessions
		r.Route("/api/game/sessions", func(r chi.Router) {
			r.Post("/", gameHandler.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", gameHandler.GetSession)
				r.Delete("/", gameHandler.DeleteSession)
				r.Post("/reveal", gameHandler.RevealCard)
				r.Post("/reset", gameHandler.ResetSession)
			})
		})

		// inbox chat
		r.Route("/api/chat/sessions", func(r chi.Router) {
			r.Post("/", chatHandler.OpenSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", chatHandler.GetSession)
				r.Delete("/", chatHandler.CloseSession)
				r.With(deps.RateLimiter.DispatchMiddleware()).Post("/messages", chatHandler.SubmitMessage)
			})
		})

		// one-shot contact form
		r.With(deps.RateLimiter.DispatchMiddleware()).Post("/api/contact", contactHandler.Submit)

		// project comments
		r.Post("/api/comments", commentHandler.AddComment)
	})

	return r
}

// healthHandler answers liveness probes.
// GET /health
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
