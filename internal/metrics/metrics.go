// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records game, chat and outbound-call events. It satisfies
// the Recorder interfaces of the game and chat packages.
type Collector struct {
	gameSessions   *prometheus.CounterVec
	gameMatches    prometheus.Counter
	gameMismatches prometheus.Counter
	gameWins       prometheus.Counter
	gameWinMoves   prometheus.Histogram

	chatOpened   prometheus.Counter
	chatMessages *prometheus.CounterVec

	mailDispatch    *prometheus.CounterVec
	captchaVerdicts *prometheus.CounterVec

	contactSubmissions *prometheus.CounterVec
	comments           prometheus.Counter
}

// NewCollector builds a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gameSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolitok_game_sessions_started_total",
			Help: "Memo game sessions started, by board variant.",
		}, []string{"variant"}),
		gameMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolitok_game_matches_total",
			Help: "Card pairs matched across all game sessions.",
		}),
		gameMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolitok_game_mismatches_total",
			Help: "Mismatched card flips across all game sessions.",
		}),
		gameWins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolitok_game_wins_total",
			Help: "Completed memo games.",
		}),
		gameWinMoves: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "portfolitok_game_win_moves",
			Help:    "Move counts of completed memo games.",
			Buckets: []float64{6, 10, 15, 20, 30, 50},
		}),
		chatOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolitok_chat_sessions_opened_total",
			Help: "Inbox chat sessions opened.",
		}),
		chatMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolitok_chat_messages_total",
			Help: "Visitor chat submissions, by conversation stage.",
		}, []string{"stage"}),
		mailDispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolitok_mail_dispatch_total",
			Help: "Mail relay dispatch attempts, by result.",
		}, []string{"result"}),
		captchaVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolitok_captcha_verdicts_total",
			Help: "Captcha verification outcomes, by result.",
		}, []string{"result"}),
		contactSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolitok_contact_submissions_total",
			Help: "Contact form submissions, by result.",
		}, []string{"result"}),
		comments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolitok_comments_total",
			Help: "Project comments accepted.",
		}),
	}

	reg.MustRegister(
		c.gameSessions,
		c.gameMatches,
		c.gameMismatches,
		c.gameWins,
		c.gameWinMoves,
		c.chatOpened,
		c.chatMessages,
		c.mailDispatch,
		c.captchaVerdicts,
		c.contactSubmissions,
		c.comments,
	)

	return c
}

// RecordSessionStarted counts a new game session for the variant.
func (c *Collector) RecordSessionStarted(variant string) {
	c.gameSessions.WithLabelValues(variant).Inc()
}

// RecordMatch counts a matched pair.
func (c *Collector) RecordMatch() {
	c.gameMatches.Inc()
}

// RecordMismatch counts a mismatched flip.
func (c *Collector) RecordMismatch() {
	c.gameMismatches.Inc()
}

// RecordWin counts a completed game and observes its move count.
func (c *Collector) RecordWin(moves int) {
	c.gameWins.Inc()
	c.gameWinMoves.Observe(float64(moves))
}

// RecordChatOpened counts an opened chat session.
func (c *Collector) RecordChatOpened() {
	c.chatOpened.Inc()
}

// RecordChatMessage counts a visitor submission at the given stage.
func (c *Collector) RecordChatMessage(stage string) {
	c.chatMessages.WithLabelValues(stage).Inc()
}

// RecordMailDispatch counts a relay dispatch attempt ("ok" or "error").
func (c *Collector) RecordMailDispatch(result string) {
	c.mailDispatch.WithLabelValues(result).Inc()
}

// RecordCaptchaVerdict counts a captcha outcome ("ok", "rejected" or
// "missing").
func (c *Collector) RecordCaptchaVerdict(result string) {
	c.captchaVerdicts.WithLabelValues(result).Inc()
}

// RecordContactSubmission counts a contact form attempt by result.
func (c *Collector) RecordContactSubmission(accepted bool) {
	c.contactSubmissions.WithLabelValues(strconv.FormatBool(accepted)).Inc()
}

// RecordComment counts an accepted project comment.
func (c *Collector) RecordComment() {
	c.comments.Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
