package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/juancruzdillon/portfolitok/internal/model"
	"github.com/juancruzdillon/portfolitok/internal/security"
)

// Mailer dispatches composed mail through the relay.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// CaptchaVerifier checks a bot-challenge token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// ContactRecorder receives contact form events for metrics.
type ContactRecorder interface {
	RecordContactSubmission(accepted bool)
}

type nopContactRecorder struct{}

func (nopContactRecorder) RecordContactSubmission(bool) {}

// ContactHandler serves the one-shot contact form. Unlike the inbox
// chat, the form submits name, email and message in a single request.
type ContactHandler struct {
	mailer    Mailer
	verifier  CaptchaVerifier // nil disables the captcha gate
	sanitizer security.SanitizerService
	validate  *validator.Validate
	rec       ContactRecorder
	logger    *slog.Logger
}

// NewContactHandler builds a ContactHandler.
func NewContactHandler(mailer Mailer, verifier CaptchaVerifier, sanitizer security.SanitizerService, rec ContactRecorder, logger *slog.Logger) *ContactHandler {
	if rec == nil {
		rec = nopContactRecorder{}
	}
	return &ContactHandler{
		mailer:    mailer,
		verifier:  verifier,
		sanitizer: sanitizer,
		validate:  validator.New(),
		rec:       rec,
		logger:    logger,
	}
}

// contactRequest is the contact form body.
type contactRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Message      string `json:"message" validate:"required,min=10,max=500"`
	CaptchaToken string `json:"captcha_token,omitempty"`
}

// contactResponse acknowledges an accepted submission.
type contactResponse struct {
	Status string `json:"status"`
}

// Submit validates and dispatches a contact form submission.
// POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rec.RecordContactSubmission(false)
		writeAPIError(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.rec.RecordContactSubmission(false)
		writeAPIError(w, http.StatusBadRequest, model.NewValidationError(validationDetail(err)))
		return
	}

	if h.verifier != nil {
		if req.CaptchaToken == "" {
			h.rec.RecordContactSubmission(false)
			writeAPIError(w, http.StatusBadRequest, model.NewCaptchaRequiredError())
			return
		}
		ok, err := h.verifier.Verify(r.Context(), req.CaptchaToken)
		if err != nil || !ok {
			if err != nil {
				h.logger.Warn("captcha verification failed",
					slog.String("error", err.Error()),
				)
			}
			h.rec.RecordContactSubmission(false)
			writeAPIError(w, http.StatusBadRequest, model.NewCaptchaRejectedError())
			return
		}
	}

	subject := fmt.Sprintf("Nuevo Mensaje de %s desde PortfoliTok", req.Name)
	body := fmt.Sprintf(
		"<p><strong>Nombre:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Mensaje:</strong></p><p>%s</p>",
		h.sanitizer.Sanitize(req.Name),
		h.sanitizer.Sanitize(req.Email),
		h.sanitizer.Sanitize(req.Message),
	)

	if err := h.mailer.Send(r.Context(), subject, body); err != nil {
		h.logger.Error("contact form dispatch failed",
			slog.String("error", err.Error()),
		)
		h.rec.RecordContactSubmission(false)
		writeAPIError(w, http.StatusBadGateway, model.NewMailDispatchFailedError())
		return
	}

	h.rec.RecordContactSubmission(true)
	h.logger.Info("contact form dispatched")
	writeJSON(w, http.StatusAccepted, contactResponse{Status: "sent"})
}
