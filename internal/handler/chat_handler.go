package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juancruzdillon/portfolitok/internal/chat"
	"github.com/juancruzdillon/portfolitok/internal/model"
)

// ChatServiceInterface is the inbox chat surface the handler drives.
type ChatServiceInterface interface {
	Open() chat.View
	Get(id string) (chat.View, error)
	Submit(ctx context.Context, id, text, captchaToken string) (chat.View, error)
	Close(id string) error
}

// ChatHandler serves the inbox chat endpoints.
type ChatHandler struct {
	service ChatServiceInterface
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(service ChatServiceInterface) *ChatHandler {
	return &ChatHandler{service: service}
}

// chatMessageRequest is the body of a visitor submission.
type chatMessageRequest struct {
	Text         string `json:"text"`
	CaptchaToken string `json:"captcha_token,omitempty"`
}

// OpenSession opens a fresh conversation.
// POST /api/chat/sessions
func (h *ChatHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.service.Open())
}

// GetSession serves a conversation's transcript and stage.
// GET /api/chat/sessions/:id
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.service.Get(id)
	if err != nil {
		h.writeChatError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// SubmitMessage feeds a visitor line to the conversation. Stage
// validation failures still answer 200: the bot's reply in the
// transcript is the user-facing outcome, same as the original dialog.
// POST /api/chat/sessions/:id/messages
func (h *ChatHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req chatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	view, err := h.service.Submit(r.Context(), id, req.Text, req.CaptchaToken)
	if err != nil && !errors.Is(err, chat.ErrInvalidInput) {
		h.writeChatError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// CloseSession discards the conversation.
// DELETE /api/chat/sessions/:id
func (h *ChatHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Close(id); err != nil {
		h.writeChatError(w, id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeChatError maps chat sentinels to API errors.
func (h *ChatHandler) writeChatError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		writeAPIError(w, http.StatusNotFound, model.NewChatSessionNotFoundError(id))
	case errors.Is(err, chat.ErrCaptchaRequired):
		writeAPIError(w, http.StatusBadRequest, model.NewCaptchaRequiredError())
	case errors.Is(err, chat.ErrCaptchaRejected):
		writeAPIError(w, http.StatusBadRequest, model.NewCaptchaRejectedError())
	case errors.Is(err, chat.ErrDispatchFailed):
		writeAPIError(w, http.StatusBadGateway, model.NewMailDispatchFailedError())
	default:
		handleInternalError(w, err)
	}
}
