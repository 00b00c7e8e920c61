package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juancruzdillon/portfolitok/internal/game"
	"github.com/juancruzdillon/portfolitok/internal/model"
)

// GameServiceInterface is the game session surface the handler drives.
type GameServiceInterface interface {
	Create(variant game.Variant) (game.View, error)
	Get(id string) (game.View, error)
	Reveal(id string, index int) (game.View, error)
	Reset(id string) (game.View, error)
	Delete(id string) error
}

// GameHandler serves the memo game session endpoints.
type GameHandler struct {
	service GameServiceInterface
}

// NewGameHandler builds a GameHandler.
func NewGameHandler(service GameServiceInterface) *GameHandler {
	return &GameHandler{service: service}
}

// createGameSessionRequest is the body of a session creation.
type createGameSessionRequest struct {
	Variant string `json:"variant"`
}

// revealRequest is the body of a card reveal. Index is a pointer so a
// missing field is told apart from card zero.
type revealRequest struct {
	Index *int `json:"index"`
}

// CreateSession starts a new game session.
// POST /api/game/sessions
func (h *GameHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createGameSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	variant := game.VariantDesktop
	switch req.Variant {
	case "", string(game.VariantDesktop):
	case string(game.VariantMobile):
		variant = game.VariantMobile
	default:
		writeAPIError(w, http.StatusBadRequest, model.NewValidationError("variant"))
		return
	}

	view, err := h.service.Create(variant)
	if err != nil {
		if errors.Is(err, game.ErrEmptyDeck) {
			writeAPIError(w, http.StatusServiceUnavailable, model.NewEmptyDeckError())
			return
		}
		handleInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// GetSession serves a session's current view.
// GET /api/game/sessions/:id
func (h *GameHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.service.Get(id)
	if err != nil {
		h.writeGameError(w, id, 0, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RevealCard flips one card of the session.
// POST /api/game/sessions/:id/reveal
func (h *GameHandler) RevealCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req revealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		writeAPIError(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	view, err := h.service.Reveal(id, *req.Index)
	if err != nil {
		h.writeGameError(w, id, *req.Index, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ResetSession reshuffles the session in place.
// POST /api/game/sessions/:id/reset
func (h *GameHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.service.Reset(id)
	if err != nil {
		h.writeGameError(w, id, 0, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// DeleteSession discards the session.
// DELETE /api/game/sessions/:id
func (h *GameHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(id); err != nil {
		h.writeGameError(w, id, 0, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeGameError maps game sentinels to API errors.
func (h *GameHandler) writeGameError(w http.ResponseWriter, id string, index int, err error) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		writeAPIError(w, http.StatusNotFound, model.NewGameSessionNotFoundError(id))
	case errors.Is(err, game.ErrIndexOutOfRange):
		writeAPIError(w, http.StatusBadRequest, model.NewInvalidCardIndexError(index))
	default:
		handleInternalError(w, err)
	}
}
