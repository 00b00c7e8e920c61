package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/juancruzdillon/portfolitok/internal/comments"
	"github.com/juancruzdillon/portfolitok/internal/model"
	"github.com/juancruzdillon/portfolitok/internal/security"
)

// CommentServiceInterface is the comment store surface the handler
// drives.
type CommentServiceInterface interface {
	Add(projectID, author, text string) (model.Comment, error)
	List(projectID string) ([]model.Comment, error)
}

// CommentRecorder receives comment events for metrics.
type CommentRecorder interface {
	RecordComment()
}

type nopCommentRecorder struct{}

func (nopCommentRecorder) RecordComment() {}

// CommentHandler serves the project comment box.
type CommentHandler struct {
	service   CommentServiceInterface
	sanitizer security.SanitizerService
	validate  *validator.Validate
	rec       CommentRecorder
}

// NewCommentHandler builds a CommentHandler.
func NewCommentHandler(service CommentServiceInterface, sanitizer security.SanitizerService, rec CommentRecorder) *CommentHandler {
	if rec == nil {
		rec = nopCommentRecorder{}
	}
	return &CommentHandler{
		service:   service,
		sanitizer: sanitizer,
		validate:  validator.New(),
		rec:       rec,
	}
}

// commentRequest is the comment submission body.
type commentRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
	Author    string `json:"author" validate:"required,min=2,max=50"`
	Text      string `json:"text" validate:"required,min=1,max=300"`
}

// commentListResponse wraps a project's comment list.
type commentListResponse struct {
	Comments []model.Comment `json:"comments"`
}

// AddComment stores a visitor comment on a project.
// POST /api/comments
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeAPIError(w, http.StatusBadRequest, model.NewValidationError(validationDetail(err)))
		return
	}

	c, err := h.service.Add(req.ProjectID,
		h.sanitizer.Sanitize(req.Author),
		h.sanitizer.Sanitize(req.Text),
	)
	if err != nil {
		if errors.Is(err, comments.ErrUnknownProject) {
			writeAPIError(w, http.StatusNotFound, model.NewProjectNotFoundError(req.ProjectID))
			return
		}
		handleInternalError(w, err)
		return
	}

	h.rec.RecordComment()
	writeJSON(w, http.StatusCreated, c)
}

// ListComments serves a project's comments, newest first.
// GET /api/projects/:id/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	list, err := h.service.List(id)
	if err != nil {
		if errors.Is(err, comments.ErrUnknownProject) {
			writeAPIError(w, http.StatusNotFound, model.NewProjectNotFoundError(id))
			return
		}
		handleInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, commentListResponse{Comments: list})
}
