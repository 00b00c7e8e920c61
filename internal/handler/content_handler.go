package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juancruzdillon/portfolitok/internal/content"
	"github.com/juancruzdillon/portfolitok/internal/model"
)

// ContentStoreInterface is the content surface the handlers read from.
type ContentStoreInterface interface {
	Profile() model.Profile
	Projects() []model.Project
	Project(id string) (model.Project, error)
	Sections() []model.HomeSection
	Experience() []model.Experience
}

// ContentHandler serves the read-only portfolio content.
type ContentHandler struct {
	store ContentStoreInterface
}

// NewContentHandler builds a ContentHandler.
func NewContentHandler(store ContentStoreInterface) *ContentHandler {
	return &ContentHandler{store: store}
}

// GetProfile serves the owner profile.
// GET /api/profile
func (h *ContentHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Profile())
}

// projectListResponse wraps the gallery list.
type projectListResponse struct {
	Projects []model.Project `json:"projects"`
}

// ListProjects serves the project gallery.
// GET /api/projects
func (h *ContentHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, projectListResponse{Projects: h.store.Projects()})
}

// GetProject serves one project's detail.
// GET /api/projects/:id
func (h *ContentHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.store.Project(id)
	if err != nil {
		if errors.Is(err, content.ErrProjectNotFound) {
			writeAPIError(w, http.StatusNotFound, model.NewProjectNotFoundError(id))
			return
		}
		handleInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// sectionListResponse wraps the home sections.
type sectionListResponse struct {
	Sections []model.HomeSection `json:"sections"`
}

// ListSections serves the home page sections in scroll order.
// GET /api/sections
func (h *ContentHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sectionListResponse{Sections: h.store.Sections()})
}

// experienceListResponse wraps the experience timeline.
type experienceListResponse struct {
	Experience []model.Experience `json:"experience"`
}

// ListExperience serves the professional journey timeline.
// GET /api/experience
func (h *ContentHandler) ListExperience(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, experienceListResponse{Experience: h.store.Experience()})
}
