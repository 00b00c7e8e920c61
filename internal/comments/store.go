// Package comments keeps the per-project visitor comments. Comments
// are as ephemeral as the rest of the session state: in memory only,
// newest first, capped per project.
package comments

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/juancruzdillon/portfolitok/internal/model"
)

// maxPerProject caps the retained comments per project. The oldest
// comment falls off when the cap is hit.
const maxPerProject = 100

// ErrUnknownProject reports a comment on a project id the content
// store does not serve.
var ErrUnknownProject = errors.New("unknown project")

// ProjectChecker answers whether a project id exists. Implemented by
// the content store.
type ProjectChecker interface {
	Project(id string) (model.Project, error)
}

// Store holds the in-memory comment lists.
type Store struct {
	mu       sync.RWMutex
	byID     map[string][]model.Comment
	projects ProjectChecker

	newID func() string
	now   func() time.Time
}

// NewStore builds an empty comment store over the given project
// source.
func NewStore(projects ProjectChecker) *Store {
	return &Store{
		byID:     make(map[string][]model.Comment),
		projects: projects,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Add stores a comment on a project, newest first.
func (s *Store) Add(projectID, author, text string) (model.Comment, error) {
	if _, err := s.projects.Project(projectID); err != nil {
		return model.Comment{}, ErrUnknownProject
	}

	c := model.Comment{
		ID:        s.newID(),
		ProjectID: projectID,
		Author:    author,
		Text:      text,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := append([]model.Comment{c}, s.byID[projectID]...)
	if len(list) > maxPerProject {
		list = list[:maxPerProject]
	}
	s.byID[projectID] = list

	return c, nil
}

// List returns the comments of a project, newest first.
func (s *Store) List(projectID string) ([]model.Comment, error) {
	if _, err := s.projects.Project(projectID); err != nil {
		return nil, ErrUnknownProject
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Comment, len(s.byID[projectID]))
	copy(list, s.byID[projectID])
	return list, nil
}
