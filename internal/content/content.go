// Package content serves the portfolio content: profile, projects,
// home sections, experience timeline and the memo game pair lists.
// The content ships as compiled-in defaults and can be replaced
// wholesale with a YAML file, so editing the portfolio never needs a
// database.
package content

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/juancruzdillon/portfolitok/internal/game"
	"github.com/juancruzdillon/portfolitok/internal/model"
	"github.com/juancruzdillon/portfolitok/internal/security"
)

// ErrProjectNotFound reports a lookup of an unknown project id.
var ErrProjectNotFound = errors.New("project not found")

// PairSet holds the memo game pair lists per board variant. The
// desktop board is larger than the mobile one.
type PairSet struct {
	Desktop []model.MemoPair `koanf:"desktop" json:"desktop"`
	Mobile  []model.MemoPair `koanf:"mobile" json:"mobile"`
}

// Data is the full portfolio content tree, as loaded from defaults or
// from the operator's YAML file.
type Data struct {
	Profile    model.Profile       `koanf:"profile" json:"profile"`
	Projects   []model.Project     `koanf:"projects" json:"projects"`
	Sections   []model.HomeSection `koanf:"sections" json:"sections"`
	Experience []model.Experience  `koanf:"experience" json:"experience"`
	Pairs      PairSet             `koanf:"pairs" json:"pairs"`
}

// Store serves immutable portfolio content. Project long descriptions
// and section bodies pass through the HTML sanitizer once at load
// time, never per request.
type Store struct {
	data Data

	projectsByID map[string]model.Project
}

// NewStore builds a Store from the given data, sanitizing all HTML
// fields up front.
func NewStore(data Data, sanitizer security.SanitizerService) *Store {
	for i := range data.Projects {
		data.Projects[i].LongDescription = sanitizer.Sanitize(data.Projects[i].LongDescription)
	}
	for i := range data.Sections {
		data.Sections[i].Body = sanitizer.Sanitize(data.Sections[i].Body)
	}

	byID := make(map[string]model.Project, len(data.Projects))
	for _, p := range data.Projects {
		byID[p.ID] = p
	}

	return &Store{
		data:         data,
		projectsByID: byID,
	}
}

// Load reads the content file at path on top of the compiled-in
// defaults. An empty path serves the defaults unchanged.
func Load(path string) (Data, error) {
	if path == "" {
		return DefaultData(), nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Data{}, fmt.Errorf("failed to load content file %s: %w", path, err)
	}

	data := DefaultData()
	if err := k.Unmarshal("", &data); err != nil {
		return Data{}, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	return data, nil
}

// Profile returns the portfolio owner's profile.
func (s *Store) Profile() model.Profile {
	return s.data.Profile
}

// Projects returns the project gallery in display order.
func (s *Store) Projects() []model.Project {
	projects := make([]model.Project, len(s.data.Projects))
	copy(projects, s.data.Projects)
	return projects
}

// Project looks up one project by id.
func (s *Store) Project(id string) (model.Project, error) {
	p, ok := s.projectsByID[id]
	if !ok {
		return model.Project{}, ErrProjectNotFound
	}
	return p, nil
}

// Sections returns the home page sections in scroll order.
func (s *Store) Sections() []model.HomeSection {
	sections := make([]model.HomeSection, len(s.data.Sections))
	copy(sections, s.data.Sections)
	return sections
}

// Experience returns the professional journey timeline.
func (s *Store) Experience() []model.Experience {
	exp := make([]model.Experience, len(s.data.Experience))
	copy(exp, s.data.Experience)
	return exp
}

// Pairs returns the memo pair list for a board variant. Satisfies the
// game session store's pair source.
func (s *Store) Pairs(variant game.Variant) []model.MemoPair {
	var src []model.MemoPair
	if variant == game.VariantMobile {
		src = s.data.Pairs.Mobile
	} else {
		src = s.data.Pairs.Desktop
	}
	pairs := make([]model.MemoPair, len(src))
	copy(pairs, src)
	return pairs
}
