package game

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juancruzdillon/portfolitok/internal/model"
)

// Sentinel errors mapped to API errors by the handler layer.
var (
	ErrSessionNotFound = errors.New("game session not found")
	ErrEmptyDeck       = errors.New("no pairs configured for variant")
	ErrIndexOutOfRange = errors.New("card index out of range")
)

// PairSource supplies the pair list for a variant. Implemented by the
// content store.
type PairSource interface {
	Pairs(variant Variant) []model.MemoPair
}

// Recorder receives game events for metrics. A NopRecorder is used in
// tests.
type Recorder interface {
	RecordSessionStarted(variant string)
	RecordMatch()
	RecordMismatch()
	RecordWin(moves int)
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) RecordSessionStarted(string) {}
func (NopRecorder) RecordMatch()                {}
func (NopRecorder) RecordMismatch()             {}
func (NopRecorder) RecordWin(int)               {}

// Store holds the live game sessions in memory. Sessions are ephemeral
// by contract: they exist between create and delete/expiry and survive
// nothing.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	pairs  PairSource
	cfg    Config
	rec    Recorder
	logger *slog.Logger

	// overridable in tests for deterministic shuffles
	newRand func() *rand.Rand
	newID   func() string
}

// NewStore builds an empty session store.
func NewStore(pairs PairSource, cfg Config, rec Recorder, logger *slog.Logger) *Store {
	if rec == nil {
		rec = NopRecorder{}
	}
	return &Store{
		sessions: make(map[string]*Session),
		pairs:    pairs,
		cfg:      cfg,
		rec:      rec,
		logger:   logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		newID: uuid.NewString,
	}
}

// Create starts a new session for the variant. An empty pair list is
// refused so the consumer renders its loading state instead of an
// empty grid.
func (st *Store) Create(variant Variant) (View, error) {
	pairs := st.pairs.Pairs(variant)
	if len(pairs) == 0 {
		return View{}, ErrEmptyDeck
	}

	id := st.newID()
	s := newSession(id, variant, pairs, st.cfg, st.newRand(), st.rec)

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()

	st.rec.RecordSessionStarted(string(variant))
	st.logger.Info("game session created",
		slog.String("session_id", id),
		slog.String("variant", string(variant)),
		slog.Int("pairs", len(pairs)),
	)

	return s.Snapshot(), nil
}

// Get returns the current view of a session.
func (st *Store) Get(id string) (View, error) {
	s, err := st.find(id)
	if err != nil {
		return View{}, err
	}
	return s.Snapshot(), nil
}

// Reveal flips a card in the session.
func (st *Store) Reveal(id string, index int) (View, error) {
	s, err := st.find(id)
	if err != nil {
		return View{}, err
	}
	return s.Reveal(index)
}

// Reset rebuilds the session's deck in place.
func (st *Store) Reset(id string) (View, error) {
	s, err := st.find(id)
	if err != nil {
		return View{}, err
	}
	return s.Reset(), nil
}

// Delete drops the session and cancels its pending timer.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.stop()
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// SweepExpired drops sessions idle longer than olderThan and returns
// how many were removed. Idempotent; called periodically by the expiry
// job.
func (st *Store) SweepExpired(olderThan time.Duration) int {
	now := time.Now()

	st.mu.RLock()
	var expired []string
	for id, s := range st.sessions {
		if s.idleFor(now) > olderThan {
			expired = append(expired, id)
		}
	}
	st.mu.RUnlock()

	return st.deleteExpired(expired)
}

// deleteExpired drops the given sessions and returns how many were
// actually removed. A session deleted concurrently since the scan is
// simply skipped and not counted.
func (st *Store) deleteExpired(ids []string) int {
	removed := 0
	for _, id := range ids {
		if err := st.Delete(id); err == nil {
			removed++
			st.logger.Info("expired game session removed",
				slog.String("session_id", id),
			)
		}
	}
	return removed
}

// find looks up a live session.
func (st *Store) find(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}
