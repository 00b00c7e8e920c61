package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/juancruzdillon/portfolitok/internal/model"
)

// State is the global state of a game session.
type State string

const (
	// StateIdle accepts reveals: zero or one card is face up.
	StateIdle State = "idle"
	// StateLocked has two cards face up awaiting resolution; reveals
	// are refused until the mismatch timer re-hides them.
	StateLocked State = "locked"
	// StateWon is terminal: every pair is matched.
	StateWon State = "won"
)

// Variant selects which pair list a session plays with.
type Variant string

const (
	VariantDesktop Variant = "desktop"
	VariantMobile  Variant = "mobile"
)

// Config tunes the game sessions.
type Config struct {
	// MismatchDelay is how long two mismatched cards stay revealed
	// before the timer re-hides them. The UI animation assumes 1s.
	MismatchDelay time.Duration
	// FlawlessMoves is the move count at or under which a win counts
	// as flawless.
	FlawlessMoves int
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		MismatchDelay: time.Second,
		FlawlessMoves: 20,
	}
}

// Session is one game: a shuffled deck plus the reveal/resolve state
// machine. All methods are safe for concurrent use; the mutex also
// serializes the mismatch timer callback against reveals and resets.
type Session struct {
	mu sync.Mutex

	id      string
	variant Variant
	pairs   []model.MemoPair
	cfg     Config
	rng     *rand.Rand
	rec     Recorder

	cards        []Card
	revealed     []int
	matchedPairs int
	moves        int
	state        State

	// generation stamps the pending mismatch timer; Reset increments
	// it so a stale callback cannot touch the rebuilt deck.
	generation uint64
	timer      *time.Timer

	lastTouch time.Time
}

// newSession builds a fresh idle session with a shuffled deck.
func newSession(id string, variant Variant, pairs []model.MemoPair, cfg Config, rng *rand.Rand, rec Recorder) *Session {
	return &Session{
		id:        id,
		variant:   variant,
		pairs:     pairs,
		cfg:       cfg,
		rng:       rng,
		rec:       rec,
		cards:     BuildDeck(pairs, rng),
		state:     StateIdle,
		lastTouch: time.Now(),
	}
}

// Reveal flips the card at index face up and resolves when it is the
// second one. Clicks on revealed or matched cards, or while locked or
// won, are expected UI races and resolve as silent no-ops that leave
// counters untouched. An out-of-range index is the only error.
func (s *Session) Reveal(index int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouch = time.Now()

	if index < 0 || index >= len(s.cards) {
		return s.view(), ErrIndexOutOfRange
	}

	if s.state != StateIdle || s.cards[index].State != CardHidden {
		return s.view(), nil
	}

	s.cards[index].State = CardRevealed
	s.revealed = append(s.revealed, index)

	if len(s.revealed) == 2 {
		s.moves++
		s.state = StateLocked
		s.resolve()
	}

	return s.view(), nil
}

// resolve evaluates the two revealed cards. Called with the lock held,
// immediately after entering StateLocked.
func (s *Session) resolve() {
	first, second := s.revealed[0], s.revealed[1]

	if s.cards[first].PairID == s.cards[second].PairID {
		s.cards[first].State = CardMatched
		s.cards[second].State = CardMatched
		s.matchedPairs++
		s.revealed = nil
		s.rec.RecordMatch()

		// Win detector: all pairs matched on a non-empty deck.
		if s.matchedPairs == len(s.pairs) && len(s.pairs) > 0 {
			s.state = StateWon
			s.rec.RecordWin(s.moves)
			return
		}

		s.state = StateIdle
		return
	}

	s.rec.RecordMismatch()
	s.scheduleRehide(first, second)
}

// scheduleRehide arms the mismatch timer. The callback re-checks the
// generation under the lock: a Reset in the meantime already replaced
// the deck and the callback must not touch it. A card matched in the
// interim is never re-hidden (unreachable under correct sequencing,
// guarded anyway).
func (s *Session) scheduleRehide(first, second int) {
	gen := s.generation

	s.timer = time.AfterFunc(s.cfg.MismatchDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.generation != gen {
			return
		}

		for _, i := range []int{first, second} {
			if s.cards[i].State != CardMatched {
				s.cards[i].State = CardHidden
			}
		}
		s.revealed = nil
		s.state = StateIdle
	})
}

// Reset discards the session state and rebuilds a fresh shuffled deck
// from the same pair source. Valid in any state; a pending mismatch
// timer is invalidated.
func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouch = time.Now()

	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.cards = BuildDeck(s.pairs, s.rng)
	s.revealed = nil
	s.matchedPairs = 0
	s.moves = 0
	s.state = StateIdle

	return s.view()
}

// Snapshot returns the current view.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// stop releases the pending timer, if any. Used when the store drops
// the session.
func (s *Session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// idleFor reports how long the session has been untouched.
func (s *Session) idleFor(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastTouch)
}

// CardView is the client-visible shape of a card. Value, icon and pair
// id are omitted while the card is face down: the server is
// authoritative and hidden cards must not be readable from the
// payload.
type CardView struct {
	ID     string    `json:"id"`
	State  CardState `json:"state"`
	Value  string    `json:"value,omitempty"`
	Icon   string    `json:"icon,omitempty"`
	PairID *int      `json:"pair_id,omitempty"`
}

// View is the client-visible snapshot of a session.
type View struct {
	ID           string     `json:"id"`
	Variant      Variant    `json:"variant"`
	State        State      `json:"state"`
	Cards        []CardView `json:"cards"`
	Moves        int        `json:"moves"`
	MatchedPairs int        `json:"matched_pairs"`
	TotalPairs   int        `json:"total_pairs"`
	Flawless     bool       `json:"flawless,omitempty"`
}

// view builds the snapshot. Called with the lock held.
func (s *Session) view() View {
	cards := make([]CardView, len(s.cards))
	for i, c := range s.cards {
		cv := CardView{ID: c.ID, State: c.State}
		if c.State != CardHidden {
			pairID := c.PairID
			cv.Value = c.Value
			cv.Icon = c.Icon
			cv.PairID = &pairID
		}
		cards[i] = cv
	}

	return View{
		ID:           s.id,
		Variant:      s.variant,
		State:        s.state,
		Cards:        cards,
		Moves:        s.moves,
		MatchedPairs: s.matchedPairs,
		TotalPairs:   len(s.pairs),
		Flawless:     s.state == StateWon && s.moves <= s.cfg.FlawlessMoves,
	}
}
