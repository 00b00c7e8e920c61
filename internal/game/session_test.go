package game

import (
	"testing"
	"time"
)

// fastConfig keeps the mismatch delay short enough for tests to wait
// it out.
func fastConfig() Config {
	return Config{
		MismatchDelay: 20 * time.Millisecond,
		FlawlessMoves: 20,
	}
}

// newTestSession builds a session directly, bypassing the store.
func newTestSession(t *testing.T, pairs int, cfg Config) *Session {
	t.Helper()
	return newSession("s-test", VariantDesktop, testPairs(pairs), cfg, testRand(3), NopRecorder{})
}

// findMatch returns the indices of the two cards of pairID.
func findMatch(t *testing.T, s *Session, pairID int) (int, int) {
	t.Helper()
	first, second := -1, -1
	for i, c := range s.cards {
		if c.PairID != pairID {
			continue
		}
		if first == -1 {
			first = i
		} else {
			second = i
		}
	}
	if first == -1 || second == -1 {
		t.Fatalf("pair %d not found in deck", pairID)
	}
	return first, second
}

// findMismatch returns indices of two hidden cards with different pairIDs.
func findMismatch(t *testing.T, s *Session) (int, int) {
	t.Helper()
	for i, a := range s.cards {
		for j, b := range s.cards {
			if i != j && a.PairID != b.PairID && a.State == CardHidden && b.State == CardHidden {
				return i, j
			}
		}
	}
	t.Fatal("no mismatching hidden cards found")
	return 0, 0
}

func TestSession_RevealFlipsCard(t *testing.T) {
	s := newTestSession(t, 3, fastConfig())

	v, err := s.Reveal(0)
	if err != nil {
		t.Fatalf("Reveal returned error: %v", err)
	}

	if v.Cards[0].State != CardRevealed {
		t.Errorf("card state = %s, want revealed", v.Cards[0].State)
	}
	if v.Cards[0].Value == "" {
		t.Error("revealed card must expose its value")
	}
	if v.Moves != 0 {
		t.Errorf("moves = %d, want 0 after a single reveal", v.Moves)
	}
	if v.State != StateIdle {
		t.Errorf("state = %s, want idle after a single reveal", v.State)
	}
}

func TestSession_HiddenCardsAreOpaque(t *testing.T) {
	s := newTestSession(t, 3, fastConfig())

	v := s.Snapshot()
	for _, c := range v.Cards {
		if c.Value != "" || c.Icon != "" || c.PairID != nil {
			t.Errorf("hidden card %s leaks value/icon/pair_id", c.ID)
		}
	}
}

func TestSession_RevealSameCardTwiceIsNoOp(t *testing.T) {
	s := newTestSession(t, 3, fastConfig())

	s.Reveal(0)
	v, err := s.Reveal(0)
	if err != nil {
		t.Fatalf("second Reveal returned error: %v", err)
	}

	if v.Moves != 0 {
		t.Errorf("moves = %d, want 0 (re-click must not count)", v.Moves)
	}
	if got := len(s.revealed); got != 1 {
		t.Errorf("revealed count = %d, want 1", got)
	}
}

func TestSession_MatchCommitsImmediately(t *testing.T) {
	s := newTestSession(t, 3, fastConfig())
	first, second := findMatch(t, s, 1)

	s.Reveal(first)
	v, err := s.Reveal(second)
	if err != nil {
		t.Fatalf("Reveal returned error: %v", err)
	}

	if v.Cards[first].State != CardMatched || v.Cards[second].State != CardMatched {
		t.Error("matching cards were not marked matched")
	}
	if v.State != StateIdle {
		t.Errorf("state = %s, want idle immediately after a match", v.State)
	}
	if v.Moves != 1 {
		t.Errorf("moves = %d, want 1", v.Moves)
	}
	if v.MatchedPairs != 1 {
		t.Errorf("matched_pairs = %d, want 1", v.MatchedPairs)
	}
}

func TestSession_MismatchLocksAndRehides(t *testing.T) {
	s := newTestSession(t, 3, fastConfig())
	first, second := findMismatch(t, s)

	s.Reveal(first)
	v, _ := s.Reveal(second)

	if v.State != StateLocked {
		t.Fatalf("state = %s, want locked after mismatch", v.State)
	}
	if v.Moves != 1 {
		t.Errorf("moves = %d, want 1", v.Moves)
	}

	// Reveals are refused while locked.
	third := -1
	for i, c := range s.cards {
		if i != first && i != second && c.State == CardHidden {
			third = i
			break
		}
	}
	v, _ = s.Reveal(third)
	if v.Cards[third].State != CardHidden {
		t.Error("reveal while locked must be a no-op")
	}
	if v.Moves != 1 {
		t.Errorf("moves = %d after locked click, want 1", v.Moves)
	}

	time.Sleep(5 * fastConfig().MismatchDelay)

	v = s.Snapshot()
	if v.State != StateIdle {
		t.Errorf("state = %s after delay, want idle", v.State)
	}
	if v.Cards[first].State != CardHidden || v.Cards[second].State != CardHidden {
		t.Error("mismatched cards were not re-hidden after the delay")
	}
	if v.MatchedPairs != 0 {
		t.Errorf("matched_pairs = %d, want 0 (no false match)", v.MatchedPairs)
	}
}

func TestSession_WinAndTerminalGuard(t *testing.T) {
	s := newTestSession(t, 2, fastConfig())

	for pairID := 0; pairID < 2; pairID++ {
		first, second := findMatch(t, s, pairID)
		s.Reveal(first)
		s.Reveal(second)
	}

	v := s.Snapshot()
	if v.State != StateWon {
		t.Fatalf("state = %s, want won", v.State)
	}
	if v.Moves != 2 {
		t.Errorf("moves = %d, want 2", v.Moves)
	}
	if !v.Flawless {
		t.Error("2-move win should be flagged flawless")
	}

	// The guard must exist even though no hidden cards remain.
	before := v
	after, err := s.Reveal(0)
	if err != nil {
		t.Fatalf("Reveal after win returned error: %v", err)
	}
	if after.State != before.State || after.Moves != before.Moves {
		t.Error("reveal after win mutated the session")
	}
}

func TestSession_WinOverFlawlessThreshold(t *testing.T) {
	cfg := fastConfig()
	cfg.FlawlessMoves = 1
	s := newTestSession(t, 2, cfg)

	for pairID := 0; pairID < 2; pairID++ {
		first, second := findMatch(t, s, pairID)
		s.Reveal(first)
		s.Reveal(second)
	}

	v := s.Snapshot()
	if v.State != StateWon {
		t.Fatalf("state = %s, want won", v.State)
	}
	if v.Flawless {
		t.Error("2-move win over a 1-move threshold must not be flawless")
	}
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s := newTestSession(t, 3, fastConfig())
	first, second := findMatch(t, s, 0)
	s.Reveal(first)
	s.Reveal(second)

	v := s.Reset()

	if v.Moves != 0 {
		t.Errorf("moves = %d after reset, want 0", v.Moves)
	}
	if v.MatchedPairs != 0 {
		t.Errorf("matched_pairs = %d after reset, want 0", v.MatchedPairs)
	}
	if v.State != StateIdle {
		t.Errorf("state = %s after reset, want idle", v.State)
	}
	for _, c := range v.Cards {
		if c.State != CardHidden {
			t.Errorf("card %s = %s after reset, want hidden", c.ID, c.State)
		}
	}
}

func TestSession_ResetInvalidatesPendingTimer(t *testing.T) {
	s := newTestSession(t, 3, fastConfig())
	first, second := findMismatch(t, s)

	s.Reveal(first)
	s.Reveal(second) // locked, timer armed

	s.Reset()

	// Reveal a card of the new deck, then let the stale timer's delay
	// pass. A stale callback would re-hide it and unlock state it does
	// not own.
	s.Reveal(1)
	time.Sleep(5 * fastConfig().MismatchDelay)

	v := s.Snapshot()
	if v.Cards[1].State != CardRevealed {
		t.Errorf("card state = %s, want revealed (stale timer mutated the new deck)", v.Cards[1].State)
	}
	if v.State != StateIdle {
		t.Errorf("state = %s, want idle", v.State)
	}
	if got := len(s.revealed); got != 1 {
		t.Errorf("revealed count = %d, want 1", got)
	}
}

func TestSession_InvalidIndex(t *testing.T) {
	s := newTestSession(t, 2, fastConfig())

	if _, err := s.Reveal(-1); err != ErrIndexOutOfRange {
		t.Errorf("Reveal(-1) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := s.Reveal(99); err != ErrIndexOutOfRange {
		t.Errorf("Reveal(99) error = %v, want ErrIndexOutOfRange", err)
	}
}
