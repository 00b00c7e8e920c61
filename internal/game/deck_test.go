package game

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"testing"

	"github.com/juancruzdillon/portfolitok/internal/model"
)

// testPairs builds n distinct pairs.
func testPairs(n int) []model.MemoPair {
	pairs := make([]model.MemoPair, n)
	for i := range pairs {
		pairs[i] = model.MemoPair{
			Prompt: fmt.Sprintf("q%d", i),
			Answer: fmt.Sprintf("a%d", i),
		}
	}
	return pairs
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestBuildDeck_SizeAndPairing(t *testing.T) {
	for _, n := range []int{1, 2, 6, 10} {
		deck := BuildDeck(testPairs(n), testRand(42))

		if len(deck) != 2*n {
			t.Errorf("n=%d: deck size = %d, want %d", n, len(deck), 2*n)
		}

		perPair := make(map[int]int)
		for _, c := range deck {
			perPair[c.PairID]++
			if c.State != CardHidden {
				t.Errorf("n=%d: card %s starts in state %s, want hidden", n, c.ID, c.State)
			}
		}
		for pairID, count := range perPair {
			if count != 2 {
				t.Errorf("n=%d: pair %d has %d cards, want 2", n, pairID, count)
			}
		}
	}
}

func TestBuildDeck_MultisetEquality(t *testing.T) {
	pairs := testPairs(5)
	deck := BuildDeck(pairs, testRand(7))

	var got, want []string
	for _, c := range deck {
		got = append(got, c.Value)
	}
	for _, p := range pairs {
		want = append(want, p.Prompt, p.Answer)
	}
	sort.Strings(got)
	sort.Strings(want)

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("deck values = %v, want permutation of %v", got, want)
	}
}

func TestBuildDeck_EmptyPairs(t *testing.T) {
	deck := BuildDeck(nil, testRand(1))
	if len(deck) != 0 {
		t.Errorf("deck size = %d, want 0", len(deck))
	}
}

func TestBuildDeck_ShufflesOrder(t *testing.T) {
	pairs := testPairs(6)

	orderings := make(map[string]bool)
	for seed := uint64(0); seed < 30; seed++ {
		deck := BuildDeck(pairs, testRand(seed))
		ids := make([]string, len(deck))
		for i, c := range deck {
			ids[i] = c.ID
		}
		orderings[strings.Join(ids, ",")] = true
	}

	// With 12! orderings, 30 builds colliding into one ordering means
	// the shuffle is broken.
	if len(orderings) < 2 {
		t.Errorf("got %d distinct orderings over 30 builds, want several", len(orderings))
	}
}

func TestBuildDeck_EveryCardReachesEveryPosition(t *testing.T) {
	pairs := testPairs(2) // 4 cards

	rng := testRand(99)
	seen := make(map[int]map[string]bool)
	for i := 0; i < 4; i++ {
		seen[i] = make(map[string]bool)
	}

	for build := 0; build < 400; build++ {
		deck := BuildDeck(pairs, rng)
		for pos, c := range deck {
			seen[pos][c.ID] = true
		}
	}

	for pos, ids := range seen {
		if len(ids) != 4 {
			t.Errorf("position %d only ever held %d of 4 cards over 400 builds", pos, len(ids))
		}
	}
}
