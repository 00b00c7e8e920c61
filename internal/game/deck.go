// Package game implements the memory-match game: deck building, the
// per-session state machine with its mismatch timer, and the in-memory
// session store.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/juancruzdillon/portfolitok/internal/model"
)

// CardState is the state of a single card on the board.
type CardState string

const (
	CardHidden   CardState = "hidden"
	CardRevealed CardState = "revealed"
	CardMatched  CardState = "matched"
)

// Card is one face of a pair on the board. PairID is the index of the
// source pair; exactly two cards share it.
type Card struct {
	ID     string
	Value  string
	Icon   string
	PairID int
	State  CardState
}

// BuildDeck derives 2N face-down cards from N pairs and shuffles them
// with a Fisher–Yates pass over rng, so every permutation of the deck
// is equally likely. Pure aside from consuming rng; N = 0 yields an
// empty deck.
func BuildDeck(pairs []model.MemoPair, rng *rand.Rand) []Card {
	cards := make([]Card, 0, 2*len(pairs))

	for i, pair := range pairs {
		cards = append(cards, Card{
			ID:     fmt.Sprintf("card-%d-q", i),
			Value:  pair.Prompt,
			Icon:   pair.PromptIcon,
			PairID: i,
			State:  CardHidden,
		})
		cards = append(cards, Card{
			ID:     fmt.Sprintf("card-%d-a", i),
			Value:  pair.Answer,
			Icon:   pair.AnswerIcon,
			PairID: i,
			State:  CardHidden,
		})
	}

	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return cards
}
