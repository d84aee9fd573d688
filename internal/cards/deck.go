package cards

import (
	"errors"
	"math/rand"
)

// ErrEmpty is returned by Draw when the draw pile is exhausted. The round
// engine treats deck exhaustion as a round-over trigger before drawing, so
// hitting this error indicates a bug in the caller.
var ErrEmpty = errors.New("draw pile is empty")

// Deck is the ordered draw pile for one round.
type Deck struct {
	cards []Role
}

// NewDeck returns a freshly shuffled 16-card deck.
func NewDeck(rng *rand.Rand) *Deck {
	pile := make([]Role, 0, DeckSize)
	for _, role := range Roles() {
		for range roleCounts[role] {
			pile = append(pile, role)
		}
	}
	rng.Shuffle(len(pile), func(i, j int) { pile[i], pile[j] = pile[j], pile[i] })
	return &Deck{cards: pile}
}

// NewStacked builds a deck that draws the given roles in order, first
// argument first. Tests use it to fix exact draws.
func NewStacked(roles ...Role) *Deck {
	pile := make([]Role, len(roles))
	for i, role := range roles {
		pile[len(roles)-1-i] = role
	}
	return &Deck{cards: pile}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Role, error) {
	if len(d.cards) == 0 {
		return 0, ErrEmpty
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// Len returns the number of cards remaining in the draw pile.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Empty reports whether the draw pile is exhausted.
func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}
