package engine

import "loveletter/internal/cards"

// Player holds one seat's state. Hand, discard pile, and the two flags are
// round-scoped; Tokens persists across rounds. A player's ID doubles as its
// index in the match's seat order.
type Player struct {
	ID         int
	Name       string
	Hand       []cards.Role
	Discard    []cards.Role
	Tokens     int
	Protected  bool
	Eliminated bool
}

func (p *Player) holds(role cards.Role) bool {
	for _, held := range p.Hand {
		if held == role {
			return true
		}
	}
	return false
}

// removeFromHand removes one copy of role from the hand.
func (p *Player) removeFromHand(role cards.Role) {
	for i, held := range p.Hand {
		if held == role {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

func (p *Player) discardSum() int {
	sum := 0
	for _, card := range p.Discard {
		sum += card.Rank()
	}
	return sum
}
