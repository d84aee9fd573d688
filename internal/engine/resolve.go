package engine

import "loveletter/internal/cards"

// resolveGuard eliminates the target when the guess names their held card.
// Untargeted plays (no legal target existed) resolve as bare discards.
func (r *Round) resolveGuard(p, target *Player, guess *cards.Role) {
	if target == nil || guess == nil {
		return
	}
	r.emit(Event{Kind: EventGuardGuess, Seat: p.ID, Target: target.ID, Guess: *guess})
	if len(target.Hand) > 0 && target.Hand[0] == *guess {
		r.eliminate(target, ReasonGuardGuess)
	}
}

// resolvePriest reveals the target's hand to the acting seat only.
func (r *Round) resolvePriest(p, target *Player) {
	if target == nil {
		return
	}
	if len(target.Hand) > 0 {
		r.emit(Event{Kind: EventReveal, Seat: p.ID, Target: target.ID, Card: target.Hand[0]})
	}
}

// resolveBaron compares remaining hands and eliminates the lower rank.
// A tie eliminates nobody. Both cards become known to both participants.
func (r *Round) resolveBaron(p, target *Player) {
	if target == nil {
		return
	}
	if len(p.Hand) == 0 || len(target.Hand) == 0 {
		return
	}
	mine := p.Hand[0]
	theirs := target.Hand[0]
	r.emit(Event{Kind: EventBaronCompare, Seat: p.ID, Target: target.ID, Card: mine, TargetCard: theirs})
	switch {
	case mine.Rank() > theirs.Rank():
		r.eliminate(target, ReasonBaron)
	case theirs.Rank() > mine.Rank():
		r.eliminate(p, ReasonBaron)
	}
}

// resolvePrince forces the target to discard their hand. Discarding the
// Princess eliminates them; otherwise they redraw from the deck, then from
// the burned card, and failing both they play on with an empty hand.
func (r *Round) resolvePrince(target *Player) {
	if target == nil {
		return
	}
	if len(target.Hand) > 0 {
		discarded := target.Hand[len(target.Hand)-1]
		target.Hand = target.Hand[:len(target.Hand)-1]
		target.Discard = append(target.Discard, discarded)
		r.emit(Event{Kind: EventDiscard, Seat: target.ID, Card: discarded, Reason: ReasonPrince})
		if discarded == cards.Princess {
			r.eliminate(target, ReasonPrincePrincess)
			return
		}
	}

	if !target.Eliminated {
		if replacement, ok := r.drawReplacement(); ok {
			target.Hand = append(target.Hand, replacement)
			r.emit(Event{Kind: EventDraw, Seat: target.ID, Card: replacement, Reason: ReasonPrince})
		}
	}
}

// resolveKing swaps the acting seat's remaining card with the target's.
func (r *Round) resolveKing(p, target *Player) {
	if target == nil {
		return
	}
	if len(p.Hand) == 0 || len(target.Hand) == 0 {
		return
	}
	p.Hand, target.Hand = target.Hand, p.Hand
	r.emit(Event{Kind: EventSwap, Seat: p.ID, Target: target.ID})
}

// eliminate knocks a seat out of the round: their hand is discarded face
// up and protection is cleared.
func (r *Round) eliminate(p *Player, reason string) {
	if p.Eliminated {
		return
	}
	p.Eliminated = true
	p.Protected = false
	if len(p.Hand) > 0 {
		discarded := p.Hand[len(p.Hand)-1]
		p.Hand = p.Hand[:len(p.Hand)-1]
		p.Discard = append(p.Discard, discarded)
		r.emit(Event{Kind: EventDiscard, Seat: p.ID, Card: discarded, Reason: ReasonElimination})
	}
	r.emit(Event{Kind: EventEliminated, Seat: p.ID, Reason: reason})
}

// drawReplacement feeds Prince redraws: the deck first, then the burned
// card. The face-up cards are never drawn.
func (r *Round) drawReplacement() (cards.Role, bool) {
	if !r.Deck.Empty() {
		return mustDraw(r.Deck), true
	}
	if len(r.Burned) > 0 {
		card := r.Burned[len(r.Burned)-1]
		r.Burned = r.Burned[:len(r.Burned)-1]
		return card, true
	}
	return 0, false
}
