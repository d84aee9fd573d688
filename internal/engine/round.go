package engine

import (
	"fmt"
	"math/rand"

	"loveletter/internal/cards"
	apperrors "loveletter/internal/errors"
)

// Round is one playing of the deck, from setup to elimination or exhaustion.
// Players is shared with the owning match so token awards persist.
type Round struct {
	Players []*Player
	Deck    *cards.Deck
	Burned  []cards.Role
	FaceUp  []cards.Role
	Current int // index of the seat whose turn it is
	Events  []Event
	Over    bool
	Winners []int // seats that scored, set once Over
}

// newRound deals a fresh round: reset per-seat state, burn one card face
// down, reveal three face up in two-seat rounds, deal one card to every
// seat, and hand the opening turn to start.
func newRound(players []*Player, rng *rand.Rand, start, number int) *Round {
	for _, p := range players {
		p.Hand = nil
		p.Discard = nil
		p.Protected = false
		p.Eliminated = false
	}

	deck := cards.NewDeck(rng)
	burned := []cards.Role{mustDraw(deck)}
	var faceUp []cards.Role
	if len(players) == 2 {
		for range 3 {
			faceUp = append(faceUp, mustDraw(deck))
		}
	}
	for _, p := range players {
		p.Hand = append(p.Hand, mustDraw(deck))
	}

	r := &Round{
		Players: players,
		Deck:    deck,
		Burned:  burned,
		FaceUp:  faceUp,
		Current: start,
	}
	r.emit(Event{Kind: EventRoundStart, Round: number, Seat: players[start].ID})
	if len(faceUp) > 0 {
		r.emit(Event{Kind: EventFaceUp, Cards: append([]cards.Role(nil), faceUp...)})
	}
	return r
}

// StartTurn draws the current seat's second card. Protection granted by a
// Handmaid lapses here, at the protected seat's own turn start, before the
// draw. Every rejection leaves the round untouched.
func (r *Round) StartTurn(seat int) error {
	if r.Over {
		return apperrors.New(apperrors.CodeIllegalAction, "Round is over.")
	}
	p := r.player(seat)
	if p == nil {
		return apperrors.New(apperrors.CodeIllegalAction, "Player not found.")
	}
	if r.Players[r.Current].ID != seat {
		return apperrors.New(apperrors.CodeIllegalAction, "Not your turn.")
	}
	if p.Eliminated {
		return apperrors.New(apperrors.CodeIllegalAction, "You are eliminated.")
	}
	if len(p.Hand) != 1 {
		return apperrors.New(apperrors.CodeIllegalAction, "You have already drawn this turn.")
	}

	if p.Protected {
		p.Protected = false
		r.emit(Event{Kind: EventProtectionEnded, Seat: p.ID})
	}

	drawn, err := r.Deck.Draw()
	if err != nil {
		// The post-play round-over check must fire before the deck runs dry.
		return apperrors.Wrap(apperrors.CodeInternal, "draw pile empty with round still open", err)
	}
	p.Hand = append(p.Hand, drawn)
	r.emit(Event{Kind: EventDraw, Seat: p.ID, Card: drawn})
	return nil
}

// Play validates the action in full and then resolves it. Rejections are
// observable no-ops; an effect applies fully or not at all.
func (r *Round) Play(action Action) error {
	if r.Over {
		return apperrors.New(apperrors.CodeIllegalAction, "Round is over.")
	}
	p := r.player(action.Seat)
	if p == nil {
		return apperrors.New(apperrors.CodeIllegalAction, "Player not found.")
	}
	if r.Players[r.Current].ID != action.Seat {
		return apperrors.New(apperrors.CodeIllegalAction, "Not your turn.")
	}
	if p.Eliminated {
		return apperrors.New(apperrors.CodeIllegalAction, "You are eliminated.")
	}
	if len(p.Hand) != 2 {
		return apperrors.New(apperrors.CodeIllegalAction, "You must draw a card first.")
	}
	if !p.holds(action.Card) {
		return apperrors.New(apperrors.CodeIllegalAction, "You must play a card from your hand.")
	}
	if !containsRole(LegalCards(p.Hand), action.Card) {
		return apperrors.New(apperrors.CodeIllegalAction, "You must play the Countess when holding it with King or Prince.")
	}
	if err := r.validateTarget(p, action); err != nil {
		return err
	}

	target := r.targetPlayer(action)

	p.removeFromHand(action.Card)
	p.Discard = append(p.Discard, action.Card)
	r.emit(Event{Kind: EventPlay, Seat: p.ID, Card: action.Card})

	switch action.Card {
	case cards.Guard:
		r.resolveGuard(p, target, action.Guess)
	case cards.Priest:
		r.resolvePriest(p, target)
	case cards.Baron:
		r.resolveBaron(p, target)
	case cards.Handmaid:
		p.Protected = true
		r.emit(Event{Kind: EventProtected, Seat: p.ID})
	case cards.Prince:
		r.resolvePrince(target)
	case cards.King:
		r.resolveKing(p, target)
	case cards.Countess:
		r.emit(Event{Kind: EventCountessNoEffect, Seat: p.ID})
	case cards.Princess:
		r.eliminate(p, ReasonPlayedPrincess)
	default:
		return apperrors.New(apperrors.CodeInternal, fmt.Sprintf("no resolver for card %q", action.Card))
	}
	return nil
}

// validateTarget enforces the per-card targeting rules. Cards that demand a
// target but have no legal one may be played untargeted as a bare discard;
// the Prince always needs a target because self-targeting stays legal.
func (r *Round) validateTarget(p *Player, action Action) error {
	switch action.Card {
	case cards.Guard, cards.Priest, cards.Baron, cards.King:
		valid := r.validTargets(p, action.Card)
		if len(valid) == 0 {
			if action.Target != nil {
				return apperrors.New(apperrors.CodeIllegalAction, "No valid targets.")
			}
		} else {
			if action.Target == nil {
				return apperrors.New(apperrors.CodeIllegalAction, "This card requires a target.")
			}
			if !containsPlayer(valid, *action.Target) {
				return apperrors.New(apperrors.CodeIllegalAction, "Target is not valid.")
			}
		}
		if action.Card == cards.Guard && len(valid) > 0 {
			if action.Guess == nil {
				return apperrors.New(apperrors.CodeIllegalAction, "Guard requires a guess.")
			}
			if *action.Guess == cards.Guard {
				return apperrors.New(apperrors.CodeIllegalAction, "Guard cannot guess Guard.")
			}
		}
	case cards.Prince:
		valid := r.validTargets(p, action.Card)
		if action.Target == nil {
			return apperrors.New(apperrors.CodeIllegalAction, "Prince requires a target.")
		}
		if !containsPlayer(valid, *action.Target) {
			return apperrors.New(apperrors.CodeIllegalAction, "Target is not valid.")
		}
	}
	return nil
}

// LegalCards returns the subset of hand that may legally be played,
// applying the forced-Countess constraint.
func LegalCards(hand []cards.Role) []cards.Role {
	holdsCountess := false
	holdsRoyalty := false
	for _, card := range hand {
		switch card {
		case cards.Countess:
			holdsCountess = true
		case cards.King, cards.Prince:
			holdsRoyalty = true
		}
	}
	if holdsCountess && holdsRoyalty {
		return []cards.Role{cards.Countess}
	}
	return append([]cards.Role(nil), hand...)
}

// ValidTargets returns the seats the given seat may aim the card at.
func (r *Round) ValidTargets(seat int, card cards.Role) []*Player {
	p := r.player(seat)
	if p == nil {
		return nil
	}
	return r.validTargets(p, card)
}

func (r *Round) validTargets(p *Player, card cards.Role) []*Player {
	var targets []*Player
	for _, candidate := range r.Players {
		if candidate.Eliminated {
			continue
		}
		switch card {
		case cards.Guard, cards.Priest, cards.Baron, cards.King:
			if candidate.ID == p.ID || candidate.Protected {
				continue
			}
			targets = append(targets, candidate)
		case cards.Prince:
			if candidate.ID == p.ID {
				targets = append(targets, candidate)
				continue
			}
			if candidate.Protected {
				continue
			}
			targets = append(targets, candidate)
		}
	}
	return targets
}

// checkEnd flags the round over when at most one seat stays active or the
// draw pile is exhausted, and awards tokens to the winners.
func (r *Round) checkEnd() {
	if r.Over {
		return
	}
	active := r.activePlayers()
	var winners []*Player
	switch {
	case len(active) <= 1:
		winners = active
	case r.Deck.Empty():
		winners = highestHand(active)
	default:
		return
	}

	r.Over = true
	ids := make([]int, 0, len(winners))
	for _, w := range winners {
		ids = append(ids, w.ID)
	}
	r.Winners = ids
	r.emit(Event{Kind: EventRoundEnd, Winners: ids})
	for _, w := range winners {
		w.Tokens++
		r.emit(Event{Kind: EventTokenAwarded, Seat: w.ID, Tokens: w.Tokens})
	}
}

// advance moves the turn to the next non-eliminated seat, wrapping.
func (r *Round) advance() {
	if r.Over {
		return
	}
	n := len(r.Players)
	idx := r.Current
	for range n {
		idx = (idx + 1) % n
		if !r.Players[idx].Eliminated {
			r.Current = idx
			return
		}
	}
}

// highestHand resolves exhaustion scoring: highest held rank wins, ties
// fall back to the sum of discarded ranks, and seats still tied after that
// all win. A seat left with no hand ranks below every card.
func highestHand(active []*Player) []*Player {
	best := 0
	for _, p := range active {
		if len(p.Hand) > 0 && p.Hand[0].Rank() > best {
			best = p.Hand[0].Rank()
		}
	}
	var candidates []*Player
	for _, p := range active {
		if len(p.Hand) > 0 && p.Hand[0].Rank() == best {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) <= 1 {
		return candidates
	}

	bestSum := candidates[0].discardSum()
	for _, p := range candidates[1:] {
		if sum := p.discardSum(); sum > bestSum {
			bestSum = sum
		}
	}
	var winners []*Player
	for _, p := range candidates {
		if p.discardSum() == bestSum {
			winners = append(winners, p)
		}
	}
	return winners
}

// CurrentPlayer returns the seat whose turn it is.
func (r *Round) CurrentPlayer() *Player {
	return r.Players[r.Current]
}

func (r *Round) player(seat int) *Player {
	for _, p := range r.Players {
		if p.ID == seat {
			return p
		}
	}
	return nil
}

func (r *Round) targetPlayer(action Action) *Player {
	if action.Target == nil {
		return nil
	}
	return r.player(*action.Target)
}

func (r *Round) activePlayers() []*Player {
	var active []*Player
	for _, p := range r.Players {
		if !p.Eliminated {
			active = append(active, p)
		}
	}
	return active
}

func (r *Round) emit(e Event) {
	r.Events = append(r.Events, e)
}

func mustDraw(deck *cards.Deck) cards.Role {
	card, err := deck.Draw()
	if err != nil {
		panic(err)
	}
	return card
}

func containsRole(roles []cards.Role, role cards.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func containsPlayer(players []*Player, seat int) bool {
	for _, p := range players {
		if p.ID == seat {
			return true
		}
	}
	return false
}
