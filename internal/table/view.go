package table

import (
	"fmt"
	"strings"

	"loveletter/internal/cards"
	"loveletter/internal/engine"
)

// View is the state of a table as one seat is allowed to see it.
type View struct {
	GameID             string       `json:"game_id"`
	ViewerID           int          `json:"viewer_id"`
	Players            []PlayerView `json:"players"`
	CurrentPlayerID    int          `json:"current_player_id"`
	RoundNumber        int          `json:"round_number"`
	RoundOver          bool         `json:"round_over"`
	GameOver           bool         `json:"game_over"`
	TargetTokens       int          `json:"target_tokens"`
	DeckCount          int          `json:"deck_count"`
	BurnedCount        int          `json:"burned_count"`
	FaceUp             []cards.Role `json:"face_up"`
	WinnerIDs          []int        `json:"winner_ids"`
	MatchWinners       []int        `json:"match_winners,omitempty"`
	WaitingForOpponent bool         `json:"waiting_for_opponent"`
	ConnectedPlayers   int          `json:"connected_players"`
	JoinCode           string       `json:"join_code,omitempty"`
	Events             []EventView  `json:"events"`
	PublicLog          []string     `json:"public_log"`
	PrivateLog         []string     `json:"private_log"`
}

// PlayerView is one seat inside a View. Hand is null for every seat but
// the viewer's own.
type PlayerView struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	Tokens     int          `json:"tokens"`
	Discard    []cards.Role `json:"discard"`
	Eliminated bool         `json:"eliminated"`
	Protected  bool         `json:"protected"`
	Hand       []cards.Role `json:"hand"`
	HandCount  int          `json:"hand_count"`
}

// EventView is one event with hidden information stripped. Draws,
// Priest reveals, and Baron compares never carry card identities here;
// those surface only in the affected seats' private logs.
type EventView struct {
	Kind          string       `json:"kind"`
	PlayerID      *int         `json:"player_id,omitempty"`
	ViewerID      *int         `json:"viewer_id,omitempty"`
	TargetID      *int         `json:"target_id,omitempty"`
	StartPlayerID *int         `json:"start_player_id,omitempty"`
	Card          string       `json:"card,omitempty"`
	Guess         string       `json:"guess,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Cards         []cards.Role `json:"cards,omitempty"`
	Winners       []int        `json:"winners,omitempty"`
	Round         int          `json:"round,omitempty"`
	Tokens        int          `json:"tokens,omitempty"`
}

// view renders the table for one seat (must be called with lock held)
func (t *Table) view(viewer int) View {
	match := t.Match
	r := match.Round

	names := make(map[int]string, len(match.Players))
	for _, p := range match.Players {
		names[p.ID] = p.Name
	}

	players := make([]PlayerView, len(r.Players))
	for i, p := range r.Players {
		pv := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Tokens:     p.Tokens,
			Discard:    append([]cards.Role{}, p.Discard...),
			Eliminated: p.Eliminated,
			Protected:  p.Protected,
			HandCount:  len(p.Hand),
		}
		if p.ID == viewer {
			pv.Hand = append([]cards.Role{}, p.Hand...)
		}
		players[i] = pv
	}

	events := r.Events
	if len(events) > EventWindow {
		events = events[len(events)-EventWindow:]
	}
	wire := make([]EventView, 0, len(events))
	publicLog := make([]string, 0, len(events))
	privateLog := make([]string, 0, 4)
	for _, e := range events {
		wire = append(wire, eventView(e))
		publicLog = append(publicLog, formatPublicEvent(e, names))
		if line, ok := formatPrivateEvent(e, names, viewer); ok {
			privateLog = append(privateLog, line)
		}
	}

	v := View{
		GameID:             t.ID,
		ViewerID:           viewer,
		Players:            players,
		CurrentPlayerID:    r.Players[r.Current].ID,
		RoundNumber:        match.RoundNumber,
		RoundOver:          r.Over,
		GameOver:           match.GameOver(),
		TargetTokens:       match.TargetTokens,
		DeckCount:          r.Deck.Len(),
		BurnedCount:        len(r.Burned),
		FaceUp:             append([]cards.Role{}, r.FaceUp...),
		WinnerIDs:          append([]int{}, r.Winners...),
		WaitingForOpponent: t.joinable(),
		ConnectedPlayers:   t.Joined,
		Events:             wire,
		PublicLog:          publicLog,
		PrivateLog:         privateLog,
	}
	if v.GameOver {
		v.MatchWinners = match.MatchWinners()
	}
	if viewer == 0 && t.joinable() {
		v.JoinCode = t.JoinCode
	}
	return v
}

// eventView projects one engine event onto the wire, keeping only the
// fields that are public for its kind.
func eventView(e engine.Event) EventView {
	switch e.Kind {
	case engine.EventRoundStart:
		return EventView{Kind: string(e.Kind), Round: e.Round, StartPlayerID: intPtr(e.Seat)}
	case engine.EventFaceUp:
		return EventView{Kind: string(e.Kind), Cards: append([]cards.Role{}, e.Cards...)}
	case engine.EventDraw:
		return EventView{Kind: string(e.Kind), PlayerID: intPtr(e.Seat), Reason: e.Reason}
	case engine.EventPlay:
		return EventView{Kind: string(e.Kind), PlayerID: intPtr(e.Seat), Card: e.Card.ID()}
	case engine.EventGuardGuess:
		return EventView{Kind: string(e.Kind), PlayerID: intPtr(e.Seat), TargetID: intPtr(e.Target), Guess: e.Guess.ID()}
	case engine.EventReveal:
		return EventView{Kind: string(e.Kind), ViewerID: intPtr(e.Seat), TargetID: intPtr(e.Target)}
	case engine.EventBaronCompare:
		return EventView{Kind: string(e.Kind), PlayerID: intPtr(e.Seat), TargetID: intPtr(e.Target)}
	case engine.EventDiscard:
		return EventView{Kind: string(e.Kind), PlayerID: intPtr(e.Seat), Card: e.Card.ID(), Reason: e.Reason}
	case engine.EventSwap:
		return EventView{Kind: string(e.Kind), PlayerID: intPtr(e.Seat), TargetID: intPtr(e.Target)}
	case engine.EventEliminated:
		return EventView{Kind: string(e.Kind), PlayerID: intPtr(e.Seat), Reason: e.Reason}
	case engine.EventRoundEnd:
		return EventView{Kind: string(e.Kind), Winners: append([]int{}, e.Winners...)}
	case engine.EventTokenAwarded:
		return EventView{Kind: string(e.Kind), PlayerID: intPtr(e.Seat), Tokens: e.Tokens}
	case engine.EventProtected, engine.EventProtectionEnded, engine.EventCountessNoEffect:
		return EventView{Kind: string(e.Kind), PlayerID: intPtr(e.Seat)}
	default:
		return EventView{Kind: string(e.Kind)}
	}
}

// formatPublicEvent renders the spectator-safe log line for an event.
func formatPublicEvent(e engine.Event, names map[int]string) string {
	switch e.Kind {
	case engine.EventRoundStart:
		return fmt.Sprintf("Round %d begins. Start player: %s.", e.Round, nameOf(names, e.Seat))
	case engine.EventFaceUp:
		return fmt.Sprintf("Face-up removed cards: %s.", strings.Join(roleIDs(e.Cards), ", "))
	case engine.EventProtectionEnded:
		return fmt.Sprintf("%s's protection ends.", nameOf(names, e.Seat))
	case engine.EventDraw:
		return fmt.Sprintf("%s draws a card.", nameOf(names, e.Seat))
	case engine.EventPlay:
		return fmt.Sprintf("%s plays %s.", nameOf(names, e.Seat), e.Card.ID())
	case engine.EventGuardGuess:
		return fmt.Sprintf("%s guesses %s on %s.", nameOf(names, e.Seat), e.Guess.ID(), nameOf(names, e.Target))
	case engine.EventReveal:
		return fmt.Sprintf("%s looked at %s's hand.", nameOf(names, e.Seat), nameOf(names, e.Target))
	case engine.EventBaronCompare:
		return fmt.Sprintf("%s compares hand with %s.", nameOf(names, e.Seat), nameOf(names, e.Target))
	case engine.EventProtected:
		return fmt.Sprintf("%s is protected.", nameOf(names, e.Seat))
	case engine.EventDiscard:
		return fmt.Sprintf("%s discards %s.", nameOf(names, e.Seat), e.Card.ID())
	case engine.EventEliminated:
		return fmt.Sprintf("%s is eliminated.", nameOf(names, e.Seat))
	case engine.EventSwap:
		return fmt.Sprintf("%s swaps hands with %s.", nameOf(names, e.Seat), nameOf(names, e.Target))
	case engine.EventCountessNoEffect:
		return fmt.Sprintf("%s's countess has no effect.", nameOf(names, e.Seat))
	case engine.EventRoundEnd:
		winners := make([]string, 0, len(e.Winners))
		for _, id := range e.Winners {
			winners = append(winners, nameOf(names, id))
		}
		return fmt.Sprintf("Round ends. Winner(s): %s.", strings.Join(winners, ", "))
	case engine.EventTokenAwarded:
		return fmt.Sprintf("%s gains a token.", nameOf(names, e.Seat))
	default:
		return string(e.Kind)
	}
}

// formatPrivateEvent renders the hidden-information line an event adds
// to one seat's private log, if any.
func formatPrivateEvent(e engine.Event, names map[int]string, viewer int) (string, bool) {
	switch e.Kind {
	case engine.EventReveal:
		if e.Seat != viewer {
			return "", false
		}
		return fmt.Sprintf("You looked at %s's hand: %s.", nameOf(names, e.Target), e.Card.ID()), true
	case engine.EventBaronCompare:
		if e.Seat != viewer && e.Target != viewer {
			return "", false
		}
		return fmt.Sprintf("Baron compare details: %s (%s) vs %s (%s).",
			nameOf(names, e.Seat), e.Card.ID(),
			nameOf(names, e.Target), e.TargetCard.ID()), true
	default:
		return "", false
	}
}

// nameOf looks up a seat's display name
func nameOf(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("Player %d", id+1)
}

// roleIDs converts roles to their wire ids
func roleIDs(roles []cards.Role) []string {
	ids := make([]string, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID())
	}
	return ids
}

// intPtr returns a pointer to i for optional wire fields
func intPtr(i int) *int {
	return &i
}
