package engine

import "loveletter/internal/cards"

// EventKind identifies what an event records.
type EventKind string

const (
	EventRoundStart       EventKind = "round_start"
	EventFaceUp           EventKind = "face_up"
	EventProtectionEnded  EventKind = "protection_ended"
	EventDraw             EventKind = "draw"
	EventPlay             EventKind = "play"
	EventGuardGuess       EventKind = "guard_guess"
	EventReveal           EventKind = "reveal"
	EventBaronCompare     EventKind = "baron_compare"
	EventProtected        EventKind = "protected"
	EventDiscard          EventKind = "discard"
	EventSwap             EventKind = "swap"
	EventCountessNoEffect EventKind = "countess_no_effect"
	EventEliminated       EventKind = "eliminated"
	EventRoundEnd         EventKind = "round_end"
	EventTokenAwarded     EventKind = "token_awarded"
)

// Reasons attached to discard, draw, and eliminated events.
const (
	ReasonPrince         = "prince"
	ReasonElimination    = "elimination"
	ReasonGuardGuess     = "guard_guess"
	ReasonBaron          = "baron"
	ReasonPrincePrincess = "prince_princess"
	ReasonPlayedPrincess = "played_princess"
)

// Event records one observable engine occurrence. Only the fields that are
// meaningful for the kind are set; consumers must switch on Kind and read
// just those. Card identities carried here are unfiltered, so any
// seat-scoped rendering has to strip hidden information before exposure.
type Event struct {
	Kind       EventKind
	Seat       int          // acting or affected seat; the viewer on a reveal
	Target     int          // targeted seat
	Card       cards.Role   // drawn/played/discarded/revealed card; actor's card in a Baron compare
	Guess      cards.Role   // Guard guess
	TargetCard cards.Role   // target's card in a Baron compare
	Reason     string       // why a discard/draw/elimination happened
	Cards      []cards.Role // face-up cards removed at setup
	Winners    []int        // seats scoring at round end
	Round      int          // round number on round_start
	Tokens     int          // winner's total on token_awarded
}

// Action describes one attempted card play. Target and Guess are nil when
// the play carries none.
type Action struct {
	Seat   int
	Card   cards.Role
	Target *int
	Guess  *cards.Role
}
