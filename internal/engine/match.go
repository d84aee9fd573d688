package engine

import (
	"math/rand"

	apperrors "loveletter/internal/errors"
)

// targetTokensBySeats maps seat count to the token threshold that wins the
// match.
var targetTokensBySeats = map[int]int{
	2: 7,
	3: 5,
	4: 4,
}

// StartPolicy selects which seat opens each round.
type StartPolicy int

const (
	// StartRotate opens round one at seat 0 and rotates one seat per round.
	StartRotate StartPolicy = iota
	// StartWinner opens each round at the previous round's winning seat,
	// lowest seat first on shared wins. Round one opens at seat 0.
	StartWinner
)

// Match sequences rounds and tracks tokens toward the victory threshold.
// It is not safe for concurrent use; callers serialize access per table.
type Match struct {
	Players      []*Player
	TargetTokens int
	RoundNumber  int
	Round        *Round

	policy     StartPolicy
	firstStart int
	rng        *rand.Rand
}

// Option configures a match at creation.
type Option func(*Match)

// WithStartPolicy overrides the default rotating start-seat policy.
func WithStartPolicy(policy StartPolicy) Option {
	return func(m *Match) {
		m.policy = policy
	}
}

// WithTargetTokens overrides the seat-count-derived victory threshold.
func WithTargetTokens(tokens int) Option {
	return func(m *Match) {
		m.TargetTokens = tokens
	}
}

// WithFirstStart sets which seat opens round one. Tabletop groups use
// this for the youngest-player rule.
func WithFirstStart(seat int) Option {
	return func(m *Match) {
		m.firstStart = seat
	}
}

// NewMatch creates a match for 2-4 named seats. The seed fixes every
// shuffle, so two matches created with the same names and seed replay
// identically.
func NewMatch(names []string, seed int64, opts ...Option) (*Match, error) {
	target, ok := targetTokensBySeats[len(names)]
	if !ok {
		return nil, apperrors.New(apperrors.CodeIllegalAction, "Love Letter supports 2-4 players.")
	}
	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = &Player{ID: i, Name: name}
	}
	m := &Match{
		Players:      players,
		TargetTokens: target,
		rng:          rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.firstStart < 0 || m.firstStart >= len(players) {
		return nil, apperrors.New(apperrors.CodeIllegalAction, "Start player is not valid.")
	}
	return m, nil
}

// StartRound deals the next round. It rejects while a round is still being
// played or once the match is decided.
func (m *Match) StartRound() error {
	if m.GameOver() {
		return apperrors.New(apperrors.CodeIllegalAction, "Game is over.")
	}
	if m.Round != nil && !m.Round.Over {
		return apperrors.New(apperrors.CodeIllegalAction, "Round is not over.")
	}
	m.RoundNumber++
	start := m.startSeat()
	m.Round = newRound(m.Players, m.rng, start, m.RoundNumber)
	return nil
}

// startSeat applies the start policy. Called after RoundNumber is bumped
// but before the previous round is replaced.
func (m *Match) startSeat() int {
	if m.RoundNumber <= 1 {
		return m.firstStart
	}
	if m.policy == StartWinner && m.Round != nil && len(m.Round.Winners) > 0 {
		lowest := m.Round.Winners[0]
		for _, seat := range m.Round.Winners[1:] {
			if seat < lowest {
				lowest = seat
			}
		}
		return lowest
	}
	return (m.RoundNumber - 1) % len(m.Players)
}

// StartTurn draws the second card for the given seat's turn.
func (m *Match) StartTurn(seat int) error {
	if m.GameOver() {
		return apperrors.New(apperrors.CodeIllegalAction, "Game is over.")
	}
	if m.Round == nil {
		return apperrors.New(apperrors.CodeInternal, "no active round")
	}
	return m.Round.StartTurn(seat)
}

// Play resolves one card play, then runs the round-over check and, while
// the round stays open, advances the turn.
func (m *Match) Play(action Action) error {
	if m.GameOver() {
		return apperrors.New(apperrors.CodeIllegalAction, "Game is over.")
	}
	if m.Round == nil {
		return apperrors.New(apperrors.CodeInternal, "no active round")
	}
	if err := m.Round.Play(action); err != nil {
		return err
	}
	m.Round.checkEnd()
	if !m.Round.Over {
		m.Round.advance()
	}
	return nil
}

// GameOver reports whether any seat has reached the token threshold.
func (m *Match) GameOver() bool {
	for _, p := range m.Players {
		if p.Tokens >= m.TargetTokens {
			return true
		}
	}
	return false
}

// MatchWinners returns the seats at or above the token threshold.
func (m *Match) MatchWinners() []int {
	var winners []int
	for _, p := range m.Players {
		if p.Tokens >= m.TargetTokens {
			winners = append(winners, p.ID)
		}
	}
	return winners
}
