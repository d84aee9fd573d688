package table

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"loveletter/internal/cards"
	"loveletter/internal/engine"
	apperrors "loveletter/internal/errors"
)

func assertAppError(t *testing.T, err error, code apperrors.Code, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", message)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected a coded error, got %v", err)
	}
	if appErr.Code != code {
		t.Errorf("expected code %s, got %s", code, appErr.Code)
	}
	if appErr.Message != message {
		t.Errorf("expected message %q, got %q", message, appErr.Message)
	}
}

func newTestManager() *Manager {
	return NewManager(NewTokenSigner([]byte("test-secret")), zap.NewNop())
}

func seedp(v int64) *int64 {
	return &v
}

func TestCreateSeatsHost(t *testing.T) {
	m := newTestManager()

	seat, view, err := m.Create("Alice", 2, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if seat.Index != 0 {
		t.Errorf("expected the host at seat 0, got %d", seat.Index)
	}
	if seat.GameID == "" || seat.Token == "" {
		t.Error("expected a game id and a seat token")
	}
	if len(seat.JoinCode) != JoinCodeLength {
		t.Errorf("expected a %d-character join code, got %q", JoinCodeLength, seat.JoinCode)
	}

	if view.Players[0].Name != "Alice" {
		t.Errorf("expected the host name, got %q", view.Players[0].Name)
	}
	if view.Players[1].Name != "Player 2" {
		t.Errorf("expected a placeholder name, got %q", view.Players[1].Name)
	}
	if !view.WaitingForOpponent || view.ConnectedPlayers != 1 {
		t.Errorf("expected one seated player still waiting, got %+v", view)
	}
	if view.JoinCode != seat.JoinCode {
		t.Errorf("expected the host view to carry the join code, got %q", view.JoinCode)
	}
	if view.RoundNumber != 1 || view.DeckCount != 10 || view.BurnedCount != 1 || len(view.FaceUp) != 3 {
		t.Errorf("unexpected two-player deal: %+v", view)
	}
	if len(view.Players[0].Hand) != 1 {
		t.Errorf("expected the host to see their card, got %v", view.Players[0].Hand)
	}
	if view.Players[1].Hand != nil {
		t.Errorf("expected the open seat's hand to be hidden, got %v", view.Players[1].Hand)
	}
}

func TestCreateValidation(t *testing.T) {
	m := newTestManager()

	_, _, err := m.Create("", 2, seedp(1))
	assertAppError(t, err, apperrors.CodeIllegalAction, "Name is required.")

	_, _, err = m.Create("   ", 2, seedp(1))
	assertAppError(t, err, apperrors.CodeIllegalAction, "Name is required.")

	_, _, err = m.Create("Alice", 5, seedp(1))
	assertAppError(t, err, apperrors.CodeIllegalAction, "Love Letter supports 2-4 players.")

	_, view, err := m.Create("Alice", 0, seedp(1))
	if err != nil {
		t.Fatalf("create with default seats: %v", err)
	}
	if len(view.Players) != DefaultSeats {
		t.Errorf("expected %d seats by default, got %d", DefaultSeats, len(view.Players))
	}
}

func TestJoinFillsSeats(t *testing.T) {
	m := newTestManager()

	host, _, err := m.Create("Alice", 2, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	guest, view, err := m.Join(host.JoinCode, "Bob")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if guest.Index != 1 {
		t.Errorf("expected the guest at seat 1, got %d", guest.Index)
	}
	if guest.GameID != host.GameID {
		t.Errorf("expected the same game, got %q and %q", guest.GameID, host.GameID)
	}
	if view.Players[1].Name != "Bob" {
		t.Errorf("expected the guest name, got %q", view.Players[1].Name)
	}
	if view.WaitingForOpponent || view.ConnectedPlayers != 2 {
		t.Errorf("expected a full table, got waiting=%v connected=%d", view.WaitingForOpponent, view.ConnectedPlayers)
	}
	if view.JoinCode != "" {
		t.Errorf("guests must not see the join code, got %q", view.JoinCode)
	}
}

func TestJoinIsCaseInsensitive(t *testing.T) {
	m := newTestManager()

	host, _, err := m.Create("Alice", 3, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	guest, _, err := m.Join(strings.ToLower(host.JoinCode), "Bob")
	if err != nil {
		t.Fatalf("join with lowercased code: %v", err)
	}
	if guest.Index != 1 {
		t.Errorf("expected seat 1, got %d", guest.Index)
	}
}

func TestJoinUnknownCode(t *testing.T) {
	m := newTestManager()

	_, _, err := m.Join("ZZZZ99", "Bob")
	assertAppError(t, err, apperrors.CodeNotFound, "Unknown join code.")
}

func TestJoinCodeRetiresWhenFull(t *testing.T) {
	m := newTestManager()

	host, _, err := m.Create("Alice", 2, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := m.Join(host.JoinCode, "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	_, _, err = m.Join(host.JoinCode, "Carol")
	assertAppError(t, err, apperrors.CodeNotFound, "Unknown join code.")
}

func TestJoinRequiresName(t *testing.T) {
	m := newTestManager()

	host, _, err := m.Create("Alice", 2, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, _, err = m.Join(host.JoinCode, "  ")
	assertAppError(t, err, apperrors.CodeIllegalAction, "Name is required.")
}

func TestAuthorize(t *testing.T) {
	m := newTestManager()

	host, _, err := m.Create("Alice", 2, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	guest, _, err := m.Join(host.JoinCode, "Bob")
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	t.Run("host token", func(t *testing.T) {
		seat, err := m.Authorize(host.GameID, host.Token)
		if err != nil {
			t.Fatalf("authorize: %v", err)
		}
		if seat != 0 {
			t.Errorf("expected seat 0, got %d", seat)
		}
	})

	t.Run("guest token", func(t *testing.T) {
		seat, err := m.Authorize(guest.GameID, guest.Token)
		if err != nil {
			t.Fatalf("authorize: %v", err)
		}
		if seat != 1 {
			t.Errorf("expected seat 1, got %d", seat)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := m.Authorize(host.GameID, "")
		assertAppError(t, err, apperrors.CodeUnauthorized, "Seat token is required.")
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := m.Authorize(host.GameID, "garbage")
		assertAppError(t, err, apperrors.CodeUnauthorized, "Seat token is malformed.")
	})

	t.Run("token for another game", func(t *testing.T) {
		other, _, err := m.Create("Carol", 2, seedp(7))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		_, err = m.Authorize(host.GameID, other.Token)
		assertAppError(t, err, apperrors.CodeUnauthorized, "Seat token does not match this game.")
	})

	t.Run("token from another secret", func(t *testing.T) {
		foreign := NewTokenSigner([]byte("other-secret"))
		token, err := foreign.Issue(host.GameID, 0, "jti-x")
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		_, err = m.Authorize(host.GameID, token)
		assertAppError(t, err, apperrors.CodeUnauthorized, "Seat token signature is invalid.")
	})

	t.Run("unknown jti", func(t *testing.T) {
		signer := NewTokenSigner([]byte("test-secret"))
		token, err := signer.Issue(host.GameID, 0, "forged-jti")
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		_, err = m.Authorize(host.GameID, token)
		assertAppError(t, err, apperrors.CodeUnauthorized, "Seat token is not recognized.")
	})
}

func TestViewUnknownGame(t *testing.T) {
	m := newTestManager()

	_, err := m.View("missing", 0)
	assertAppError(t, err, apperrors.CodeNotFound, "Game not found.")
}

func TestStartTurnWaitsForFullTable(t *testing.T) {
	m := newTestManager()

	host, _, err := m.Create("Alice", 2, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = m.StartTurn(host.GameID, 0)
	assertAppError(t, err, apperrors.CodeIllegalAction, "Waiting for player 2.")
}

func TestPlayFlow(t *testing.T) {
	m := newTestManager()

	host, _, err := m.Create("Alice", 2, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := m.Join(host.JoinCode, "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	_, err = m.NextRound(host.GameID, 0)
	assertAppError(t, err, apperrors.CodeIllegalAction, "Round is not over.")

	view, err := m.StartTurn(host.GameID, 0)
	if err != nil {
		t.Fatalf("start turn: %v", err)
	}
	hand := view.Players[0].Hand
	if len(hand) != 2 {
		t.Fatalf("expected 2 cards after the draw, got %v", hand)
	}

	_, err = m.StartTurn(host.GameID, 0)
	assertAppError(t, err, apperrors.CodeIllegalAction, "You have already drawn this turn.")

	action := legalAction(view)
	view, err = m.Play(host.GameID, action)
	if err != nil {
		t.Fatalf("play %s: %v", action.Card, err)
	}
	if len(view.Events) == 0 || len(view.PublicLog) != len(view.Events) {
		t.Errorf("expected a populated event log, got %d events and %d lines", len(view.Events), len(view.PublicLog))
	}
}

// legalAction builds a valid first move for the current seat out of a
// seat view, the way a client would.
func legalAction(v View) engine.Action {
	seat := v.CurrentPlayerID
	legal := engine.LegalCards(v.Players[seat].Hand)
	card := legal[0]
	action := engine.Action{Seat: seat, Card: card}

	var target *int
	for _, p := range v.Players {
		if p.ID != seat && !p.Eliminated && !p.Protected {
			target = &p.ID
			break
		}
	}
	switch card {
	case cards.Guard:
		action.Target = target
		if target != nil {
			guess := cards.Priest
			action.Guess = &guess
		}
	case cards.Priest, cards.Baron, cards.King:
		action.Target = target
	case cards.Prince:
		if target != nil {
			action.Target = target
		} else {
			action.Target = &seat
		}
	}
	return action
}

func TestManagerSeedDeterminism(t *testing.T) {
	m1 := newTestManager()
	m2 := newTestManager()

	_, v1, err := m1.Create("Alice", 2, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, v2, err := m2.Create("Alice", 2, seedp(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(v1.FaceUp) != len(v2.FaceUp) {
		t.Fatalf("face-up counts differ: %v vs %v", v1.FaceUp, v2.FaceUp)
	}
	for i := range v1.FaceUp {
		if v1.FaceUp[i] != v2.FaceUp[i] {
			t.Errorf("face-up cards differ: %v vs %v", v1.FaceUp, v2.FaceUp)
		}
	}
	if v1.Players[0].Hand[0] != v2.Players[0].Hand[0] {
		t.Errorf("host hands differ: %v vs %v", v1.Players[0].Hand, v2.Players[0].Hand)
	}
}
