package cards

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
)

func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(1)))
	if deck.Len() != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, deck.Len())
	}

	counts := make(map[Role]int)
	for range DeckSize {
		card, err := deck.Draw()
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		counts[card]++
	}
	for _, role := range Roles() {
		if counts[role] != Count(role) {
			t.Errorf("%s: expected %d copies, got %d", role, Count(role), counts[role])
		}
	}

	if _, err := deck.Draw(); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty on exhausted deck, got %v", err)
	}
}

func TestNewDeckSeedDeterminism(t *testing.T) {
	first := NewDeck(rand.New(rand.NewSource(42)))
	second := NewDeck(rand.New(rand.NewSource(42)))
	for i := range DeckSize {
		a, _ := first.Draw()
		b, _ := second.Draw()
		if a != b {
			t.Fatalf("draw %d: decks with the same seed diverge (%s vs %s)", i, a, b)
		}
	}
}

func TestNewStackedDrawOrder(t *testing.T) {
	deck := NewStacked(Guard, Priest, Princess)
	want := []Role{Guard, Priest, Princess}
	for i, expected := range want {
		card, err := deck.Draw()
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if card != expected {
			t.Errorf("draw %d: expected %s, got %s", i, expected, card)
		}
	}
	if !deck.Empty() {
		t.Error("expected stacked deck to be empty after drawing all cards")
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    Role
		wantErr bool
	}{
		{name: "lowercase", id: "guard", want: Guard},
		{name: "mixed case", id: "Princess", want: Princess},
		{name: "padded", id: " king ", want: King},
		{name: "unknown", id: "joker", wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := ParseRole(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %s", tt.id, role)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if role != tt.want {
				t.Errorf("expected %s, got %s", tt.want, role)
			}
		})
	}
}

func TestRoleIdentity(t *testing.T) {
	if got := Countess.String(); got != "Countess" {
		t.Errorf("expected Countess, got %s", got)
	}
	if got := Countess.ID(); got != "countess" {
		t.Errorf("expected countess, got %s", got)
	}
	if got := Princess.Rank(); got != 8 {
		t.Errorf("expected rank 8, got %d", got)
	}
	if Role(9).Valid() {
		t.Error("expected Role(9) to be invalid")
	}
	if got := Role(9).String(); got != "Role(9)" {
		t.Errorf("expected Role(9), got %s", got)
	}
}

func TestRoleJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Handmaid)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"handmaid"` {
		t.Errorf("expected \"handmaid\", got %s", data)
	}

	var role Role
	if err := json.Unmarshal([]byte(`"baron"`), &role); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if role != Baron {
		t.Errorf("expected Baron, got %s", role)
	}

	if _, err := json.Marshal(Role(0)); err == nil {
		t.Error("expected error encoding invalid role")
	}
	if err := json.Unmarshal([]byte(`"jester"`), &role); err == nil {
		t.Error("expected error decoding unknown id")
	}
}
