package cards

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role identifies one of the eight card roles. Its numeric value is the
// card's strength rank, used for Baron comparisons and showdown scoring.
type Role uint8

const (
	Guard    Role = 1
	Priest   Role = 2
	Baron    Role = 3
	Handmaid Role = 4
	Prince   Role = 5
	King     Role = 6
	Countess Role = 7
	Princess Role = 8
)

// DeckSize is the total number of cards dealt into a round.
const DeckSize = 16

var roleNames = map[Role]string{
	Guard:    "Guard",
	Priest:   "Priest",
	Baron:    "Baron",
	Handmaid: "Handmaid",
	Prince:   "Prince",
	King:     "King",
	Countess: "Countess",
	Princess: "Princess",
}

var roleIDs = map[Role]string{
	Guard:    "guard",
	Priest:   "priest",
	Baron:    "baron",
	Handmaid: "handmaid",
	Prince:   "prince",
	King:     "king",
	Countess: "countess",
	Princess: "princess",
}

var roleCounts = map[Role]int{
	Guard:    5,
	Priest:   2,
	Baron:    2,
	Handmaid: 2,
	Prince:   2,
	King:     1,
	Countess: 1,
	Princess: 1,
}

var rolesByID = func() map[string]Role {
	byID := make(map[string]Role, len(roleIDs))
	for role, id := range roleIDs {
		byID[id] = role
	}
	return byID
}()

// Roles returns all eight roles in ascending rank order.
func Roles() []Role {
	return []Role{Guard, Priest, Baron, Handmaid, Prince, King, Countess, Princess}
}

// Count returns how many copies of the role the deck contains.
func Count(role Role) int {
	return roleCounts[role]
}

// ParseRole resolves a wire id like "guard" to its role, case-insensitively.
func ParseRole(id string) (Role, error) {
	role, ok := rolesByID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return 0, fmt.Errorf("unknown card %q", id)
	}
	return role, nil
}

// String returns the display name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// ID returns the lowercase wire id of the role.
func (r Role) ID() string {
	return roleIDs[r]
}

// Rank returns the strength rank of the role.
func (r Role) Rank() int {
	return int(r)
}

// Valid reports whether r is one of the eight roles.
func (r Role) Valid() bool {
	_, ok := roleIDs[r]
	return ok
}

// MarshalJSON encodes the role as its wire id.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot encode invalid role %d", uint8(r))
	}
	return json.Marshal(r.ID())
}

// UnmarshalJSON decodes a role from its wire id.
func (r *Role) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	role, err := ParseRole(id)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
