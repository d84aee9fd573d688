// Package table hosts matches for remote players: join codes, seat
// tokens, and seat-scoped state views over the engine.
package table

import (
	"fmt"
	"sync"
	"time"

	"loveletter/internal/engine"
	apperrors "loveletter/internal/errors"
)

// Table is one hosted match plus its session bookkeeping
type Table struct {
	ID        string
	JoinCode  string
	Seats     int
	Joined    int
	Match     *engine.Match
	CreatedAt time.Time
	seatJTIs  []string // token id per seat, "" while the seat is open
	mu        sync.RWMutex
}

// Lock acquires the table's write lock
func (t *Table) Lock() {
	t.mu.Lock()
}

// Unlock releases the table's write lock
func (t *Table) Unlock() {
	t.mu.Unlock()
}

// RLock acquires the table's read lock
func (t *Table) RLock() {
	t.mu.RLock()
}

// RUnlock releases the table's read lock
func (t *Table) RUnlock() {
	t.mu.RUnlock()
}

// joinable reports whether the table still has open seats (must be called with lock held)
func (t *Table) joinable() bool {
	return t.Joined < t.Seats
}

// ready returns an error while seats remain open (must be called with lock held)
func (t *Table) ready() error {
	if t.Joined < t.Seats {
		return apperrors.New(apperrors.CodeIllegalAction, fmt.Sprintf("Waiting for player %d.", t.Joined+1))
	}
	return nil
}

// claimSeat fills the next open seat and returns its index (must be called with lock held)
func (t *Table) claimSeat(name, jti string) (int, error) {
	if !t.joinable() {
		return 0, apperrors.New(apperrors.CodeTableFull, "Table is full.")
	}
	seat := t.Joined
	t.Match.Players[seat].Name = name
	t.seatJTIs[seat] = jti
	t.Joined++
	return seat, nil
}

// authorizeSeat checks a verified token id against the seat registry (must be called with lock held)
func (t *Table) authorizeSeat(seat int, jti string) error {
	if seat < 0 || seat >= len(t.seatJTIs) {
		return apperrors.New(apperrors.CodeUnauthorized, "Seat token is not recognized.")
	}
	if t.seatJTIs[seat] == "" || t.seatJTIs[seat] != jti {
		return apperrors.New(apperrors.CodeUnauthorized, "Seat token is not recognized.")
	}
	return nil
}
