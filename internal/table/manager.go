package table

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"loveletter/internal/engine"
	apperrors "loveletter/internal/errors"
	"loveletter/internal/random"
)

// Manager stores every live table and mediates all access to them
type Manager struct {
	tables map[string]*Table // game id -> table
	byCode map[string]*Table // join code -> table, open tables only
	signer *TokenSigner
	log    *zap.Logger
	mu     sync.RWMutex
}

// Seat is an authorized claim on one table seat
type Seat struct {
	GameID   string
	Index    int
	JoinCode string
	Token    string
}

// NewManager creates an empty table manager
func NewManager(signer *TokenSigner, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		tables: make(map[string]*Table),
		byCode: make(map[string]*Table),
		signer: signer,
		log:    log,
	}
}

// Create opens a table, seats the host at seat 0, and starts round one.
// Remaining seats carry placeholder names until guests join. A nil seed
// draws one from crypto/rand.
func (m *Manager) Create(hostName string, seats int, seed *int64) (Seat, View, error) {
	name := strings.TrimSpace(hostName)
	if name == "" {
		return Seat{}, View{}, apperrors.New(apperrors.CodeIllegalAction, "Name is required.")
	}
	if seats == 0 {
		seats = DefaultSeats
	}
	if seats < MinSeats || seats > MaxSeats {
		return Seat{}, View{}, apperrors.New(apperrors.CodeIllegalAction, "Love Letter supports 2-4 players.")
	}

	seedValue, err := resolveSeed(seed)
	if err != nil {
		return Seat{}, View{}, err
	}

	names := make([]string, seats)
	names[0] = name
	for i := 1; i < seats; i++ {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	match, err := engine.NewMatch(names, seedValue)
	if err != nil {
		return Seat{}, View{}, err
	}
	if err := match.StartRound(); err != nil {
		return Seat{}, View{}, err
	}

	id := uuid.New().String()
	jti := uuid.New().String()
	token, err := m.signer.Issue(id, 0, jti)
	if err != nil {
		return Seat{}, View{}, err
	}

	t := &Table{
		ID:        id,
		Seats:     seats,
		Joined:    1,
		Match:     match,
		CreatedAt: time.Now(),
		seatJTIs:  make([]string, seats),
	}
	t.seatJTIs[0] = jti

	m.mu.Lock()
	t.JoinCode = m.uniqueJoinCode()
	m.tables[id] = t
	m.byCode[t.JoinCode] = t
	m.mu.Unlock()

	m.log.Info("table created",
		zap.String("game_id", id),
		zap.String("join_code", t.JoinCode),
		zap.Int("seats", seats))

	t.RLock()
	view := t.view(0)
	t.RUnlock()
	return Seat{GameID: id, Index: 0, JoinCode: t.JoinCode, Token: token}, view, nil
}

// Join claims the next open seat on the table behind a join code. The
// code stops resolving once the last seat fills.
func (m *Manager) Join(code, guestName string) (Seat, View, error) {
	name := strings.TrimSpace(guestName)
	if name == "" {
		return Seat{}, View{}, apperrors.New(apperrors.CodeIllegalAction, "Name is required.")
	}
	code = normalizeJoinCode(code)
	jti := uuid.New().String()

	m.mu.Lock()
	t, ok := m.byCode[code]
	if !ok {
		m.mu.Unlock()
		return Seat{}, View{}, apperrors.New(apperrors.CodeNotFound, "Unknown join code.")
	}
	t.Lock()
	seat, err := t.claimSeat(name, jti)
	if err != nil {
		t.Unlock()
		m.mu.Unlock()
		return Seat{}, View{}, err
	}
	if !t.joinable() {
		delete(m.byCode, code)
	}
	t.Unlock()
	m.mu.Unlock()

	token, err := m.signer.Issue(t.ID, seat, jti)
	if err != nil {
		return Seat{}, View{}, err
	}

	m.log.Info("seat joined",
		zap.String("game_id", t.ID),
		zap.Int("seat", seat),
		zap.String("name", name))

	t.RLock()
	view := t.view(seat)
	t.RUnlock()
	return Seat{GameID: t.ID, Index: seat, JoinCode: code, Token: token}, view, nil
}

// Authorize verifies a seat token against a table and returns the seat
// it grants.
func (m *Manager) Authorize(gameID, rawToken string) (int, error) {
	if strings.TrimSpace(rawToken) == "" {
		return 0, apperrors.New(apperrors.CodeUnauthorized, "Seat token is required.")
	}
	tokenGame, seat, jti, err := m.signer.Verify(rawToken)
	if err != nil {
		return 0, err
	}
	if tokenGame != gameID {
		return 0, apperrors.New(apperrors.CodeUnauthorized, "Seat token does not match this game.")
	}
	t, err := m.table(gameID)
	if err != nil {
		return 0, err
	}
	t.RLock()
	err = t.authorizeSeat(seat, jti)
	t.RUnlock()
	if err != nil {
		return 0, err
	}
	return seat, nil
}

// View renders the state of a table as one seat sees it.
func (m *Manager) View(gameID string, seat int) (View, error) {
	t, err := m.table(gameID)
	if err != nil {
		return View{}, err
	}
	t.RLock()
	defer t.RUnlock()
	return t.view(seat), nil
}

// StartTurn draws the turn card for a seat.
func (m *Manager) StartTurn(gameID string, seat int) (View, error) {
	t, err := m.table(gameID)
	if err != nil {
		return View{}, err
	}
	t.Lock()
	defer t.Unlock()
	if err := t.ready(); err != nil {
		return View{}, err
	}
	if err := t.Match.StartTurn(seat); err != nil {
		return View{}, err
	}
	m.log.Info("turn started",
		zap.String("game_id", gameID),
		zap.Int("seat", seat))
	return t.view(seat), nil
}

// Play resolves a card play for a seat.
func (m *Manager) Play(gameID string, act engine.Action) (View, error) {
	t, err := m.table(gameID)
	if err != nil {
		return View{}, err
	}
	t.Lock()
	defer t.Unlock()
	if err := t.ready(); err != nil {
		return View{}, err
	}
	if err := t.Match.Play(act); err != nil {
		return View{}, err
	}
	m.log.Info("card played",
		zap.String("game_id", gameID),
		zap.Int("seat", act.Seat),
		zap.String("card", act.Card.ID()))
	return t.view(act.Seat), nil
}

// NextRound deals the next round once the current one is over.
func (m *Manager) NextRound(gameID string, seat int) (View, error) {
	t, err := m.table(gameID)
	if err != nil {
		return View{}, err
	}
	t.Lock()
	defer t.Unlock()
	if err := t.ready(); err != nil {
		return View{}, err
	}
	if err := t.Match.StartRound(); err != nil {
		return View{}, err
	}
	m.log.Info("round started",
		zap.String("game_id", gameID),
		zap.Int("round", t.Match.RoundNumber))
	return t.view(seat), nil
}

// table looks up a live table by game id
func (m *Manager) table(gameID string) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[gameID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "Game not found.")
	}
	return t, nil
}

// uniqueJoinCode generates a code no open table is using (must be called with lock held)
func (m *Manager) uniqueJoinCode() string {
	for {
		code := generateJoinCode()
		if _, exists := m.byCode[code]; !exists {
			return code
		}
	}
}

// resolveSeed uses the caller's seed when given, otherwise draws one
func resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}
	value, err := random.NewSeed()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, "generate match seed", err)
	}
	return value, nil
}
