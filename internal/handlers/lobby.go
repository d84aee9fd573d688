package handlers

import (
	"net/http"

	"loveletter/internal/table"
)

// createRequest is the body of POST /api/create
type createRequest struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"`
	Seed  *int64 `json:"seed"`
}

// createResponse answers a successful create
type createResponse struct {
	GameID    string     `json:"game_id"`
	JoinCode  string     `json:"join_code"`
	SeatToken string     `json:"seat_token"`
	State     table.View `json:"state"`
}

// HandleCreate opens a table and seats the host at seat 0
func (ctx *Context) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ctx.methodNotAllowed(w)
		return
	}

	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		ctx.writeError(w, err)
		return
	}

	seat, view, err := ctx.Tables.Create(req.Name, req.Seats, req.Seed)
	if err != nil {
		ctx.writeError(w, err)
		return
	}

	ctx.writeJSON(w, http.StatusOK, createResponse{
		GameID:    seat.GameID,
		JoinCode:  seat.JoinCode,
		SeatToken: seat.Token,
		State:     view,
	})
}

// joinRequest is the body of POST /api/join
type joinRequest struct {
	JoinCode string `json:"join_code"`
	Name     string `json:"name"`
}

// joinResponse answers a successful join
type joinResponse struct {
	GameID    string     `json:"game_id"`
	PlayerID  int        `json:"player_id"`
	JoinCode  string     `json:"join_code"`
	SeatToken string     `json:"seat_token"`
	State     table.View `json:"state"`
}

// HandleJoin seats a guest behind a join code
func (ctx *Context) HandleJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ctx.methodNotAllowed(w)
		return
	}

	var req joinRequest
	if err := decodeJSON(r, &req); err != nil {
		ctx.writeError(w, err)
		return
	}

	seat, view, err := ctx.Tables.Join(req.JoinCode, req.Name)
	if err != nil {
		ctx.writeError(w, err)
		return
	}

	ctx.writeJSON(w, http.StatusOK, joinResponse{
		GameID:    seat.GameID,
		PlayerID:  seat.Index,
		JoinCode:  seat.JoinCode,
		SeatToken: seat.Token,
		State:     view,
	})
}
