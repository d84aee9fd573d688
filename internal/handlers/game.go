package handlers

import (
	"net/http"

	"loveletter/internal/cards"
	"loveletter/internal/engine"
	apperrors "loveletter/internal/errors"
)

// gameRequest is the body of gameplay posts that only name the game
type gameRequest struct {
	GameID string `json:"game_id"`
}

// HandleState returns the game as the requesting seat sees it
func (ctx *Context) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ctx.methodNotAllowed(w)
		return
	}

	gameID := r.URL.Query().Get("game_id")
	if err := requireGameID(gameID); err != nil {
		ctx.writeError(w, err)
		return
	}
	seat, err := ctx.authorize(r, gameID)
	if err != nil {
		ctx.writeError(w, err)
		return
	}

	view, err := ctx.Tables.View(gameID, seat)
	if err != nil {
		ctx.writeError(w, err)
		return
	}
	ctx.writeJSON(w, http.StatusOK, view)
}

// HandleStart draws the turn card for the requesting seat
func (ctx *Context) HandleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ctx.methodNotAllowed(w)
		return
	}

	var req gameRequest
	if err := decodeJSON(r, &req); err != nil {
		ctx.writeError(w, err)
		return
	}
	if err := requireGameID(req.GameID); err != nil {
		ctx.writeError(w, err)
		return
	}
	seat, err := ctx.authorize(r, req.GameID)
	if err != nil {
		ctx.writeError(w, err)
		return
	}

	view, err := ctx.Tables.StartTurn(req.GameID, seat)
	if err != nil {
		ctx.writeError(w, err)
		return
	}
	ctx.writeJSON(w, http.StatusOK, view)
}

// playRequest is the body of POST /api/play
type playRequest struct {
	GameID string  `json:"game_id"`
	Card   string  `json:"card"`
	Target *int    `json:"target_id"`
	Guess  *string `json:"guess"`
}

// HandlePlay resolves a card play for the requesting seat
func (ctx *Context) HandlePlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ctx.methodNotAllowed(w)
		return
	}

	var req playRequest
	if err := decodeJSON(r, &req); err != nil {
		ctx.writeError(w, err)
		return
	}
	if err := requireGameID(req.GameID); err != nil {
		ctx.writeError(w, err)
		return
	}
	seat, err := ctx.authorize(r, req.GameID)
	if err != nil {
		ctx.writeError(w, err)
		return
	}

	card, err := cards.ParseRole(req.Card)
	if err != nil {
		ctx.writeError(w, apperrors.Wrap(apperrors.CodeIllegalAction, "Unknown card.", err))
		return
	}
	action := engine.Action{Seat: seat, Card: card, Target: req.Target}
	if req.Guess != nil {
		guess, err := cards.ParseRole(*req.Guess)
		if err != nil {
			ctx.writeError(w, apperrors.Wrap(apperrors.CodeIllegalAction, "Unknown card.", err))
			return
		}
		action.Guess = &guess
	}

	view, err := ctx.Tables.Play(req.GameID, action)
	if err != nil {
		ctx.writeError(w, err)
		return
	}
	ctx.writeJSON(w, http.StatusOK, view)
}

// HandleNextRound deals the next round once the current one is over
func (ctx *Context) HandleNextRound(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ctx.methodNotAllowed(w)
		return
	}

	var req gameRequest
	if err := decodeJSON(r, &req); err != nil {
		ctx.writeError(w, err)
		return
	}
	if err := requireGameID(req.GameID); err != nil {
		ctx.writeError(w, err)
		return
	}
	seat, err := ctx.authorize(r, req.GameID)
	if err != nil {
		ctx.writeError(w, err)
		return
	}

	view, err := ctx.Tables.NextRound(req.GameID, seat)
	if err != nil {
		ctx.writeError(w, err)
		return
	}
	ctx.writeJSON(w, http.StatusOK, view)
}
