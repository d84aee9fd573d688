// Package handlers exposes hosted tables over a JSON HTTP API.
package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "loveletter/internal/errors"
	"loveletter/internal/table"
)

// Context holds shared application dependencies
type Context struct {
	Tables  *table.Manager
	Log     *zap.Logger
	BaseURL string
}

// Routes registers every API route on mux
func (ctx *Context) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/create", ctx.HandleCreate)
	mux.HandleFunc("/api/join", ctx.HandleJoin)
	mux.HandleFunc("/api/state", ctx.HandleState)
	mux.HandleFunc("/api/start", ctx.HandleStart)
	mux.HandleFunc("/api/play", ctx.HandlePlay)
	mux.HandleFunc("/api/next_round", ctx.HandleNextRound)
	mux.HandleFunc("/api/join_qr", ctx.HandleJoinQR)
	mux.HandleFunc("/healthz", ctx.HandleHealth)
}

// HandleHealth reports server liveness
func (ctx *Context) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authorize resolves the seat a request's token grants on a game
func (ctx *Context) authorize(r *http.Request, gameID string) (int, error) {
	return ctx.Tables.Authorize(gameID, r.Header.Get("X-Seat-Token"))
}

// requireGameID rejects requests that omit the game id
func requireGameID(gameID string) error {
	if strings.TrimSpace(gameID) == "" {
		return apperrors.New(apperrors.CodeIllegalAction, "game_id is required.")
	}
	return nil
}
