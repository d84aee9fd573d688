package handlers

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	apperrors "loveletter/internal/errors"
)

// qrSize is the side length of the generated PNG in pixels
const qrSize = 256

// HandleJoinQR renders the host's join link as a QR code PNG. It stops
// resolving once every seat is filled.
func (ctx *Context) HandleJoinQR(w http.ResponseWriter, r *http.Request) {
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
	if view.JoinCode == "" {
		ctx.writeError(w, apperrors.New(apperrors.CodeNotFound, "No open join code for this game."))
		return
	}

	joinURL := strings.TrimRight(ctx.BaseURL, "/") + "/join?code=" + view.JoinCode
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		ctx.writeError(w, apperrors.Wrap(apperrors.CodeInternal, "Could not render QR code.", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		ctx.Log.Warn("write QR response", zap.Error(err))
	}
}
