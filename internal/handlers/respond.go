package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	apperrors "loveletter/internal/errors"
)

// errorBody is the JSON shape of every API failure
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// decodeJSON parses a request body into dst
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Wrap(apperrors.CodeIllegalAction, "Invalid JSON body.", err)
	}
	return nil
}

// writeJSON writes v as a JSON response
func (ctx *Context) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctx.Log.Warn("write response", zap.Error(err))
	}
}

// writeError maps an error to its HTTP status and JSON body
func (ctx *Context) writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.CodeInternal, "Internal server error.", err)
	}
	status := appErr.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		ctx.Log.Error("request failed", zap.Error(err))
	}
	ctx.writeJSON(w, status, errorBody{Error: appErr.Message, Code: string(appErr.Code)})
}

// methodNotAllowed rejects requests using the wrong HTTP method
func (ctx *Context) methodNotAllowed(w http.ResponseWriter) {
	ctx.writeJSON(w, http.StatusMethodNotAllowed, errorBody{
		Error: "Method not allowed.",
		Code:  string(apperrors.CodeIllegalAction),
	})
}
