package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// CodeUnauthorized covers missing, invalid, or foreign seat tokens.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodeNotFound covers unknown tables and unknown or retired join codes.
	CodeNotFound Code = "NOT_FOUND"

	// CodeTableFull is returned when joining a table with no open seat.
	CodeTableFull Code = "TABLE_FULL"

	// CodeIllegalAction covers every rule violation: wrong turn, wrong hand
	// size, invalid target, the Countess constraint, or a concluded round
	// or game. The engine state is unchanged when this is returned.
	CodeIllegalAction Code = "ILLEGAL_ACTION"

	// CodeInternal marks invariant breaches that must never be swallowed.
	CodeInternal Code = "INTERNAL"
)

// HTTPStatus maps the code to its HTTP response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTableFull:
		return http.StatusConflict
	case CodeIllegalAction:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
