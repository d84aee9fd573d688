package table

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "loveletter/internal/errors"
)

// seatClaims binds a seat token to one seat of one table.
type seatClaims struct {
	jwt.RegisteredClaims
	GameID string `json:"game_id"`
	Seat   int    `json:"seat"`
}

// TokenSigner issues and verifies seat tokens.
type TokenSigner struct {
	secret []byte
}

// NewTokenSigner creates a signer around an HMAC secret.
func NewTokenSigner(secret []byte) *TokenSigner {
	return &TokenSigner{secret: secret}
}

// Issue signs a seat token for one seat. The jti ties the token to the
// seat's registration so stale tokens for reused seats stay invalid.
func (s *TokenSigner) Issue(gameID string, seat int, jti string) (string, error) {
	claims := seatClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       jti,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		GameID: gameID,
		Seat:   seat,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "sign seat token", err)
	}
	return signed, nil
}

// Verify parses a seat token and returns its claims.
func (s *TokenSigner) Verify(raw string) (gameID string, seat int, jti string, err error) {
	var claims seatClaims
	token, parseErr := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if parseErr != nil {
		return "", 0, "", mapJWTError(parseErr)
	}
	if !token.Valid {
		return "", 0, "", apperrors.New(apperrors.CodeUnauthorized, "Seat token is invalid.")
	}
	if claims.ID == "" {
		return "", 0, "", apperrors.New(apperrors.CodeUnauthorized, "Seat token is invalid.")
	}
	return claims.GameID, claims.Seat, claims.ID, nil
}

// mapJWTError converts jwt parse failures into unauthorized errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return apperrors.Wrap(apperrors.CodeUnauthorized, "Seat token is malformed.", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.Wrap(apperrors.CodeUnauthorized, "Seat token signature is invalid.", err)
	default:
		return apperrors.Wrap(apperrors.CodeUnauthorized, "Seat token is invalid.", err)
	}
}
