package table

import (
	"testing"

	apperrors "loveletter/internal/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	signer := NewTokenSigner([]byte("test-secret"))

	token, err := signer.Issue("game-1", 2, "jti-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}

	gameID, seat, jti, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if gameID != "game-1" || seat != 2 || jti != "jti-1" {
		t.Errorf("expected game-1/2/jti-1, got %s/%d/%s", gameID, seat, jti)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer := NewTokenSigner([]byte("test-secret"))

	_, _, _, err := signer.Verify("not-a-token")
	assertAppError(t, err, apperrors.CodeUnauthorized, "Seat token is malformed.")
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	signer := NewTokenSigner([]byte("test-secret"))
	other := NewTokenSigner([]byte("other-secret"))

	token, err := signer.Issue("game-1", 0, "jti-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, _, _, err = other.Verify(token)
	assertAppError(t, err, apperrors.CodeUnauthorized, "Seat token signature is invalid.")
}

func TestVerifyRejectsMissingTokenID(t *testing.T) {
	signer := NewTokenSigner([]byte("test-secret"))

	token, err := signer.Issue("game-1", 0, "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, _, _, err = signer.Verify(token)
	assertAppError(t, err, apperrors.CodeUnauthorized, "Seat token is invalid.")
}
