package table

import (
	"strings"
	"testing"
)

func TestGenerateJoinCode(t *testing.T) {
	for range 100 {
		code := generateJoinCode()
		if len(code) != JoinCodeLength {
			t.Fatalf("expected length %d, got %q", JoinCodeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(JoinCodeChars, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "abc234", want: "ABC234"},
		{name: "padded", in: "  XYZ789 ", want: "XYZ789"},
		{name: "already normal", in: "QWERTY", want: "QWERTY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeJoinCode(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
