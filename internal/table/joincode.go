package table

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"strings"
)

// generateJoinCode creates a random join code
func generateJoinCode() string {
	code := make([]byte, JoinCodeLength)
	for i := range JoinCodeLength {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(JoinCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = JoinCodeChars[rand.Intn(len(JoinCodeChars))]
			continue
		}
		code[i] = JoinCodeChars[n.Int64()]
	}
	return string(code)
}

// normalizeJoinCode makes join code lookups case-insensitive
func normalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
