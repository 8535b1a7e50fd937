package lockmgr

import (
	"crypto/rand"
	"encoding/hex"
)

const tokenBytes = 32

// generateOwnerID creates a new unique owner token: 32 random bytes in hex,
// so the token survives any text-based transport untouched.
func generateOwnerID() ([]byte, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	token := make([]byte, hex.EncodedLen(len(raw)))
	hex.Encode(token, raw)
	return token, nil
}
