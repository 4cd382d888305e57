package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex sha256 of s, safe for log fields and file names.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
