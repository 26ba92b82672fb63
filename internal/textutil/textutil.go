package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash computes a SHA-256 hex digest of data.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Truncate flattens s to one line and shortens it to maxLen bytes,
// appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
