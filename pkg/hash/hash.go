// Package hash provides the SHA256 helpers used for privacy-preserving log
// correlation.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// LogToken returns a short, irreversible prefix of SHA256(input) for log
// correlation without writing raw PII (IPs, user IDs) to logs.
func LogToken(input string, prefixLen int) string {
	full := SHA256Hex(input)
	if prefixLen > len(full) {
		return full
	}
	return full[:prefixLen]
}
