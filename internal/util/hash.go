package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint hashes the given parts in order. Parts are separated by a NUL
// byte so ("ab", "c") and ("a", "bc") produce different fingerprints.
func Fingerprint(parts ...string) string {
	hasher := sha256.New()
	for _, part := range parts {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16] // Use first 16 chars of the hash
}
