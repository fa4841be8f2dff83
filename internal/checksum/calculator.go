package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// ShortLength is the number of hex characters shown in log lines.
const ShortLength = 12

// Calculator computes content checksums.
type Calculator interface {
	// Calculate returns the checksum of the raw, unmodified content.
	Calculate(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Calculate returns the hex-encoded SHA-256 of content.
func (SHA256) Calculate(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Short abbreviates a checksum for display.
func Short(sum string) string {
	if len(sum) <= ShortLength {
		return sum
	}
	return sum[:ShortLength]
}
