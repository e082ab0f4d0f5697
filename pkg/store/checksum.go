package store

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Checksum of some file content, as a hex-encoded blake3-256 digest
func Checksum(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Checksummer computes the checksum of content written in windows
type Checksummer struct {
	h *blake3.Hasher
}

// NewChecksummer builds an empty running checksum
func NewChecksummer() *Checksummer {
	return &Checksummer{h: blake3.New()}
}

// Write a window of content
func (c *Checksummer) Write(p []byte) (int, error) {
	return c.h.Write(p)
}

// Sum yields the checksum of all windows written so far
func (c *Checksummer) Sum() string {
	return hex.EncodeToString(c.h.Sum(nil))
}
