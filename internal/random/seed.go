// Package random provides seed generation for game random sources.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// SeedOr returns fixed when it is non-zero and a fresh seed otherwise.
func SeedOr(fixed int64) (int64, error) {
	if fixed != 0 {
		return fixed, nil
	}
	return NewSeed()
}
