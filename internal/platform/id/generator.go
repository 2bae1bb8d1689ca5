package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator issues opaque identifiers for newly created records. Services
// take the interface so tests can pin IDs deterministically.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces 32-character hex IDs from 128 bits of entropy.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	return hex.EncodeToString(buf[:]), nil
}
