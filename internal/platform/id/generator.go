package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const idEntropyBytes = 16

// Generator creates opaque IDs for externally visible resources
// (teams, contests, entries).
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces 32-char lowercase hex IDs from crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, idEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate id entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
