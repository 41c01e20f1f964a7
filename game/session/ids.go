package session

import (
	"crypto/rand"
	"math/big"
)

// IDSource provides room codes and procedural seeds. Injected so tests can
// supply deterministic values.
type IDSource interface {
	// RoomCode returns a fresh short room code.
	RoomCode() string
	// Seed returns a random seed shared by all players in a room.
	Seed() int64
}

// codeAlphabet avoids characters that read ambiguously when typed from a
// lobby screen (no 0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// codeLength of 6 gives ~1 billion codes; collisions among simultaneously
// live rooms are accepted as negligible.
const codeLength = 6

const maxSeed = 1_000_000_000

type randomIDSource struct{}

// NewIDSource returns the default crypto/rand backed IDSource.
func NewIDSource() IDSource {
	return randomIDSource{}
}

func (randomIDSource) RoomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// crypto/rand never fails on supported platforms
			panic(err)
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b)
}

func (randomIDSource) Seed() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(maxSeed))
	if err != nil {
		panic(err)
	}
	return n.Int64()
}
