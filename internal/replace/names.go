package replace

import (
	"math/rand/v2"

	"github.com/desertwitch/sysat/internal/entropy"
)

const (
	nameLength = 12
	alphabet   = 'Z' - 'A' + 1
)

type nameGenerator interface {
	Fill(name []byte)
}

// randomNames spells one random uint64 in base 26 per name. Twelve
// uppercase letters use about 56 of its 64 bits.
type randomNames struct {
	rng *rand.ChaCha8
}

func newRandomNames(seed [entropy.SeedSize]byte) nameGenerator {
	return &randomNames{
		rng: rand.NewChaCha8(seed),
	}
}

func (g *randomNames) Fill(name []byte) {
	n := g.rng.Uint64()

	for i := range name {
		name[i] = byte('A' + n%alphabet)
		n /= alphabet
	}
}
