// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package colortag produces pseudo-random display colors used to tell
// selected images apart while they are being reordered.
package colortag

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

const hexDigits = "0123456789ABCDEF"

// Generator draws "#RRGGBB" colors from a random source. It is safe for
// concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator drawing from src. Equal sources yield equal color
// sequences.
func New(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeeded returns a Generator with a PCG source seeded by seed.
func NewSeeded(seed uint64) *Generator {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Default is a Generator seeded from the wall clock.
var Default = NewSeeded(uint64(time.Now().UnixNano()))

// Next returns a color as '#' followed by six uppercase hex digits.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(7)
	b.WriteByte('#')
	for i := 0; i < 6; i++ {
		b.WriteByte(hexDigits[g.rng.IntN(len(hexDigits))])
	}
	return b.String()
}

// Valid reports whether s has the "#RRGGBB" form produced by Next.
// Lowercase hex digits are accepted.
func Valid(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range strings.ToUpper(s[1:]) {
		if !strings.ContainsRune(hexDigits, c) {
			return false
		}
	}
	return true
}
