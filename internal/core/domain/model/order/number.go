package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NumberGenerator proposes order numbers of the form ORD-<unix millis>-<0..999>.
// Uniqueness is still enforced by storage; a collision surfaces as
// DuplicateOrderNumberError.
type NumberGenerator struct {
	now  func() time.Time
	intn func(int) int
}

func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{
		now:  time.Now,
		intn: rand.IntN,
	}
}

// NewNumberGeneratorWith builds a generator from an explicit clock and random
// source.
func NewNumberGeneratorWith(now func() time.Time, intn func(int) int) *NumberGenerator {
	return &NumberGenerator{now: now, intn: intn}
}

func (g *NumberGenerator) Next() string {
	return fmt.Sprintf("ORD-%d-%d", g.now().UnixMilli(), g.intn(1000))
}
