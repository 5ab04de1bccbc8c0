// internal/rng/source.go

package rng

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform random integers in [0, n). The engine takes one
// cryptographically strong Source for the pick that consumes a ticket and one
// fast Source for the cosmetic cycling display.
type Source interface {
	Uniform(n int) (int, error)
}

// NewCrypto returns the AES-CTR backed Source. It panics only if the host
// cannot supply entropy at all, which is not a recoverable situation.
func NewCrypto() Source {
	c, err := NewCSPRNG()
	if err != nil {
		panic("rng: failed to initialize AES-CTR CSPRNG: " + err.Error())
	}
	return c
}

// Fast is a math/rand backed Source for cosmetic sampling only. It must never
// feed the pick that actually consumes a ticket.
type Fast struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewFast returns a Fast source seeded from the wall clock.
func NewFast() *Fast {
	return &Fast{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Uniform returns a random integer in [0, n).
func (f *Fast) Uniform(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("rng: uniform bound must be > 0, got %d", n)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.r.Intn(n), nil
}
