// internal/rng/csprng.go
package rng

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// CSPRNG uses AES-CTR under the hood. It is seeded once from crypto/rand and
// backs the winner-consuming pick, where fairness perception matters.
type CSPRNG struct {
	mu     sync.Mutex
	stream cipher.Stream
}

// NewCSPRNG initializes an AES-CTR generator seeded from crypto/rand.
func NewCSPRNG() (*CSPRNG, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("rng: failed to get seed from crypto/rand: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("rng: aes.NewCipher failed: %w", err)
	}

	var iv [16]byte
	if _, err := io.ReadFull(rand.Reader, iv[:]); err != nil {
		return nil, fmt.Errorf("rng: failed to get IV from crypto/rand: %w", err)
	}

	return &CSPRNG{stream: cipher.NewCTR(block, iv[:])}, nil
}

// Read fills buf with cryptographically secure random bytes (AES-CTR output).
func (c *CSPRNG) Read(buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// buf is initially whatever the caller passed; XORing the keystream over it
	// yields keystream-quality output either way.
	c.stream.XORKeyStream(buf, buf)
	return len(buf), nil
}

// Uint32 returns a single 32-bit random word.
func (c *CSPRNG) Uint32() (uint32, error) {
	var b [4]byte
	if _, err := c.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// Uniform returns an unbiased random integer in [0, n). Rejection sampling
// avoids the modulo bias a plain `Uint32 % n` would carry.
func (c *CSPRNG) Uniform(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("rng: uniform bound must be > 0, got %d", n)
	}
	bound := uint32(n)
	// Largest multiple of bound that fits in 32 bits.
	limit := (1<<32 / uint64(bound)) * uint64(bound)
	for {
		u, err := c.Uint32()
		if err != nil {
			return 0, err
		}
		if uint64(u) < limit {
			return int(u % bound), nil
		}
	}
}
