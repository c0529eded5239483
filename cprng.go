package discrepancy

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
)

// CPRNG is a cryptographically secure random number generator that reads random bytes
// in batches from crypto/rand to reduce the number of OS calls.
// It is the only non-deterministic generator in this package and is used exclusively to
// pick fresh seeds. Every generation path takes an explicit seed; callers that want a
// non-reproducible run draw one here and should record it.
// This random number generator is thread-safe as long as each goroutine uses its own instance.
type CPRNG struct {
	bufPos uint32
	buf    []byte
}

// NewCPRNG creates a new CPRNG with a buffer capacity of capBytes (at least 8).
func NewCPRNG(capBytes uint32) *CPRNG {
	if capBytes < 8 {
		capBytes = 8
	}
	c := &CPRNG{buf: make([]byte, capBytes)}
	c.fill()
	return c
}

func (c *CPRNG) fill() {
	if _, err := rand.Read(c.buf); err != nil {
		panic(err)
	}
	c.bufPos = 0
}

// Uint64 returns a uniformly distributed uint64.
func (c *CPRNG) Uint64() uint64 {
	if c.bufPos+8 > uint32(len(c.buf)) {
		c.fill()
	}
	v := binary.LittleEndian.Uint64(c.buf[c.bufPos : c.bufPos+8])
	c.bufPos += 8
	return v
}

// Int64 returns a uniformly distributed int64.
func (c *CPRNG) Int64() int64 {
	return int64(c.Uint64())
}

var (
	seedMu     sync.Mutex
	seedSource = NewCPRNG(512)
)

// RandomSeed returns a fresh seed from crypto/rand. The seed is suitable for
// every constructor in this package; log it if the run must be reproducible later.
// It is safe for concurrent use.
func RandomSeed() int64 {
	seedMu.Lock()
	defer seedMu.Unlock()
	return seedSource.Int64()
}
