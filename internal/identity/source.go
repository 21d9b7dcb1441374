package identity

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/zarlcorp/core/pkg/zcrypto"
)

// seedSize is the ChaCha8 key length.
const seedSize = 32

// Source is the randomness every generator draws from. Implementations
// need not be safe for concurrent use; give each goroutine its own (see
// Generator.Fork).
type Source interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Read fills p with random bytes and never returns a short read.
	Read(p []byte) (int, error)
}

type chachaSource struct {
	c *rand.ChaCha8
	r *rand.Rand
}

// NewSeededSource returns a deterministic source. Two sources built from
// the same seed produce identical streams.
func NewSeededSource(seed uint64) Source {
	var key [seedSize]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return newChaCha(key)
}

// NewSource returns a source keyed from the operating system's CSPRNG.
func NewSource() (Source, error) {
	b, err := zcrypto.RandBytes(seedSize)
	if err != nil {
		return nil, fmt.Errorf("seed source: %w", err)
	}
	var key [seedSize]byte
	copy(key[:], b)
	zcrypto.Erase(b)
	return newChaCha(key), nil
}

// forkSource derives an independent child stream from 32 bytes of parent.
func forkSource(parent Source) Source {
	var key [seedSize]byte
	mustRead(parent, key[:])
	return newChaCha(key)
}

func newChaCha(key [seedSize]byte) *chachaSource {
	c := rand.NewChaCha8(key)
	return &chachaSource{c: c, r: rand.New(c)}
}

func (s *chachaSource) IntN(n int) int { return s.r.IntN(n) }

func (s *chachaSource) Read(p []byte) (int, error) { return s.c.Read(p) }

// mustRead fills b from src.
func mustRead(src Source, b []byte) {
	if _, err := src.Read(b); err != nil {
		// a source that cannot produce bytes is unrecoverable
		panic("identity: source read: " + err.Error())
	}
}
