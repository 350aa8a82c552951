package pais

import (
	crand "crypto/rand"
	"math/big"
	mrand "math/rand"
	"sync"
)

// RNG is the random source threaded through every randomized strategy call.
// Passing an explicit source instead of reseeding global state keeps
// generation reproducible in tests.
type RNG interface {
	// Float64 returns a random float in [0, 1)
	Float64() float64

	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// SeededRNG is a deterministic RNG backed by math/rand. Two SeededRNG
// instances created from the same seed produce identical sequences.
type SeededRNG struct {
	r *mrand.Rand
}

// NewSeededRNG creates a deterministic RNG from the given seed
func NewSeededRNG(seed int64) *SeededRNG {
	return &SeededRNG{r: mrand.New(mrand.NewSource(seed))}
}

// Float64 returns a random float in [0, 1)
func (g *SeededRNG) Float64() float64 { return g.r.Float64() }

// Intn returns a random int in [0, n)
func (g *SeededRNG) Intn(n int) int { return g.r.Intn(n) }

// SecureRNG implements RNG on top of crypto/rand with a refillable cache
// of floats. It is the production default when no seed is configured.
type SecureRNG struct {
	cache      []float64
	cacheSize  int
	cacheIndex int
	cacheMtx   sync.Mutex
}

// NewSecureRNG creates a new secure random source with the specified cache size.
//
// If no cache size is provided, the default cache size will be used.
// The cache size should be a positive integer.
func NewSecureRNG(cacheSize ...int) *SecureRNG {
	size := DefaultRNGCacheSize
	if len(cacheSize) > 0 && cacheSize[0] > 0 {
		size = cacheSize[0]
	}

	g := &SecureRNG{
		cache:      make([]float64, size),
		cacheSize:  size,
		cacheIndex: 0,
	}

	g.refillCache()
	return g
}

// refillCache refills the random float cache
func (g *SecureRNG) refillCache() {
	for i := 0; i < g.cacheSize; i++ {
		val, err := secureFloat()
		if err != nil {
			// Fallback value when crypto/rand fails
			val = float64(i) / float64(g.cacheSize)
		}
		g.cache[i] = val
	}
	g.cacheIndex = 0
}

// Float64 returns a random float in [0, 1)
func (g *SecureRNG) Float64() float64 {
	g.cacheMtx.Lock()
	defer g.cacheMtx.Unlock()

	if g.cacheIndex >= g.cacheSize {
		g.refillCache()
	}

	result := g.cache[g.cacheIndex]
	g.cacheIndex++
	return result
}

// Intn returns a random int in [0, n). It panics if n <= 0, matching
// the math/rand contract.
func (g *SecureRNG) Intn(n int) int {
	if n <= 0 {
		panic("pais: Intn called with non-positive n")
	}

	result := int(g.Float64() * float64(n))
	// Guard against floating point edge at 1.0-epsilon
	if result >= n {
		result = n - 1
	}
	return result
}

// secureFloat generates a secure random float in [0, 1)
func secureFloat() (float64, error) {
	// 53 bits keeps full float64 precision
	randomBig, err := crand.Int(crand.Reader, big.NewInt(1<<53))
	if err != nil {
		return 0, err
	}
	return float64(randomBig.Int64()) / float64(1<<53), nil
}
