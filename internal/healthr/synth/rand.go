package synth

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
)

// Rand is the random source a single generation call draws from.
// The faker and the distribution helpers share one PCG stream, so a seed
// fixes every value the call produces.
type Rand struct {
	fake *gofakeit.Faker
	r    *rand.Rand
}

// NewRand returns a source seeded with seed. Zero is a valid seed.
func NewRand(seed int64) *Rand {
	src := rand.NewPCG(uint64(seed), uint64(seed))
	return &Rand{
		fake: gofakeit.NewFaker(src, false),
		r:    rand.New(src),
	}
}

// IntRange returns an integer in [min, max].
func (r *Rand) IntRange(min, max int) int {
	return r.fake.Number(min, max)
}

// Uniform returns a float in [min, max).
func (r *Rand) Uniform(min, max float64) float64 {
	return r.fake.Float64Range(min, max)
}

func (r *Rand) Normal(mean, stddev float64) float64 {
	return mean + stddev*r.r.NormFloat64()
}

func (r *Rand) LogNormal(mu, sigma float64) float64 {
	return math.Exp(r.Normal(mu, sigma))
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.r.Float64() < p
}

func (r *Rand) Pick(pool []string) string {
	return r.fake.RandomString(pool)
}

// Weighted picks one option with the given relative weights.
func (r *Rand) Weighted(options []string, weights []float32) (string, error) {
	opts := make([]any, len(options))
	for i, o := range options {
		opts[i] = o
	}
	v, err := r.fake.Weighted(opts, weights)
	if err != nil {
		return "", fmt.Errorf("weighted pick: %w", err)
	}
	return v.(string), nil
}

// Sample draws k distinct items from pool. Asking for more items than the
// pool holds fails with ErrPoolExhausted; the result is never truncated.
func (r *Rand) Sample(pool []string, k int) ([]string, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: sample size %d", ErrInvalidCount, k)
	}
	if k > len(pool) {
		return nil, fmt.Errorf("%w: want %d distinct items, pool has %d", ErrPoolExhausted, k, len(pool))
	}
	cp := make([]string, len(pool))
	copy(cp, pool)
	r.fake.ShuffleStrings(cp)
	return cp[:k], nil
}
