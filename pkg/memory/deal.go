package memory

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
)

// NewRand returns a random source seeded from the runtime's entropy.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic random source for the seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Deal picks cells/2 distinct values from population without replacement,
// duplicates them and shuffles the result. Duplicate entries in population
// count once.
func Deal(population []Value, cells int, rng *rand.Rand) ([]Value, error) {
	if cells <= 0 {
		return nil, ErrInvalidSize
	}
	if cells%2 != 0 {
		return nil, fmt.Errorf("%w: %d cells", ErrOddGrid, cells)
	}
	if rng == nil {
		rng = NewRand()
	}

	distinct := lo.Uniq(population)
	pairs := cells / 2
	if len(distinct) < pairs {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrCatalogTooSmall, pairs, len(distinct))
	}

	picked := lo.Map(rng.Perm(len(distinct))[:pairs], func(i int, _ int) Value {
		return distinct[i]
	})
	dealt := lo.Flatten([][]Value{picked, picked})
	rng.Shuffle(len(dealt), func(i, j int) {
		dealt[i], dealt[j] = dealt[j], dealt[i]
	})
	return dealt, nil
}
