// Package selector picks entries from fixed lists, either deterministically
// from a seed phrase or randomly without repeats.
package selector

import (
	"math/rand/v2"
	"sync"
)

// Shuffle permutes items in place (Fisher-Yates, consuming from the end).
func Shuffle[T any](items []T, rng *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Preview returns up to n random items. items is not modified.
func Preview[T any](items []T, n int, rng *rand.Rand) []T {
	cp := make([]T, len(items))
	copy(cp, items)
	Shuffle(cp, rng)
	if n < 0 {
		n = 0
	}
	if len(cp) > n {
		cp = cp[:n]
	}
	return cp
}

// Picker yields the entries of a fixed source in random order without repeats.
// Once every entry has been returned the source is reshuffled and a new cycle
// starts. Safe for concurrent use.
type Picker[T any] struct {
	mu     sync.Mutex
	source []T
	pool   []T
	rng    *rand.Rand
}

// NewPicker copies source; a nil rng uses a randomly seeded PCG.
func NewPicker[T any](source []T, rng *rand.Rand) *Picker[T] {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	src := make([]T, len(source))
	copy(src, source)
	return &Picker[T]{source: src, rng: rng}
}

// Next pops the next entry. It returns false only when the source is empty.
func (p *Picker[T]) Next() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var zero T
	if len(p.source) == 0 {
		return zero, false
	}
	if len(p.pool) == 0 {
		p.pool = make([]T, len(p.source))
		copy(p.pool, p.source)
		Shuffle(p.pool, p.rng)
	}
	v := p.pool[0]
	p.pool = p.pool[1:]
	return v, true
}

// Remaining reports how many entries are left in the current cycle.
func (p *Picker[T]) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pool)
}

// Len is the size of the source.
func (p *Picker[T]) Len() int { return len(p.source) }
