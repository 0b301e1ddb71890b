package pool

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ExhaustedError means a length bucket had no member left after
// removing the caller's exclusions
type ExhaustedError struct {
	Length    int
	Requested int
	Available int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf(
		"pool: exhausted for length %d: %d requested, %d available after exclusions",
		e.Length, e.Requested, e.Available)
}

// Pool is the exclusion-aware sampling layer over a Store. Sampling
// randomness comes from the injected source so callers that need
// reproducible draws can seed it. Concurrent Sample calls share the
// source, so it sits behind a mutex
type Pool struct {
	store Store

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a pool over the passed store
func New(store Store) *Pool {
	return &Pool{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed replaces the sampling source for reproducible draws
func (p *Pool) Seed(seed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rng = rand.New(rand.NewSource(seed))
}

// Sample returns up to count sequences of the length that are not
// in exclude, chosen without replacement and in no particular
// order. Fewer than count (possibly zero) come back when the bucket
// is exhausted; nothing is ever fabricated
func (p *Pool) Sample(ctx context.Context, length, count int, exclude map[string]bool) ([]string, error) {
	members, err := p.store.Members(ctx, length)
	if err != nil {
		return nil, err
	}

	candidates := members[:0]
	for _, seq := range members {
		if !exclude[seq] {
			candidates = append(candidates, seq)
		}
	}

	if len(candidates) == 0 && count > 0 {
		return nil, &ExhaustedError{Length: length, Requested: count}
	}

	p.mu.Lock()
	p.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	p.mu.Unlock()

	if count < len(candidates) {
		candidates = candidates[:count]
	}

	return candidates, nil
}

// Insert merges sequences into the length's bucket, de-duplicating.
// The pool holds only sequences that already passed the filter;
// no re-validation happens here
func (p *Pool) Insert(ctx context.Context, length int, seqs []string) error {
	return p.store.AddMembers(ctx, length, seqs)
}

// Size returns the number of sequences of the length
func (p *Pool) Size(ctx context.Context, length int) (int, error) {
	return p.store.Count(ctx, length)
}

// Contains reports whether the sequence is already pooled
func (p *Pool) Contains(ctx context.Context, length int, seq string) (bool, error) {
	members, err := p.store.Members(ctx, length)
	if err != nil {
		return false, err
	}

	for _, member := range members {
		if member == seq {
			return true, nil
		}
	}
	return false, nil
}

// LengthStatus is one row of a pool status report
type LengthStatus struct {
	Length int      `json:"length"`
	Count  int      `json:"count"`
	Meta   Metadata `json:"metadata"`
}

// Status reports per-length counts and build metadata for every
// populated bucket
func (p *Pool) Status(ctx context.Context) ([]LengthStatus, error) {
	lengths, err := p.store.Lengths(ctx)
	if err != nil {
		return nil, err
	}

	status := make([]LengthStatus, 0, len(lengths))
	for _, length := range lengths {
		count, err := p.store.Count(ctx, length)
		if err != nil {
			return nil, err
		}
		meta, err := p.store.Metadata(ctx, length)
		if err != nil {
			return nil, err
		}
		status = append(status, LengthStatus{Length: length, Count: count, Meta: meta})
	}

	return status, nil
}
