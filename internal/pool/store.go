// Package pool is the length-indexed store of filter-accepted
// candidate sequences and the parallel builder that populates it
package pool

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Metadata describes the last build that touched a length bucket
type Metadata struct {
	Length  int       `json:"length"`
	Count   int       `json:"count"`
	RunID   string    `json:"run_id"`
	BuiltAt time.Time `json:"built_at"`
}

// Store is the persistence contract for length-indexed sequence
// sets. Any implementation holding unique members per length works;
// the pool layers exclusion-aware sampling on top
type Store interface {
	// Members returns a snapshot of every sequence of the length
	Members(ctx context.Context, length int) ([]string, error)

	// AddMembers merges sequences into the length's set,
	// de-duplicating silently
	AddMembers(ctx context.Context, length int, seqs []string) error

	// Count returns the number of sequences of the length
	Count(ctx context.Context, length int) (int, error)

	// RandomSample returns up to n members of the length's set
	// without replacement
	RandomSample(ctx context.Context, length int, n int) ([]string, error)

	// Lengths returns every length with at least one sequence
	Lengths(ctx context.Context) ([]int, error)

	// SetMetadata records build information for a length
	SetMetadata(ctx context.Context, length int, meta Metadata) error

	// Metadata returns the recorded build information, zero value
	// when the length was never built
	Metadata(ctx context.Context, length int) (Metadata, error)
}

// MemoryStore is the in-process Store: one writer, many readers,
// copy-on-read snapshots
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[int]map[string]struct{}
	meta map[int]Metadata
	rng  *rand.Rand
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sets: make(map[int]map[string]struct{}),
		meta: make(map[int]Metadata),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Members returns a sorted copy of the length's set so callers can
// iterate without holding any lock
func (s *MemoryStore) Members(ctx context.Context, length int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]string, 0, len(s.sets[length]))
	for seq := range s.sets[length] {
		members = append(members, seq)
	}
	sort.Strings(members)

	return members, nil
}

// AddMembers merges sequences into the length's set
func (s *MemoryStore) AddMembers(ctx context.Context, length int, seqs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[length]
	if !ok {
		set = make(map[string]struct{}, len(seqs))
		s.sets[length] = set
	}
	for _, seq := range seqs {
		set[seq] = struct{}{}
	}

	return nil
}

// Count returns the size of the length's set
func (s *MemoryStore) Count(ctx context.Context, length int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sets[length]), nil
}

// RandomSample returns up to n members without replacement
func (s *MemoryStore) RandomSample(ctx context.Context, length int, n int) ([]string, error) {
	members, err := s.Members(ctx, length)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rng.Shuffle(len(members), func(i, j int) {
		members[i], members[j] = members[j], members[i]
	})
	s.mu.Unlock()

	if n < len(members) {
		members = members[:n]
	}

	return members, nil
}

// Lengths returns every length holding sequences, ascending
func (s *MemoryStore) Lengths(ctx context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lengths := make([]int, 0, len(s.sets))
	for length, set := range s.sets {
		if len(set) > 0 {
			lengths = append(lengths, length)
		}
	}
	sort.Ints(lengths)

	return lengths, nil
}

// SetMetadata records build information for a length
func (s *MemoryStore) SetMetadata(ctx context.Context, length int, meta Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.meta[length] = meta

	return nil
}

// Metadata returns the recorded build information
func (s *MemoryStore) Metadata(ctx context.Context, length int) (Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.meta[length], nil
}
