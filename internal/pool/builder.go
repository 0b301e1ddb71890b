package pool

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oligodesigner/oligod/config"
	"github.com/oligodesigner/oligod/internal/oligo"
)

// Acceptor decides whether a generated candidate may enter the pool
type Acceptor interface {
	Accept(seq string) bool
}

// LengthReport is the outcome of building one length bucket
type LengthReport struct {
	Length   int  `json:"length"`
	Added    int  `json:"added"`
	Existing int  `json:"existing"`
	Attempts int  `json:"attempts"`
	CapHit   bool `json:"capHit"`
}

// BuildReport summarizes one builder run across all lengths
type BuildReport struct {
	RunID   string         `json:"runId"`
	Lengths []LengthReport `json:"lengths"`
	Elapsed time.Duration  `json:"elapsed"`
}

// Builder fills the pool with filter-accepted random sequences, one
// worker per length. A length that hits its attempt cap before quota
// is reported, not failed: a partially filled bucket is still usable
type Builder struct {
	cfg    config.PoolConfig
	store  Store
	accept Acceptor
	logger *zap.SugaredLogger

	// seed for per-length generators; zero means time-based
	seed int64
}

// NewBuilder creates a builder over the passed store and filter
func NewBuilder(cfg config.PoolConfig, store Store, accept Acceptor, logger *zap.SugaredLogger) *Builder {
	return &Builder{
		cfg:    cfg,
		store:  store,
		accept: accept,
		logger: logger,
	}
}

// Seed fixes the candidate generators for reproducible builds
func (b *Builder) Seed(seed int64) {
	b.seed = seed
}

// Build generates sequences for every length in the configured range
// until each bucket holds its quota or the per-length attempt cap is
// reached. Lengths run concurrently, capped at GOMAXPROCS. Candidates
// already in the bucket do not count toward quota twice
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	start := time.Now()
	runID := uuid.New().String()

	b.logger.Infow("building pool",
		"runId", runID,
		"minLength", b.cfg.MinLength,
		"maxLength", b.cfg.MaxLength,
		"quota", b.cfg.Quota,
	)

	var (
		mu      sync.Mutex
		reports []LengthReport
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for length := b.cfg.MinLength; length <= b.cfg.MaxLength; length++ {
		g.Go(func() error {
			report, err := b.buildLength(ctx, runID, length)
			if err != nil {
				return err
			}

			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Length < reports[j].Length
	})

	report := &BuildReport{
		RunID:   runID,
		Lengths: reports,
		Elapsed: time.Since(start),
	}

	b.logger.Infow("pool build done", "runId", runID, "elapsed", report.Elapsed)

	return report, nil
}

// buildLength fills a single bucket. Generation happens against a
// local set so the store is only touched twice: once to read the
// existing members, once to merge the new ones
func (b *Builder) buildLength(ctx context.Context, runID string, length int) (LengthReport, error) {
	existing, err := b.store.Members(ctx, length)
	if err != nil {
		return LengthReport{}, err
	}

	seen := make(map[string]bool, len(existing))
	for _, seq := range existing {
		seen[seq] = true
	}

	seed := b.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed + int64(length)))

	var (
		collected []string
		attempts  int
	)
	need := b.cfg.Quota - len(existing)
	maxAttempts := b.cfg.Quota * b.cfg.AttemptMultiplier

	for len(collected) < need && attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			return LengthReport{}, err
		}
		attempts++

		seq := oligo.Random(rng, length)
		if seen[seq] {
			continue
		}
		if !b.accept.Accept(seq) {
			continue
		}

		seen[seq] = true
		collected = append(collected, seq)
	}

	if len(collected) > 0 {
		if err := b.store.AddMembers(ctx, length, collected); err != nil {
			return LengthReport{}, err
		}
	}

	report := LengthReport{
		Length:   length,
		Added:    len(collected),
		Existing: len(existing),
		Attempts: attempts,
		CapHit:   len(collected) < need && attempts >= maxAttempts,
	}

	meta := Metadata{
		Length:  length,
		Count:   len(existing) + len(collected),
		RunID:   runID,
		BuiltAt: time.Now().UTC(),
	}
	if err := b.store.SetMetadata(ctx, length, meta); err != nil {
		return LengthReport{}, err
	}

	if report.CapHit {
		b.logger.Warnw("attempt cap hit before quota",
			"length", length,
			"added", report.Added,
			"attempts", attempts,
		)
	} else {
		b.logger.Debugw("bucket filled",
			"length", length,
			"added", report.Added,
			"attempts", attempts,
		)
	}

	return report, nil
}
