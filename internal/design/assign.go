package design

import (
	"context"

	"go.uber.org/zap"

	"github.com/oligodesigner/oligod/config"
	"github.com/oligodesigner/oligod/internal/oligo"
	"github.com/oligodesigner/oligod/internal/pool"
	"github.com/oligodesigner/oligod/internal/thermo"
	"github.com/oligodesigner/oligod/internal/validate"
)

// exclusion policies for candidates that fail a pairwise check
const (
	// ExcludePermanent keeps rejects in the session set for the
	// rest of the request
	ExcludePermanent = "permanent"

	// ExcludeSessionOnly tracks rejects per domain and releases
	// them once that domain is assigned
	ExcludeSessionOnly = "session"
)

// Searcher assigns pooled sequences to domains. Two modes, keyed by
// the request: when any domain is a complement the set is built
// pairwise with no orthogonality checks; otherwise every assigned
// sequence is checked against every earlier one
type Searcher struct {
	pool     *pool.Pool
	oracle   thermo.Oracle
	params   thermo.IonicParams
	settings validate.Settings
	cfg      config.SearchConfig
	logger   *zap.SugaredLogger
}

// NewSearcher creates an assignment searcher. The validation
// settings supply the cross-dimer floors and 3' window length
func NewSearcher(p *pool.Pool, oracle thermo.Oracle, params thermo.IonicParams,
	settings validate.Settings, cfg config.SearchConfig, logger *zap.SugaredLogger) *Searcher {
	return &Searcher{
		pool:     p,
		oracle:   oracle,
		params:   params,
		settings: settings,
		cfg:      cfg,
		logger:   logger,
	}
}

// Assign fills in the Sequence of every unassigned domain, mutating
// the passed slice. Domains with a sequence already set keep it and
// count as committed. The session carries the used set across calls
func (s *Searcher) Assign(ctx context.Context, domains []*Domain, session *Session) error {
	for _, d := range domains {
		if d.Sequence != "" {
			session.MarkUsed(d.Sequence)
		}
	}

	if hasComplements(domains) {
		return s.assignPaired(ctx, domains, session)
	}
	return s.assignOrthogonal(ctx, domains, session)
}

func hasComplements(domains []*Domain) bool {
	for _, d := range domains {
		if d.Role == RoleComplement {
			return true
		}
	}
	return false
}

// assignPaired draws one sequence per non-complement domain and
// derives each complement from its partner. No pairwise checks: the
// complements are antiparallel by construction, so cross-dimer floors
// cannot hold anyway
func (s *Searcher) assignPaired(ctx context.Context, domains []*Domain, session *Session) error {
	byID := make(map[int]*Domain, len(domains))
	for _, d := range domains {
		byID[d.ID] = d
	}

	for _, d := range domains {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Role == RoleComplement || d.Sequence != "" {
			continue
		}

		seq, err := s.draw(ctx, d, session.exclude(nil))
		if err != nil {
			return err
		}

		d.Sequence = seq
		session.MarkUsed(seq)
		s.logger.Debugw("assigned", "domain", d.Name, "length", d.Length)
	}

	for _, c := range domains {
		if c.Role != RoleComplement || c.Sequence != "" {
			continue
		}
		c.Sequence = oligo.ReverseComplement(byID[*c.ComplementOf].Sequence)
		session.MarkUsed(c.Sequence)
	}

	return nil
}

// assignOrthogonal runs the draw/check/commit/reject loop per domain:
// draw an unused candidate, check it against every committed
// sequence, commit on success, reject and redraw on failure. A domain
// that exhausts its attempt budget aborts the whole call
func (s *Searcher) assignOrthogonal(ctx context.Context, domains []*Domain, session *Session) error {
	var committed []string
	for _, d := range domains {
		if d.Sequence != "" {
			committed = append(committed, d.Sequence)
		}
	}

	for _, d := range domains {
		if d.Sequence != "" {
			continue
		}

		var (
			attempts int
			rejected map[string]bool
		)
		if s.cfg.ExcludePolicy == ExcludeSessionOnly {
			rejected = make(map[string]bool)
		}

		for d.Sequence == "" {
			if err := ctx.Err(); err != nil {
				return err
			}
			if attempts >= s.cfg.MaxAttempts {
				return &AssignmentError{Domain: d.Name, Length: d.Length, Attempts: attempts}
			}
			attempts++

			// draw
			candidate, err := s.draw(ctx, d, session.exclude(rejected))
			if err != nil {
				if _, ok := err.(*pool.ExhaustedError); ok {
					return &AssignmentError{Domain: d.Name, Length: d.Length, Attempts: attempts}
				}
				return err
			}

			// check
			if !s.orthogonal(candidate, committed) {
				// reject
				if rejected != nil {
					rejected[candidate] = true
				} else {
					session.MarkUsed(candidate)
				}
				continue
			}

			// commit
			d.Sequence = candidate
			session.MarkUsed(candidate)
			committed = append(committed, candidate)
			s.logger.Debugw("assigned",
				"domain", d.Name,
				"length", d.Length,
				"attempts", attempts,
			)
		}
	}

	return nil
}

// draw pulls one unused sequence of the domain's length
func (s *Searcher) draw(ctx context.Context, d *Domain, exclude map[string]bool) (string, error) {
	seqs, err := s.pool.Sample(ctx, d.Length, 1, exclude)
	if err != nil {
		return "", err
	}
	if len(seqs) == 0 {
		return "", &pool.ExhaustedError{Length: d.Length, Requested: 1}
	}
	return seqs[0], nil
}

// orthogonal checks a candidate against every committed sequence:
// heterodimer dG at full length and over the 3' windows must clear
// the floors. An oracle error rejects the candidate
func (s *Searcher) orthogonal(candidate string, committed []string) bool {
	for _, prior := range committed {
		full, err := s.oracle.Heterodimer(candidate, prior, s.params)
		if err != nil {
			s.logger.Warnw("oracle error during assignment check", "err", err)
			return false
		}
		if full.DG < s.settings.CrossDimerDGMin {
			return false
		}

		end, err := s.oracle.Heterodimer(
			oligo.ThreePrime(candidate, s.settings.ThreePrimeLength),
			oligo.ThreePrime(prior, s.settings.ThreePrimeLength),
			s.params)
		if err != nil {
			s.logger.Warnw("oracle error during assignment check", "err", err)
			return false
		}
		if end.DG < s.settings.ThreePrimeCrossDimerDGMin {
			return false
		}
	}

	return true
}
