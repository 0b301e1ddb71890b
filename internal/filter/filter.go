// Package filter decides whether a raw candidate sequence is fit
// for the pool. Accept is all-or-nothing: a sequence either clears
// every compositional, structural and thermodynamic rule or it is
// discarded
package filter

import (
	"github.com/oligodesigner/oligod/config"
	"github.com/oligodesigner/oligod/internal/oligo"
	"github.com/oligodesigner/oligod/internal/thermo"
)

// Engine applies the full rule set against single sequences. It is
// stateless and safe for concurrent use
type Engine struct {
	cfg    config.FilterConfig
	oracle thermo.Oracle
	params thermo.IonicParams
}

// New creates a filter engine from settings and a thermodynamic
// oracle
func New(cfg config.FilterConfig, oracle thermo.Oracle, params thermo.IonicParams) *Engine {
	return &Engine{
		cfg:    cfg,
		oracle: oracle,
		params: params,
	}
}

// Accept reports whether the sequence clears every rule. The cheap
// compositional scans run before any oracle call; an oracle failure
// counts as a rejection
func (e *Engine) Accept(seq string) bool {
	gc := oligo.GCContent(seq)
	if gc < e.cfg.GCMin || gc > e.cfg.GCMax {
		return false
	}

	if len(Patterns(seq)) > 0 {
		return false
	}

	if len(Symmetry(seq)) > 0 {
		return false
	}

	tm, err := e.oracle.MeltingTemp(seq, e.params)
	if err != nil || tm < e.cfg.TmMin || tm > e.cfg.TmMax {
		return false
	}

	hairpin, err := e.oracle.Hairpin(seq, e.params)
	if err != nil || hairpin.Tm > e.cfg.HairpinTmMax {
		return false
	}

	homodimer, err := e.oracle.Homodimer(seq, e.params)
	if err != nil || homodimer.Tm > e.cfg.SelfDimerTmMax {
		return false
	}

	// the 3' terminal window gets stricter ceilings
	end := oligo.ThreePrime(seq, e.cfg.ThreePrimeLength)

	endHairpin, err := e.oracle.Hairpin(end, e.params)
	if err != nil || endHairpin.Tm > e.cfg.ThreePrimeHairpinTmMax {
		return false
	}

	endHomodimer, err := e.oracle.Homodimer(end, e.params)
	if err != nil || endHomodimer.Tm > e.cfg.ThreePrimeSelfDimerTmMax {
		return false
	}

	return true
}
