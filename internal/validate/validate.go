// Package validate is the pure reporting side of the designer: every
// check returns a Result, nothing is mutated and nothing aborts. A
// failing oracle degrades to a failed check rather than an error
package validate

import (
	"fmt"
	"strings"

	"github.com/oligodesigner/oligod/internal/filter"
	"github.com/oligodesigner/oligod/internal/oligo"
	"github.com/oligodesigner/oligod/internal/thermo"
)

// stringency multipliers for the 3' terminal window: mispriming at
// the extension end is worse than anywhere else
const (
	threePrimeHairpinFactor   = 1.2
	threePrimeSelfDimerFactor = 1.3
)

// gc clamp: at most this many G/C in the last 5 bases
const gcClampMax = 3

// Result is one validation check's outcome
type Result struct {
	Passed    bool   `json:"passed"`
	Value     string `json:"value"`
	Threshold string `json:"threshold"`
	Details   string `json:"details"`
	CheckType string `json:"check_type"`
}

// Engine runs threshold checks against an oracle. It holds no state
// between calls
type Engine struct {
	settings Settings
	oracle   thermo.Oracle
	params   thermo.IonicParams
}

// New creates a validation engine
func New(settings Settings, oracle thermo.Oracle, params thermo.IonicParams) *Engine {
	return &Engine{
		settings: settings,
		oracle:   oracle,
		params:   params,
	}
}

// Domain checks a single domain sequence against every per-sequence
// criterion. The returned map is keyed by check name. An empty
// sequence collapses to a single failed sequence check
func (e *Engine) Domain(seq string, expectedLength int) map[string]Result {
	if seq == "" {
		return emptySequenceResults()
	}

	results := map[string]Result{
		"length":    e.checkLength(seq, expectedLength),
		"gcContent": e.checkGCContent(seq),
	}
	e.sequenceChecks(seq, results)

	return results
}

// Strand checks a full strand sequence. declaredLength is the sum of
// the constituent domains' declared lengths and parts their sequences
// in strand order
func (e *Engine) Strand(seq string, declaredLength int, parts []string) map[string]Result {
	if seq == "" {
		return emptySequenceResults()
	}

	results := map[string]Result{
		"length":      e.checkStrandLength(seq, declaredLength),
		"gcContent":   e.checkGCContent(seq),
		"composition": e.checkComposition(seq, parts),
	}
	e.sequenceChecks(seq, results)

	return results
}

// StrandSeq is the slice element CrossInteractions takes: just
// enough of a strand to name it in a report
type StrandSeq struct {
	ID       int
	Name     string
	Sequence string
}

// CrossInteractions checks every unordered pair of strands with
// non-empty sequences for cross-dimer formation. Keys are
// "<id1>_<id2>" in input order
func (e *Engine) CrossInteractions(strands []StrandSeq) map[string]map[string]Result {
	cross := make(map[string]map[string]Result)

	for i, s1 := range strands {
		for _, s2 := range strands[i+1:] {
			if s1.Sequence == "" || s2.Sequence == "" {
				continue
			}
			key := fmt.Sprintf("%d_%d", s1.ID, s2.ID)
			cross[key] = map[string]Result{
				"crossDimerDg":           e.checkCrossDimer(s1, s2),
				"threePrimeCrossDimerDg": e.checkThreePrimeCrossDimer(s1, s2),
			}
		}
	}

	return cross
}

// sequenceChecks adds the checks shared by domains and strands
func (e *Engine) sequenceChecks(seq string, results map[string]Result) {
	results["meltingTemp"] = e.checkMeltingTemp(seq)
	results["hairpin"] = e.checkHairpin(seq)
	results["selfDimer"] = e.checkSelfDimer(seq)
	results["patterns"] = e.checkPatterns(seq)
	results["threePrimeHairpin"] = e.checkThreePrimeHairpin(seq)
	results["threePrimeSelfDimer"] = e.checkThreePrimeSelfDimer(seq)
	results["threePrimeGCClamp"] = e.checkGCClamp(seq)
}

func (e *Engine) checkLength(seq string, expected int) Result {
	actual := len(seq)

	return Result{
		Passed:    actual == expected,
		Value:     fmt.Sprintf("%dnt", actual),
		Threshold: fmt.Sprintf("%dnt", expected),
		Details:   fmt.Sprintf("sequence length %d, expected %d", actual, expected),
		CheckType: "length",
	}
}

func (e *Engine) checkStrandLength(seq string, declared int) Result {
	actual := len(seq)

	return Result{
		Passed:    actual == declared,
		Value:     fmt.Sprintf("%dnt", actual),
		Threshold: fmt.Sprintf("%dnt", declared),
		Details:   fmt.Sprintf("strand length %d, expected from domains %d", actual, declared),
		CheckType: "strand_length",
	}
}

func (e *Engine) checkComposition(seq string, parts []string) Result {
	expected := strings.Join(parts, "")
	passed := seq == expected

	details := "sequence matches domain composition"
	if !passed {
		details = fmt.Sprintf("expected %s", expected)
	}

	value := "Matches"
	if !passed {
		value = "Mismatch"
	}

	return Result{
		Passed:    passed,
		Value:     value,
		Threshold: "Perfect match",
		Details:   details,
		CheckType: "composition",
	}
}

func (e *Engine) checkGCContent(seq string) Result {
	gc := oligo.GCContent(seq)

	return Result{
		Passed:    gc >= e.settings.GCMin && gc <= e.settings.GCMax,
		Value:     fmt.Sprintf("%.1f%%", gc),
		Threshold: fmt.Sprintf("%.0f-%.0f%%", e.settings.GCMin, e.settings.GCMax),
		Details:   fmt.Sprintf("GC content %.1f%%", gc),
		CheckType: "gc_content",
	}
}

func (e *Engine) checkMeltingTemp(seq string) Result {
	tm, err := e.oracle.MeltingTemp(seq, e.params)
	if err != nil {
		return oracleFailure("melting_temp", err)
	}

	return Result{
		Passed:    tm >= e.settings.TmMin && tm <= e.settings.TmMax,
		Value:     fmt.Sprintf("%.1fC", tm),
		Threshold: fmt.Sprintf("%.0f-%.0fC", e.settings.TmMin, e.settings.TmMax),
		Details:   fmt.Sprintf("melting temperature %.1fC", tm),
		CheckType: "melting_temp",
	}
}

func (e *Engine) checkHairpin(seq string) Result {
	res, err := e.oracle.Hairpin(seq, e.params)
	if err != nil {
		return oracleFailure("hairpin", err)
	}

	return Result{
		Passed:    res.Tm <= e.settings.HairpinTmMax,
		Value:     fmt.Sprintf("%.1fC", res.Tm),
		Threshold: fmt.Sprintf("<=%.0fC", e.settings.HairpinTmMax),
		Details:   fmt.Sprintf("hairpin Tm %.1fC", res.Tm),
		CheckType: "hairpin",
	}
}

func (e *Engine) checkSelfDimer(seq string) Result {
	res, err := e.oracle.Homodimer(seq, e.params)
	if err != nil {
		return oracleFailure("self_dimer", err)
	}

	return Result{
		Passed:    res.Tm <= e.settings.SelfDimerTmMax,
		Value:     fmt.Sprintf("%.1fC", res.Tm),
		Threshold: fmt.Sprintf("<=%.0fC", e.settings.SelfDimerTmMax),
		Details:   fmt.Sprintf("self-dimer Tm %.1fC", res.Tm),
		CheckType: "self_dimer",
	}
}

func (e *Engine) checkPatterns(seq string) Result {
	found := filter.Explain(seq)
	passed := len(found) == 0

	details := "no problematic patterns found"
	value := "Clean"
	if !passed {
		details = "found: " + strings.Join(found, ", ")
		value = fmt.Sprintf("%d issues", len(found))
	}

	return Result{
		Passed:    passed,
		Value:     value,
		Threshold: "No problematic patterns",
		Details:   details,
		CheckType: "patterns",
	}
}

func (e *Engine) checkThreePrimeHairpin(seq string) Result {
	window := oligo.ThreePrime(seq, e.settings.ThreePrimeLength)
	res, err := e.oracle.Hairpin(window, e.params)
	if err != nil {
		return oracleFailure("three_prime_hairpin", err)
	}

	tm := res.Tm * threePrimeHairpinFactor

	return Result{
		Passed:    tm <= e.settings.ThreePrimeHairpinTmMax,
		Value:     fmt.Sprintf("%.1fC", tm),
		Threshold: fmt.Sprintf("<=%.0fC", e.settings.ThreePrimeHairpinTmMax),
		Details:   fmt.Sprintf("3' hairpin Tm %.1fC", tm),
		CheckType: "three_prime_hairpin",
	}
}

func (e *Engine) checkThreePrimeSelfDimer(seq string) Result {
	window := oligo.ThreePrime(seq, e.settings.ThreePrimeLength)
	res, err := e.oracle.Homodimer(window, e.params)
	if err != nil {
		return oracleFailure("three_prime_self_dimer", err)
	}

	tm := res.Tm * threePrimeSelfDimerFactor

	return Result{
		Passed:    tm <= e.settings.ThreePrimeSelfDimerTmMax,
		Value:     fmt.Sprintf("%.1fC", tm),
		Threshold: fmt.Sprintf("<=%.0fC", e.settings.ThreePrimeSelfDimerTmMax),
		Details:   fmt.Sprintf("3' self-dimer Tm %.1fC", tm),
		CheckType: "three_prime_self_dimer",
	}
}

func (e *Engine) checkGCClamp(seq string) Result {
	end := seq
	if len(seq) > 5 {
		end = seq[len(seq)-5:]
	}
	count := strings.Count(end, "G") + strings.Count(end, "C")

	return Result{
		Passed:    count <= gcClampMax,
		Value:     fmt.Sprintf("%d/5 G/C", count),
		Threshold: fmt.Sprintf("<=%d G/C in last 5 bases", gcClampMax),
		Details:   fmt.Sprintf("3' end (%s): %d G/C bases", end, count),
		CheckType: "three_prime_gc_clamp",
	}
}

func (e *Engine) checkCrossDimer(s1, s2 StrandSeq) Result {
	res, err := e.oracle.Heterodimer(s1.Sequence, s2.Sequence, e.params)
	if err != nil {
		return oracleFailure("cross_dimer_dg", err)
	}

	return Result{
		Passed:    res.DG >= e.settings.CrossDimerDGMin,
		Value:     fmt.Sprintf("%.2f kcal/mol", res.DG),
		Threshold: fmt.Sprintf(">=%.1f kcal/mol", e.settings.CrossDimerDGMin),
		Details: fmt.Sprintf("cross-dimer dG between %s and %s: %.2f kcal/mol",
			s1.Name, s2.Name, res.DG),
		CheckType: "cross_dimer_dg",
	}
}

func (e *Engine) checkThreePrimeCrossDimer(s1, s2 StrandSeq) Result {
	end1 := oligo.ThreePrime(s1.Sequence, e.settings.ThreePrimeLength)
	end2 := oligo.ThreePrime(s2.Sequence, e.settings.ThreePrimeLength)

	res, err := e.oracle.Heterodimer(end1, end2, e.params)
	if err != nil {
		return oracleFailure("three_prime_cross_dimer_dg", err)
	}

	return Result{
		Passed:    res.DG >= e.settings.ThreePrimeCrossDimerDGMin,
		Value:     fmt.Sprintf("%.2f kcal/mol", res.DG),
		Threshold: fmt.Sprintf(">=%.1f kcal/mol", e.settings.ThreePrimeCrossDimerDGMin),
		Details:   fmt.Sprintf("3' cross-dimer dG: %.2f kcal/mol", res.DG),
		CheckType: "three_prime_cross_dimer_dg",
	}
}

// oracleFailure records an oracle error as a failed check so the rest
// of the report still gets generated
func oracleFailure(checkType string, err error) Result {
	return Result{
		Passed:    false,
		Value:     "error",
		Threshold: "oracle available",
		Details:   err.Error(),
		CheckType: checkType,
	}
}

func emptySequenceResults() map[string]Result {
	return map[string]Result{
		"sequence": {
			Passed:    false,
			Value:     "Empty",
			Threshold: "Valid DNA sequence",
			Details:   "no sequence provided",
			CheckType: "sequence",
		},
	}
}
