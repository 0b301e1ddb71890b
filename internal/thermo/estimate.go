package thermo

import (
	"strings"

	"github.com/oligodesigner/oligod/internal/oligo"
)

// Estimator is a pure-Go Oracle producing coarse, deterministic
// estimates from Watson-Crick base pairing alone. It exists so tests
// and offline runs don't shell out to primer3; the numbers track the
// real calculators directionally (stronger pairing, higher Tm, more
// negative dG) but are not publication-grade thermodynamics
type Estimator struct{}

// MeltingTemp uses the Wallace rule for short sequences and the
// GC-fraction formula for longer ones
func (Estimator) MeltingTemp(seq string, params IonicParams) (float64, error) {
	seq = strings.ToUpper(seq)
	if len(seq) < minTmLength {
		return shortSeqTm, nil
	}

	gc := strings.Count(seq, "G") + strings.Count(seq, "C")
	at := len(seq) - gc

	if len(seq) < 14 {
		return float64(2*at + 4*gc), nil
	}

	return 64.9 + 41.0*(float64(gc)-16.4)/float64(len(seq)), nil
}

// Hairpin scores the longest inverted-repeat stem with a loop of at
// least three bases
func (Estimator) Hairpin(seq string, params IonicParams) (Result, error) {
	seq = strings.ToUpper(seq)
	if len(seq) < minHairpinLength {
		return Result{Tm: shortSeqStructTm}, nil
	}

	b := []byte(seq)
	n := len(b)
	best := ""

	for i := 0; i < n; i++ {
		for j := n - 1; j > i; j-- {
			k := 0
			for i+k < j-k && (j-k)-(i+k) > 3 && isWC(b[i+k], b[j-k]) {
				k++
			}
			if k > len(best) {
				best = seq[i : i+k]
			}
		}
	}

	return duplexResult(best), nil
}

// Homodimer scores the sequence against itself
func (e Estimator) Homodimer(seq string, params IonicParams) (Result, error) {
	seq = strings.ToUpper(seq)
	if len(seq) < minHomodimerLength {
		return Result{Tm: shortSeqStructTm}, nil
	}

	return duplexResult(longestDuplex(seq, seq)), nil
}

// Heterodimer scores the longest perfectly paired region between
// the two sequences
func (e Estimator) Heterodimer(seq1, seq2 string, params IonicParams) (Result, error) {
	seq1 = strings.ToUpper(seq1)
	seq2 = strings.ToUpper(seq2)
	if len(seq1) < minHeterodimerLength || len(seq2) < minHeterodimerLength {
		return Result{Tm: shortSeqStructTm}, nil
	}

	return duplexResult(longestDuplex(seq1, seq2)), nil
}

// longestDuplex returns the longest substring of a that can form a
// contiguous antiparallel duplex with b: the longest common
// substring of a and reverseComplement(b)
func longestDuplex(a, b string) string {
	rc := oligo.ReverseComplement(b)
	best := ""

	for i := 0; i < len(a); i++ {
		for j := 0; j < len(rc); j++ {
			k := 0
			for i+k < len(a) && j+k < len(rc) && a[i+k] == rc[j+k] {
				k++
			}
			if k > len(best) {
				best = a[i : i+k]
			}
		}
	}

	return best
}

// duplexResult converts a paired region into Wallace-rule style
// numbers. Runs under four bases are treated as no structure
func duplexResult(run string) Result {
	if len(run) < 4 {
		return Result{}
	}

	gc := strings.Count(run, "G") + strings.Count(run, "C")
	at := len(run) - gc

	tm := float64(4*gc + 2*at)
	dg := -(1.0*float64(gc) + 0.5*float64(at))
	dh := dg * 8.0
	ds := (dh - dg) / 0.310 // at ~310K

	return Result{Tm: tm, DG: dg, DH: dh, DS: ds}
}

func isWC(p, t byte) bool {
	switch p {
	case 'A':
		return t == 'T'
	case 'T':
		return t == 'A'
	case 'G':
		return t == 'C'
	case 'C':
		return t == 'G'
	default:
		return false
	}
}
