// Package thermo wraps thermodynamic calculations behind an Oracle
// interface. The production implementation shells out to the primer3
// distribution's oligotm and ntthal executables; Estimator is an
// in-process stand-in for tests and offline runs
package thermo

import "fmt"

// IonicParams are the reaction conditions passed to every calculation
type IonicParams struct {
	// monovalent cation concentration (mM)
	Monovalent float64

	// divalent cation concentration (mM)
	Divalent float64

	// dNTP concentration (mM)
	DNTP float64

	// oligo concentration (nM)
	Oligo float64
}

// DefaultIonicParams are standard qPCR-like reaction conditions
func DefaultIonicParams() IonicParams {
	return IonicParams{
		Monovalent: 50.0,
		Divalent:   10.0,
		DNTP:       0.6,
		Oligo:      250.0,
	}
}

// Result holds the output of a structure calculation. Tm is in
// degrees C, DG/DH in kcal/mol and DS in cal/(mol*K)
type Result struct {
	Tm float64
	DG float64
	DH float64
	DS float64
}

// Oracle computes melting temperatures and secondary structure
// thermodynamics for upper-case nucleotide sequences. Calls are
// synchronous and side-effect free; identical inputs produce
// identical outputs
type Oracle interface {
	MeltingTemp(seq string, params IonicParams) (float64, error)
	Hairpin(seq string, params IonicParams) (Result, error)
	Homodimer(seq string, params IonicParams) (Result, error)
	Heterodimer(seq1, seq2 string, params IonicParams) (Result, error)
}

// OracleError wraps a failed thermodynamic calculation with the
// operation and sequence that triggered it
type OracleError struct {
	Op  string
	Seq string
	Err error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("thermo: %s failed for %s: %v", e.Op, e.Seq, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// Sequences below these lengths cannot form the structure being
// asked about; calculators return fixed floor values instead of
// erroring on them
const (
	minTmLength          = 2
	minHairpinLength     = 6
	minHomodimerLength   = 4
	minHeterodimerLength = 3

	shortSeqTm       = 25.0
	shortSeqStructTm = 15.0
)
