// Package oligo holds primitives shared by every other package:
// sequence validation, reverse complements, GC content and random
// candidate generation
package oligo

import (
	"fmt"
	"math/rand"
	"strings"
)

// Bases are the four letters a designed sequence may contain
const Bases = "ATGC"

var complement = map[byte]byte{
	'A': 'T',
	'T': 'A',
	'G': 'C',
	'C': 'G',
	'N': 'N',
}

// Validate uppercases a raw sequence and errors if any
// character is not one of A/T/G/C
func Validate(raw string) (string, error) {
	seq := strings.ToUpper(strings.TrimSpace(raw))
	if seq == "" {
		return "", fmt.Errorf("empty sequence")
	}

	for i := 0; i < len(seq); i++ {
		if _, ok := complement[seq[i]]; !ok || seq[i] == 'N' {
			return "", fmt.Errorf("invalid base %q at index %d in %s", seq[i], i, seq)
		}
	}

	return seq, nil
}

// ReverseComplement returns the reverse complement of a sequence.
// Unrecognized characters are passed through unchanged
func ReverseComplement(seq string) string {
	seq = strings.ToUpper(seq)

	rc := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		b := seq[len(seq)-1-i]
		if c, ok := complement[b]; ok {
			rc[i] = c
		} else {
			rc[i] = b
		}
	}

	return string(rc)
}

// Reverse returns a sequence read back to front
func Reverse(seq string) string {
	r := []byte(seq)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// GCContent returns the percentage of G and C bases, 0-100
func GCContent(seq string) float64 {
	if seq == "" {
		return 0
	}

	seq = strings.ToUpper(seq)
	gc := strings.Count(seq, "G") + strings.Count(seq, "C")

	return float64(gc) / float64(len(seq)) * 100.0
}

// ThreePrime returns the last n bases of a sequence, or the whole
// sequence when it's shorter than n
func ThreePrime(seq string, n int) string {
	if len(seq) <= n {
		return seq
	}
	return seq[len(seq)-n:]
}

// Random creates a uniformly random sequence of the passed length
// using the passed source so callers control reproducibility
func Random(rng *rand.Rand, length int) string {
	seq := make([]byte, length)
	for i := range seq {
		seq[i] = Bases[rng.Intn(len(Bases))]
	}
	return string(seq)
}
