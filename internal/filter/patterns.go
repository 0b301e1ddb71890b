package filter

import (
	"fmt"
	"strings"

	"github.com/oligodesigner/oligod/internal/oligo"
)

// restriction sites that would interfere with downstream cloning
var restrictionSites = map[string]string{
	"GAATTC":   "EcoRI",
	"GGATCC":   "BamHI",
	"AAGCTT":   "HindIII",
	"CTGCAG":   "PstI",
	"GTCGAC":   "SalI",
	"CCATGG":   "NcoI",
	"GCGGCCGC": "NotI",
	"TCTAGA":   "XbaI",
}

// motifs known to trip up polymerases
var problematicMotifs = []string{
	"GGGGGG", // G-quadruplex forming
	"CCCCCC",
	"AAAAAA",
	"TTTTTT",
}

// common sequencing/cloning primers a designed sequence must not
// resemble
var commonPrimers = []string{
	"GTAAAACGACGGCCAGT",  // M13 forward
	"CAGGAAACAGCTATGAC",  // M13 reverse
	"TGTAAAACGACGGCCAGT", // M13(-20) forward
}

// Explain returns the names of every pattern and symmetry rule the
// sequence violates. Empty means clean. The validation engine reuses
// this for its pattern-scan check
func Explain(seq string) []string {
	return append(Patterns(seq), Symmetry(seq)...)
}

// Patterns returns the names of every repetitive-pattern and motif
// rule the sequence violates
func Patterns(seq string) (found []string) {
	seq = strings.ToUpper(seq)

	// homopolymer runs of 4 or more
	for _, base := range []string{"A", "T", "G", "C"} {
		if strings.Contains(seq, strings.Repeat(base, 4)) {
			found = append(found, base+"4+")
		}
	}

	// any dinucleotide repeated 3+ times back to back (6+ bp)
	for i := 0; i+6 <= len(seq); i++ {
		dinuc := seq[i : i+2]
		if dinuc[0] != dinuc[1] && strings.Repeat(dinuc, 3) == seq[i:i+6] {
			found = append(found, "repeat:"+dinuc)
			break
		}
	}

	// any trinucleotide tripled back to back
	for i := 0; i+9 <= len(seq); i++ {
		trinuc := seq[i : i+3]
		if strings.Repeat(trinuc, 3) == seq[i:i+9] {
			found = append(found, "repeat:"+trinuc)
			break
		}
	}

	// 8-mers that read the same backwards
	for i := 0; i+8 <= len(seq); i++ {
		segment := seq[i : i+8]
		if segment == oligo.Reverse(segment) {
			found = append(found, "mirror:"+segment)
			break
		}
	}

	// composition bias: no base above 60%
	for _, base := range []string{"A", "T", "G", "C"} {
		if float64(strings.Count(seq, base)) > float64(len(seq))*0.6 {
			found = append(found, base+">60%")
		}
	}

	if runLength(seq, "AG") >= 5 {
		found = append(found, "purine-run")
	}
	if runLength(seq, "CT") >= 5 {
		found = append(found, "pyrimidine-run")
	}

	for site, enzyme := range restrictionSites {
		if strings.Contains(seq, site) {
			found = append(found, "site:"+enzyme)
		}
	}

	for _, motif := range problematicMotifs {
		if strings.Contains(seq, motif) {
			found = append(found, "motif:"+motif)
		}
	}

	if p := primerOverlap(seq); p != "" {
		found = append(found, "primer:"+p)
	}

	return found
}

// Symmetry returns the self-complementarity rules the sequence
// violates: sequences that mirror or hybridize against themselves
// make unusable domains
func Symmetry(seq string) (found []string) {
	seq = strings.ToUpper(seq)

	if seq == oligo.ReverseComplement(seq) {
		found = append(found, "self-complementary")
	}

	if seq == oligo.Reverse(seq) {
		found = append(found, "self-mirror")
	}

	// first half folding back on the second half
	if len(seq) >= 12 {
		mid := len(seq) / 2
		if seq[:mid] == oligo.ReverseComplement(seq[mid:mid*2]) {
			found = append(found, "half-fold")
		}
	}

	// a 4bp window whose reverse complement recurs at least 4
	// positions downstream can zip the sequence onto itself
	for i := 0; i+4 <= len(seq); i++ {
		for j := i + 4; j+4 <= len(seq); j++ {
			if seq[i:i+4] == oligo.ReverseComplement(seq[j:j+4]) {
				found = append(found, fmt.Sprintf("fold:%d-%d", i, j))
				return found
			}
		}
	}

	return found
}

// runLength returns the longest run of characters drawn from set
func runLength(seq, set string) int {
	longest, run := 0, 0
	for i := 0; i < len(seq); i++ {
		if strings.IndexByte(set, seq[i]) >= 0 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// primerOverlap reports the first common primer the sequence
// resembles: any 8-base window matching a primer window at 7 of 8
// positions (>85% identity)
func primerOverlap(seq string) string {
	if len(seq) < 8 {
		return ""
	}

	for i := 0; i+8 <= len(seq); i++ {
		window := seq[i : i+8]
		for _, primer := range commonPrimers {
			for j := 0; j+8 <= len(primer); j++ {
				matches := 0
				for n := 0; n < 8; n++ {
					if window[n] == primer[j+n] {
						matches++
					}
				}
				if matches >= 7 {
					return primer
				}
			}
		}
	}

	return ""
}
