package thermo

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Primer3 computes thermodynamics by executing the oligotm and
// ntthal binaries from the primer3 distribution
type Primer3 struct {
	// path to the oligotm executable
	OligotmPath string

	// path to the ntthal executable
	NtthalPath string

	// path to primer3's thermodynamic parameters folder; ntthal
	// falls back to its built-in table when empty
	ConfDir string

	// hybridization temperature passed to ntthal (degrees C)
	Temp float64
}

// NewPrimer3 returns a Primer3 oracle resolving the executables
// from PATH
func NewPrimer3(confDir string) *Primer3 {
	return &Primer3{
		OligotmPath: "oligotm",
		NtthalPath:  "ntthal",
		ConfDir:     confDir,
		Temp:        37.0,
	}
}

var (
	ntthalTm = regexp.MustCompile(`t\s*=\s*(-?[\d.]+)`)
	ntthalDG = regexp.MustCompile(`dG\s*=\s*(-?[\d.]+)`)
	ntthalDH = regexp.MustCompile(`dH\s*=\s*(-?[\d.]+)`)
	ntthalDS = regexp.MustCompile(`dS\s*=\s*(-?[\d.]+)`)
)

// MeltingTemp runs oligotm against the sequence
func (p *Primer3) MeltingTemp(seq string, params IonicParams) (float64, error) {
	seq = strings.ToUpper(seq)
	if len(seq) < minTmLength {
		return shortSeqTm, nil
	}

	cmd := exec.Command(
		p.OligotmPath,
		"-tp", "1", // SantaLucia 1998 table
		"-sc", "1",
		"-mv", formatConc(params.Monovalent),
		"-dv", formatConc(params.Divalent),
		"-n", formatConc(params.DNTP),
		"-d", formatConc(params.Oligo),
		seq,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, &OracleError{Op: "oligotm", Seq: seq, Err: fmt.Errorf("%s: %v", string(out), err)}
	}

	tm, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, &OracleError{Op: "oligotm", Seq: seq, Err: err}
	}

	return tm, nil
}

// Hairpin runs ntthal in HAIRPIN mode against the sequence
func (p *Primer3) Hairpin(seq string, params IonicParams) (Result, error) {
	seq = strings.ToUpper(seq)
	if len(seq) < minHairpinLength {
		return Result{Tm: shortSeqStructTm}, nil
	}

	return p.ntthal("HAIRPIN", seq, "", params)
}

// Homodimer runs ntthal in ANY mode with the sequence against itself
func (p *Primer3) Homodimer(seq string, params IonicParams) (Result, error) {
	seq = strings.ToUpper(seq)
	if len(seq) < minHomodimerLength {
		return Result{Tm: shortSeqStructTm}, nil
	}

	return p.ntthal("ANY", seq, seq, params)
}

// Heterodimer runs ntthal in ANY mode with the two sequences
func (p *Primer3) Heterodimer(seq1, seq2 string, params IonicParams) (Result, error) {
	seq1 = strings.ToUpper(seq1)
	seq2 = strings.ToUpper(seq2)
	if len(seq1) < minHeterodimerLength || len(seq2) < minHeterodimerLength {
		return Result{Tm: shortSeqStructTm}, nil
	}

	return p.ntthal("ANY", seq1, seq2, params)
}

// ntthal executes the binary and parses dS/dH/dG/t from its output.
// ntthal reports dG and dH in cal/mol; both are converted to kcal/mol
func (p *Primer3) ntthal(align, seq1, seq2 string, params IonicParams) (Result, error) {
	args := []string{
		"-a", align,
		"-t", strconv.FormatFloat(p.Temp, 'f', 1, 64),
		"-mv", formatConc(params.Monovalent),
		"-dv", formatConc(params.Divalent),
		"-n", formatConc(params.DNTP),
		"-d", formatConc(params.Oligo),
		"-s1", seq1,
	}
	if seq2 != "" {
		args = append(args, "-s2", seq2)
	}
	if p.ConfDir != "" {
		args = append(args, "-path", p.ConfDir)
	}

	cmd := exec.Command(p.NtthalPath, args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, &OracleError{Op: "ntthal " + align, Seq: seq1, Err: fmt.Errorf("%s: %v", string(out), err)}
	}

	output := string(out)
	if !ntthalTm.MatchString(output) {
		// no structure found at this temperature
		return Result{}, nil
	}

	r := Result{
		Tm: parseNtthal(ntthalTm, output),
		DG: parseNtthal(ntthalDG, output) / 1000.0,
		DH: parseNtthal(ntthalDH, output) / 1000.0,
		DS: parseNtthal(ntthalDS, output),
	}

	return r, nil
}

func parseNtthal(re *regexp.Regexp, out string) float64 {
	m := re.FindStringSubmatch(out)
	if len(m) < 2 {
		return 0
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	return v
}

func formatConc(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
