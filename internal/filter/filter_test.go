package filter

import (
	"errors"
	"testing"

	"github.com/oligodesigner/oligod/config"
	"github.com/oligodesigner/oligod/internal/thermo"
)

// stubOracle returns fixed values so thermo thresholds can be
// exercised independently of the pattern rules
type stubOracle struct {
	tm       float64
	structTm float64
	err      error
}

func (s stubOracle) MeltingTemp(seq string, p thermo.IonicParams) (float64, error) {
	return s.tm, s.err
}

func (s stubOracle) Hairpin(seq string, p thermo.IonicParams) (thermo.Result, error) {
	return thermo.Result{Tm: s.structTm}, s.err
}

func (s stubOracle) Homodimer(seq string, p thermo.IonicParams) (thermo.Result, error) {
	return thermo.Result{Tm: s.structTm}, s.err
}

func (s stubOracle) Heterodimer(seq1, seq2 string, p thermo.IonicParams) (thermo.Result, error) {
	return thermo.Result{Tm: s.structTm}, s.err
}

func testFilterConfig() config.FilterConfig {
	return config.FilterConfig{
		GCMin:                    30.0,
		GCMax:                    70.0,
		TmMin:                    42.0,
		TmMax:                    60.0,
		HairpinTmMax:             32.0,
		SelfDimerTmMax:           32.0,
		ThreePrimeHairpinTmMax:   27.0,
		ThreePrimeSelfDimerTmMax: 27.0,
		ThreePrimeLength:         6,
	}
}

// clean passes every pattern and symmetry rule (verified by the
// pattern tests below); thermo outcomes come from the stub
const clean = "ATCGTCAGGT"

func TestEngine_Accept(t *testing.T) {
	type fields struct {
		oracle thermo.Oracle
	}
	type args struct {
		seq string
	}
	tests := []struct {
		name   string
		fields fields
		args   args
		want   bool
	}{
		{
			"accepts clean sequence",
			fields{oracle: stubOracle{tm: 50.0, structTm: 10.0}},
			args{seq: clean},
			true,
		},
		{
			"rejects low Tm",
			fields{oracle: stubOracle{tm: 30.0, structTm: 10.0}},
			args{seq: clean},
			false,
		},
		{
			"rejects high Tm",
			fields{oracle: stubOracle{tm: 75.0, structTm: 10.0}},
			args{seq: clean},
			false,
		},
		{
			"rejects strong secondary structure",
			fields{oracle: stubOracle{tm: 50.0, structTm: 40.0}},
			args{seq: clean},
			false,
		},
		{
			"rejects 3' structure above stricter ceiling",
			fields{oracle: stubOracle{tm: 50.0, structTm: 29.0}},
			args{seq: clean},
			false,
		},
		{
			"rejects on oracle error",
			fields{oracle: stubOracle{err: errors.New("ntthal not found")}},
			args{seq: clean},
			false,
		},
		{
			"rejects homopolymer before any oracle call",
			fields{oracle: stubOracle{err: errors.New("should not be consulted")}},
			args{seq: "ATCGAAAAGT"},
			false,
		},
		{
			"rejects GC out of bounds",
			fields{oracle: stubOracle{tm: 50.0, structTm: 10.0}},
			args{seq: "ATATATAGTA"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(testFilterConfig(), tt.fields.oracle, thermo.DefaultIonicParams())
			if got := e.Accept(tt.args.seq); got != tt.want {
				t.Errorf("Engine.Accept() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Patterns(t *testing.T) {
	type args struct {
		seq string
	}
	tests := []struct {
		name      string
		args      args
		wantClean bool
	}{
		{
			"clean",
			args{seq: clean},
			true,
		},
		{
			"homopolymer",
			args{seq: "ATCGAAAAGT"},
			false,
		},
		{
			"dinucleotide repeat",
			args{seq: "CAGATATATG"},
			false,
		},
		{
			"trinucleotide repeat",
			args{seq: "ACGACGACGT"},
			false,
		},
		{
			"EcoRI site",
			args{seq: "ATGAATTCGT"},
			false,
		},
		{
			"purine run",
			args{seq: "TCAGGAGATC"},
			false,
		},
		{
			"composition bias",
			args{seq: "AGAAATAAGA"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Patterns(tt.args.seq)
			if (len(got) == 0) != tt.wantClean {
				t.Errorf("Patterns() = %v, wantClean %v", got, tt.wantClean)
			}
		})
	}
}

func Test_Symmetry(t *testing.T) {
	type args struct {
		seq string
	}
	tests := []struct {
		name      string
		args      args
		wantClean bool
	}{
		{
			"clean",
			args{seq: clean},
			true,
		},
		{
			"palindromic duplex",
			args{seq: "GAATTC"}, // equal to its own reverse complement
			false,
		},
		{
			"self mirror",
			args{seq: "ATGCGTA"},
			false,
		},
		{
			"internal fold",
			args{seq: "ATCGAGTCGAT"}, // ATCG ... CGAT
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Symmetry(tt.args.seq)
			if (len(got) == 0) != tt.wantClean {
				t.Errorf("Symmetry() = %v, wantClean %v", got, tt.wantClean)
			}
		})
	}
}
