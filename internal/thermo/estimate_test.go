package thermo

import "testing"

func Test_Estimator_MeltingTemp(t *testing.T) {
	e := Estimator{}
	p := DefaultIonicParams()

	type args struct {
		seq string
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			"wallace rule short",
			args{seq: "ATGC"}, // 2at + 4gc = 2*2 + 4*2
			12.0,
		},
		{
			"too short floor",
			args{seq: "A"},
			25.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.MeltingTemp(tt.args.seq, p)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("MeltingTemp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Estimator_Heterodimer(t *testing.T) {
	e := Estimator{}
	p := DefaultIonicParams()

	// a sequence against its own reverse complement pairs end to end
	seq := "ATGGCCTTGA"
	rc := "TCAAGGCCAT"

	full, err := e.Heterodimer(seq, rc, p)
	if err != nil {
		t.Fatal(err)
	}
	if full.DG >= 0 {
		t.Errorf("Heterodimer() of perfect complement DG = %v, want negative", full.DG)
	}

	// unrelated sequences with no 4-base complementary run stay at zero
	weak, err := e.Heterodimer("AAGAAGAAGA", "AAGAAGAAGA", p)
	if err != nil {
		t.Fatal(err)
	}
	if weak.DG != 0 {
		t.Errorf("Heterodimer() of non-complementary pair DG = %v, want 0", weak.DG)
	}

	if full.DG >= weak.DG {
		t.Errorf("perfect duplex DG (%v) should be below non-duplex DG (%v)", full.DG, weak.DG)
	}
}

func Test_Estimator_Hairpin(t *testing.T) {
	e := Estimator{}
	p := DefaultIonicParams()

	// GGGGC...GCCCC folds back on itself
	folded, err := e.Hairpin("GGGGCATTTAGCCCC", p)
	if err != nil {
		t.Fatal(err)
	}
	if folded.Tm <= 0 {
		t.Errorf("Hairpin() of stem-loop Tm = %v, want > 0", folded.Tm)
	}

	short, err := e.Hairpin("ATGC", p)
	if err != nil {
		t.Fatal(err)
	}
	if short.Tm != 15.0 {
		t.Errorf("Hairpin() short floor = %v, want 15.0", short.Tm)
	}
}
