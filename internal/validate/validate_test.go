package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/oligodesigner/oligod/config"
	"github.com/oligodesigner/oligod/internal/thermo"
)

// stubOracle returns fixed numbers so threshold logic can be tested
// in isolation
type stubOracle struct {
	tm       float64
	structTm float64
	dg       float64
	err      error
}

func (s stubOracle) MeltingTemp(seq string, params thermo.IonicParams) (float64, error) {
	return s.tm, s.err
}

func (s stubOracle) Hairpin(seq string, params thermo.IonicParams) (thermo.Result, error) {
	return thermo.Result{Tm: s.structTm}, s.err
}

func (s stubOracle) Homodimer(seq string, params thermo.IonicParams) (thermo.Result, error) {
	return thermo.Result{Tm: s.structTm}, s.err
}

func (s stubOracle) Heterodimer(seq1, seq2 string, params thermo.IonicParams) (thermo.Result, error) {
	return thermo.Result{Tm: s.structTm, DG: s.dg}, s.err
}

func testValidationConfig() config.ValidationConfig {
	return config.ValidationConfig{
		GCMin:                     30.0,
		GCMax:                     70.0,
		TmMin:                     42.0,
		TmMax:                     60.0,
		HairpinTmMax:              32.0,
		SelfDimerTmMax:            32.0,
		CrossDimerDGMin:           -5.0,
		ThreePrimeCrossDimerDGMin: -2.0,
		ThreePrimeHairpinTmMax:    27.0,
		ThreePrimeSelfDimerTmMax:  27.0,
		ThreePrimeLength:          6,
	}
}

func testEngine(t *testing.T, oracle thermo.Oracle) *Engine {
	t.Helper()

	settings, err := NewSettings(testValidationConfig())
	if err != nil {
		t.Fatal(err)
	}
	return New(settings, oracle, thermo.DefaultIonicParams())
}

func TestNewSettings(t *testing.T) {
	type test struct {
		name    string
		mutate  func(*config.ValidationConfig)
		wantErr bool
	}

	tests := []test{
		{
			name:   "defaults are valid",
			mutate: func(c *config.ValidationConfig) {},
		},
		{
			name: "inverted gc bounds",
			mutate: func(c *config.ValidationConfig) {
				c.GCMin = 70.0
				c.GCMax = 30.0
			},
			wantErr: true,
		},
		{
			name: "inverted tm bounds",
			mutate: func(c *config.ValidationConfig) {
				c.TmMin = 60.0
				c.TmMax = 42.0
			},
			wantErr: true,
		},
		{
			name: "positive cross dimer floor",
			mutate: func(c *config.ValidationConfig) {
				c.CrossDimerDGMin = 5.0
			},
			wantErr: true,
		},
		{
			name: "positive three prime cross dimer floor",
			mutate: func(c *config.ValidationConfig) {
				c.ThreePrimeCrossDimerDGMin = 2.0
			},
			wantErr: true,
		},
		{
			name: "zero three prime length",
			mutate: func(c *config.ValidationConfig) {
				c.ThreePrimeLength = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testValidationConfig()
			tt.mutate(&cfg)

			_, err := NewSettings(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngine_Domain(t *testing.T) {
	clean := "ATCGTCAGGT"

	wantChecks := []string{
		"length", "gcContent", "meltingTemp", "hairpin", "selfDimer",
		"patterns", "threePrimeHairpin", "threePrimeSelfDimer",
		"threePrimeGCClamp",
	}

	type test struct {
		name       string
		oracle     stubOracle
		seq        string
		length     int
		wantFailed []string
	}

	tests := []test{
		{
			name:   "clean sequence passes everything",
			oracle: stubOracle{tm: 50.0, structTm: 10.0},
			seq:    clean,
			length: 10,
		},
		{
			name:       "length mismatch",
			oracle:     stubOracle{tm: 50.0, structTm: 10.0},
			seq:        clean,
			length:     12,
			wantFailed: []string{"length"},
		},
		{
			name:       "tm out of range",
			oracle:     stubOracle{tm: 70.0, structTm: 10.0},
			seq:        clean,
			length:     10,
			wantFailed: []string{"meltingTemp"},
		},
		{
			// 25.0 clears the plain ceilings but the 3' multipliers
			// (x1.2 and x1.3) push it past the stricter ones
			name:       "three prime stringency",
			oracle:     stubOracle{tm: 50.0, structTm: 25.0},
			seq:        clean,
			length:     10,
			wantFailed: []string{"threePrimeHairpin", "threePrimeSelfDimer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEngine(t, tt.oracle)
			results := e.Domain(tt.seq, tt.length)

			if len(results) != len(wantChecks) {
				t.Fatalf("Domain() returned %d checks, want %d", len(results), len(wantChecks))
			}

			failed := map[string]bool{}
			for _, name := range tt.wantFailed {
				failed[name] = true
			}

			for _, name := range wantChecks {
				result, ok := results[name]
				if !ok {
					t.Fatalf("Domain() missing check %q", name)
				}
				if result.Passed == failed[name] {
					t.Errorf("check %q passed = %v, want %v", name, result.Passed, !failed[name])
				}
			}
		})
	}
}

func TestEngine_Domain_emptySequence(t *testing.T) {
	e := testEngine(t, stubOracle{tm: 50.0})

	results := e.Domain("", 10)
	if len(results) != 1 {
		t.Fatalf("Domain(empty) returned %d checks, want 1", len(results))
	}

	result, ok := results["sequence"]
	if !ok {
		t.Fatal("Domain(empty) missing sequence check")
	}
	if result.Passed {
		t.Error("Domain(empty) sequence check passed, want failed")
	}
}

func TestEngine_Domain_oracleError(t *testing.T) {
	e := testEngine(t, stubOracle{err: errors.New("ntthal: exit status 1")})

	results := e.Domain("ATCGTCAGGT", 10)

	// the report still contains every check
	if len(results) != 9 {
		t.Fatalf("Domain() returned %d checks, want 9", len(results))
	}

	tm := results["meltingTemp"]
	if tm.Passed {
		t.Error("meltingTemp passed despite oracle error")
	}
	if !strings.Contains(tm.Details, "ntthal") {
		t.Errorf("meltingTemp details = %q, want the oracle error", tm.Details)
	}

	// checks that never touch the oracle are unaffected
	if !results["gcContent"].Passed {
		t.Error("gcContent failed, want passed")
	}
}

func TestEngine_Strand(t *testing.T) {
	e := testEngine(t, stubOracle{tm: 50.0, structTm: 10.0})

	parts := []string{"ATCGTCAGGT", "GGCATCATCA"}
	seq := "ATCGTCAGGTGGCATCATCA"

	results := e.Strand(seq, 20, parts)

	if !results["composition"].Passed {
		t.Error("composition failed for matching concatenation")
	}
	if !results["length"].Passed {
		t.Error("length failed for matching declared length")
	}

	// a strand that is not the concatenation of its domains
	results = e.Strand("ATCGTCAGGTAAAATTTTTT", 20, parts)
	if results["composition"].Passed {
		t.Error("composition passed for mismatched concatenation")
	}
	if results["composition"].CheckType != "composition" {
		t.Errorf("composition check_type = %q", results["composition"].CheckType)
	}
}

func TestEngine_CrossInteractions(t *testing.T) {
	strands := []StrandSeq{
		{ID: 1, Name: "s1", Sequence: "ATCGTCAGGT"},
		{ID: 2, Name: "s2", Sequence: "GGCATCATCA"},
		{ID: 3, Name: "s3", Sequence: ""},
	}

	t.Run("below floor fails with measured value", func(t *testing.T) {
		e := testEngine(t, stubOracle{dg: -6.0})
		cross := e.CrossInteractions(strands)

		// the empty strand pairs with nothing
		if len(cross) != 1 {
			t.Fatalf("CrossInteractions() returned %d pairs, want 1", len(cross))
		}

		pair, ok := cross["1_2"]
		if !ok {
			t.Fatal("CrossInteractions() missing pair 1_2")
		}

		result := pair["crossDimerDg"]
		if result.Passed {
			t.Error("crossDimerDg passed below the floor")
		}
		if !strings.Contains(result.Value, "-6.00") {
			t.Errorf("crossDimerDg value = %q, want the measured dG", result.Value)
		}
	})

	t.Run("above floor passes", func(t *testing.T) {
		e := testEngine(t, stubOracle{dg: -1.0})
		cross := e.CrossInteractions(strands)

		pair := cross["1_2"]
		if !pair["crossDimerDg"].Passed {
			t.Error("crossDimerDg failed above the floor")
		}
		if !pair["threePrimeCrossDimerDg"].Passed {
			t.Error("threePrimeCrossDimerDg failed above the floor")
		}
	})
}

func TestSummarize(t *testing.T) {
	type test struct {
		name       string
		results    map[string]Result
		wantStatus string
	}

	tests := []test{
		{
			name: "all passing",
			results: map[string]Result{
				"gcContent": {Passed: true},
				"hairpin":   {Passed: true},
			},
			wantStatus: "PASS",
		},
		{
			name: "non critical failure",
			results: map[string]Result{
				"gcContent": {Passed: false},
				"hairpin":   {Passed: true},
			},
			wantStatus: "WARNING",
		},
		{
			name: "three prime failure",
			results: map[string]Result{
				"gcContent":         {Passed: true},
				"threePrimeHairpin": {Passed: false},
			},
			wantStatus: "CRITICAL",
		},
		{
			name: "cross dimer three prime failure",
			results: map[string]Result{
				"crossDimerDg":           {Passed: true},
				"threePrimeCrossDimerDg": {Passed: false},
			},
			wantStatus: "CRITICAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.results)
			if s.Status != tt.wantStatus {
				t.Errorf("Summarize() status = %s, want %s", s.Status, tt.wantStatus)
			}
			if s.Passed+s.Failed != s.TotalChecks {
				t.Errorf("Summarize() counts inconsistent: %d + %d != %d",
					s.Passed, s.Failed, s.TotalChecks)
			}
		})
	}
}
