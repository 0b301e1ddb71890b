package validate

import "sort"

// checks whose failure makes a report critical rather than a warning:
// mispriming at the 3' extension end
var criticalChecks = map[string]bool{
	"threePrimeHairpin":      true,
	"threePrimeSelfDimer":    true,
	"threePrimeCrossDimerDg": true,
}

// Summary aggregates a check map into counts and an overall status
type Summary struct {
	TotalChecks      int      `json:"total_checks"`
	Passed           int      `json:"passed"`
	Failed           int      `json:"failed"`
	PassRate         float64  `json:"pass_rate"`
	CriticalFailures []string `json:"critical_failures"`
	Warnings         []string `json:"warnings"`
	Status           string   `json:"overall_status"`
}

// Summarize classifies a check map: PASS when everything passed,
// CRITICAL when a 3'-region check failed, WARNING otherwise. Failure
// lists come back sorted by check name
func Summarize(results map[string]Result) Summary {
	s := Summary{
		TotalChecks:      len(results),
		CriticalFailures: []string{},
		Warnings:         []string{},
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if results[name].Passed {
			s.Passed++
			continue
		}
		s.Failed++
		if criticalChecks[name] {
			s.CriticalFailures = append(s.CriticalFailures, name)
		} else {
			s.Warnings = append(s.Warnings, name)
		}
	}

	if s.TotalChecks > 0 {
		s.PassRate = float64(s.Passed) / float64(s.TotalChecks) * 100
	}

	switch {
	case s.Failed == 0:
		s.Status = "PASS"
	case len(s.CriticalFailures) > 0:
		s.Status = "CRITICAL"
	default:
		s.Status = "WARNING"
	}

	return s
}
