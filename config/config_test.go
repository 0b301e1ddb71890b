// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNew_defaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	c := New()

	if c.Filter.GCMin != 30.0 || c.Filter.GCMax != 70.0 {
		t.Errorf("filter GC bounds = %v-%v, want 30-70", c.Filter.GCMin, c.Filter.GCMax)
	}
	if c.Filter.ThreePrimeLength != 6 {
		t.Errorf("three prime length = %d, want 6", c.Filter.ThreePrimeLength)
	}
	if c.Pool.Quota != 1000 || c.Pool.AttemptMultiplier != 1000 {
		t.Errorf("pool quota/multiplier = %d/%d, want 1000/1000", c.Pool.Quota, c.Pool.AttemptMultiplier)
	}
	if c.Search.MaxAttempts != 50 {
		t.Errorf("search max attempts = %d, want 50", c.Search.MaxAttempts)
	}
	if c.Search.ExcludePolicy != "permanent" {
		t.Errorf("exclude policy = %s, want permanent", c.Search.ExcludePolicy)
	}
	if c.Validation.CrossDimerDGMin != -5.0 {
		t.Errorf("cross dimer dG floor = %v, want -5.0", c.Validation.CrossDimerDGMin)
	}
}

func TestNew_overrides(t *testing.T) {
	viper.Reset()
	SetDefaults()

	viper.Set("pool.quota", 25)
	viper.Set("search.exclude-policy", "session")

	c := New()

	if c.Pool.Quota != 25 {
		t.Errorf("pool quota = %d, want 25", c.Pool.Quota)
	}
	if c.Search.ExcludePolicy != "session" {
		t.Errorf("exclude policy = %s, want session", c.Search.ExcludePolicy)
	}
}
