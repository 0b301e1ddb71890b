// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// FilterConfig holds the thresholds a candidate sequence must meet
// before it gets into the pool
type FilterConfig struct {
	// GC content bounds (percent)
	GCMin float64 `mapstructure:"gc-min"`
	GCMax float64 `mapstructure:"gc-max"`

	// melting temperature bounds (degrees C)
	TmMin float64 `mapstructure:"tm-min"`
	TmMax float64 `mapstructure:"tm-max"`

	// ceilings on secondary structure melting temperatures
	HairpinTmMax   float64 `mapstructure:"hairpin-tm-max"`
	SelfDimerTmMax float64 `mapstructure:"self-dimer-tm-max"`

	// stricter ceilings applied to the 3' terminal window
	ThreePrimeHairpinTmMax   float64 `mapstructure:"three-prime-hairpin-tm-max"`
	ThreePrimeSelfDimerTmMax float64 `mapstructure:"three-prime-self-dimer-tm-max"`

	// number of 3' terminal bases the stricter ceilings apply to
	ThreePrimeLength int `mapstructure:"three-prime-length"`
}

// ThermoConfig is the reaction conditions and oracle selection
type ThermoConfig struct {
	// monovalent cation concentration (mM)
	Monovalent float64 `mapstructure:"monovalent"`

	// divalent cation concentration (mM)
	Divalent float64 `mapstructure:"divalent"`

	// dNTP concentration (mM)
	DNTP float64 `mapstructure:"dntp"`

	// oligo concentration (nM)
	Oligo float64 `mapstructure:"oligo"`

	// path to primer3's thermodynamic parameter folder
	Primer3Conf string `mapstructure:"primer3-conf"`

	// use the in-process estimator instead of primer3 executables
	Estimate bool `mapstructure:"estimate"`
}

// PoolConfig is settings for the sequence pool and its builder
type PoolConfig struct {
	// inclusive range of domain lengths to build for
	MinLength int `mapstructure:"min-length"`
	MaxLength int `mapstructure:"max-length"`

	// target number of sequences per length
	Quota int `mapstructure:"quota"`

	// attempts allowed per length = quota * this multiplier
	AttemptMultiplier int `mapstructure:"attempt-multiplier"`

	// backing store: memory, redis or sqlite
	Store string `mapstructure:"store"`

	// redis address when store is redis
	RedisAddr string `mapstructure:"redis-addr"`

	// sqlite file path when store is sqlite
	DBPath string `mapstructure:"db"`
}

// SearchConfig is settings for assignment search
type SearchConfig struct {
	// draws allowed per domain before the search fails
	MaxAttempts int `mapstructure:"max-attempts"`

	// what happens to candidates that fail a pairwise check:
	// "permanent" keeps them excluded for the rest of the session,
	// "session" releases them once the call returns
	ExcludePolicy string `mapstructure:"exclude-policy"`
}

// ValidationConfig holds the report thresholds. The overlap with
// FilterConfig is deliberate: generation and validation can run
// with different stringencies
type ValidationConfig struct {
	GCMin float64 `mapstructure:"gc-min"`
	GCMax float64 `mapstructure:"gc-max"`

	TmMin float64 `mapstructure:"tm-min"`
	TmMax float64 `mapstructure:"tm-max"`

	HairpinTmMax   float64 `mapstructure:"hairpin-tm-max"`
	SelfDimerTmMax float64 `mapstructure:"self-dimer-tm-max"`

	// floors on cross-dimer free energy (kcal/mol, negative)
	CrossDimerDGMin           float64 `mapstructure:"cross-dimer-dg-min"`
	ThreePrimeCrossDimerDGMin float64 `mapstructure:"three-prime-cross-dimer-dg-min"`

	ThreePrimeHairpinTmMax   float64 `mapstructure:"three-prime-hairpin-tm-max"`
	ThreePrimeSelfDimerTmMax float64 `mapstructure:"three-prime-self-dimer-tm-max"`
	ThreePrimeLength         int     `mapstructure:"three-prime-length"`
}

// Config is the root-level settings struct and is a mix of settings
// available in a config file, environment variables and those from
// the command line
type Config struct {
	Filter     FilterConfig     `mapstructure:"filter"`
	Thermo     ThermoConfig     `mapstructure:"thermo"`
	Pool       PoolConfig       `mapstructure:"pool"`
	Search     SearchConfig     `mapstructure:"search"`
	Validation ValidationConfig `mapstructure:"validation"`
}

// SetDefaults registers the baseline settings with Viper. Called
// once from the root command before any file or flag binding
func SetDefaults() {
	viper.SetDefault("filter.gc-min", 30.0)
	viper.SetDefault("filter.gc-max", 70.0)
	viper.SetDefault("filter.tm-min", 42.0)
	viper.SetDefault("filter.tm-max", 60.0)
	viper.SetDefault("filter.hairpin-tm-max", 32.0)
	viper.SetDefault("filter.self-dimer-tm-max", 32.0)
	viper.SetDefault("filter.three-prime-hairpin-tm-max", 27.0)
	viper.SetDefault("filter.three-prime-self-dimer-tm-max", 27.0)
	viper.SetDefault("filter.three-prime-length", 6)

	viper.SetDefault("thermo.monovalent", 50.0)
	viper.SetDefault("thermo.divalent", 10.0)
	viper.SetDefault("thermo.dntp", 0.6)
	viper.SetDefault("thermo.oligo", 250.0)
	viper.SetDefault("thermo.primer3-conf", "")
	viper.SetDefault("thermo.estimate", false)

	viper.SetDefault("pool.min-length", 7)
	viper.SetDefault("pool.max-length", 25)
	viper.SetDefault("pool.quota", 1000)
	viper.SetDefault("pool.attempt-multiplier", 1000)
	viper.SetDefault("pool.store", "memory")
	viper.SetDefault("pool.redis-addr", "localhost:6379")
	viper.SetDefault("pool.db", "oligod.db")

	viper.SetDefault("search.max-attempts", 50)
	viper.SetDefault("search.exclude-policy", "permanent")

	viper.SetDefault("validation.gc-min", 30.0)
	viper.SetDefault("validation.gc-max", 70.0)
	viper.SetDefault("validation.tm-min", 42.0)
	viper.SetDefault("validation.tm-max", 60.0)
	viper.SetDefault("validation.hairpin-tm-max", 32.0)
	viper.SetDefault("validation.self-dimer-tm-max", 32.0)
	viper.SetDefault("validation.cross-dimer-dg-min", -5.0)
	viper.SetDefault("validation.three-prime-cross-dimer-dg-min", -2.0)
	viper.SetDefault("validation.three-prime-hairpin-tm-max", 27.0)
	viper.SetDefault("validation.three-prime-self-dimer-tm-max", 27.0)
	viper.SetDefault("validation.three-prime-length", 6)
}

// New returns a new Config struct populated by Viper settings
// (defaults, config file, environment and/or command line arguments)
func New() Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return c
}
