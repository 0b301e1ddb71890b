package validate

import (
	"errors"

	"github.com/oligodesigner/oligod/config"
)

// Settings holds the thresholds a report is generated against. Use
// NewSettings so the bounds are checked once up front
type Settings struct {
	GCMin float64
	GCMax float64

	TmMin float64
	TmMax float64

	HairpinTmMax   float64
	SelfDimerTmMax float64

	// free energy floors, kcal/mol, negative
	CrossDimerDGMin           float64
	ThreePrimeCrossDimerDGMin float64

	ThreePrimeHairpinTmMax   float64
	ThreePrimeSelfDimerTmMax float64
	ThreePrimeLength         int
}

// NewSettings builds Settings from configuration, rejecting inverted
// ranges and positive free energy floors
func NewSettings(cfg config.ValidationConfig) (Settings, error) {
	if cfg.GCMin >= cfg.GCMax {
		return Settings{}, errors.New("validate: gc-min must be less than gc-max")
	}
	if cfg.TmMin >= cfg.TmMax {
		return Settings{}, errors.New("validate: tm-min must be less than tm-max")
	}
	if cfg.CrossDimerDGMin > 0 {
		return Settings{}, errors.New("validate: cross-dimer-dg-min must be negative (kcal/mol)")
	}
	if cfg.ThreePrimeCrossDimerDGMin > 0 {
		return Settings{}, errors.New("validate: three-prime-cross-dimer-dg-min must be negative (kcal/mol)")
	}
	if cfg.ThreePrimeLength <= 0 {
		return Settings{}, errors.New("validate: three-prime-length must be positive")
	}

	return Settings{
		GCMin:                     cfg.GCMin,
		GCMax:                     cfg.GCMax,
		TmMin:                     cfg.TmMin,
		TmMax:                     cfg.TmMax,
		HairpinTmMax:              cfg.HairpinTmMax,
		SelfDimerTmMax:            cfg.SelfDimerTmMax,
		CrossDimerDGMin:           cfg.CrossDimerDGMin,
		ThreePrimeCrossDimerDGMin: cfg.ThreePrimeCrossDimerDGMin,
		ThreePrimeHairpinTmMax:    cfg.ThreePrimeHairpinTmMax,
		ThreePrimeSelfDimerTmMax:  cfg.ThreePrimeSelfDimerTmMax,
		ThreePrimeLength:          cfg.ThreePrimeLength,
	}, nil
}
