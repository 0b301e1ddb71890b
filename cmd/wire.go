package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/oligodesigner/oligod/config"
	"github.com/oligodesigner/oligod/internal/design"
	"github.com/oligodesigner/oligod/internal/pool"
	"github.com/oligodesigner/oligod/internal/thermo"
	"github.com/oligodesigner/oligod/internal/validate"
)

// newOracle picks the thermodynamic oracle: primer3's executables by
// default, the in-process estimator when asked for
func newOracle(cfg config.ThermoConfig) thermo.Oracle {
	if cfg.Estimate {
		return thermo.Estimator{}
	}
	return thermo.NewPrimer3(cfg.Primer3Conf)
}

func ionicParams(cfg config.ThermoConfig) thermo.IonicParams {
	return thermo.IonicParams{
		Monovalent: cfg.Monovalent,
		Divalent:   cfg.Divalent,
		DNTP:       cfg.DNTP,
		Oligo:      cfg.Oligo,
	}
}

// newStore opens the configured pool backend. The returned closer is
// a no-op for backends without a handle to release
func newStore(cfg config.PoolConfig) (pool.Store, func(), error) {
	switch cfg.Store {
	case "memory":
		return pool.NewMemoryStore(), func() {}, nil
	case "redis":
		s := pool.NewRedisStore(cfg.RedisAddr)
		return s, func() { s.Close() }, nil
	case "sqlite":
		s, err := pool.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown pool store %q", cfg.Store)
	}
}

// newDesigner wires a full designer from configuration
func newDesigner(c config.Config, logger *zap.SugaredLogger) (*design.Designer, func(), error) {
	settings, err := validate.NewSettings(c.Validation)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := newStore(c.Pool)
	if err != nil {
		return nil, nil, err
	}

	oracle := newOracle(c.Thermo)
	params := ionicParams(c.Thermo)

	searcher := design.NewSearcher(pool.New(store), oracle, params, settings, c.Search, logger)
	engine := validate.New(settings, oracle, params)

	return design.NewDesigner(searcher, engine, logger), closeStore, nil
}
