package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oligodesigner/oligod/config"
	"github.com/oligodesigner/oligod/internal/filter"
	"github.com/oligodesigner/oligod/internal/pool"
)

var lengthRange string

// poolCmd represents the pool command
var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Manage the pool of filter-accepted candidate sequences",
}

// poolBuildCmd generates random sequences, filters them and fills
// the per-length buckets up to quota
var poolBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate and filter sequences until every length bucket holds its quota",
	Long: `Generate random sequences for every length in the configured range,
keep the ones that pass the filter rules and store them in per-length
buckets. Lengths are built concurrently. A length that hits its attempt
cap before reaching quota is reported but does not fail the build.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		defer logger.Sync()

		c := config.New()
		if lengthRange != "" {
			min, max, err := parseLengthRange(lengthRange)
			if err != nil {
				log.Fatalf("%v", err)
			}
			c.Pool.MinLength = min
			c.Pool.MaxLength = max
		}

		store, closeStore, err := newStore(c.Pool)
		if err != nil {
			log.Fatalf("failed to open pool store: %v", err)
		}
		defer closeStore()

		accept := filter.New(c.Filter, newOracle(c.Thermo), ionicParams(c.Thermo))
		builder := pool.NewBuilder(c.Pool, store, accept, logger)

		report, err := builder.Build(cmd.Context())
		if err != nil {
			log.Fatalf("pool build failed: %v", err)
		}

		writeJSON(os.Stdout, report)
	},
}

// poolStatusCmd reports per-length counts and build metadata
var poolStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report per-length sequence counts and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()

		store, closeStore, err := newStore(c.Pool)
		if err != nil {
			log.Fatalf("failed to open pool store: %v", err)
		}
		defer closeStore()

		status, err := pool.New(store).Status(cmd.Context())
		if err != nil {
			log.Fatalf("pool status failed: %v", err)
		}

		writeJSON(os.Stdout, status)
	},
}

func init() {
	poolBuildCmd.Flags().StringVarP(&lengthRange, "lengths", "l", "", "length range to build, e.g. 7-25")
	poolBuildCmd.Flags().IntP("quota", "q", 1000, "target sequences per length")
	viper.BindPFlag("pool.quota", poolBuildCmd.Flags().Lookup("quota"))

	poolCmd.PersistentFlags().String("store", "memory", "pool backend: memory, redis or sqlite")
	poolCmd.PersistentFlags().String("redis-addr", "localhost:6379", "redis address")
	poolCmd.PersistentFlags().String("db", "oligod.db", "sqlite file path")
	viper.BindPFlag("pool.store", poolCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("pool.redis-addr", poolCmd.PersistentFlags().Lookup("redis-addr"))
	viper.BindPFlag("pool.db", poolCmd.PersistentFlags().Lookup("db"))

	poolCmd.AddCommand(poolBuildCmd)
	poolCmd.AddCommand(poolStatusCmd)
	RootCmd.AddCommand(poolCmd)
}

// parseLengthRange reads "7-25" or a single "12"
func parseLengthRange(s string) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)

	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid length range %q", s)
	}
	if len(parts) == 1 {
		return min, min, nil
	}

	max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || max < min {
		return 0, 0, fmt.Errorf("invalid length range %q", s)
	}
	return min, max, nil
}

func writeJSON(w *os.File, v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to serialize output: %v", err)
	}
	fmt.Fprintln(w, string(b))
}
