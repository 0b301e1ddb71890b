// Package cmd is for command line interactions with the oligod
// application
package cmd

import (
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/oligodesigner/oligod/config"
)

// RootCmd represents the base command when called without any
// subcommands.
var RootCmd = &cobra.Command{
	Use: "oligod",
	Short: `Design orthogonal oligo domains and strands.
Build a pool of filter-accepted sequences, assign them to domains and
validate the result against thermodynamic thresholds`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)

	// settings is an optional parameter for a settings file that
	// overrides the built-in defaults
	RootCmd.PersistentFlags().StringP("settings", "s", "", "path to a settings file")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}

// initSettings reads in the settings file, if set, and binds the
// OLIGOD_* environment variables
func initSettings() {
	config.SetDefaults()

	viper.SetEnvPrefix("OLIGOD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if file := viper.GetString("settings"); file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("failed to read settings file %s: %v", file, err)
		}
	}
}

// newLogger builds the process logger: human readable in verbose
// mode, JSON otherwise
func newLogger() *zap.SugaredLogger {
	zapCfg := zap.NewProductionConfig()
	if viper.GetBool("verbose") {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger.Sugar()
}
