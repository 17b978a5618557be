package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rpontes/veridraft/internal/model"
	"github.com/rpontes/veridraft/internal/refcheck"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veridraft",
	Short: "Veridraft - generate and validate procurement justification sections",
	Long: `Veridraft drafts and validates sections of technical-justification
documents for public procurement.

Generated text is checked by independent quality agents (legal compliance,
argumentation, readability, simplification) and by an anti-hallucination
engine that extracts normative citations, verifies each against an
authoritative index with an external fallback, and computes a weighted
trust score.

Veridraft flags what it cannot verify; the responsible official decides.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("veridraft v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veridraft/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the config file and VERIDRAFT_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.veridraft")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VERIDRAFT")
	viper.AutomaticEnv()

	// The verification threshold honors the legacy variable name too.
	_ = viper.BindEnv("threshold", "VERIDRAFT_THRESHOLD", "HALLUCINATION_THRESHOLD")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges file/env settings over the defaults
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		return model.DefaultConfig()
	}
	return cfg
}

// thresholdFn reads the verification threshold per check call, so env or
// config changes apply without rebuilding the engine.
func thresholdFn() func() float64 {
	return func() float64 {
		if t := viper.GetFloat64("threshold"); t > 0 {
			return t
		}
		return refcheck.DefaultThreshold
	}
}

// newLogger builds the process logger
func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}
