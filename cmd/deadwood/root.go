package main

import (
	"github.com/spf13/cobra"

	"github.com/halvard/deadwood/pkg/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "deadwood",
	Short: "Unused declaration detector",
	Long: `Deadwood finds top-level and member declarations that nothing in the
analyzed program references.

Supports: Go, TypeScript, TSX, JavaScript`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (TOML, YAML, or JSON)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}

// loadConfig loads the config named by --config, or searches standard
// locations.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(), nil
}
