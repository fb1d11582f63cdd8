package main

import (
	"os"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/config"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/logger"
	"github.com/spf13/cobra"
)

// Version is the application version.
const Version = "0.1.0"

var (
	configPath string
	verbose    bool

	// cfg is loaded once before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "caption",
	Short:             "Generate placeholder captions for images",
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "warn"
		}
		if verbose {
			level = "debug"
		}
		logger.SetDefaultLogger(logger.New(&logger.Config{
			Level:       level,
			Format:      "text",
			Output:      cmd.ErrOrStderr(),
			ServiceName: "caption-cli",
			Environment: "local",
		}))

		if configPath == "" {
			configPath = os.Getenv("CONFIG_PATH")
		}
		var err error
		cfg, err = config.Load(configPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(selectCmd)
}
