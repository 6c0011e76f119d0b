package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-triage/internal/config"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

var (
	// Global flags
	configPath string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "farum-triage",
	Short: "Farum - conversational triage engine",
	Long: `Farum reads one message at a time, screens it for crisis language,
runs the 5-step wellness check-in and keeps track of the ongoing topic
so that follow-up messages get a consistent reply.

Configuration comes from a YAML file (--config) overridden by FARUM_* env vars.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if err := observability.Configure(cfg.Logging.Level); err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		observability.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "farum.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(serveCmd, chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
