// Command dfsviz parses DFS slates and serves them for exploration.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/dfsviz/internal/config"
	"github.com/okian/dfsviz/pkg/logger"
)

var (
	configPath string
	cfg        *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dfsviz",
	Short: "Parse and explore DFS slates",
	Long: `dfsviz normalizes DFS slate exports (CSV or XLSX) into player records
and serves them as a filterable table and a scatter chart.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default $"+config.EnvConfigPath+")")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(sampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and initializes logging on stderr, keeping stdout
// free for command output.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	if err := logger.InitWith(os.Stderr, loaded.LogFormat); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(loaded.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", loaded.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	cfg = loaded
	return nil
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if configPath != "" {
		return config.LoadFrom(ctx, configPath)
	}
	return config.Load(ctx)
}
