// Package cli provides the command-line interface for docsight.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"docsight/internal/client"
	"docsight/internal/config"
	"docsight/internal/tui"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global config, logger and service client
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	apiClient  *client.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "docsight",
	Short: "Terminal client for the DocSight document analysis service",
	Long: `Docsight submits documents (files or raw text) to the DocSight analysis
service, tracks their processing state, and shows the structured summary
once it is ready.

Run without arguments in a terminal to start the interactive UI, or use the
subcommands for scripting.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip service setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)

		apiClient, err = client.New(cfg.BaseURL, cfg.Timeout, logger)
		if err != nil {
			return fmt.Errorf("create service client: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return cmd.Help()
		}
		return tui.Run(tui.NewApp(apiClient, logger))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(downloadCmd)
}

// terminalWidth returns the current terminal width, or a sane default when
// not attached to a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
