// Package main provides the entry point for the morguelib CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dcss-tools/morguelib/internal/config"
	"github.com/dcss-tools/morguelib/internal/log"
)

// NewRootCmd creates the root command for morguelib.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "morguelib",
		Short: "Collect and catalog winning DCSS games from public morgue files",
		Long: `morguelib builds a library of winning Dungeon Crawl Stone Soup games.

It crawls public game servers for morgue files, classifies each game as
a win or a loss, extracts the character build behind every win, and
answers questions like "which builds win with exactly three runes?".

Network access is deliberately slow: requests are spaced a minute apart
by default, because the game servers are volunteer-run.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewSpiderCmd())
	cmd.AddCommand(NewParseCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its
// parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger builds the process logger and installs it as the slog
// default.
func setupLogger(verbose bool) *slog.Logger {
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so
// a long crawl can flush its checkpoint before exiting.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// loadConfig builds the runtime configuration: defaults, then the
// optional config file, then the flags every command shares.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	found := config.FindConfigFile(configPath)
	if found == "" && configPath != "" {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}
	if found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cf.Apply(cfg)
	}

	if cmd.Flags().Changed("data-dir") {
		if cfg.DataDir, err = cmd.Flags().GetString("data-dir"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("wait") {
		if cfg.Wait, err = cmd.Flags().GetDuration("wait"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// addCommonFlags registers the flags shared by the network commands.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .morguelib in current or home directory)")
	cmd.Flags().StringP("data-dir", "D", config.XDGDataDir(),
		"Directory for output files")
	cmd.Flags().DurationP("wait", "w", config.DefaultWait,
		"Pause between successive network requests")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
}
