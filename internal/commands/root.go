// Package commands implements the ledgerctl administration CLI.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/bookkeeping_ledger/internal/accounts"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/storage"
)

// app is the state shared by subcommands that need the ledger services.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *portssvc.ServiceContainer
	close    func()
}

// loadConfig is replaceable in tests.
var loadConfig = config.LoadConfig

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Administer the bookkeeping ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.close != nil {
				a.close()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(
		newMigrateCommand(a),
		newLockDateCommand(a),
		newSequenceCommand(a),
		newEntriesCommand(a),
	)
	return rootCmd
}

// open connects the configured store and builds the services once.
func (a *app) open(ctx context.Context) (*portssvc.ServiceContainer, error) {
	if a.services != nil {
		return a.services, nil
	}
	repos, closeStore, err := storage.Open(ctx, a.cfg, false, a.logger)
	if err != nil {
		return nil, err
	}
	chart, err := accounts.LoadOrDefault(a.cfg.ChartOfAccountsPath)
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	a.close = closeStore
	a.services = services.NewServiceContainer(a.cfg, repos, chart)
	return a.services, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
