package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcss-tools/morguelib/internal/config"
	"github.com/dcss-tools/morguelib/internal/database"
	"github.com/dcss-tools/morguelib/internal/report"
	"github.com/dcss-tools/morguelib/internal/search"
)

// NewCatalogCmd creates the catalog command group.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the SQLite catalog of winning games",
		Long: `Catalog mirrors the winners files into an SQLite database so wins can
be queried without rescanning text files. Import it once from existing
winners files, keep it current with "parse --db", and query it with the
same criteria the search command takes.`,
	}

	cmd.AddCommand(newCatalogImportCmd())
	cmd.AddCommand(newCatalogQueryCmd())

	return cmd
}

// newCatalogImportCmd creates the catalog import command.
func newCatalogImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import existing winners files into the catalog",
		Long: `Import loads every winners file in the data directory and upserts each
win into the catalog. Re-importing is safe: rows are keyed by morgue
URL.`,
		Args: cobra.NoArgs,
		RunE: runCatalogImportCmd,
	}

	cmd.Flags().StringP("data-dir", "D", config.XDGDataDir(),
		"Directory holding the winners files and the catalog")

	return cmd
}

// runCatalogImportCmd executes the catalog import command.
func runCatalogImportCmd(cmd *cobra.Command, _ []string) error {
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	ctx, cancel := signalContext(logger)
	defer cancel()

	entries, err := search.NewSearcher([]string{dataDir}, search.WithLogger(logger)).Load()
	if err != nil {
		return err
	}

	catalog, err := database.Open(dataDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer catalog.Close() //nolint:errcheck

	for _, entry := range entries {
		if err := catalog.InsertWinner(ctx, &entry); err != nil {
			return fmt.Errorf("failed to import %s: %w", entry.URL, err)
		}
	}

	count, err := catalog.CountWinners(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d win(s); catalog now holds %d\n", len(entries), count)
	return nil
}

// newCatalogQueryCmd creates the catalog query command.
func newCatalogQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the catalog for matching wins",
		Long: `Query lists the cataloged wins matching the given criteria. The flags
mirror the search command; the difference is the source: query reads
the SQLite catalog rather than the winners files.

Examples:
  # Exact build lookup
  morguelib catalog query --species Mi --background Be --god okawaru

  # Three-rune wins on any 0.2x version
  morguelib catalog query --runes 3 --versions 0.20-0.29`,
		Args: cobra.NoArgs,
		RunE: runCatalogQueryCmd,
	}

	cmd.Flags().StringP("data-dir", "D", config.XDGDataDir(),
		"Directory holding the catalog")
	addCriteriaFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

// runCatalogQueryCmd executes the catalog query command.
func runCatalogQueryCmd(cmd *cobra.Command, _ []string) error {
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return err
	}
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	setupLogger(getVerboseFlag(cmd))

	catalog, err := database.Open(dataDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return err
	}
	defer catalog.Close() //nolint:errcheck

	entries, err := catalog.QueryWinners(cmd.Context(), database.WinnerQuery{
		Species:     criteria.Species,
		Backgrounds: criteria.Backgrounds,
		Gods:        criteria.Gods,
		RuneMin:     criteria.RuneMin,
		RuneMax:     criteria.RuneMax,
		VersionMin:  criteria.VersionMin,
		VersionMax:  criteria.VersionMax,
	})
	if err != nil {
		return err
	}

	return writeResults(cmd, &report.SearchResults{
		Query:   criteria.String(),
		Entries: entries,
	})
}
