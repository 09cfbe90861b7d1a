package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dcss-tools/morguelib/internal/config"
	"github.com/dcss-tools/morguelib/internal/lookup"
	"github.com/dcss-tools/morguelib/internal/report"
	"github.com/dcss-tools/morguelib/internal/search"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search recorded wins by build, runes, and version",
		Long: `Search loads every winners file in the data directory and lists the
wins matching the given criteria. Species and backgrounds accept full
names or two-letter codes; gods accept names or common shorthand like
"oka" ("none" matches godless wins). Runes and versions accept a single
value or an inclusive range like 3-15.

Examples:
  # Every recorded minotaur win
  morguelib search --species minotaur

  # Three-rune Berserker wins under Trog or Okawaru
  morguelib search --background Be --god trog,oka --runes 3

  # The five most successful builds on recent versions, as markdown
  morguelib search --versions 0.23-0.25 --popular 5 --markdown`,
		Args: cobra.NoArgs,
		RunE: runSearchCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .morguelib in current or home directory)")
	cmd.Flags().StringP("data-dir", "D", config.XDGDataDir(),
		"Directory holding the winners files")
	addCriteriaFlags(cmd)
	cmd.Flags().IntP("popular", "p", 0,
		"Also rank the N most frequent builds among the matches")
	addOutputFlags(cmd)

	return cmd
}

// addCriteriaFlags registers the build-criteria flags shared by search
// and catalog.
func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("species", "s", "",
		"Comma-separated species names or codes (e.g. minotaur,HO)")
	cmd.Flags().StringP("background", "b", "",
		"Comma-separated background names or codes (e.g. berserker,Gl)")
	cmd.Flags().StringP("god", "g", "",
		"Comma-separated deity names or shorthand; \"none\" matches godless wins")
	cmd.Flags().StringP("runes", "r", "",
		"Rune count or inclusive range (e.g. 3 or 3-15)")
	cmd.Flags().StringP("versions", "V", "",
		"Game version or inclusive range (e.g. 0.23 or 0.23-0.25)")
}

// addOutputFlags registers the result-format flags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("markdown", "m", false,
		"Output results as markdown (mutually exclusive with --json)")
	cmd.Flags().BoolP("json", "j", false,
		"Output results as JSON (mutually exclusive with --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write results to the given file instead of stdout")
}

// criteriaFromFlags parses the shared criteria flags.
func criteriaFromFlags(cmd *cobra.Command) (search.Criteria, error) {
	var err error

	get := func(name string) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = cmd.Flags().GetString(name)
		return v
	}

	species := get("species")
	background := get("background")
	god := get("god")
	runes := get("runes")
	versions := get("versions")
	if err != nil {
		return search.Criteria{}, err
	}

	return search.ParseCriteria(lookup.Default(), species, background, god, runes, versions)
}

// writeResults renders the results to the chosen destination in the
// chosen format.
func writeResults(cmd *cobra.Command, results *report.SearchResults) error {
	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if markdown && asJSON {
		return fmt.Errorf("--markdown and --json cannot be used together")
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o700); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close() //nolint:errcheck
		w = file
	}

	switch {
	case markdown:
		return results.WriteMarkdown(w)
	case asJSON:
		return results.WriteJSON(w)
	default:
		return results.WriteText(w)
	}
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if found := config.FindConfigFile(configPath); found != "" {
		if cf, err := config.LoadConfigFile(found); err == nil {
			cf.Apply(cfg)
		}
	}
	if cmd.Flags().Changed("data-dir") {
		if cfg.DataDir, err = cmd.Flags().GetString("data-dir"); err != nil {
			return err
		}
	}

	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}
	popular, err := cmd.Flags().GetInt("popular")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	searcher := search.NewSearcher([]string{cfg.DataDir}, search.WithLogger(logger))

	results, err := searcher.Search(criteria, popular)
	if err != nil {
		return err
	}
	return writeResults(cmd, results)
}
