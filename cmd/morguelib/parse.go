package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcss-tools/morguelib/internal/classifier"
	"github.com/dcss-tools/morguelib/internal/config"
	"github.com/dcss-tools/morguelib/internal/database"
	"github.com/dcss-tools/morguelib/internal/fetch"
	"github.com/dcss-tools/morguelib/internal/known"
	"github.com/dcss-tools/morguelib/internal/lookup"
	"github.com/dcss-tools/morguelib/internal/model"
	"github.com/dcss-tools/morguelib/internal/pipeline"
	"github.com/dcss-tools/morguelib/internal/report"
)

// NewParseCmd creates the parse command.
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [master-file...]",
		Short: "Classify morgue files and record winning builds",
		Long: `Parse reads master files of morgue URLs (one per line; plain, .gz and
.bz2 files are accepted), fetches each morgue not already processed by
an earlier run, and classifies it.

Winning games land in a winners_ file together with the extracted
build, rune count, and game version. Losses, unreadable files, and
connection failures each get their own file, so every URL is accounted
for and never fetched twice.

Examples:
  # Parse the URLs collected by a previous spider run
  morguelib parse ~/.local/share/morguelib/morgue_urls_20190103_120000.txt

  # Archive the raw text of each winning morgue as well
  morguelib parse --save master.txt

  # Mirror winners into the SQLite catalog
  morguelib parse --db master.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runParseCmd,
	}

	addCommonFlags(cmd)
	cmd.Flags().Float64P("jitter", "j", config.DefaultJitter,
		"Random extra wait as a fraction of --wait")
	cmd.Flags().BoolP("save", "s", false,
		"Archive the raw text of winning morgues fetched over the network")
	cmd.Flags().BoolP("db", "b", false,
		"Mirror winning games into the SQLite catalog")

	return cmd
}

// runParseCmd executes the parse command.
func runParseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	jitter, err := cmd.Flags().GetFloat64("jitter")
	if err != nil {
		return err
	}
	cfg.Jitter = jitter
	if cmd.Flags().Changed("save") {
		if cfg.SaveMorgues, err = cmd.Flags().GetBool("save"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("db") {
		if cfg.SaveToDB, err = cmd.Flags().GetBool("db"); err != nil {
			return err
		}
	}
	if len(args) > 0 {
		cfg.MasterFiles = args
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if len(cfg.MasterFiles) == 0 {
		return errors.New("no master files: pass them as arguments or set them in the config file")
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(logger)
	defer cancel()

	var fetchOpts []fetch.Option
	if len(cfg.UserAgents) > 0 {
		fetchOpts = append(fetchOpts, fetch.WithUserAgents(cfg.UserAgents))
	}
	client := fetch.New(cfg.Timeout, fetchOpts...)

	var clsOpts []classifier.Option
	if cfg.SaveMorgues {
		clsOpts = append(clsOpts, classifier.WithArchiver(report.NewArchive(cfg.SavedDir())))
	}
	clsOpts = append(clsOpts, classifier.WithLogger(logger))
	cls := classifier.New(lookup.Default(), clsOpts...)

	run := model.NewParseRun(cfg.MasterFiles)
	files := report.NewFiles(cfg.DataDir, run.Started)
	index := known.New(report.CategoryPrefixes(), []string{cfg.DataDir})

	classifyOpts := []pipeline.ClassifyOption{
		pipeline.WithWait(cfg.Wait),
		pipeline.WithJitter(cfg.Jitter),
		pipeline.WithStepLogger(logger),
	}
	if cfg.SaveToDB {
		catalog, err := database.Open(cfg.DataDir, database.DefaultOptions())
		if err != nil {
			return err
		}
		defer catalog.Close() //nolint:errcheck
		classifyOpts = append(classifyOpts, pipeline.WithCatalog(catalog))
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewLoadStep(),
		pipeline.NewFilterKnownStep(index),
		pipeline.NewClassifyStep(client, cls, files, classifyOpts...),
		pipeline.NewSummaryStep(logger),
	)

	if err := p.Execute(ctx, run); err != nil {
		return fmt.Errorf("run aborted after %d of %d urls: %w",
			run.Processed(), len(run.Pending), err)
	}
	return nil
}
