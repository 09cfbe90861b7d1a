package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dcss-tools/morguelib/internal/config"
	"github.com/dcss-tools/morguelib/internal/crawler"
	"github.com/dcss-tools/morguelib/internal/fetch"
	"github.com/dcss-tools/morguelib/internal/known"
	"github.com/dcss-tools/morguelib/internal/report"
)

// NewSpiderCmd creates the spider command.
func NewSpiderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spider [seed-url...]",
		Short: "Crawl DCSS servers for new morgue file URLs",
		Long: `Spider walks the link graph of public DCSS server pages breadth-first,
starting from the given seed URLs, and records every new morgue URL it
finds in a timestamped morgue_urls_ file in the data directory.

URLs already present in earlier output files are not recorded again, so
repeated crawls of the same server only add what is new.

Examples:
  # Crawl one server, three rounds deep
  morguelib spider http://crawl.akrasiac.org/rawdata/index.html

  # A shallow, faster crawl
  morguelib spider --depth 1 --wait 10s http://crawl.akrasiac.org/rawdata/index.html`,
		Args: cobra.ArbitraryArgs,
		RunE: runSpiderCmd,
	}

	addCommonFlags(cmd)
	cmd.Flags().IntP("depth", "d", config.DefaultCrawlDepth,
		"Number of link-following rounds from the seeds")
	cmd.Flags().Float64P("jitter", "j", config.DefaultJitter,
		"Random extra wait as a fraction of --wait")
	cmd.Flags().DurationP("auto-save", "a", config.DefaultAutoSaveInterval,
		"How often to flush discovered URLs mid-round (0 disables)")

	return cmd
}

// runSpiderCmd executes the spider command.
func runSpiderCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("depth") {
		if cfg.CrawlDepth, err = cmd.Flags().GetInt("depth"); err != nil {
			return err
		}
	}
	jitter, err := cmd.Flags().GetFloat64("jitter")
	if err != nil {
		return err
	}
	cfg.Jitter = jitter
	if cmd.Flags().Changed("auto-save") {
		if cfg.AutoSaveInterval, err = cmd.Flags().GetDuration("auto-save"); err != nil {
			return err
		}
	}
	if len(args) > 0 {
		cfg.Seeds = args
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if len(cfg.Seeds) == 0 {
		return errors.New("no seed URLs: pass them as arguments or set them in the config file")
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(logger)
	defer cancel()

	var fetchOpts []fetch.Option
	if len(cfg.UserAgents) > 0 {
		fetchOpts = append(fetchOpts, fetch.WithUserAgents(cfg.UserAgents))
	}
	client := fetch.New(cfg.Timeout, fetchOpts...)

	checkpoint := report.NewFiles(cfg.DataDir, time.Now())
	index := known.New(report.CategoryPrefixes(), []string{cfg.DataDir})

	spider := crawler.NewSpider(client,
		crawler.WithWait(cfg.Wait),
		crawler.WithJitter(cfg.Jitter),
		crawler.WithAutoSaveInterval(cfg.AutoSaveInterval),
		crawler.WithTerms(cfg.CrawlTerms),
		crawler.WithPageSuffix(cfg.PageSuffix),
		crawler.WithCheckpoint(checkpoint),
		crawler.WithKnownSet(index),
		crawler.WithSpiderLogger(logger),
	)

	visited, err := spider.Crawl(ctx, cfg.Seeds, cfg.CrawlDepth)
	if err != nil {
		return fmt.Errorf("crawl aborted after visiting %d urls: %w", len(visited), err)
	}

	logger.Info("crawl finished",
		"seeds", len(cfg.Seeds),
		"depth", cfg.CrawlDepth,
		"urls", len(visited))
	return nil
}
