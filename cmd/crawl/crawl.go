// Package crawl implements the crawl command: one full sitemap resolution,
// fetch-extract pass, and dataset write.
package crawl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/thaicrawl/cmd/common"
	"github.com/jonesrussell/thaicrawl/internal/crawler"
	"github.com/jonesrussell/thaicrawl/internal/domain"
	"github.com/jonesrussell/thaicrawl/internal/extractor"
	"github.com/jonesrussell/thaicrawl/internal/feed"
	"github.com/jonesrussell/thaicrawl/internal/fetcher"
	"github.com/jonesrussell/thaicrawl/internal/output"
	"github.com/jonesrussell/thaicrawl/internal/sections"
)

// Command returns the crawl command for use in the root command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the sitemap and extract articles",
		Long: `Resolve the sitemap hierarchy, filter article URLs by section and
recency, fetch and extract each article, and write per-section datasets.

The sitemap URL is required; everything else has defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			result, err := RunOnce(cmd.Context(), deps)
			if err != nil {
				return err
			}

			renderSummary(result)
			return nil
		},
	}

	registerFlags(cmd)
	return cmd
}

// registerFlags declares the crawl flags and binds them to viper keys.
func registerFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("sitemap", "", "root sitemap URL (required unless configured)")
	flags.Int("since-days", 0, "recency window in days")
	flags.String("sections", "", "comma-separated section names")
	flags.Int("limit", 0, "maximum number of articles to process (0 = no limit)")
	flags.String("out-csv", "", "CSV output path template")
	flags.String("out-json", "", "JSON output path")

	bindings := map[string]string{
		"crawler.sitemap_url": "sitemap",
		"crawler.since_days":  "since-days",
		"crawler.sections":    "sections",
		"crawler.limit":       "limit",
		"output.csv_path":     "out-csv",
		"output.json_path":    "out-json",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}

// RunOnce executes one crawl with the given dependencies and writes the
// configured outputs. It is shared by the crawl and schedule commands.
func RunOnce(ctx context.Context, deps *common.CommandDeps) (*domain.Result, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if err := deps.Config.Validate(); err != nil {
		return nil, err
	}

	cfg := deps.Config
	log := deps.Logger

	fetchClient := fetcher.New(cfg.Fetcher)
	resolver := feed.NewResolver(fetchClient, log, cfg.Crawler.MaxSitemapDocs)
	articleExtractor := extractor.New()

	crawl := crawler.New(
		resolver,
		fetchClient,
		articleExtractor,
		sections.DefaultRules(),
		log,
		cfg.Crawler,
	)

	result, err := crawl.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("crawl interrupted: %w", err)
	}

	writer := output.NewWriter(log)
	if _, err := writer.WriteCSV(cfg.Output.CSVPath, result); err != nil {
		return result, fmt.Errorf("write csv: %w", err)
	}
	if cfg.Output.JSONPath != "" {
		if err := writer.WriteJSON(cfg.Output.JSONPath, result); err != nil {
			return result, fmt.Errorf("write json: %w", err)
		}
	}

	return result, nil
}

// renderSummary prints the per-section record counts as a table.
func renderSummary(result *domain.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	names := make([]string, 0, len(result.PerSection))
	for section := range result.PerSection {
		names = append(names, section)
	}
	sort.Strings(names)

	t.AppendHeader(table.Row{"Section", "Records"})
	for _, section := range names {
		t.AppendRow(table.Row{section, len(result.PerSection[section])})
	}
	t.AppendFooter(table.Row{"OK / Failed", fmt.Sprintf("%d / %d", result.OK, result.Failed)})

	t.Render()
}
