// Package schedule implements the schedule command: periodic crawls driven
// by a cron expression until interrupted.
package schedule

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/thaicrawl/cmd/common"
	"github.com/jonesrussell/thaicrawl/cmd/crawl"
)

// defaultCronSpec runs a crawl at the top of every hour.
const defaultCronSpec = "@hourly"

// newScheduler builds the cron runner. Runs never overlap: a tick that fires
// while the previous crawl is still going is skipped, keeping a single
// writer on the output files.
func newScheduler(opts ...cron.Option) *cron.Cron {
	opts = append([]cron.Option{
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	}, opts...)
	return cron.New(opts...)
}

// Command returns the schedule command for use in the root command.
func Command() *cobra.Command {
	var cronSpec string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run crawls on a recurring schedule",
		Long: `Run the crawl repeatedly on a cron schedule until interrupted with
Ctrl+C. Each run resolves the sitemap afresh and rewrites the datasets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			// Fail on configuration problems before the first tick.
			if err := deps.Config.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			log := deps.Logger.WithComponent("schedule")

			scheduler := newScheduler()
			_, err = scheduler.AddFunc(cronSpec, func() {
				result, runErr := crawl.RunOnce(ctx, deps)
				if runErr != nil {
					log.WithError(runErr).Error("scheduled crawl failed")
					return
				}
				log.Info("scheduled crawl finished", "ok", result.OK, "failed", result.Failed)
			})
			if err != nil {
				return fmt.Errorf("invalid cron spec %q: %w", cronSpec, err)
			}

			log.Info("scheduler started", "cron", cronSpec)
			scheduler.Start()

			<-ctx.Done()

			log.Info("scheduler stopping")
			stopCtx := scheduler.Stop()
			<-stopCtx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&cronSpec, "cron", defaultCronSpec, "cron expression for crawl runs")
	return cmd
}
