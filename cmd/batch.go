package cmd

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/givikap120/flowpp/app/batch"
	"github.com/givikap120/flowpp/app/config"
)

func Batch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Rate every beatmap in a directory",
		Long: heredoc.Doc(`batch rates all beatmap documents in a directory with a pool
			of workers and prints them ordered by star rating.

			With --watch, beatmaps created or modified later are rated
			as they appear until interrupted.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			paths, err := batch.FindBeatmaps(args[0])
			if err != nil {
				return err
			}

			rater, cleanup, err := newRater(cmd)
			if err != nil {
				return err
			}

			defer cleanup()

			log.WithFields(log.Fields{
				"beatmaps": len(paths),
				"workers":  rater.Workers(),
			}).Info("Rating beatmaps")

			printResults(runWithSpinner(ctx, rater, paths))

			if !config.Watch {
				return nil
			}

			return rater.Watch(ctx, args[0], func(result batch.Result) {
				printResults([]batch.Result{result})
			})
		},
	}

	cmd.Flags().IntVarP(&config.Workers, "workers", "w", 0, "number of workers (default is the number of physical cores)")
	cmd.Flags().BoolVar(&config.Watch, "watch", false, "keep rating beatmaps added to the directory")

	return cmd
}

func runWithSpinner(ctx context.Context, rater *batch.Rater, paths []string) []batch.Result {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " rating beatmaps"
	s.Start()

	defer s.Stop()

	return rater.Run(ctx, paths)
}

func printResults(results []batch.Result) {
	failed := 0

	rated := make([]batch.Result, 0, len(results))

	for _, result := range results {
		if result.Err != nil {
			log.WithError(result.Err).WithField("file", result.Path).Error("Failed to rate beatmap")
			failed++

			continue
		}

		rated = append(rated, result)
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Attributes.Total > rated[j].Attributes.Total
	})

	if len(rated) > 0 {
		table := newTable(os.Stdout, "Beatmap", "Stars", "Aim", "Speed", "Stamina", "Precision", "Cached")
		table.SetColumnAlignment([]int{
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_CENTER,
		})

		for _, result := range rated {
			cached := ""
			if result.Cached {
				cached = "yes"
			}

			table.Append([]string{
				result.Name(),
				stars(result.Attributes.Total),
				stars(result.Attributes.Aim),
				stars(result.Attributes.Speed),
				stars(result.Attributes.Stamina),
				stars(result.Attributes.Precision),
				cached,
			})
		}

		table.Render()
	}

	if failed > 0 {
		log.Warnf("%s of %s beatmaps failed", count(failed), count(len(results)))
	}
}
