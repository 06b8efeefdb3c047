package cmd

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/givikap120/flowpp/app/batch"
	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/beatmap/loader"
	"github.com/givikap120/flowpp/app/config"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/api"
)

func Difficulty() *cobra.Command {
	var strains bool

	cmd := &cobra.Command{
		Use:   "difficulty <beatmap.json>",
		Short: "Calculate star rating of a beatmap",
		Long: heredoc.Doc(`difficulty prints the star rating of a beatmap together with
			its aim, speed, stamina, precision and accuracy components.

			With --strains the aim, speed and stamina section peaks are
			summarized too.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			beatmap, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}

			rater, cleanup, err := newRater(cmd)
			if err != nil {
				return err
			}

			defer cleanup()

			attr, cached, err := rater.Rate(beatmap)
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"beatmap": beatmap.MD5,
				"cached":  cached,
			}).Debug("Rated beatmap")

			fmt.Printf("%s - %s [%s] %s\n", beatmap.Artist, beatmap.Title, beatmap.Version, attr.Mods.String())

			printAttributes(attr)

			if strains {
				peaks := rater.Calculator().CalculateStrainPeaks(beatmap.HitObjects, rater.Difficulty(beatmap))
				printStrainPeaks(peaks)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&strains, "strains", false, "summarize section strain peaks")

	return cmd
}

// newRater builds a rater from the global flags, cleanup closes the attribute cache
func newRater(cmd *cobra.Command) (*batch.Rater, func(), error) {
	cache, err := openCache(cmd)
	if err != nil {
		log.WithError(err).Warn("Attribute cache unavailable, continuing without it")
		cache = nil
	}

	cleanup := func() {
		if cache != nil {
			if err := cache.Close(); err != nil {
				log.WithError(err).Error("Failed to close attribute cache")
			}
		}
	}

	if config.Rate != 0 && (config.Rate < difficulty.MinSpeed || config.Rate > difficulty.MaxSpeed) {
		cleanup()
		return nil, nil, fmt.Errorf("rate must be between %.2f and %.2f", difficulty.MinSpeed, difficulty.MaxSpeed)
	}

	rater := batch.NewRater(batch.Options{
		Mods:    difficulty.ParseMods(config.Mods),
		Rate:    config.Rate,
		Workers: config.Workers,
		Cache:   cache,
	})

	return rater, cleanup, nil
}

func printAttributes(attr api.Attributes) {
	table := newTable(os.Stdout, "Stars", "Aim", "Speed", "Stamina", "Precision", "Accuracy", "AR", "OD", "Objects", "Max combo")
	table.Append([]string{
		stars(attr.Total),
		stars(attr.Aim),
		stars(attr.Speed),
		stars(attr.Stamina),
		stars(attr.Precision),
		stars(attr.Accuracy),
		stars(attr.ApproachRate),
		stars(attr.OverallDifficulty),
		count(attr.ObjectCount),
		count(attr.MaxCombo),
	})
	table.Render()
}

func printStrainPeaks(peaks api.StrainPeaks) {
	table := newTable(os.Stdout, "Skill", "Sections", "Highest", "Average")

	for _, row := range []struct {
		name   string
		values []float64
	}{
		{"Aim", peaks.Aim},
		{"Speed", peaks.Speed},
		{"Stamina", peaks.Stamina},
		{"Total", peaks.Total},
	} {
		average := 0.0
		if len(row.values) > 0 {
			average = lo.Sum(row.values) / float64(len(row.values))
		}

		table.Append([]string{row.name, count(len(row.values)), stars(lo.Max(row.values)), stars(average)})
	}

	table.Render()
}
