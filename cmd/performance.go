package cmd

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/beatmap/loader"
	"github.com/givikap120/flowpp/app/config"
	"github.com/givikap120/flowpp/app/replay"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/api"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow"
)

func Performance() *cobra.Command {
	var (
		replayPath string
		stats      api.ScoreStatistics
	)

	cmd := &cobra.Command{
		Use:   "performance <beatmap.json>",
		Short: "Calculate pp of a score",
		Long: heredoc.Doc(`performance rates a score on a beatmap. The score is read
			from an osu! replay with --replay or described with the
			--great, --ok, --meh, --miss and --combo flags.

			Without any judgement flags an SS with full combo is assumed.
			Replay mods replace --mods.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			beatmap, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}

			if replayPath != "" {
				score, err := replay.LoadFile(replayPath)
				if err != nil {
					return err
				}

				if !score.Matches(beatmap.MD5) {
					log.WithFields(log.Fields{
						"replay":  score.BeatmapMD5,
						"beatmap": beatmap.MD5,
					}).Warn("Replay was played on a different beatmap version")
				}

				log.WithField("player", score.Player).Info("Loaded replay")

				stats = score.Statistics
				config.Mods = stats.Mods.String()
			} else {
				stats.Mods = difficulty.ParseMods(config.Mods)
			}

			rater, cleanup, err := newRater(cmd)
			if err != nil {
				return err
			}

			defer cleanup()

			attr, _, err := rater.Rate(beatmap)
			if err != nil {
				return err
			}

			if replayPath == "" {
				fillPerfectScore(&stats, attr)
			}

			if stats.TotalHits() > attr.ObjectCount {
				return fmt.Errorf("score has %d judgements but the beatmap has %d objects", stats.TotalHits(), attr.ObjectCount)
			}

			results := flow.NewPPCalculator().Calculate(attr, stats, rater.Difficulty(beatmap))

			fmt.Printf("%s - %s [%s] %s %.2f%% %dx %d miss\n",
				beatmap.Artist, beatmap.Title, beatmap.Version, stats.Mods.String(),
				stats.Accuracy()*100, stats.MaxCombo, stats.CountMiss)

			printAttributes(attr)
			printPerformance(results)

			return nil
		},
	}

	cmd.Flags().StringVar(&replayPath, "replay", "", "osu! replay (.osr) to read the score from")
	cmd.Flags().IntVar(&stats.CountGreat, "great", -1, "300 count, defaults to the remaining objects")
	cmd.Flags().IntVar(&stats.CountOk, "ok", 0, "100 count")
	cmd.Flags().IntVar(&stats.CountMeh, "meh", 0, "50 count")
	cmd.Flags().IntVar(&stats.CountMiss, "miss", 0, "miss count")
	cmd.Flags().IntVar(&stats.MaxCombo, "combo", -1, "max combo, defaults to the beatmap's max combo")

	return cmd
}

// fillPerfectScore replaces unset great count and combo with the best values the beatmap allows
func fillPerfectScore(stats *api.ScoreStatistics, attr api.Attributes) {
	if stats.CountGreat < 0 {
		stats.CountGreat = max(0, attr.ObjectCount-stats.CountOk-stats.CountMeh-stats.CountMiss)
	}

	if stats.MaxCombo < 0 {
		stats.MaxCombo = attr.MaxCombo
	}
}

func printPerformance(results api.PPResults) {
	table := newTable(os.Stdout, "Total", "Aim", "Speed", "Stamina", "Accuracy", "Precision", "Hit error")
	table.Append([]string{
		pp(results.Total),
		pp(results.Aim),
		pp(results.Speed),
		pp(results.Stamina),
		pp(results.Acc),
		pp(results.Precision),
		fmt.Sprintf("%.1fms", results.HitError),
	})
	table.Render()
}
