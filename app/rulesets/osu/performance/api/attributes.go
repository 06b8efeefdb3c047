package api

import (
	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/beatmap/objects"
)

// Attributes is the difficulty record of one beatmap under one mod combination
type Attributes struct {
	// Total Star rating, visible on osu!'s beatmap page
	Total float64

	// Aim stars, needed for Performance Points (aka PP) calculations
	Aim float64

	// Speed stars, needed for Performance Points (aka PP) calculations
	Speed float64

	// Stamina stars, rewards long stretches of fast tapping
	Stamina float64

	// Precision is the part of Aim that comes from small circle sizes
	Precision float64

	// Accuracy is a rhythm complexity multiplier used directly by the accuracy pp value
	Accuracy float64

	// ApproachRate and OverallDifficulty are adjusted for playback rate
	ApproachRate      float64
	OverallDifficulty float64

	Mods difficulty.Modifier

	ObjectCount int
	Circles     int
	Sliders     int
	Spinners    int
	MaxCombo    int
}

// StrainPeaks contains section peaks of every skill, as well as peaks passed through star rating formula
type StrainPeaks struct {
	Aim     []float64
	Speed   []float64
	Stamina []float64

	// Total contains aim, speed and stamina peaks passed through star rating formula
	Total []float64
}

// ScoreStatistics are judgement counts of a finished play
type ScoreStatistics struct {
	CountGreat int
	CountOk    int
	CountMeh   int
	CountMiss  int

	MaxCombo int

	Mods difficulty.Modifier
}

func (stats ScoreStatistics) TotalHits() int {
	return stats.CountGreat + stats.CountOk + stats.CountMeh + stats.CountMiss
}

// Accuracy returns the osu!standard accuracy in [0, 1]
func (stats ScoreStatistics) Accuracy() float64 {
	totalHits := stats.TotalHits()
	if totalHits == 0 {
		return 0
	}

	return float64(stats.CountGreat*6+stats.CountOk*2+stats.CountMeh) / float64(totalHits*6)
}

type PPResults struct {
	Aim, Speed, Stamina, Precision, Acc, Total float64

	// HitError is the estimated standard deviation of hit timing in milliseconds
	HitError float64
}

type IDifficultyCalculator interface {
	CalculateSingle(objects []objects.IHitObject, diff *difficulty.Difficulty) Attributes
	CalculateStep(objects []objects.IHitObject, diff *difficulty.Difficulty) []Attributes
	CalculateStrainPeaks(objects []objects.IHitObject, diff *difficulty.Difficulty) StrainPeaks
	GetVersion() int
	GetVersionMessage() string
}

type IPerformanceCalculator interface {
	Calculate(attribs Attributes, stats ScoreStatistics, diff *difficulty.Difficulty) PPResults
}
