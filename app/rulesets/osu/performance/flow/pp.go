package flow

import (
	"math"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/api"
	"github.com/givikap120/flowpp/framework/math/mutils"
)

const (
	PerformanceBaseMultiplier float64 = 1.12

	// skillToPerformance turns cubed stars into pp
	skillToPerformance float64 = 3.9
	totalExponent      float64 = 1.1

	missWeightBase float64 = 0.97

	aimComboExponent     float64 = 0.8
	tappingComboExponent float64 = 0.4

	aimAccuracyBase       float64 = 0.995
	aimAccuracyMultiplier float64 = 1.04

	speedAccuracyBase       float64 = 0.985
	speedAccuracyMultiplier float64 = 1.12

	accuracyValueMultiplier float64 = 560
	accuracyHitErrorBase    float64 = 0.85
)

/* ------------------------------------------------------------- */
/* pp calc                                                       */

// PPv2 : structure to store ppv2 values
type PPv2 struct {
	attribs api.Attributes

	scoreMaxCombo int
	countGreat    int
	countOk       int
	countMeh      int
	countMiss     int

	totalHits int
	hitError  float64

	mods difficulty.Modifier
}

func NewPPCalculator() api.IPerformanceCalculator {
	return &PPv2{}
}

// ComputePerformance rates a play with the given statistics on a beatmap with attrs
func ComputePerformance(attrs api.Attributes, stats api.ScoreStatistics, mods difficulty.Modifier) api.PPResults {
	pp := &PPv2{}
	return pp.calculate(attrs, stats, mods)
}

// Calculate uses mods of diff, or the mods the attributes were calculated with if diff is nil
func (pp *PPv2) Calculate(attribs api.Attributes, stats api.ScoreStatistics, diff *difficulty.Difficulty) api.PPResults {
	mods := attribs.Mods
	if diff != nil {
		mods = diff.Mods
	}

	return pp.calculate(attribs, stats, mods)
}

func (pp *PPv2) calculate(attribs api.Attributes, stats api.ScoreStatistics, mods difficulty.Modifier) api.PPResults {
	pp.attribs = attribs
	pp.mods = mods
	pp.scoreMaxCombo = stats.MaxCombo
	pp.countGreat = stats.CountGreat
	pp.countOk = stats.CountOk
	pp.countMeh = stats.CountMeh
	pp.countMiss = stats.CountMiss
	pp.totalHits = stats.TotalHits()

	if pp.totalHits <= 0 || attribs.ObjectCount <= 0 {
		return api.PPResults{}
	}

	pp.hitError = EstimateHitError(attribs.Circles, pp.countGreat, pp.totalHits, attribs.OverallDifficulty)

	multiplier := PerformanceBaseMultiplier

	if pp.mods.Active(difficulty.NoFail) {
		multiplier *= max(0.90, 1.0-0.02*float64(pp.countMiss))
	}

	if pp.mods.Active(difficulty.SpunOut) {
		// partial plays can report fewer judgements than the beatmap has spinners
		multiplier *= max(0, 1.0-math.Pow(mutils.Clamp(float64(attribs.Spinners)/float64(pp.totalHits), 0, 1), 0.85))
	}

	results := api.PPResults{
		Aim:       pp.computeAimValue(pp.attribs.Aim),
		Precision: pp.computeAimValue(pp.attribs.Precision),
		Speed:     pp.computeTappingValue(pp.attribs.Speed),
		Stamina:   pp.computeTappingValue(pp.attribs.Stamina),
		Acc:       pp.computeAccuracyValue(),
		HitError:  pp.hitError,
	}

	results.Total = math.Pow(
		math.Pow(results.Aim, totalExponent)+
			math.Pow(max(results.Speed, results.Stamina), totalExponent)+
			math.Pow(results.Acc, totalExponent),
		1.0/totalExponent,
	) * multiplier

	return results
}

func (pp *PPv2) computeAimValue(stars float64) float64 {
	aimValue := difficultyToPerformance(stars)

	aimValue *= missWeight(pp.countMiss)
	aimValue *= comboWeight(pp.scoreMaxCombo, pp.attribs.MaxCombo, aimComboExponent)
	aimValue *= math.Pow(aimAccuracyBase, pp.hitError) * aimAccuracyMultiplier

	if pp.mods.Active(difficulty.Flashlight) {
		aimValue *= 1.0 + math.Atan(float64(pp.attribs.ObjectCount)/2000)
	}

	return aimValue
}

func (pp *PPv2) computeTappingValue(stars float64) float64 {
	tappingValue := difficultyToPerformance(stars)

	tappingValue *= missWeight(pp.countMiss)
	tappingValue *= comboWeight(pp.scoreMaxCombo, pp.attribs.MaxCombo, tappingComboExponent)
	tappingValue *= math.Pow(speedAccuracyBase, pp.hitError) * speedAccuracyMultiplier

	return tappingValue
}

func (pp *PPv2) computeAccuracyValue() float64 {
	if pp.mods.Active(difficulty.Relax) {
		return 0
	}

	// Longer maps are worth more
	lengthWeight := math.Tanh(float64(pp.attribs.Circles+400)/1050) * 1.2

	if pp.mods.Active(difficulty.Hidden) {
		lengthWeight *= 1.08
	}

	if pp.mods.Active(difficulty.Flashlight) {
		lengthWeight *= 1.02
	}

	return max(0, pp.attribs.Accuracy) * accuracyValueMultiplier * math.Pow(accuracyHitErrorBase, pp.hitError) * lengthWeight
}

func difficultyToPerformance(stars float64) float64 {
	return math.Pow(max(0, stars), 3) * skillToPerformance
}

func missWeight(misses int) float64 {
	return math.Pow(missWeightBase, float64(max(0, misses)))
}

func comboWeight(combo, maxCombo int, exponent float64) float64 {
	if maxCombo <= 0 {
		return 1
	}

	return min(1, math.Pow(max(0, float64(combo)/float64(maxCombo)), exponent))
}
