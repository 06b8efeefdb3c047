package flow

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/beatmap/objects"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/api"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/skills"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.0675

	// StarRatingMultiplier scales the combined aim and tapping stars into the total
	StarRatingMultiplier float64 = 1.6

	CurrentVersion int = 20241101
)

type DifficultyCalculator struct {
	skillFactory SkillFactory
}

func NewDifficultyCalculator() api.IDifficultyCalculator {
	return &DifficultyCalculator{skillFactory: DefaultSkills}
}

// NewDifficultyCalculatorWithSkills uses factory instead of the default skills. A nil factory means DefaultSkills.
func NewDifficultyCalculatorWithSkills(factory SkillFactory) *DifficultyCalculator {
	if factory == nil {
		factory = DefaultSkills
	}

	return &DifficultyCalculator{skillFactory: factory}
}

// ComputeDifficulty rates objects with base beatmap settings under mods and rate. Rate <= 0 uses the rate implied by mods.
// A nil base rates the objects with every setting at 5.
func ComputeDifficulty(objs []objects.IHitObject, base *difficulty.Difficulty, mods difficulty.Modifier, rate float64, factory SkillFactory) api.Attributes {
	var diff *difficulty.Difficulty

	if base != nil {
		diff = base.Clone()
	} else {
		diff = difficulty.NewDifficulty(5, 5, 5, 5)
	}

	diff.SetMods(mods)
	diff.SetCustomSpeed(rate)

	return NewDifficultyCalculatorWithSkills(factory).CalculateSingle(objs, diff)
}

// getStarsFromRawValues converts raw skill values to Attributes
func (diffCalc *DifficultyCalculator) getStarsFromRawValues(rawAim, rawAimNoPrecision, rawSpeed, rawStamina, accuracy float64, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	aimRating := math.Sqrt(rawAim) * StarScalingFactor
	precisionRating := math.Sqrt(max(0, rawAim-rawAimNoPrecision)) * StarScalingFactor
	speedRating := math.Sqrt(rawSpeed) * StarScalingFactor
	staminaRating := math.Sqrt(rawStamina) * StarScalingFactor

	if diff.CheckModActive(difficulty.TouchDevice) {
		aimRating = math.Pow(aimRating, 0.8)
	}

	if diff.CheckModActive(difficulty.Relax) {
		aimRating *= 0.9
		speedRating = 0
	}

	tappingRating := max(speedRating, staminaRating)

	attr.Total = math.Cbrt(math.Pow(aimRating, 3)+math.Pow(tappingRating, 3)) * StarRatingMultiplier
	attr.Aim = aimRating
	attr.Precision = precisionRating
	attr.Speed = speedRating
	attr.Stamina = staminaRating
	attr.Accuracy = accuracy

	attr.ApproachRate = diff.ARReal
	attr.OverallDifficulty = diff.ODReal
	attr.Mods = diff.Mods

	return attr
}

// Retrieves skill values and converts to Attributes
func (diffCalc *DifficultyCalculator) getStars(skills *SkillsProcessor, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	return diffCalc.getStarsFromRawValues(
		skills.Aim.DifficultyValue(),
		skills.AimNoPrecision.DifficultyValue(),
		skills.Speed.DifficultyValue(),
		skills.Stamina.DifficultyValue(),
		skills.Accuracy.DifficultyValue(),
		diff,
		attr,
	)
}

func (diffCalc *DifficultyCalculator) addObjectToAttribs(o objects.IHitObject, attr *api.Attributes) {
	switch s := o.(type) {
	case *objects.Slider:
		attr.Sliders++
		attr.MaxCombo += len(s.ScorePoints)
	case *objects.Circle:
		attr.Circles++
	case *objects.Spinner:
		attr.Spinners++
	}

	attr.MaxCombo++
	attr.ObjectCount++
}

// CalculateSingle calculates the final difficulty attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(objects []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	if len(objects) == 0 {
		return api.Attributes{Mods: diff.Mods}
	}

	diffObjects := preprocessing.CreateDifficultyObjects(objects, diff)

	skills := diffCalc.skillFactory(diff)

	attr := api.Attributes{}

	diffCalc.addObjectToAttribs(objects[0], &attr)

	for i, o := range diffObjects {
		diffCalc.addObjectToAttribs(objects[i+1], &attr)

		skills.Process(o)
	}

	return diffCalc.getStars(skills, diff, attr)
}

// CalculateStep calculates successive star ratings for every part of a beatmap
func (diffCalc *DifficultyCalculator) CalculateStep(objects []objects.IHitObject, diff *difficulty.Difficulty) []api.Attributes {
	if len(objects) == 0 {
		return []api.Attributes{}
	}

	modString := difficulty.GetDiffMaskedMods(diff.Mods).String()
	if modString == "" {
		modString = "NM"
	}

	log.WithFields(log.Fields{
		"mods":    modString,
		"objects": len(objects),
	}).Info("Calculating step SR")

	startTime := time.Now()

	diffObjects := preprocessing.CreateDifficultyObjects(objects, diff)

	skills := diffCalc.skillFactory(diff)

	stars := make([]api.Attributes, 1, len(objects))

	diffCalc.addObjectToAttribs(objects[0], &stars[0])
	stars[0] = diffCalc.getStars(skills, diff, stars[0])

	for i, o := range diffObjects {
		attr := stars[i]
		diffCalc.addObjectToAttribs(objects[i+1], &attr)

		skills.Process(o)

		stars = append(stars, diffCalc.getStars(skills, diff, attr))
	}

	log.WithField("took", time.Since(startTime).Truncate(time.Millisecond).String()).Info("Calculations finished")

	return stars
}

// CalculateStrainPeaks always uses the default strain skills, since only they keep section peaks
func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(objects []objects.IHitObject, diff *difficulty.Difficulty) api.StrainPeaks {
	diffObjects := preprocessing.CreateDifficultyObjects(objects, diff)

	aim := skills.NewAimSkill(diff, true)
	speed := skills.NewSpeedSkill()
	stamina := skills.NewStaminaSkill()

	for _, o := range diffObjects {
		aim.Process(o)
		speed.Process(o)
		stamina.Process(o)
	}

	peaks := api.StrainPeaks{
		Aim:     aim.GetCurrentStrainPeaks(),
		Speed:   speed.GetCurrentStrainPeaks(),
		Stamina: stamina.GetCurrentStrainPeaks(),
	}

	peaks.Total = make([]float64, len(peaks.Aim))

	for i := 0; i < len(peaks.Aim); i++ {
		stars := diffCalc.getStarsFromRawValues(peaks.Aim[i], peaks.Aim[i], peaks.Speed[i], peaks.Stamina[i], 0, diff, api.Attributes{})
		peaks.Total[i] = stars.Total
	}

	return peaks
}

func (diffCalc *DifficultyCalculator) GetVersion() int {
	return CurrentVersion
}

func (diffCalc *DifficultyCalculator) GetVersionMessage() string {
	return "2024-11-01: flow aware aim"
}
