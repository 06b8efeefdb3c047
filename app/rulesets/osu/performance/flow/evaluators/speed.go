package evaluators

import (
	"math"

	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
)

const (
	singleSpacingThreshold float64 = 125.0
	minSpeedBonus          float64 = 75.0
	speedBalancingFactor   float64 = 40.0
	distanceBonusExponent  float64 = 3.5
)

// EvaluateSpeed returns the tapping difficulty of current. Spacing only counts towards speed while the pattern flows.
func EvaluateSpeed(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	distance := min(singleSpacingThreshold, current.JumpDistance+current.TravelDistance)
	distanceBonus := math.Pow(distance/singleSpacingThreshold, distanceBonusExponent) * current.Flow

	return EvaluateTapping(current) * (1 + distanceBonus)
}

// EvaluateTapping returns the pure tapping difficulty of current, without any movement
func EvaluateTapping(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	strainTime := current.StrainTime

	doubletapness := 1 - current.GetDoubletapness(current.Next(0))

	speedBonus := 1.0
	if strainTime < minSpeedBonus {
		speedBonus += 0.75 * math.Pow((minSpeedBonus-strainTime)/speedBalancingFactor, 2)
	}

	return speedBonus * doubletapness / strainTime
}
