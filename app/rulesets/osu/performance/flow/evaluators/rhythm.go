package evaluators

import (
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
)

const rhythmChangeBonus float64 = 0.5

// EvaluateRhythm returns a multiplier in [1, 1.5] for rhythm changes leading into current.
// Changes inside a flowing pattern are easier to time and get a smaller bonus.
func EvaluateRhythm(current *preprocessing.DifficultyObject) float64 {
	prev := current.Previous(0)
	if current.IsSpinner || prev == nil || prev.IsSpinner {
		return 1
	}

	if preprocessing.IsRoughlyEqual(current.StrainTime, prev.StrainTime) {
		return 1
	}

	ratio := max(current.StrainTime, prev.StrainTime) / min(current.StrainTime, prev.StrainTime)

	return 1 + rhythmChangeBonus*preprocessing.TransitionToTrue(ratio, 1, 1)*(1-current.Flow)
}
