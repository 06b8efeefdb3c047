package evaluators

import (
	"math"

	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
	"github.com/givikap120/flowpp/framework/math/mutils"
)

const (
	flowAimMultiplier       float64 = 0.8
	flowSharpAngleBonus     float64 = 0.75
	flowVelocityChangeBonus float64 = 0.5

	snapAcuteAngleBonus float64 = 0.6

	sliderTravelMultiplier float64 = 1.35
)

// EvaluateAim returns the aim difficulty of moving onto current. Snap and flow aim are blended by the object's flow value.
// distanceScale scales every distance, which lets a caller rate aim without the small circle bonus.
func EvaluateAim(current *preprocessing.DifficultyObject, distanceScale float64) float64 {
	if current.IsSpinner {
		return 0
	}

	sliderBonus := 0.0
	if current.TravelDistance > 0 {
		sliderBonus = current.TravelDistance * distanceScale / current.TravelTime * sliderTravelMultiplier
	}

	prev := current.Previous(0)

	jump := current.JumpDistance * distanceScale
	velocity := jump / current.StrainTime

	sharpness := 0.0
	if !math.IsNaN(current.Angle) {
		sharpness = preprocessing.TransitionToFalse(current.Angle, math.Pi/3, math.Pi/3)
	}

	// back and forth snapping is harder the wider the jump is
	distanceFactor := min(1, jump/(2*preprocessing.NormalizedRadius))
	snapDifficulty := velocity * (1 + snapAcuteAngleBonus*sharpness*distanceFactor)

	flowDifficulty := velocity * flowAimMultiplier * (1 + flowSharpAngleBonus*sharpness)

	if prev != nil && !prev.IsSpinner {
		prevVelocity := prev.JumpDistance * distanceScale / prev.StrainTime
		flowDifficulty += math.Abs(velocity-prevVelocity) * flowVelocityChangeBonus
	}

	return mutils.Lerp(snapDifficulty, flowDifficulty, current.Flow) + sliderBonus
}
