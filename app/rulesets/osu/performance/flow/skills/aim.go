package skills

import (
	"math"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/evaluators"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
)

const (
	aimSkillMultiplier float64 = 26.0
	aimStrainDecayBase float64 = 0.15
)

type AimSkill struct {
	*StrainSkill

	// distanceScale is below 1 when the small circle bonus is taken out
	distanceScale float64

	currentStrain float64
}

// NewAimSkill creates flow aware aim. Without precision, distances lose the small circle bonus.
func NewAimSkill(d *difficulty.Difficulty, withPrecision bool) *AimSkill {
	skill := &AimSkill{StrainSkill: NewStrainSkill(), distanceScale: 1}

	if !withPrecision {
		skill.distanceScale = 1 / preprocessing.SmallCircleBonus(d.CircleRadiusU)
	}

	skill.ReducedSectionCount = 10
	skill.ReducedStrainBaseline = 0.75

	skill.StrainValueOf = skill.aimStrainValue
	skill.CalculateInitialStrain = skill.aimInitialStrain

	return skill
}

func (skill *AimSkill) strainDecay(ms float64) float64 {
	return math.Pow(aimStrainDecayBase, ms/1000)
}

func (skill *AimSkill) aimInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.currentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *AimSkill) aimStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.currentStrain *= skill.strainDecay(current.DeltaTime)
	skill.currentStrain += evaluators.EvaluateAim(current, skill.distanceScale) * aimSkillMultiplier

	return skill.currentStrain
}
