package skills

import (
	"math"

	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/evaluators"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
)

const (
	speedSkillMultiplier float64 = 1375
	speedStrainDecayBase float64 = 0.3
)

type SpeedSkill struct {
	*StrainSkill

	currentStrain float64
}

func NewSpeedSkill() *SpeedSkill {
	skill := &SpeedSkill{StrainSkill: NewStrainSkill()}

	skill.ReducedSectionCount = 5
	skill.ReducedStrainBaseline = 0.75

	skill.StrainValueOf = skill.speedStrainValue
	skill.CalculateInitialStrain = skill.speedInitialStrain

	return skill
}

func (skill *SpeedSkill) strainDecay(ms float64) float64 {
	return math.Pow(speedStrainDecayBase, ms/1000)
}

func (skill *SpeedSkill) speedInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.currentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *SpeedSkill) speedStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.currentStrain *= skill.strainDecay(current.StrainTime)
	skill.currentStrain += evaluators.EvaluateSpeed(current) * speedSkillMultiplier

	return skill.currentStrain
}
