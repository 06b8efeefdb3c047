package skills

import (
	"math"

	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/evaluators"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
)

const (
	staminaSkillMultiplier float64 = 600
	staminaStrainDecayBase float64 = 0.6
)

// StaminaSkill rates sustained tapping. It decays slower than speed, so only long streams build it up.
type StaminaSkill struct {
	*StrainSkill

	currentStrain float64
}

func NewStaminaSkill() *StaminaSkill {
	skill := &StaminaSkill{StrainSkill: NewStrainSkill()}

	skill.StrainValueOf = skill.staminaStrainValue
	skill.CalculateInitialStrain = skill.staminaInitialStrain

	return skill
}

func (skill *StaminaSkill) strainDecay(ms float64) float64 {
	return math.Pow(staminaStrainDecayBase, ms/1000)
}

func (skill *StaminaSkill) staminaInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.currentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *StaminaSkill) staminaStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.currentStrain *= skill.strainDecay(current.StrainTime)
	skill.currentStrain += evaluators.EvaluateTapping(current) * staminaSkillMultiplier

	return skill.currentStrain
}
