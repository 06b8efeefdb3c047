package skills

import (
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/evaluators"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
)

// AccuracySkill averages the rhythm complexity of circles. Its value is used as is, without star scaling.
type AccuracySkill struct {
	total float64
	count int
}

func NewAccuracySkill() *AccuracySkill {
	return &AccuracySkill{}
}

func (skill *AccuracySkill) Process(current *preprocessing.DifficultyObject) {
	if current.IsSlider || current.IsSpinner {
		return
	}

	skill.total += evaluators.EvaluateRhythm(current)
	skill.count++
}

func (skill *AccuracySkill) DifficultyValue() float64 {
	if skill.count == 0 {
		return 0
	}

	return skill.total / float64(skill.count)
}
