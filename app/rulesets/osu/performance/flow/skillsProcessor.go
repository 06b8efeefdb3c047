package flow

import (
	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/skills"
)

// SkillFactory creates a fresh set of skills for one calculation pass
type SkillFactory func(d *difficulty.Difficulty) *SkillsProcessor

type SkillsProcessor struct {
	Aim skills.Skill

	// AimNoPrecision rates the same aim without the small circle bonus, the difference is reported as precision
	AimNoPrecision skills.Skill

	Speed    skills.Skill
	Stamina  skills.Skill
	Accuracy skills.Skill
}

// DefaultSkills is the SkillFactory used when none is given
func DefaultSkills(d *difficulty.Difficulty) *SkillsProcessor {
	return &SkillsProcessor{
		Aim:            skills.NewAimSkill(d, true),
		AimNoPrecision: skills.NewAimSkill(d, false),
		Speed:          skills.NewSpeedSkill(),
		Stamina:        skills.NewStaminaSkill(),
		Accuracy:       skills.NewAccuracySkill(),
	}
}

func (processor *SkillsProcessor) Process(current *preprocessing.DifficultyObject) {
	processor.Aim.Process(current)
	processor.AimNoPrecision.Process(current)
	processor.Speed.Process(current)
	processor.Stamina.Process(current)
	processor.Accuracy.Process(current)
}
