package skills

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow/preprocessing"
	"github.com/givikap120/flowpp/framework/math/mutils"
)

const (
	defaultSectionLength float64 = 400
	defaultDecayWeight   float64 = 0.9
)

// Skill consumes difficulty objects in order and reduces them to a single value
type Skill interface {
	Process(current *preprocessing.DifficultyObject)
	DifficultyValue() float64
}

// StrainSkill tracks the highest strain of every section and sums the sorted peaks with a geometric weight.
// Concrete skills provide StrainValueOf and CalculateInitialStrain.
type StrainSkill struct {
	// SectionLength is the length of one strain section in rate adjusted milliseconds
	SectionLength float64

	// DecayWeight is the weight multiplier of every following section peak
	DecayWeight float64

	// ReducedSectionCount top peaks are scaled down towards ReducedStrainBaseline to lessen the effect of outliers
	ReducedSectionCount   int
	ReducedStrainBaseline float64

	StrainValueOf          func(current *preprocessing.DifficultyObject) float64
	CalculateInitialStrain func(time float64, current *preprocessing.DifficultyObject) float64

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks   []float64
	objectStrains []float64
}

func NewStrainSkill() *StrainSkill {
	return &StrainSkill{
		SectionLength:         defaultSectionLength,
		DecayWeight:           defaultDecayWeight,
		ReducedStrainBaseline: 1,
	}
}

func (skill *StrainSkill) Process(current *preprocessing.DifficultyObject) {
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/skill.SectionLength) * skill.SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.saveCurrentPeak()
		skill.startNewSectionFrom(skill.currentSectionEnd, current)
		skill.currentSectionEnd += skill.SectionLength
	}

	strain := skill.StrainValueOf(current)

	skill.objectStrains = append(skill.objectStrains, strain)
	skill.currentSectionPeak = max(strain, skill.currentSectionPeak)
}

func (skill *StrainSkill) saveCurrentPeak() {
	skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
}

func (skill *StrainSkill) startNewSectionFrom(end float64, current *preprocessing.DifficultyObject) {
	skill.currentSectionPeak = skill.CalculateInitialStrain(end, current)
}

// GetCurrentStrainPeaks returns the finished section peaks plus the peak of the current section
func (skill *StrainSkill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)
	peaks[len(peaks)-1] = skill.currentSectionPeak

	return peaks
}

// GetObjectStrains returns the strain after every processed object
func (skill *StrainSkill) GetObjectStrains() []float64 {
	return skill.objectStrains
}

func (skill *StrainSkill) DifficultyValue() float64 {
	peaks := lo.Filter(skill.GetCurrentStrainPeaks(), func(p float64, _ int) bool {
		return p > 0
	})

	sort.Sort(sort.Reverse(sort.Float64Slice(peaks)))

	if skill.ReducedSectionCount > 0 {
		for i := 0; i < min(len(peaks), skill.ReducedSectionCount); i++ {
			scale := math.Log10(mutils.Lerp(1, 10, mutils.Clamp(float64(i)/float64(skill.ReducedSectionCount), 0, 1)))
			peaks[i] *= mutils.Lerp(skill.ReducedStrainBaseline, 1, scale)
		}

		sort.Sort(sort.Reverse(sort.Float64Slice(peaks)))
	}

	difficulty := 0.0
	weight := 1.0

	for _, strain := range peaks {
		difficulty += strain * weight
		weight *= skill.DecayWeight
	}

	return difficulty
}
