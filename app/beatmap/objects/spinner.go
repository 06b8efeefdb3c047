package objects

import "github.com/givikap120/flowpp/framework/math/vector"

var spinnerCenter = vector.NewVec2f(256, 192)

// Spinner is held without cursor movement requirements, so difficulty code treats its position as irrelevant.
type Spinner struct {
	*HitObject
}

func NewSpinner(startTime, endTime float64) *Spinner {
	return &Spinner{
		HitObject: &HitObject{
			StartPosRaw: spinnerCenter,
			EndPosRaw:   spinnerCenter,
			StartTime:   startTime,
			EndTime:     max(startTime, endTime),
			NewCombo:    true,
		},
	}
}

func (spinner *Spinner) GetType() Type {
	return SPINNER
}
