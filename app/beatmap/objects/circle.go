package objects

import "github.com/givikap120/flowpp/framework/math/vector"

type Circle struct {
	*HitObject
}

func NewCircle(time float64, pos vector.Vector2f, newCombo bool) *Circle {
	return &Circle{
		HitObject: &HitObject{
			StartPosRaw: pos,
			EndPosRaw:   pos,
			StartTime:   time,
			EndTime:     time,
			NewCombo:    newCombo,
		},
	}
}

func (circle *Circle) GetType() Type {
	return CIRCLE
}
