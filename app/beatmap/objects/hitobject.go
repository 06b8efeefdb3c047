package objects

import (
	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/framework/math/vector"
)

type Type int

const (
	CIRCLE Type = iota
	SLIDER
	SPINNER
)

func (t Type) String() string {
	switch t {
	case SLIDER:
		return "slider"
	case SPINNER:
		return "spinner"
	default:
		return "circle"
	}
}

type IHitObject interface {
	GetID() int
	SetID(id int)

	GetStartTime() float64
	GetEndTime() float64
	GetDuration() float64

	GetPositionAt(time float64) vector.Vector2f
	GetStartPosition() vector.Vector2f
	GetEndPosition() vector.Vector2f

	GetStackedStartPositionMod(diff *difficulty.Difficulty) vector.Vector2f
	GetStackedEndPositionMod(diff *difficulty.Difficulty) vector.Vector2f
	GetStackedPositionAtMod(time float64, diff *difficulty.Difficulty) vector.Vector2f

	GetStackIndex() int
	SetStackIndex(index int)

	IsNewCombo() bool
	SetNewCombo(b bool)

	GetType() Type
}

type HitObject struct {
	StartPosRaw vector.Vector2f
	EndPosRaw   vector.Vector2f

	StartTime float64
	EndTime   float64

	StackIndex int

	HitObjectID int

	NewCombo bool
}

func (hitObject *HitObject) GetID() int {
	return hitObject.HitObjectID
}

func (hitObject *HitObject) SetID(id int) {
	hitObject.HitObjectID = id
}

func (hitObject *HitObject) GetStartTime() float64 {
	return hitObject.StartTime
}

func (hitObject *HitObject) GetEndTime() float64 {
	return hitObject.EndTime
}

func (hitObject *HitObject) GetDuration() float64 {
	return hitObject.EndTime - hitObject.StartTime
}

func (hitObject *HitObject) GetPositionAt(float64) vector.Vector2f {
	return hitObject.StartPosRaw
}

func (hitObject *HitObject) GetStartPosition() vector.Vector2f {
	return hitObject.StartPosRaw
}

func (hitObject *HitObject) GetEndPosition() vector.Vector2f {
	return hitObject.EndPosRaw
}

func (hitObject *HitObject) GetStackedStartPositionMod(diff *difficulty.Difficulty) vector.Vector2f {
	return ModifyPosition(hitObject.StartPosRaw, hitObject.StackIndex, diff)
}

func (hitObject *HitObject) GetStackedEndPositionMod(diff *difficulty.Difficulty) vector.Vector2f {
	return ModifyPosition(hitObject.EndPosRaw, hitObject.StackIndex, diff)
}

func (hitObject *HitObject) GetStackedPositionAtMod(_ float64, diff *difficulty.Difficulty) vector.Vector2f {
	return hitObject.GetStackedStartPositionMod(diff)
}

func (hitObject *HitObject) GetStackIndex() int {
	return hitObject.StackIndex
}

func (hitObject *HitObject) SetStackIndex(index int) {
	hitObject.StackIndex = index
}

func (hitObject *HitObject) IsNewCombo() bool {
	return hitObject.NewCombo
}

func (hitObject *HitObject) SetNewCombo(b bool) {
	hitObject.NewCombo = b
}

// ModifyPosition flips the position for HardRock and applies the stacking offset for the given difficulty.
func ModifyPosition(pos vector.Vector2f, stackIndex int, diff *difficulty.Difficulty) vector.Vector2f {
	if diff.CheckModActive(difficulty.HardRock) {
		pos.Y = difficulty.PlayfieldSize - pos.Y
	}

	if stackIndex == 0 {
		return pos
	}

	offset := float32(stackIndex) * float32(-diff.CircleRadiusU/10)

	return pos.AddS(offset, offset)
}
