package preprocessing

import (
	"math"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/beatmap/objects"
	"github.com/givikap120/flowpp/framework/math/math32"
	"github.com/givikap120/flowpp/framework/math/vector"
)

const (
	NormalizedRadius        = 52.0
	CircleSizeBuffThreshold = 30.0

	MinStrainTime        = 50.0
	MinLastTwoStrainTime = 100.0
	MinGapTime           = 50.0

	minRadius = 1.0
)

type DifficultyObject struct {
	listOfDiffs *[]*DifficultyObject
	Index       int

	Diff *difficulty.Difficulty

	BaseObject objects.IHitObject

	IsSlider      bool
	IsSpinner     bool
	lastIsSpinner bool

	lastObject     objects.IHitObject
	lastLastObject objects.IHitObject

	DeltaTime float64
	StartTime float64
	EndTime   float64

	RawJumpDistance float64
	JumpDistance    float64

	// TravelDistance is the normalized lazy travel distance of the previous object if it's a slider
	TravelDistance float64
	TravelTime     float64

	// Angle is NaN until there are three positioned objects
	Angle float64

	StrainTime        float64
	LastTwoStrainTime float64
	GapTime           float64

	GreatWindow float64
	ClockRate   float64
	Preempt     float64

	BaseFlow      float64
	Flow          float64
	AngleLeniency float64
}

// CreateDifficultyObjects builds one DifficultyObject per hit object except the first, in order.
func CreateDifficultyObjects(objs []objects.IHitObject, d *difficulty.Difficulty) []*DifficultyObject {
	if len(objs) < 2 {
		return []*DifficultyObject{}
	}

	wrapped := make([]objects.IHitObject, len(objs))

	for i, o := range objs {
		if s, ok := o.(*objects.Slider); ok {
			wrapped[i] = NewLazySlider(s, d)
		} else {
			wrapped[i] = o
		}
	}

	diffObjects := make([]*DifficultyObject, 0, len(objs)-1)

	for i := 1; i < len(wrapped); i++ {
		var lastLast objects.IHitObject
		if i > 1 {
			lastLast = wrapped[i-2]
		}

		diffObjects = append(diffObjects, NewDifficultyObject(wrapped[i], lastLast, wrapped[i-1], d, &diffObjects, i-1))
	}

	return diffObjects
}

func NewDifficultyObject(hitObject, lastLastObject, lastObject objects.IHitObject, d *difficulty.Difficulty, listOfDiffs *[]*DifficultyObject, index int) *DifficultyObject {
	obj := &DifficultyObject{
		listOfDiffs:       listOfDiffs,
		Index:             index,
		Diff:              d,
		BaseObject:        hitObject,
		lastObject:        lastObject,
		lastLastObject:    lastLastObject,
		DeltaTime:         (hitObject.GetStartTime() - lastObject.GetStartTime()) / d.Speed,
		StartTime:         hitObject.GetStartTime() / d.Speed,
		EndTime:           hitObject.GetEndTime() / d.Speed,
		Angle:             math.NaN(),
		LastTwoStrainTime: MinLastTwoStrainTime,
		GreatWindow:       2 * d.Hit300U / d.Speed,
		ClockRate:         d.Speed,
		Preempt:           d.PreemptU / d.Speed,
	}

	obj.IsSpinner = hitObject.GetType() == objects.SPINNER
	obj.IsSlider = hitObject.GetType() == objects.SLIDER
	obj.lastIsSpinner = lastObject.GetType() == objects.SPINNER

	obj.StrainTime = max(obj.DeltaTime, MinStrainTime)
	obj.GapTime = max((hitObject.GetStartTime()-lastObject.GetEndTime())/d.Speed, MinGapTime)

	if lastLastObject != nil {
		obj.LastTwoStrainTime = max((hitObject.GetStartTime()-lastLastObject.GetStartTime())/d.Speed, MinLastTwoStrainTime)
	}

	obj.setDistances()
	obj.calculateFlow()

	return obj
}

func (o *DifficultyObject) Previous(backwardsIndex int) *DifficultyObject {
	index := o.Index - (backwardsIndex + 1)

	if index < 0 {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) Next(forwardsIndex int) *DifficultyObject {
	index := o.Index + (forwardsIndex + 1)

	if index >= len(*o.listOfDiffs) {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

// GetDoubletapness returns how likely the current and next object are to be hit with a single tap motion
func (o *DifficultyObject) GetDoubletapness(osuNextObj *DifficultyObject) float64 {
	if osuNextObj != nil {
		currDeltaTime := max(1, o.DeltaTime)
		nextDeltaTime := max(1, osuNextObj.DeltaTime)
		deltaDifference := math.Abs(nextDeltaTime - currDeltaTime)
		speedRatio := currDeltaTime / max(currDeltaTime, deltaDifference)
		windowRatio := math.Pow(min(1, currDeltaTime/o.GreatWindow), 2)
		return 1 - math.Pow(speedRatio, 1-windowRatio)
	}

	return 0
}

func (o *DifficultyObject) setDistances() {
	scalingFactor := ScalingFactor(o.Diff.CircleRadiusU)

	if lastSlider, ok := o.lastObject.(*LazySlider); ok {
		o.TravelDistance = float64(lastSlider.LazyTravelDistance()) * scalingFactor
		o.TravelTime = max(lastSlider.LazyTravelTime()/o.Diff.Speed, MinStrainTime)
	}

	if o.IsSpinner || o.lastIsSpinner {
		return
	}

	lastCursorPosition := getEndCursorPosition(o.lastObject, o.Diff)

	o.RawJumpDistance = float64(o.BaseObject.GetStackedStartPositionMod(o.Diff).Dst(lastCursorPosition))
	o.JumpDistance = o.RawJumpDistance * scalingFactor

	if o.lastLastObject == nil || o.lastLastObject.GetType() == objects.SPINNER {
		return
	}

	lastLastCursorPosition := getEndCursorPosition(o.lastLastObject, o.Diff)

	v1 := lastLastCursorPosition.Sub(o.lastObject.GetStackedStartPositionMod(o.Diff))
	v2 := o.BaseObject.GetStackedStartPositionMod(o.Diff).Sub(lastCursorPosition)

	o.Angle = float64(math32.Abs(math32.Atan2(v1.Cross(v2), v1.Dot(v2))))
}

func getEndCursorPosition(obj objects.IHitObject, d *difficulty.Difficulty) (pos vector.Vector2f) {
	pos = obj.GetStackedStartPositionMod(d)

	if s, ok := obj.(*LazySlider); ok {
		pos = s.LazyEndPosition()
	}

	return
}

// ScalingFactor normalizes distances to a circle radius of NormalizedRadius,
// including the small circle bonus.
func ScalingFactor(radius float64) float64 {
	radius = max(radius, minRadius)

	return NormalizedRadius / radius * SmallCircleBonus(radius)
}

// SmallCircleBonus is a multiplier of up to 1.1 for radii below CircleSizeBuffThreshold
func SmallCircleBonus(radius float64) float64 {
	radius = max(radius, minRadius)

	if radius >= CircleSizeBuffThreshold {
		return 1
	}

	return 1 + min(CircleSizeBuffThreshold-radius, 5.0)/50.0
}

func NormalizeDistance(distance, radius float64) float64 {
	return distance * ScalingFactor(radius)
}

func DenormalizeDistance(distance, radius float64) float64 {
	return distance / ScalingFactor(radius)
}
