package preprocessing

import (
	"math"

	"github.com/givikap120/flowpp/framework/math/mutils"
)

const (
	flowBpmStart    = 90.0
	flowBpmInterval = 30.0

	flowOffsetBpm   = 140.0
	flowOffsetScale = 20.0

	// irregular flow accepts longer jumps than base flow
	irregularFlowDistanceMultiplier = 1.5

	minAngleScale = 0.5

	roughlyEqualRatio = 1.25
	runStartRatio     = 0.667
)

// TransitionToTrue eases from 0 at start to 1 at start+interval with a cosine curve
func TransitionToTrue(value, start, interval float64) float64 {
	if value <= start {
		return 0
	}

	if value >= start+interval {
		return 1
	}

	// (1 - cos(x·π)) / 2 written with sine so the midpoint lands on exactly 0.5
	return 0.5 - 0.5*math.Sin(math.Pi*(0.5-(value-start)/interval))
}

// TransitionToFalse eases from 1 at start to 0 at start+interval with a cosine curve
func TransitionToFalse(value, start, interval float64) float64 {
	if value <= start {
		return 1
	}

	if value >= start+interval {
		return 0
	}

	return 0.5 + 0.5*math.Sin(math.Pi*(0.5-(value-start)/interval))
}

// IsRoughlyEqual reports whether a and b are within 25% of each other in both directions
func IsRoughlyEqual(a, b float64) bool {
	return a*roughlyEqualRatio > b && a/roughlyEqualRatio < b
}

// StreamBPM converts the time between two notes into the bpm of a 1/4 stream
func StreamBPM(strainTime float64) float64 {
	return 15000 / strainTime
}

// FlowOffset is the jump distance up to which a note at streamBpm is fully flowing
func FlowOffset(streamBpm float64) float64 {
	return (math.Tanh((streamBpm-flowOffsetBpm)/flowOffsetScale) + 2) * NormalizedRadius
}

func (o *DifficultyObject) calculateFlow() {
	if o.IsSpinner || o.lastIsSpinner {
		return
	}

	prev := o.Previous(0)
	prevPrev := o.Previous(1)

	streamBpm := StreamBPM(o.StrainTime)
	bpmFlow := TransitionToTrue(streamBpm, flowBpmStart, flowBpmInterval)

	offset := FlowOffset(streamBpm)
	angleScale := o.flowAngleScale(prev)

	if o.flowGateOpen(prev) {
		o.BaseFlow = bpmFlow * TransitionToFalse(o.JumpDistance, offset*angleScale, offset)
	}

	irregularFlow := 0.0

	if prev != nil && prevPrev != nil && IsRoughlyEqual(o.StrainTime, prev.StrainTime) && IsRoughlyEqual(prev.StrainTime, prevPrev.StrainTime) {
		extendedOffset := offset * irregularFlowDistanceMultiplier

		irregularFlow = bpmFlow * TransitionToFalse(o.JumpDistance, extendedOffset*angleScale, extendedOffset)
		irregularFlow *= prev.BaseFlow * prevPrev.BaseFlow
	}

	o.Flow = max(o.BaseFlow, irregularFlow)
	o.AngleLeniency = (1 - o.BaseFlow) * irregularFlow
}

// flowGateOpen checks that the rhythm leading into this object allows flow at all
func (o *DifficultyObject) flowGateOpen(prev *DifficultyObject) bool {
	if prev == nil {
		return true
	}

	if IsRoughlyEqual(prev.StrainTime, o.StrainTime) {
		return true
	}

	// first note of a run after a slower section
	return runStartRatio*prev.StrainTime >= o.StrainTime
}

// flowAngleScale shrinks the flow distance threshold for sharp angles, relaxed by the previous object's leniency
func (o *DifficultyObject) flowAngleScale(prev *DifficultyObject) float64 {
	if math.IsNaN(o.Angle) {
		return 1
	}

	scale := mutils.Lerp(minAngleScale, 1, TransitionToTrue(o.Angle, math.Pi/4, math.Pi/2))

	if prev != nil {
		scale = mutils.Lerp(scale, 1, prev.AngleLeniency)
	}

	return scale
}
