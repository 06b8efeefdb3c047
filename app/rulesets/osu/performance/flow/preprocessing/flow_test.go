package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/beatmap/objects"
	"github.com/givikap120/flowpp/framework/math/vector"
)

func TestTransitionBoundaries(t *testing.T) {
	for _, v := range []float64{-10, 0, 89.9, 90} {
		assert.Equal(t, 0.0, TransitionToTrue(v, 90, 30), "value %f", v)
		assert.Equal(t, 1.0, TransitionToFalse(v, 90, 30), "value %f", v)
	}

	for _, v := range []float64{120, 120.1, 500} {
		assert.Equal(t, 1.0, TransitionToTrue(v, 90, 30), "value %f", v)
		assert.Equal(t, 0.0, TransitionToFalse(v, 90, 30), "value %f", v)
	}

	assert.Equal(t, 0.5, TransitionToTrue(105, 90, 30))
	assert.Equal(t, 0.5, TransitionToFalse(105, 90, 30))
	assert.Equal(t, 0.5, TransitionToTrue(1.5, 1, 1))
}

func TestTransitionMirror(t *testing.T) {
	tests := []struct {
		start, interval float64
	}{
		{90, 30},
		{0, 1},
		{math.Pi / 4, math.Pi / 2},
		{-5, 0.25},
	}

	for _, tt := range tests {
		for i := -4; i <= 24; i++ {
			v := tt.start + tt.interval*float64(i)/20

			assert.InDelta(t, 1.0, TransitionToTrue(v, tt.start, tt.interval)+TransitionToFalse(v, tt.start, tt.interval), 1e-12)
		}
	}
}

func TestTransitionMonotonic(t *testing.T) {
	last := 0.0

	for v := 80.0; v <= 130; v += 0.5 {
		cur := TransitionToTrue(v, 90, 30)
		assert.GreaterOrEqual(t, cur, last)
		last = cur
	}
}

func TestIsRoughlyEqual(t *testing.T) {
	assert.True(t, IsRoughlyEqual(100, 120))
	assert.False(t, IsRoughlyEqual(100, 130))
	assert.True(t, IsRoughlyEqual(100, 100))
	assert.False(t, IsRoughlyEqual(100, 125))

	values := []float64{1, 50, 79, 80, 99.9, 100, 124, 125, 126, 200, 1000}

	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, IsRoughlyEqual(a, b), IsRoughlyEqual(b, a), "a=%f b=%f", a, b)
		}
	}
}

func TestStreamBPMAndOffset(t *testing.T) {
	assert.Equal(t, 75.0, StreamBPM(200))
	assert.Equal(t, 150.0, StreamBPM(100))

	assert.InDelta(t, 104.0, FlowOffset(140), 1e-9)
	assert.Less(t, FlowOffset(100), FlowOffset(200))
}

func newTestDifficulty() *difficulty.Difficulty {
	return difficulty.NewDifficulty(5, 4, 8, 9)
}

func circles(times []float64, positions []vector.Vector2f) []objects.IHitObject {
	objs := make([]objects.IHitObject, len(times))
	for i := range times {
		objs[i] = objects.NewCircle(times[i], positions[i], false)
	}

	return objs
}

func TestFlowSlowPairHasNoFlow(t *testing.T) {
	d := newTestDifficulty()

	for _, distance := range []float32{0, 10, 50, 300} {
		objs := circles([]float64{1000, 1200}, []vector.Vector2f{vector.NewVec2f(100, 100), vector.NewVec2f(100+distance, 100)})

		diffObjects := CreateDifficultyObjects(objs, d)
		require.Len(t, diffObjects, 1)

		assert.Equal(t, 0.0, diffObjects[0].BaseFlow)
		assert.Equal(t, 0.0, diffObjects[0].Flow)
	}
}

func TestFlowFastPairFlows(t *testing.T) {
	d := newTestDifficulty()

	objs := circles([]float64{1000, 1100}, []vector.Vector2f{vector.NewVec2f(100, 100), vector.NewVec2f(150, 100)})

	diffObjects := CreateDifficultyObjects(objs, d)
	require.Len(t, diffObjects, 1)

	obj := diffObjects[0]

	assert.Less(t, obj.JumpDistance, FlowOffset(StreamBPM(obj.StrainTime)))
	assert.Greater(t, obj.BaseFlow, 0.0)
	assert.Equal(t, obj.BaseFlow, obj.Flow)
}

func TestFlowRunStartAfterSlowerSection(t *testing.T) {
	d := newTestDifficulty()

	objs := circles([]float64{0, 150, 300, 390}, []vector.Vector2f{
		vector.NewVec2f(100, 100),
		vector.NewVec2f(110, 100),
		vector.NewVec2f(120, 100),
		vector.NewVec2f(130, 100),
	})

	diffObjects := CreateDifficultyObjects(objs, d)
	require.Len(t, diffObjects, 3)

	// 100 bpm stream notes flow partially
	assert.InDelta(t, 0.25, diffObjects[0].BaseFlow, 1e-9)
	assert.InDelta(t, 0.25, diffObjects[1].BaseFlow, 1e-9)

	run := diffObjects[2]

	assert.InDelta(t, 90.0, run.StrainTime, 1e-9)
	assert.False(t, IsRoughlyEqual(diffObjects[1].StrainTime, run.StrainTime))
	assert.GreaterOrEqual(t, runStartRatio*diffObjects[1].StrainTime, run.StrainTime)

	assert.InDelta(t, 1.0, run.BaseFlow, 1e-9)
	assert.Equal(t, run.BaseFlow, run.Flow)
}

// streamWithJump builds a 150 bpm stream of length notes followed by a jump of jumpOffsets flow offsets
func streamWithJump(d *difficulty.Difficulty, length int, jumpOffsets float64) ([]float64, []vector.Vector2f) {
	times := make([]float64, 0, length+1)
	positions := make([]vector.Vector2f, 0, length+1)

	for i := 0; i < length; i++ {
		times = append(times, 1000+float64(i)*100)
		positions = append(positions, vector.NewVec2f(50+float32(i)*20, 200))
	}

	jump := DenormalizeDistance(jumpOffsets*FlowOffset(StreamBPM(100)), d.CircleRadiusU)

	last := positions[len(positions)-1]

	times = append(times, times[len(times)-1]+100)
	positions = append(positions, vector.NewVec2f(last.X+float32(jump), 200))

	return times, positions
}

func TestFlowIrregularJumpInStream(t *testing.T) {
	d := newTestDifficulty()

	times, positions := streamWithJump(d, 8, 2.5)

	// return to the last stream note, making a sharp angle after the jump
	times = append(times, times[len(times)-1]+100)
	positions = append(positions, positions[len(positions)-2])

	diffObjects := CreateDifficultyObjects(circles(times, positions), d)
	require.Len(t, diffObjects, 9)

	for _, o := range diffObjects[:6] {
		assert.InDelta(t, 1.0, o.BaseFlow, 1e-9)
		assert.Equal(t, 0.0, o.AngleLeniency)
	}

	jump := diffObjects[7]

	assert.Equal(t, 0.0, jump.BaseFlow)
	assert.InDelta(t, 0.25, jump.Flow, 1e-3)
	assert.Greater(t, jump.Flow, jump.BaseFlow)
	assert.InDelta(t, 0.25, jump.AngleLeniency, 1e-3)

	after := diffObjects[8]
	require.False(t, math.IsNaN(after.Angle))
	assert.Less(t, after.Angle, math.Pi/4)

	assert.InDelta(t, 0.5, after.flowAngleScale(nil), 1e-9)
	assert.InDelta(t, 0.5+0.5*jump.AngleLeniency, after.flowAngleScale(jump), 1e-9)
	assert.Greater(t, after.flowAngleScale(jump), after.flowAngleScale(nil))
}

func TestFlowIrregularNeedsTwoPredecessors(t *testing.T) {
	d := newTestDifficulty()

	times, positions := streamWithJump(d, 2, 2.5)

	diffObjects := CreateDifficultyObjects(circles(times, positions), d)
	require.Len(t, diffObjects, 2)

	assert.InDelta(t, 1.0, diffObjects[0].BaseFlow, 1e-9)

	jump := diffObjects[1]
	require.Nil(t, jump.Previous(1))

	assert.Equal(t, 0.0, jump.BaseFlow)
	assert.Equal(t, 0.0, jump.Flow)
	assert.Equal(t, 0.0, jump.AngleLeniency)
}

func TestFlowFastPairTooFarApart(t *testing.T) {
	d := newTestDifficulty()

	objs := circles([]float64{1000, 1100}, []vector.Vector2f{vector.NewVec2f(0, 100), vector.NewVec2f(500, 100)})

	diffObjects := CreateDifficultyObjects(objs, d)
	require.Len(t, diffObjects, 1)

	assert.Equal(t, 0.0, diffObjects[0].BaseFlow)
}

func TestFlowStream(t *testing.T) {
	d := newTestDifficulty()

	times := make([]float64, 16)
	positions := make([]vector.Vector2f, 16)

	for i := range times {
		times[i] = 1000 + float64(i)*100
		positions[i] = vector.NewVec2f(100+float32(i)*20, 200)
	}

	diffObjects := CreateDifficultyObjects(circles(times, positions), d)
	require.Len(t, diffObjects, 15)

	for _, o := range diffObjects {
		assert.InDelta(t, 1.0, o.Flow, 1e-9)
		assert.GreaterOrEqual(t, o.AngleLeniency, 0.0)
		assert.LessOrEqual(t, o.AngleLeniency, 1.0)
	}
}

func TestFlowRangeOnJumps(t *testing.T) {
	d := newTestDifficulty()

	times := make([]float64, 12)
	positions := make([]vector.Vector2f, 12)

	for i := range times {
		times[i] = 1000 + float64(i)*110
		positions[i] = vector.NewVec2f(100+float32(i%2)*250, 200+float32(i%3)*20)
	}

	for _, o := range CreateDifficultyObjects(circles(times, positions), d) {
		assert.GreaterOrEqual(t, o.BaseFlow, 0.0)
		assert.LessOrEqual(t, o.BaseFlow, 1.0)
		assert.GreaterOrEqual(t, o.Flow, o.BaseFlow)
		assert.LessOrEqual(t, o.Flow, 1.0)
		assert.GreaterOrEqual(t, o.AngleLeniency, 0.0)
		assert.LessOrEqual(t, o.AngleLeniency, 1.0)
	}
}

func TestFlowIgnoresSpinners(t *testing.T) {
	d := newTestDifficulty()

	objs := []objects.IHitObject{
		objects.NewCircle(1000, vector.NewVec2f(100, 100), false),
		objects.NewSpinner(1100, 1500),
		objects.NewCircle(1600, vector.NewVec2f(100, 100), false),
	}

	diffObjects := CreateDifficultyObjects(objs, d)
	require.Len(t, diffObjects, 2)

	for _, o := range diffObjects {
		assert.Equal(t, 0.0, o.Flow)
		assert.Equal(t, 0.0, o.JumpDistance)
	}
}
