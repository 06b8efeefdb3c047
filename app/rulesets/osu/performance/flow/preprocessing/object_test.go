package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givikap120/flowpp/app/beatmap/objects"
	"github.com/givikap120/flowpp/framework/math/curves"
	"github.com/givikap120/flowpp/framework/math/vector"
)

func TestNormalizeDistanceIdempotence(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 10, 25, 29.9, 30, 36.5, 52, 80} {
		for _, distance := range []float64{0, 1, 13.37, 100, 512} {
			assert.InDelta(t, distance, DenormalizeDistance(NormalizeDistance(distance, radius), radius), 1e-9)
		}
	}
}

func TestScalingFactor(t *testing.T) {
	assert.Equal(t, 1.0, ScalingFactor(NormalizedRadius))
	assert.InDelta(t, 2.6*1.1, ScalingFactor(20), 1e-12)
	assert.InDelta(t, 52.0/28*1.04, ScalingFactor(28), 1e-12)

	assert.Equal(t, 1.0, SmallCircleBonus(30))
	assert.InDelta(t, 1.1, SmallCircleBonus(1), 1e-12)
}

func TestCreateDifficultyObjectsCount(t *testing.T) {
	d := newTestDifficulty()

	assert.Empty(t, CreateDifficultyObjects(nil, d))
	assert.Empty(t, CreateDifficultyObjects(circles([]float64{0}, []vector.Vector2f{{}}), d))

	objs := circles([]float64{0, 100, 200, 300}, make([]vector.Vector2f, 4))

	diffObjects := CreateDifficultyObjects(objs, d)
	require.Len(t, diffObjects, 3)

	for i, o := range diffObjects {
		assert.Equal(t, i, o.Index)
		assert.Same(t, objs[i+1], o.BaseObject)
	}

	assert.Nil(t, diffObjects[0].Previous(0))
	assert.Same(t, diffObjects[0], diffObjects[2].Previous(1))
	assert.Nil(t, diffObjects[2].Previous(2))
	assert.Same(t, diffObjects[2], diffObjects[0].Next(1))
	assert.Nil(t, diffObjects[2].Next(0))
}

func TestTimingFloors(t *testing.T) {
	d := newTestDifficulty()

	objs := circles([]float64{1000, 1010, 1030}, make([]vector.Vector2f, 3))

	diffObjects := CreateDifficultyObjects(objs, d)
	require.Len(t, diffObjects, 2)

	for _, o := range diffObjects {
		assert.Equal(t, MinStrainTime, o.StrainTime)
		assert.Equal(t, MinGapTime, o.GapTime)
		assert.Equal(t, MinLastTwoStrainTime, o.LastTwoStrainTime)
	}

	assert.Equal(t, 10.0, diffObjects[0].DeltaTime)
}

func TestTimingRateAdjusted(t *testing.T) {
	d := newTestDifficulty()
	d.SetCustomSpeed(2)

	objs := circles([]float64{1000, 1400, 2000}, make([]vector.Vector2f, 3))

	diffObjects := CreateDifficultyObjects(objs, d)
	require.Len(t, diffObjects, 2)

	assert.Equal(t, 200.0, diffObjects[0].StrainTime)
	assert.Equal(t, 300.0, diffObjects[1].StrainTime)
	assert.Equal(t, 500.0, diffObjects[1].LastTwoStrainTime)
	assert.Equal(t, d.PreemptU/2, diffObjects[0].Preempt)
}

func TestAngle(t *testing.T) {
	d := newTestDifficulty()

	tests := []struct {
		name     string
		third    vector.Vector2f
		expected float64
	}{
		{"straight", vector.NewVec2f(200, 0), math.Pi},
		{"right", vector.NewVec2f(100, 100), math.Pi / 2},
		{"back", vector.NewVec2f(0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objs := circles([]float64{0, 100, 200}, []vector.Vector2f{vector.NewVec2f(0, 0), vector.NewVec2f(100, 0), tt.third})

			diffObjects := CreateDifficultyObjects(objs, d)
			require.Len(t, diffObjects, 2)

			assert.True(t, math.IsNaN(diffObjects[0].Angle))
			assert.InDelta(t, tt.expected, diffObjects[1].Angle, 1e-5)
		})
	}
}

func TestJumpDistanceNormalized(t *testing.T) {
	d := newTestDifficulty()

	objs := circles([]float64{0, 100}, []vector.Vector2f{vector.NewVec2f(0, 0), vector.NewVec2f(30, 40)})

	diffObjects := CreateDifficultyObjects(objs, d)
	require.Len(t, diffObjects, 1)

	assert.InDelta(t, 50, diffObjects[0].RawJumpDistance, 1e-4)
	assert.InDelta(t, 50*ScalingFactor(d.CircleRadiusU), diffObjects[0].JumpDistance, 1e-3)
}

func newTravelSlider() *objects.Slider {
	points := []vector.Vector2f{vector.NewVec2f(100, 100), vector.NewVec2f(300, 100)}
	return objects.NewSlider(1000, curves.CLinear, points, 200, 1, 400, 0, true)
}

func TestSliderTravel(t *testing.T) {
	d := newTestDifficulty()

	slider := newTravelSlider()

	objs := []objects.IHitObject{
		slider,
		objects.NewCircle(1600, vector.NewVec2f(300, 100), false),
	}

	diffObjects := CreateDifficultyObjects(objs, d)
	require.Len(t, diffObjects, 1)

	leash := d.CircleRadiusU * LeashRadiusMultiplier
	tailX := 100 + 200*(slider.EndTimeLazer-1000)/400
	expectedEnd := 100 + (tailX - 100 - leash)

	obj := diffObjects[0]

	assert.InDelta(t, (tailX-100-leash)*ScalingFactor(d.CircleRadiusU), obj.TravelDistance, 1e-2)
	assert.Equal(t, slider.EndTimeLazer-1000, obj.TravelTime)
	assert.InDelta(t, 300-expectedEnd, obj.RawJumpDistance, 1e-2)
	assert.LessOrEqual(t, obj.TravelDistance, float64(slider.GetLength())*ScalingFactor(d.CircleRadiusU))
}

func TestLazySliderMemoized(t *testing.T) {
	d := newTestDifficulty()

	lazy := NewLazySlider(newTravelSlider(), d)

	first := lazy.LazyTravelDistance()
	end := lazy.LazyEndPosition()

	assert.Equal(t, first, lazy.LazyTravelDistance())
	assert.Equal(t, end, lazy.LazyEndPosition())
	assert.True(t, lazy.lazyCalculated)
}

func TestLazyTravelMonotonicAndBounded(t *testing.T) {
	samples := make([]vector.Vector2f, 0, 64)
	for i := 1; i <= 64; i++ {
		angle := float32(i) * 0.1
		samples = append(samples, vector.NewVec2fRad(angle, 150).AddS(256, 192))
	}

	start := vector.NewVec2f(406, 192)

	pathLength := float32(0)
	last := start

	prevDistance := float32(0)

	for i := range samples {
		pathLength += samples[i].Dst(last)
		last = samples[i]

		_, distance := LazyTravel(start, samples[:i+1], 50)

		assert.GreaterOrEqual(t, distance, prevDistance)
		assert.LessOrEqual(t, distance, pathLength+1e-3)

		prevDistance = distance
	}
}

func TestLazyTravelInsideLeash(t *testing.T) {
	start := vector.NewVec2f(0, 0)

	end, distance := LazyTravel(start, []vector.Vector2f{vector.NewVec2f(10, 0), vector.NewVec2f(0, 20)}, 30)

	assert.Equal(t, start, end)
	assert.Equal(t, float32(0), distance)
}

func TestDegenerateSliderDoesNotPanic(t *testing.T) {
	d := newTestDifficulty()

	points := []vector.Vector2f{vector.NewVec2f(100, 100)}

	objs := []objects.IHitObject{
		objects.NewSlider(1000, curves.CBezier, points, 0, 1, 0, 0, false),
		objects.NewCircle(1100, vector.NewVec2f(100, 100), false),
	}

	assert.NotPanics(t, func() {
		diffObjects := CreateDifficultyObjects(objs, d)
		require.Len(t, diffObjects, 1)
		assert.False(t, math.IsNaN(diffObjects[0].JumpDistance))
		assert.Equal(t, MinStrainTime, diffObjects[0].TravelTime)
	})
}
