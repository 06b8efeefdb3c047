package preprocessing

import (
	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/beatmap/objects"
	"github.com/givikap120/flowpp/framework/math/vector"
)

// LeashRadiusMultiplier scales the circle radius into the follow circle leash
const LeashRadiusMultiplier = 3.0

// LazySlider wraps a slider for one difficulty pass and caches the cursor movement
// a player needs to keep the follow circle on the ball.
type LazySlider struct {
	*objects.Slider

	diff *difficulty.Difficulty

	lazyCalculated bool

	lazyEndPosition    vector.Vector2f
	lazyTravelDistance float32
	lazyTravelTime     float64
}

func NewLazySlider(slider *objects.Slider, d *difficulty.Difficulty) *LazySlider {
	return &LazySlider{
		Slider: slider,
		diff:   d,
	}
}

// calculateLazy runs the follow circle simulation once, later calls are no-ops
func (slider *LazySlider) calculateLazy() {
	if slider.lazyCalculated {
		return
	}

	slider.lazyCalculated = true

	samples := make([]vector.Vector2f, 0, len(slider.ScorePoints))
	for _, point := range slider.ScorePoints {
		samples = append(samples, objects.ModifyPosition(point.Pos, slider.StackIndex, slider.diff))
	}

	leash := float32(slider.diff.CircleRadiusU * LeashRadiusMultiplier)

	slider.lazyEndPosition, slider.lazyTravelDistance = LazyTravel(slider.GetStackedStartPositionMod(slider.diff), samples, leash)

	if len(slider.ScorePoints) > 0 {
		slider.lazyTravelTime = slider.ScorePoints[len(slider.ScorePoints)-1].Time - slider.GetStartTime()
	}
}

// LazyEndPosition is where the cursor ends up when it follows the slider lazily
func (slider *LazySlider) LazyEndPosition() vector.Vector2f {
	slider.calculateLazy()
	return slider.lazyEndPosition
}

// LazyTravelDistance is the distance in osu!pixels the cursor has to move to follow the slider
func (slider *LazySlider) LazyTravelDistance() float32 {
	slider.calculateLazy()
	return slider.lazyTravelDistance
}

// LazyTravelTime is the time between the slider head and its last nested judgement, not rate adjusted
func (slider *LazySlider) LazyTravelTime() float64 {
	slider.calculateLazy()
	return slider.lazyTravelTime
}

// LazyTravel moves a lazy cursor through samples. The cursor only moves when a sample is
// further away than leash, and then only by the excess distance.
func LazyTravel(start vector.Vector2f, samples []vector.Vector2f, leash float32) (end vector.Vector2f, distance float32) {
	end = start

	for _, sample := range samples {
		diff := sample.Sub(end)
		dist := diff.Len()

		if dist > leash {
			excess := dist - leash

			end = end.Add(diff.Scl(excess / dist))
			distance += excess
		}
	}

	return end, distance
}
