package objects

import (
	"math"
	"sort"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/framework/math/curves"
	"github.com/givikap120/flowpp/framework/math/vector"
)

const (
	// legacyLastTickOffset moves the slider tail judgement earlier, as stable does
	legacyLastTickOffset = 36.0

	// ticks closer than this to a span end are dropped
	minTickDistanceFromEnd = 10.0

	// MinTickInterval is the shortest time between slider ticks, shorter intervals are raised to it
	MinTickInterval = 10.0
)

type PointType int

const (
	TickPoint PointType = iota
	RepeatPoint
	TailPoint
)

type ScorePoint struct {
	Time float64
	Pos  vector.Vector2f
	Type PointType
}

type Slider struct {
	*HitObject

	multiCurve *curves.MultiCurve

	pixelLength  float64
	spanDuration float64

	// RepeatCount is the number of spans, so a slider without reverse arrows has a RepeatCount of 1
	RepeatCount int

	// EndTimeLazer is the time of the legacy tail judgement
	EndTimeLazer float64

	// ScorePoints holds nested judgements after the head, sorted by time
	ScorePoints []ScorePoint
}

// NewSlider builds a slider from already decoded timing values.
// spanDuration is the time of one pass over the path, tickInterval the time between ticks (<= 0 disables ticks).
func NewSlider(startTime float64, curveType curves.CurveType, points []vector.Vector2f, pixelLength float64, spans int, spanDuration, tickInterval float64, newCombo bool) *Slider {
	spans = max(spans, 1)
	spanDuration = max(spanDuration, 0)

	slider := &Slider{
		HitObject: &HitObject{
			StartTime: startTime,
			EndTime:   startTime + spanDuration*float64(spans),
			NewCombo:  newCombo,
		},
		multiCurve:   curves.NewMultiCurve(curveType, points, pixelLength),
		pixelLength:  pixelLength,
		spanDuration: spanDuration,
		RepeatCount:  spans,
	}

	slider.StartPosRaw = slider.multiCurve.PointAt(0)
	slider.EndPosRaw = slider.GetPositionAt(slider.EndTime)

	slider.createScorePoints(tickInterval)

	return slider
}

func (slider *Slider) createScorePoints(tickInterval float64) {
	var tickOffsets []float64

	if tickInterval > 0 && slider.spanDuration > 0 {
		tickInterval = max(tickInterval, MinTickInterval)

		for t := tickInterval; t < slider.spanDuration-minTickDistanceFromEnd; t += tickInterval {
			tickOffsets = append(tickOffsets, t)
		}
	}

	for span := 0; span < slider.RepeatCount; span++ {
		spanStart := slider.StartTime + float64(span)*slider.spanDuration

		for _, offset := range tickOffsets {
			time := spanStart + offset
			if span%2 == 1 {
				time = spanStart + slider.spanDuration - offset
			}

			slider.ScorePoints = append(slider.ScorePoints, ScorePoint{
				Time: time,
				Pos:  slider.GetPositionAt(time),
				Type: TickPoint,
			})
		}

		if span < slider.RepeatCount-1 {
			time := spanStart + slider.spanDuration

			slider.ScorePoints = append(slider.ScorePoints, ScorePoint{
				Time: time,
				Pos:  slider.GetPositionAt(time),
				Type: RepeatPoint,
			})
		}
	}

	slider.EndTimeLazer = max(slider.StartTime+slider.GetDuration()/2, slider.EndTime-legacyLastTickOffset)

	slider.ScorePoints = append(slider.ScorePoints, ScorePoint{
		Time: slider.EndTimeLazer,
		Pos:  slider.GetPositionAt(slider.EndTimeLazer),
		Type: TailPoint,
	})

	sort.SliceStable(slider.ScorePoints, func(i, j int) bool {
		return slider.ScorePoints[i].Time < slider.ScorePoints[j].Time
	})
}

// progressAt maps a time onto the path, following reverse spans
func (slider *Slider) progressAt(time float64) float64 {
	if slider.spanDuration <= 0 {
		return 0
	}

	time = max(slider.StartTime, min(slider.EndTime, time))

	spanProgress := (time - slider.StartTime) / slider.spanDuration
	span := math.Floor(spanProgress)

	progress := spanProgress - span

	if span >= float64(slider.RepeatCount) {
		span = float64(slider.RepeatCount - 1)
		progress = 1
	}

	if int(span)%2 == 1 {
		return 1 - progress
	}

	return progress
}

// PositionAt returns the unstacked position at progress in [0, 1] along the path.
func (slider *Slider) PositionAt(progress float64) vector.Vector2f {
	return slider.multiCurve.PointAt(float32(progress))
}

func (slider *Slider) GetPositionAt(time float64) vector.Vector2f {
	return slider.PositionAt(slider.progressAt(time))
}

func (slider *Slider) GetStackedPositionAtMod(time float64, diff *difficulty.Difficulty) vector.Vector2f {
	return ModifyPosition(slider.GetPositionAt(time), slider.StackIndex, diff)
}

// GetLength returns the length of the path in osu!pixels
func (slider *Slider) GetLength() float32 {
	return slider.multiCurve.GetLength()
}

func (slider *Slider) GetSpanDuration() float64 {
	return slider.spanDuration
}

func (slider *Slider) GetCurve() *curves.MultiCurve {
	return slider.multiCurve
}

func (slider *Slider) GetType() Type {
	return SLIDER
}
