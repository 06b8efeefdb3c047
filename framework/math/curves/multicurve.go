package curves

import (
	"sort"

	"github.com/givikap120/flowpp/framework/math/vector"
)

type CurveType int

const (
	CLinear CurveType = iota
	CBezier
	CCirArc
	CCatmull
)

func ParseCurveType(s string) CurveType {
	switch s {
	case "L", "linear":
		return CLinear
	case "P", "perfect", "circle":
		return CCirArc
	case "C", "catmull":
		return CCatmull
	default:
		return CBezier
	}
}

// MultiCurve is a slider path flattened to a polyline and fitted to the slider's pixel length.
type MultiCurve struct {
	points   []vector.Vector2f
	sections []float32
	length   float32
}

// NewMultiCurve builds the path. A desiredLength <= 0 keeps the natural length of the control points.
func NewMultiCurve(typ CurveType, points []vector.Vector2f, desiredLength float64) *MultiCurve {
	mCurve := &MultiCurve{}

	if len(points) == 0 {
		mCurve.points = []vector.Vector2f{{}}
		mCurve.sections = []float32{0}
		return mCurve
	}

	mCurve.points = dedupe(flatten(typ, points))
	mCurve.sections = make([]float32, len(mCurve.points))

	for i := 1; i < len(mCurve.points); i++ {
		mCurve.sections[i] = mCurve.sections[i-1] + mCurve.points[i].Dst(mCurve.points[i-1])
	}

	mCurve.length = mCurve.sections[len(mCurve.sections)-1]

	if desiredLength > 0 && len(mCurve.points) > 1 {
		mCurve.fitLength(float32(desiredLength))
	}

	return mCurve
}

func flatten(typ CurveType, points []vector.Vector2f) []vector.Vector2f {
	switch typ {
	case CLinear:
		return points
	case CCatmull:
		return ApproximateCatmull(points)
	case CCirArc:
		if len(points) == 3 {
			return ApproximateCircularArc(points[0], points[1], points[2])
		}
	}

	// Repeated control points mark the boundary between two bezier segments
	var out []vector.Vector2f

	start := 0

	for i := 1; i <= len(points); i++ {
		if i == len(points) || points[i] == points[i-1] {
			segment := ApproximateBezier(points[start:i])
			if len(out) > 0 && len(segment) > 0 && out[len(out)-1] == segment[0] {
				segment = segment[1:]
			}

			out = append(out, segment...)
			start = i
		}
	}

	return out
}

func dedupe(points []vector.Vector2f) []vector.Vector2f {
	out := make([]vector.Vector2f, 0, len(points))

	for i, p := range points {
		if i > 0 && p == out[len(out)-1] {
			continue
		}

		out = append(out, p)
	}

	return out
}

// fitLength truncates the path or extends its last segment so it is exactly length long.
func (mCurve *MultiCurve) fitLength(length float32) {
	if length < mCurve.length {
		idx := sort.Search(len(mCurve.sections), func(i int) bool {
			return mCurve.sections[i] >= length
		})

		end := mCurve.pointAtDistance(length)

		mCurve.points = append(mCurve.points[:idx], end)
		mCurve.sections = append(mCurve.sections[:idx], length)
	} else if length > mCurve.length {
		last := mCurve.points[len(mCurve.points)-1]
		dir := last.Sub(mCurve.points[len(mCurve.points)-2]).Nor()

		mCurve.points[len(mCurve.points)-1] = last.Add(dir.Scl(length - mCurve.length))
		mCurve.sections[len(mCurve.sections)-1] = length
	}

	mCurve.length = length
}

func (mCurve *MultiCurve) pointAtDistance(distance float32) vector.Vector2f {
	if len(mCurve.points) == 1 || distance <= 0 {
		return mCurve.points[0]
	}

	if distance >= mCurve.sections[len(mCurve.sections)-1] {
		return mCurve.points[len(mCurve.points)-1]
	}

	idx := sort.Search(len(mCurve.sections), func(i int) bool {
		return mCurve.sections[i] >= distance
	})

	sectionLength := mCurve.sections[idx] - mCurve.sections[idx-1]
	if sectionLength == 0 {
		return mCurve.points[idx]
	}

	return mCurve.points[idx-1].Lerp(mCurve.points[idx], (distance-mCurve.sections[idx-1])/sectionLength)
}

// PointAt returns the position at progress t in [0, 1] along the path.
func (mCurve *MultiCurve) PointAt(t float32) vector.Vector2f {
	return mCurve.pointAtDistance(mCurve.length * min(1, max(0, t)))
}

func (mCurve *MultiCurve) GetLength() float32 {
	return mCurve.length
}

func (mCurve *MultiCurve) GetStartPoint() vector.Vector2f {
	return mCurve.points[0]
}

func (mCurve *MultiCurve) GetEndPoint() vector.Vector2f {
	return mCurve.points[len(mCurve.points)-1]
}

// GetLines returns the flattened polyline.
func (mCurve *MultiCurve) GetLines() []vector.Vector2f {
	return mCurve.points
}
