package curves

import (
	"math"

	"github.com/givikap120/flowpp/framework/math/math32"
	"github.com/givikap120/flowpp/framework/math/vector"
)

const (
	bezierToleranceSq = 0.25 * 0.25
	arcTolerance      = 0.1
	catmullDetail     = 50
)

// ApproximateBezier flattens a single bezier segment with adaptive de Casteljau subdivision.
func ApproximateBezier(points []vector.Vector2f) []vector.Vector2f {
	if len(points) == 0 {
		return nil
	}

	if len(points) == 1 {
		return []vector.Vector2f{points[0]}
	}

	out := make([]vector.Vector2f, 0, len(points)*4)

	stack := make([][]vector.Vector2f, 0, 32)
	stack = append(stack, points)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if bezierFlatEnough(current) {
			out = append(out, current[0])
			continue
		}

		left, right := bezierSubdivide(current)

		stack = append(stack, right, left)
	}

	return append(out, points[len(points)-1])
}

func bezierFlatEnough(points []vector.Vector2f) bool {
	for i := 1; i < len(points)-1; i++ {
		d := points[i-1].Sub(points[i].Scl(2)).Add(points[i+1])
		if d.LenSq() > bezierToleranceSq {
			return false
		}
	}

	return true
}

func bezierSubdivide(points []vector.Vector2f) (left, right []vector.Vector2f) {
	n := len(points)

	left = make([]vector.Vector2f, n)
	right = make([]vector.Vector2f, n)

	mid := make([]vector.Vector2f, n)
	copy(mid, points)

	for i := 0; i < n; i++ {
		left[i] = mid[0]
		right[n-1-i] = mid[n-1-i]

		for j := 0; j < n-1-i; j++ {
			mid[j] = mid[j].Add(mid[j+1]).Scl(0.5)
		}
	}

	return left, right
}

// ApproximateCatmull samples a uniform catmull-rom spline through the given points.
func ApproximateCatmull(points []vector.Vector2f) []vector.Vector2f {
	n := len(points)
	if n < 2 {
		return points
	}

	out := make([]vector.Vector2f, 0, (n-1)*catmullDetail+1)
	out = append(out, points[0])

	for i := 0; i < n-1; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, n-1)]

		for s := 1; s <= catmullDetail; s++ {
			out = append(out, catmullPoint(p0, p1, p2, p3, float32(s)/catmullDetail))
		}
	}

	return out
}

func catmullPoint(p0, p1, p2, p3 vector.Vector2f, t float32) vector.Vector2f {
	t2 := t * t
	t3 := t2 * t

	return vector.NewVec2f(
		0.5*(2*p1.X+(-p0.X+p2.X)*t+(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2+(-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		0.5*(2*p1.Y+(-p0.Y+p2.Y)*t+(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2+(-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	)
}

// ApproximateCircularArc returns points on the circle through p1, p2, p3 going from p1 to p3.
// Collinear input degrades to a straight line.
func ApproximateCircularArc(p1, p2, p3 vector.Vector2f) []vector.Vector2f {
	cross := p2.Sub(p1).Cross(p3.Sub(p2))
	if math32.Abs(cross) < 1e-3 {
		return []vector.Vector2f{p1, p3}
	}

	ax, ay := float64(p1.X), float64(p1.Y)
	bx, by := float64(p2.X), float64(p2.Y)
	cx, cy := float64(p3.X), float64(p3.Y)

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))

	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy

	centerX := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	centerY := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d

	radius := math.Hypot(ax-centerX, ay-centerY)

	startAngle := math.Atan2(ay-centerY, ax-centerX)
	endAngle := math.Atan2(cy-centerY, cx-centerX)

	direction := 1.0
	if cross < 0 {
		direction = -1.0
	}

	sweep := endAngle - startAngle
	for sweep*direction <= 0 {
		sweep += 2 * math.Pi * direction
	}

	for math.Abs(sweep) > 2*math.Pi {
		sweep -= 2 * math.Pi * direction
	}

	step := 2 * math.Acos(max(-1, min(1, 1-arcTolerance/radius)))
	if step <= 0 || math.IsNaN(step) {
		step = math.Pi / 8
	}

	steps := max(2, int(math.Ceil(math.Abs(sweep)/step)))

	out := make([]vector.Vector2f, 0, steps+1)

	for i := 0; i <= steps; i++ {
		angle := startAngle + sweep*float64(i)/float64(steps)
		out = append(out, vector.NewVec2f(float32(centerX+math.Cos(angle)*radius), float32(centerY+math.Sin(angle)*radius)))
	}

	out[len(out)-1] = p3

	return out
}
