package flow

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/givikap120/flowpp/framework/math/mutils"
)

const (
	// hitErrorQuantile is the pessimistic quantile of the great hit probability given the judgements
	hitErrorQuantile float64 = 0.2

	greatWindowBase    float64 = 79.5
	greatWindowODScale float64 = 6

	fallbackHitErrorBase    float64 = 140
	fallbackHitErrorODScale float64 = 8

	// keep the probability inside (0.5, 1) so the normal quantile is finite and positive
	minGreatProbability float64 = 0.5 + 1e-9
	maxGreatProbability float64 = 1 - 1e-12
)

// EstimateHitError estimates the standard deviation of the player's hit timing in milliseconds.
// Only greats on circles carry timing information, since sliders and spinners are always judged as great when hit.
func EstimateHitError(circles, greats, totalHits int, od float64) float64 {
	circleGreats := min(greats-(totalHits-circles), circles)

	if circleGreats <= 0 {
		return FallbackHitError(od)
	}

	p := distuv.Beta{
		Alpha: float64(circleGreats),
		Beta:  float64(1 + circles - circleGreats),
	}.Quantile(hitErrorQuantile)

	// the great window is symmetric, so misses of it split evenly between early and late
	p += (1 - p) / 2
	p = mutils.Clamp(p, minGreatProbability, maxGreatProbability)

	z := distuv.UnitNormal.Quantile(p)

	return max(0, greatWindowBase-greatWindowODScale*od) / z
}

// FallbackHitError is the worst case estimate used when no great was hit on a circle
func FallbackHitError(od float64) float64 {
	return max(0, fallbackHitErrorBase-fallbackHitErrorODScale*od)
}
