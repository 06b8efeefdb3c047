package difficulty

import (
	"math"

	"github.com/givikap120/flowpp/framework/math/mutils"
)

const (
	HitFadeIn     = 400.0
	HitFadeOut    = 240.0
	HitFadeOutHD  = 60.0
	ResultFadeIn  = 120.0
	PlayfieldSize = 384.0

	// MinSpeed and MaxSpeed limit custom playback rates
	MinSpeed = 0.05
	MaxSpeed = 4.0
)

// Difficulty holds beatmap difficulty settings with mods and playback rate applied.
// Fields with U suffix are not adjusted for playback rate.
type Difficulty struct {
	hpDrain float64
	cs      float64
	od      float64
	ar      float64

	baseHP float64
	baseCS float64
	baseOD float64
	baseAR float64

	Mods Modifier

	customSpeed float64

	Speed float64

	CircleRadiusU float64

	PreemptU   float64
	Preempt    float64
	TimeFadeIn float64

	Hit50U  float64
	Hit100U float64
	Hit300U float64

	Hit50  int64
	Hit100 int64
	Hit300 int64

	// ARReal and ODReal are the perceived values after playback rate is taken into account
	ARReal float64
	ODReal float64
}

func NewDifficulty(hp, cs, od, ar float64) *Difficulty {
	diff := &Difficulty{
		baseHP: hp,
		baseCS: cs,
		baseOD: od,
		baseAR: ar,
	}

	diff.calculate()

	return diff
}

func (diff *Difficulty) calculate() {
	hp, cs, od, ar := diff.baseHP, diff.baseCS, diff.baseOD, diff.baseAR

	if diff.CheckModActive(HardRock) {
		hp = min(hp*1.4, 10)
		cs = min(cs*1.3, 10)
		od = min(od*1.4, 10)
		ar = min(ar*1.4, 10)
	}

	if diff.CheckModActive(Easy) {
		hp /= 2
		cs /= 2
		od /= 2
		ar /= 2
	}

	diff.hpDrain = hp
	diff.cs = cs
	diff.od = od
	diff.ar = ar

	diff.Speed = diff.GetModifiedSpeed()

	diff.CircleRadiusU = CircleSizeToRadius(cs)

	diff.PreemptU = DifficultyRate(ar, 1800, 1200, 450)
	diff.Preempt = math.Floor(diff.PreemptU)

	diff.TimeFadeIn = HitFadeIn * min(1, diff.PreemptU/450)

	diff.Hit50U = DifficultyRate(od, 200, 150, 100)
	diff.Hit100U = DifficultyRate(od, 140, 100, 60)
	diff.Hit300U = DifficultyRate(od, 80, 50, 20)

	diff.Hit50 = int64(diff.Hit50U)
	diff.Hit100 = int64(diff.Hit100U)
	diff.Hit300 = int64(diff.Hit300U)

	diff.ARReal = PreemptToApproachRate(diff.PreemptU / diff.Speed)
	diff.ODReal = GreatWindowToOverallDifficulty(diff.Hit300U / diff.Speed)
}

func (diff *Difficulty) SetMods(mods Modifier) {
	diff.Mods = mods
	diff.calculate()
}

func (diff *Difficulty) CheckModActive(mods Modifier) bool {
	return diff.Mods&mods > 0
}

// SetCustomSpeed overrides the playback rate implied by DT/HT. Values <= 0 reset to the mod rate.
func (diff *Difficulty) SetCustomSpeed(speed float64) {
	if speed > 0 {
		speed = mutils.Clamp(speed, MinSpeed, MaxSpeed)
	}

	diff.customSpeed = speed
	diff.calculate()
}

func (diff *Difficulty) GetModifiedSpeed() float64 {
	if diff.customSpeed > 0 {
		return diff.customSpeed
	}

	switch {
	case diff.CheckModActive(DoubleTime | Nightcore):
		return 1.5
	case diff.CheckModActive(HalfTime):
		return 0.75
	default:
		return 1
	}
}

func (diff *Difficulty) GetHPDrain() float64 {
	return diff.hpDrain
}

func (diff *Difficulty) GetCS() float64 {
	return diff.cs
}

func (diff *Difficulty) GetOD() float64 {
	return diff.od
}

func (diff *Difficulty) GetAR() float64 {
	return diff.ar
}

func (diff *Difficulty) GetBaseCS() float64 {
	return diff.baseCS
}

func (diff *Difficulty) GetBaseOD() float64 {
	return diff.baseOD
}

func (diff *Difficulty) GetBaseAR() float64 {
	return diff.baseAR
}

func (diff *Difficulty) GetBaseHP() float64 {
	return diff.baseHP
}

// Clone returns an independent copy, used when the same beatmap is rated with several mod combinations.
func (diff *Difficulty) Clone() *Difficulty {
	c := *diff
	return &c
}

func CircleSizeToRadius(cs float64) float64 {
	return 32 * (1.0 - 0.7*(cs-5)/5) * 1.00041
}

// DifficultyRate maps a 0-10 difficulty value onto a timing range with 5 as the midpoint.
func DifficultyRate(diff, min, mid, max float64) float64 {
	if diff > 5 {
		return mid + (max-mid)*(diff-5)/5
	}

	if diff < 5 {
		return mid - (mid-min)*(5-diff)/5
	}

	return mid
}

func PreemptToApproachRate(preempt float64) float64 {
	if preempt > 1200 {
		return 5 - (preempt-1200)/120
	}

	return 5 + (1200-preempt)/150
}

func GreatWindowToOverallDifficulty(window float64) float64 {
	return (80 - window) / 6
}
