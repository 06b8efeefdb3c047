package difficulty

import (
	"strings"

	"github.com/samber/lo"
)

type Modifier int64

const None Modifier = 0

const (
	NoFail Modifier = 1 << iota
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore
	Flashlight
	Autoplay
	SpunOut
	Relax2
	Perfect
	Key4
	Key5
	Key6
	Key7
	Key8
	FadeIn
	Random
	Cinema
	Target
	Key9
	KeyCoop
	Key1
	Key3
	Key2
	ScoreV2
	Mirror
)

const (
	Lazer Modifier = 1 << 62

	// DifficultyAdjustMask contains mods that change difficulty attributes. Hidden and Flashlight only change pp.
	DifficultyAdjustMask = HardRock | Easy | DoubleTime | HalfTime | TouchDevice | Relax
)

var modsString = [...]string{
	"NF",
	"EZ",
	"TD",
	"HD",
	"HR",
	"SD",
	"DT",
	"RX",
	"HT",
	"NC",
	"FL",
	"AT",
	"SO",
	"AP",
	"PF",
	"4K",
	"5K",
	"6K",
	"7K",
	"8K",
	"FI",
	"RN",
	"CN",
	"TP",
	"9K",
	"COOP",
	"1K",
	"3K",
	"2K",
	"V2",
	"MR",
}

// ParseMods converts a mod acronym string like "HDDT" or "hd,hr" into a Modifier. Unknown acronyms are ignored.
func ParseMods(mods string) (m Modifier) {
	mods = strings.ToUpper(strings.NewReplacer(",", "", " ", "", "+", "").Replace(mods))

	for len(mods) >= 2 {
		matched := false

		for i, name := range modsString {
			if strings.HasPrefix(mods, name) {
				m |= Modifier(1 << uint(i))
				mods = mods[len(name):]
				matched = true

				break
			}
		}

		if !matched {
			mods = mods[2:]
		}
	}

	if m.Active(Nightcore) {
		m |= DoubleTime
	}

	if m.Active(Perfect) {
		m |= SuddenDeath
	}

	return
}

// GetDiffMaskedMods strips mods that don't change difficulty, Nightcore is reported as DoubleTime
func GetDiffMaskedMods(mods Modifier) Modifier {
	if mods.Active(Nightcore) {
		mods |= DoubleTime
	}

	return mods & DifficultyAdjustMask
}

func (mods Modifier) Active(mod Modifier) bool {
	return mods&mod > 0
}

func (mods Modifier) String() string {
	active := lo.Filter(lo.Range(len(modsString)), func(i int, _ int) bool {
		mod := Modifier(1 << uint(i))

		// NC and PF already imply their base mods
		if (mod == DoubleTime && mods.Active(Nightcore)) || (mod == SuddenDeath && mods.Active(Perfect)) {
			return false
		}

		return mods.Active(mod)
	})

	return strings.Join(lo.Map(active, func(i int, _ int) string {
		return modsString[i]
	}), "")
}
