package replay

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/wieku/rplpa"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/api"
)

var ErrUnsupportedMode = errors.New("replay is not an osu!standard play")

// Score is the part of a replay the performance calculator needs
type Score struct {
	Player     string
	BeatmapMD5 string

	Statistics api.ScoreStatistics
}

func LoadFile(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Score, error) {
	r, err := rplpa.ParseReplay(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse replay: %w", err)
	}

	return FromReplay(r)
}

func FromReplay(r *rplpa.Replay) (*Score, error) {
	if r.PlayMode != 0 {
		return nil, fmt.Errorf("%w: mode %d", ErrUnsupportedMode, r.PlayMode)
	}

	return &Score{
		Player:     r.Username,
		BeatmapMD5: r.BeatmapMD5,
		Statistics: api.ScoreStatistics{
			CountGreat: int(r.Count300),
			CountOk:    int(r.Count100),
			CountMeh:   int(r.Count50),
			CountMiss:  int(r.CountMiss),
			MaxCombo:   int(r.MaxCombo),
			Mods:       difficulty.Modifier(r.Mods),
		},
	}, nil
}

// Matches reports whether the replay was played on the beatmap with the given checksum
func (score *Score) Matches(md5 string) bool {
	return strings.EqualFold(score.BeatmapMD5, md5)
}
