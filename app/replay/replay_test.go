package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wieku/rplpa"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
)

func TestFromReplay(t *testing.T) {
	r := &rplpa.Replay{
		PlayMode:   0,
		Username:   "player",
		BeatmapMD5: "0123456789ABCDEF0123456789ABCDEF",
		Count300:   950,
		Count100:   30,
		Count50:    5,
		CountMiss:  3,
		MaxCombo:   1200,
		Mods:       uint32(difficulty.Hidden | difficulty.DoubleTime),
	}

	score, err := FromReplay(r)
	require.NoError(t, err)

	assert.Equal(t, "player", score.Player)
	assert.Equal(t, 950, score.Statistics.CountGreat)
	assert.Equal(t, 30, score.Statistics.CountOk)
	assert.Equal(t, 5, score.Statistics.CountMeh)
	assert.Equal(t, 3, score.Statistics.CountMiss)
	assert.Equal(t, 1200, score.Statistics.MaxCombo)
	assert.Equal(t, 988, score.Statistics.TotalHits())
	assert.True(t, score.Statistics.Mods.Active(difficulty.DoubleTime))

	assert.True(t, score.Matches("0123456789abcdef0123456789abcdef"))
	assert.False(t, score.Matches("ffffffffffffffffffffffffffffffff"))
}

func TestFromReplayOtherMode(t *testing.T) {
	_, err := FromReplay(&rplpa.Replay{PlayMode: 3})
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}
