package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givikap120/flowpp/app/beatmap/objects"
)

const testDocument = `{
	"artist": "Camellia",
	"title": "Flow Test",
	"version": "Insane",
	"hp": 5, "cs": 4, "od": 8, "ar": 9,
	"objects": [
		{"type": "circle", "time": 1200, "x": 200, "y": 100},
		{"type": "circle", "time": 1000, "x": 100, "y": 100, "newCombo": true, "stack": 1},
		{"type": "slider", "time": 1400, "x": 100, "y": 300, "curve": "L", "points": [[300, 300]], "length": 200, "repeats": 2, "spanDuration": 300, "tickInterval": 100},
		{"type": "spinner", "time": 2500, "endTime": 4000}
	]
}`

func TestParse(t *testing.T) {
	beatmap, err := Parse([]byte(testDocument))
	require.NoError(t, err)

	assert.Equal(t, "Flow Test", beatmap.Title)
	assert.Equal(t, "Insane", beatmap.Version)
	assert.Len(t, beatmap.MD5, 32)

	assert.Equal(t, 8.0, beatmap.Difficulty.GetBaseOD())
	assert.Equal(t, 4.0, beatmap.Difficulty.GetCS())

	require.Len(t, beatmap.HitObjects, 4)

	for i, o := range beatmap.HitObjects {
		assert.Equal(t, i, o.GetID())
	}

	assert.Equal(t, 1000.0, beatmap.HitObjects[0].GetStartTime())
	assert.Equal(t, 1, beatmap.HitObjects[0].GetStackIndex())
	assert.True(t, beatmap.HitObjects[0].IsNewCombo())

	slider, ok := beatmap.HitObjects[2].(*objects.Slider)
	require.True(t, ok)

	assert.Equal(t, 2, slider.RepeatCount)
	assert.Equal(t, 2000.0, slider.GetEndTime())
	assert.InDelta(t, 200, slider.GetLength(), 1e-3)

	assert.Equal(t, objects.SPINNER, beatmap.HitObjects[3].GetType())
	assert.Equal(t, 4000.0, beatmap.HitObjects[3].GetEndTime())
}

func TestParseChecksumStable(t *testing.T) {
	a, err := Parse([]byte(testDocument))
	require.NoError(t, err)

	b, err := Load(strings.NewReader(testDocument))
	require.NoError(t, err)

	assert.Equal(t, a.MD5, b.MD5)

	c, err := Parse([]byte(strings.Replace(testDocument, "Insane", "Extra", 1)))
	require.NoError(t, err)

	assert.NotEqual(t, a.MD5, c.MD5)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"objects": [{"type": "hold", "time": 0}]}`))
	assert.ErrorIs(t, err, ErrUnknownObjectType)

	_, err = Parse([]byte(`{"objects": [{"type": "slider", "time": 0, "repeats": 0}]}`))
	assert.ErrorIs(t, err, ErrInvalidSlider)

	_, err = Parse([]byte(`{"objects": [{"type": "slider", "time": 0, "repeats": 1, "spanDuration": -5}]}`))
	assert.ErrorIs(t, err, ErrInvalidSlider)

	_, err = Parse([]byte(`{"objects": [{"type": "slider", "time": 0, "x": 0, "y": 0, "points": [[100, 0]], "length": 100, "repeats": 1, "spanDuration": 20000, "tickInterval": 0.01}]}`))
	assert.ErrorIs(t, err, ErrInvalidSlider)

	_, err = Parse([]byte(`{"objects": [{"type": "slider", "time": 0, "repeats": 1, "spanDuration": 100, "tickInterval": -1}]}`))
	assert.ErrorIs(t, err, ErrInvalidSlider)

	_, err = Parse([]byte(`{"objects": [{"type": "slider", "time": 0, "repeats": 100000000, "spanDuration": 100}]}`))
	assert.ErrorIs(t, err, ErrInvalidSlider)

	_, err = Parse([]byte(`{"objects": [{"type": "spinner", "time": 100, "endTime": 50}]}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"objects": [`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"stars": 5}`))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	beatmap, err := Parse([]byte(`{"cs": 4}`))
	require.NoError(t, err)

	assert.Empty(t, beatmap.HitObjects)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0o644))

	beatmap, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, beatmap.HitObjects, 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
