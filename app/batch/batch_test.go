package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/database"
)

func streamDocument(title string, interval float64) string {
	objs := make([]string, 0, 40)

	for i := 0; i < 40; i++ {
		x := 100 + float64(i%4)*60
		objs = append(objs, fmt.Sprintf(`{"type": "circle", "time": %g, "x": %g, "y": 200}`, 1000+float64(i)*interval, x))
	}

	return fmt.Sprintf(`{"artist": "Test", "title": %q, "version": "Normal", "hp": 5, "cs": 4, "od": 8, "ar": 9, "objects": [%s]}`, title, strings.Join(objs, ","))
}

func writeBeatmap(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestWorkerCount(t *testing.T) {
	assert.Equal(t, 3, WorkerCount(3))
	assert.Positive(t, WorkerCount(0))
	assert.Positive(t, WorkerCount(-1))
}

func TestFindBeatmaps(t *testing.T) {
	dir := t.TempDir()

	writeBeatmap(t, dir, "b.json", "{}")
	writeBeatmap(t, dir, "a.JSON", "{}")
	writeBeatmap(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	paths, err := FindBeatmaps(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "a.JSON"), filepath.Join(dir, "b.json")}, paths)

	_, err = FindBeatmaps(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRunKeepsOrder(t *testing.T) {
	dir := t.TempDir()

	paths := []string{
		writeBeatmap(t, dir, "slow.json", streamDocument("Slow", 300)),
		writeBeatmap(t, dir, "broken.json", "{"),
		writeBeatmap(t, dir, "fast.json", streamDocument("Fast", 100)),
	}

	results := NewRater(Options{Workers: 2}).Run(context.Background(), paths)
	require.Len(t, results, 3)

	for i, result := range results {
		assert.Equal(t, paths[i], result.Path)
	}

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	assert.Equal(t, "Test - Slow [Normal]", results[0].Name())
	assert.Equal(t, "broken.json", results[1].Name())

	assert.Equal(t, 40, results[0].Attributes.ObjectCount)
	assert.Greater(t, results[2].Attributes.Total, results[0].Attributes.Total)
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()

	paths := []string{
		writeBeatmap(t, dir, "a.json", streamDocument("A", 200)),
		writeBeatmap(t, dir, "b.json", streamDocument("B", 200)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewRater(Options{Workers: 1}).Run(ctx, paths)
	require.Len(t, results, 2)

	for _, result := range results {
		assert.ErrorIs(t, result.Err, context.Canceled)
	}
}

func TestRateUsesCache(t *testing.T) {
	dir := t.TempDir()

	cache, err := database.Open(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)

	defer cache.Close()

	path := writeBeatmap(t, dir, "map.json", streamDocument("Cached", 150))

	rater := NewRater(Options{Mods: difficulty.DoubleTime, Workers: 1, Cache: cache})

	first := rater.RateFile(path)
	require.NoError(t, first.Err)
	assert.False(t, first.Cached)

	second := rater.RateFile(path)
	require.NoError(t, second.Err)
	assert.True(t, second.Cached)

	assert.InDelta(t, first.Attributes.Total, second.Attributes.Total, 1e-9)
	assert.Equal(t, difficulty.DoubleTime, second.Attributes.Mods)

	uncached := NewRater(Options{Workers: 1}).RateFile(path)
	require.NoError(t, uncached.Err)
	assert.Less(t, uncached.Attributes.Total, first.Attributes.Total)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results := make(chan Result, 4)

	watchErr := make(chan error, 1)

	go func() {
		watchErr <- NewRater(Options{Workers: 1}).Watch(ctx, dir, func(result Result) {
			results <- result
		})
	}()

	time.Sleep(200 * time.Millisecond)

	staging := filepath.Join(t.TempDir(), "new.json")
	require.NoError(t, os.WriteFile(staging, []byte(streamDocument("Watched", 200)), 0o644))
	require.NoError(t, os.Rename(staging, filepath.Join(dir, "new.json")))

	select {
	case result := <-results:
		require.NoError(t, result.Err)
		assert.Equal(t, "Test - Watched [Normal]", result.Name())
	case <-ctx.Done():
		t.Fatal("no result from watcher")
	}

	cancel()
	assert.NoError(t, <-watchErr)
}
