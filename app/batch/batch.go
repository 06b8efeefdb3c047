package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/shirou/gopsutil/v3/cpu"
	log "github.com/sirupsen/logrus"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/beatmap/loader"
	"github.com/givikap120/flowpp/app/database"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/api"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow"
)

const (
	beatmapExtension = ".json"

	// watchDebounce waits for writes to a file to settle before rating it
	watchDebounce = 250 * time.Millisecond
)

type Result struct {
	Path    string
	Beatmap *loader.Beatmap

	Attributes api.Attributes

	// Cached is true when the attributes came from the attribute cache
	Cached bool

	Err error
}

// Name returns "Artist - Title [Version]", or the file name when the beatmap couldn't be loaded
func (result Result) Name() string {
	if result.Beatmap == nil {
		return filepath.Base(result.Path)
	}

	return fmt.Sprintf("%s - %s [%s]", result.Beatmap.Artist, result.Beatmap.Title, result.Beatmap.Version)
}

type Options struct {
	Mods difficulty.Modifier

	// Rate overrides the rate implied by Mods when positive
	Rate float64

	// Workers is the size of the worker pool, values <= 0 use the number of physical cores
	Workers int

	// Cache is optional
	Cache *database.Cache
}

// Rater rates beatmap files with the flow difficulty calculator
type Rater struct {
	opts    Options
	workers int

	calculator *flow.DifficultyCalculator
}

func NewRater(opts Options) *Rater {
	return &Rater{
		opts:       opts,
		workers:    WorkerCount(opts.Workers),
		calculator: flow.NewDifficultyCalculatorWithSkills(flow.DefaultSkills),
	}
}

// WorkerCount returns requested if positive, the number of physical cores otherwise
func WorkerCount(requested int) int {
	if requested > 0 {
		return requested
	}

	cores, err := cpu.Counts(false)
	if err != nil || cores <= 0 {
		log.WithError(err).Debug("Can't read physical core count, using logical CPUs")
		return runtime.NumCPU()
	}

	return cores
}

func (rater *Rater) Workers() int {
	return rater.workers
}

// Difficulty returns a copy of beatmap's settings with the configured mods and rate applied
func (rater *Rater) Difficulty(beatmap *loader.Beatmap) *difficulty.Difficulty {
	diff := beatmap.Difficulty.Clone()
	diff.SetMods(rater.opts.Mods)
	diff.SetCustomSpeed(rater.opts.Rate)

	return diff
}

func (rater *Rater) Calculator() *flow.DifficultyCalculator {
	return rater.calculator
}

// Rate returns the attributes of beatmap, reading and filling the cache if one is configured
func (rater *Rater) Rate(beatmap *loader.Beatmap) (attr api.Attributes, cached bool, err error) {
	diff := rater.Difficulty(beatmap)

	version := rater.calculator.GetVersion()

	if rater.opts.Cache != nil {
		attr, cached, err = rater.opts.Cache.Get(beatmap.MD5, diff.Mods, diff.Speed, version)
		if err != nil || cached {
			return attr, cached, err
		}
	}

	attr = rater.calculator.CalculateSingle(beatmap.HitObjects, diff)

	if rater.opts.Cache != nil {
		if err = rater.opts.Cache.Put(beatmap.MD5, diff.Speed, version, attr); err != nil {
			return attr, false, err
		}
	}

	return attr, false, nil
}

func (rater *Rater) RateFile(path string) Result {
	result := Result{Path: path}

	result.Beatmap, result.Err = loader.LoadFile(path)
	if result.Err != nil {
		return result
	}

	result.Attributes, result.Cached, result.Err = rater.Rate(result.Beatmap)

	return result
}

// Run rates paths with the worker pool. Results keep the order of paths.
// Beatmaps not started before ctx is done get ctx's error.
func (rater *Rater) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	done := make([]bool, len(paths))

	jobs := make(chan int)

	var wg sync.WaitGroup

	for w := 0; w < min(rater.workers, len(paths)); w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				results[i] = rater.RateFile(paths[i])
				done[i] = true

				log.WithFields(log.Fields{
					"file":   filepath.Base(paths[i]),
					"cached": results[i].Cached,
				}).Trace("Rated beatmap")
			}
		}()
	}

feed:
	for i := range paths {
		if ctx.Err() != nil {
			break
		}

		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()

	for i := range results {
		if !done[i] {
			results[i] = Result{Path: paths[i], Err: ctx.Err()}
		}
	}

	return results
}

// FindBeatmaps lists beatmap documents in dir, sorted by name
func FindBeatmaps(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list beatmaps: %w", err)
	}

	var paths []string

	for _, entry := range entries {
		if !entry.IsDir() && isBeatmap(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)

	return paths, nil
}

func isBeatmap(path string) bool {
	return strings.EqualFold(filepath.Ext(path), beatmapExtension)
}

// Watch rates every beatmap created or modified in dir until ctx is done
func (rater *Rater) Watch(ctx context.Context, dir string, onResult func(Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	defer watcher.Close()

	if err = watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	log.WithField("dir", dir).Info("Watching for beatmaps")

	pending := make(map[string]time.Time)

	ticker := time.NewTicker(watchDebounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 && isBeatmap(event.Name) {
				pending[event.Name] = time.Now()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.WithError(err).Error("Watcher error")
		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < watchDebounce {
					continue
				}

				delete(pending, path)
				onResult(rater.RateFile(path))
			}
		}
	}
}
