package loader

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/beatmap/objects"
	"github.com/givikap120/flowpp/framework/math/curves"
	"github.com/givikap120/flowpp/framework/math/vector"
)

var (
	ErrUnknownObjectType = errors.New("unknown hit object type")
	ErrInvalidSlider     = errors.New("invalid slider")
)

const maxSliderRepeats = 10000

// Beatmap is a decoded object list together with its settings
type Beatmap struct {
	Artist  string
	Title   string
	Version string

	// MD5 is the hex checksum of the source document, used as the cache key
	MD5 string

	Difficulty *difficulty.Difficulty

	HitObjects []objects.IHitObject
}

type beatmapFile struct {
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Version string `json:"version"`

	HP float64 `json:"hp"`
	CS float64 `json:"cs"`
	OD float64 `json:"od"`
	AR float64 `json:"ar"`

	Objects []objectFile `json:"objects"`
}

type objectFile struct {
	Type     string  `json:"type"`
	Time     float64 `json:"time"`
	EndTime  float64 `json:"endTime"`
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	NewCombo bool    `json:"newCombo"`
	Stack    int     `json:"stack"`

	Curve        string       `json:"curve"`
	Points       [][2]float32 `json:"points"`
	Length       float64      `json:"length"`
	Repeats      int          `json:"repeats"`
	SpanDuration float64      `json:"spanDuration"`
	TickInterval float64      `json:"tickInterval"`
}

func LoadFile(path string) (*Beatmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read beatmap: %w", err)
	}

	return Parse(data)
}

func Load(r io.Reader) (*Beatmap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read beatmap: %w", err)
	}

	return Parse(data)
}

// Parse decodes a beatmap document. Hit objects are sorted by start time and numbered in that order.
func Parse(data []byte) (*Beatmap, error) {
	var file beatmapFile

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode beatmap: %w", err)
	}

	sum := md5.Sum(data)

	beatmap := &Beatmap{
		Artist:     file.Artist,
		Title:      file.Title,
		Version:    file.Version,
		MD5:        hex.EncodeToString(sum[:]),
		Difficulty: difficulty.NewDifficulty(file.HP, file.CS, file.OD, file.AR),
		HitObjects: make([]objects.IHitObject, 0, len(file.Objects)),
	}

	for i, o := range file.Objects {
		obj, err := o.toHitObject()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		beatmap.HitObjects = append(beatmap.HitObjects, obj)
	}

	sort.SliceStable(beatmap.HitObjects, func(i, j int) bool {
		return beatmap.HitObjects[i].GetStartTime() < beatmap.HitObjects[j].GetStartTime()
	})

	for i, o := range beatmap.HitObjects {
		o.SetID(i)
	}

	return beatmap, nil
}

func (o objectFile) toHitObject() (obj objects.IHitObject, err error) {
	pos := vector.NewVec2f(o.X, o.Y)

	switch o.Type {
	case "circle":
		obj = objects.NewCircle(o.Time, pos, o.NewCombo)
	case "slider":
		obj, err = o.toSlider(pos)
		if err != nil {
			return nil, err
		}
	case "spinner":
		if o.EndTime < o.Time {
			return nil, fmt.Errorf("spinner ends at %.0f before it starts at %.0f", o.EndTime, o.Time)
		}

		obj = objects.NewSpinner(o.Time, o.EndTime)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjectType, o.Type)
	}

	obj.SetStackIndex(o.Stack)

	return obj, nil
}

func (o objectFile) toSlider(head vector.Vector2f) (*objects.Slider, error) {
	if o.Repeats < 1 {
		return nil, fmt.Errorf("%w: repeats must be at least 1, got %d", ErrInvalidSlider, o.Repeats)
	}

	if o.SpanDuration < 0 || o.Length < 0 {
		return nil, fmt.Errorf("%w: negative length or span duration", ErrInvalidSlider)
	}

	if o.Repeats > maxSliderRepeats {
		return nil, fmt.Errorf("%w: %d repeats is more than %d", ErrInvalidSlider, o.Repeats, maxSliderRepeats)
	}

	if o.TickInterval < 0 || (o.TickInterval > 0 && o.TickInterval < objects.MinTickInterval) {
		return nil, fmt.Errorf("%w: tick interval %gms is shorter than %gms", ErrInvalidSlider, o.TickInterval, objects.MinTickInterval)
	}

	points := make([]vector.Vector2f, 1, len(o.Points)+1)
	points[0] = head

	for _, p := range o.Points {
		points = append(points, vector.NewVec2f(p[0], p[1]))
	}

	return objects.NewSlider(o.Time, curves.ParseCurveType(o.Curve), points, o.Length, o.Repeats, o.SpanDuration, o.TickInterval, o.NewCombo), nil
}
