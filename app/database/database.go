package database

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/givikap120/flowpp/app/beatmap/difficulty"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/api"
)

const schema = `
	create table if not exists attributes
	(
		checksum text not null,
		mods integer not null,
		rate real not null,
		version integer not null,
		total real,
		aim real,
		speed real,
		stamina real,
		precision real,
		accuracy real,
		approach_rate real,
		overall_difficulty real,
		objects integer,
		circles integer,
		sliders integer,
		spinners integer,
		max_combo integer,
		primary key (checksum, mods, rate, version)
	);
`

// Cache stores difficulty attributes keyed by beatmap checksum, difficulty changing mods, rate and calculator version
type Cache struct {
	db *sql.DB
}

func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open attribute cache: %w", err)
	}

	// sqlite serializes writers anyway, one connection also keeps in-memory databases intact
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create attribute cache: %w", err)
	}

	return &Cache{db: db}, nil
}

func (cache *Cache) Close() error {
	return cache.db.Close()
}

// Get returns cached attributes, ok is false on a cache miss
func (cache *Cache) Get(checksum string, mods difficulty.Modifier, rate float64, version int) (attr api.Attributes, ok bool, err error) {
	row := cache.db.QueryRow(`
		select total, aim, speed, stamina, precision, accuracy, approach_rate, overall_difficulty,
		       objects, circles, sliders, spinners, max_combo
		from attributes
		where checksum = ? and mods = ? and rate = ? and version = ?`,
		checksum, int64(difficulty.GetDiffMaskedMods(mods)), rate, version)

	err = row.Scan(
		&attr.Total, &attr.Aim, &attr.Speed, &attr.Stamina, &attr.Precision, &attr.Accuracy,
		&attr.ApproachRate, &attr.OverallDifficulty,
		&attr.ObjectCount, &attr.Circles, &attr.Sliders, &attr.Spinners, &attr.MaxCombo,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return api.Attributes{}, false, nil
	}

	if err != nil {
		return api.Attributes{}, false, fmt.Errorf("failed to read cached attributes: %w", err)
	}

	attr.Mods = mods

	return attr, true, nil
}

// Put stores attr, replacing an older entry with the same key
func (cache *Cache) Put(checksum string, rate float64, version int, attr api.Attributes) error {
	_, err := cache.db.Exec(`
		insert or replace into attributes
		(checksum, mods, rate, version, total, aim, speed, stamina, precision, accuracy,
		 approach_rate, overall_difficulty, objects, circles, sliders, spinners, max_combo)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		checksum, int64(difficulty.GetDiffMaskedMods(attr.Mods)), rate, version,
		attr.Total, attr.Aim, attr.Speed, attr.Stamina, attr.Precision, attr.Accuracy,
		attr.ApproachRate, attr.OverallDifficulty,
		attr.ObjectCount, attr.Circles, attr.Sliders, attr.Spinners, attr.MaxCombo,
	)

	if err != nil {
		return fmt.Errorf("failed to store attributes: %w", err)
	}

	return nil
}

// Prune removes entries calculated by other calculator versions and returns how many were removed
func (cache *Cache) Prune(version int) (int64, error) {
	result, err := cache.db.Exec("delete from attributes where version != ?", version)
	if err != nil {
		return 0, fmt.Errorf("failed to prune attribute cache: %w", err)
	}

	return result.RowsAffected()
}
