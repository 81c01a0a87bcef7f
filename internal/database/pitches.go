package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ddoberne/statcast-highlight-tool/internal/statcast"
)

// CacheDay stores all pitches for one game date atomically and marks the
// date cached. Re-caching a day replaces its rows.
func (db *DB) CacheDay(date string, pitches []statcast.Pitch) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin cache day: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pitches WHERE game_date = ?", date); err != nil {
		return fmt.Errorf("clearing day %s: %w", date, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO pitches
		(game_date, pitcher, batter, inning, half, balls, strikes, result,
		plate_x, plate_z, sz_top, sz_bot, has_zone,
		launch_speed, launch_angle, has_launch,
		home_team, away_team, delta_home_win_exp, has_win_exp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pitches {
		if p.GameDate != date {
			continue
		}
		_, err := stmt.Exec(
			p.GameDate, p.PitcherID, p.BatterID, p.Inning, p.Half, p.Balls, p.Strikes, p.Result,
			p.PlateX, p.PlateZ, p.SzTop, p.SzBot, boolInt(p.HasZone),
			p.LaunchSpeed, p.LaunchAngle, boolInt(p.HasLaunch),
			p.HomeTeam, p.AwayTeam, p.DeltaHomeWinExp, boolInt(p.HasWinExp),
		)
		if err != nil {
			return fmt.Errorf("inserting pitch: %w", err)
		}
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO cached_days (game_date) VALUES (?)", date,
	); err != nil {
		return fmt.Errorf("marking day cached: %w", err)
	}

	return tx.Commit()
}

// GetPitchesForRange returns cached pitches with game_date in [start, end].
func (db *DB) GetPitchesForRange(startDate, endDate string) ([]statcast.Pitch, error) {
	rows, err := db.conn.Query(
		`SELECT game_date, pitcher, batter, inning, half, balls, strikes, result,
		plate_x, plate_z, sz_top, sz_bot, has_zone,
		launch_speed, launch_angle, has_launch,
		home_team, away_team, delta_home_win_exp, has_win_exp
		FROM pitches WHERE game_date >= ? AND game_date <= ? ORDER BY game_date, id`,
		startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pitches []statcast.Pitch
	for rows.Next() {
		var p statcast.Pitch
		var hasZone, hasLaunch, hasWinExp int
		var plateX, plateZ, szTop, szBot, speed, angle, delta sql.NullFloat64
		err := rows.Scan(
			&p.GameDate, &p.PitcherID, &p.BatterID, &p.Inning, &p.Half, &p.Balls, &p.Strikes, &p.Result,
			&plateX, &plateZ, &szTop, &szBot, &hasZone,
			&speed, &angle, &hasLaunch,
			&p.HomeTeam, &p.AwayTeam, &delta, &hasWinExp,
		)
		if err != nil {
			return nil, err
		}
		p.PlateX, p.PlateZ, p.SzTop, p.SzBot = plateX.Float64, plateZ.Float64, szTop.Float64, szBot.Float64
		p.LaunchSpeed, p.LaunchAngle = speed.Float64, angle.Float64
		p.DeltaHomeWinExp = delta.Float64
		p.HasZone = hasZone != 0
		p.HasLaunch = hasLaunch != 0
		p.HasWinExp = hasWinExp != 0
		pitches = append(pitches, p)
	}
	return pitches, rows.Err()
}

// MissingDays returns the dates in [start, end] not yet fully cached.
func (db *DB) MissingDays(startDate, endDate string) ([]string, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("bad start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("bad end date %q: %w", endDate, err)
	}

	cached := make(map[string]struct{})
	rows, err := db.conn.Query(
		"SELECT game_date FROM cached_days WHERE game_date >= ? AND game_date <= ?",
		startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		cached[d] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		if _, ok := cached[date]; !ok {
			missing = append(missing, date)
		}
	}
	return missing, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
