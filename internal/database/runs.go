package database

// Run records one compilation run for the status command.
type Run struct {
	ID         int64
	Rule       string
	StartDate  string
	EndDate    string
	Selected   int
	Compiled   int
	Skipped    int
	OutputPath *string
	CreatedAt  *string
}

// Stats contains aggregate cache statistics.
type Stats struct {
	CachedDays      int
	CachedPitches   int
	ResolvedPlayers int
	Runs            int
}

// InsertRun records a completed run.
func (db *DB) InsertRun(rule, startDate, endDate string, selected, compiled, skipped int, outputPath string) error {
	var path *string
	if outputPath != "" {
		path = &outputPath
	}
	_, err := db.conn.Exec(
		`INSERT INTO runs (rule, start_date, end_date, selected, compiled, skipped, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rule, startDate, endDate, selected, compiled, skipped, path,
	)
	return err
}

// GetRecentRuns returns the most recent runs, newest first.
func (db *DB) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := db.conn.Query(
		`SELECT id, rule, start_date, end_date, selected, compiled, skipped, output_path, created_at
		FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Rule, &r.StartDate, &r.EndDate,
			&r.Selected, &r.Compiled, &r.Skipped, &r.OutputPath, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetStats returns aggregate cache statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}
	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM cached_days", &s.CachedDays},
		{"SELECT COUNT(*) FROM pitches", &s.CachedPitches},
		{"SELECT COUNT(*) FROM players", &s.ResolvedPlayers},
		{"SELECT COUNT(*) FROM runs", &s.Runs},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}
	return s, nil
}
