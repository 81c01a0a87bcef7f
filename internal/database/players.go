package database

import "database/sql"

// GetPlayerName returns a cached display name, if resolved before.
func (db *DB) GetPlayerName(playerID int) (string, bool, error) {
	var name string
	err := db.conn.QueryRow(
		"SELECT name FROM players WHERE id = ?", playerID,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// PutPlayerName caches a resolved display name.
func (db *DB) PutPlayerName(playerID int, name string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO players (id, name) VALUES (?, ?)", playerID, name,
	)
	return err
}
