package database

import (
	"database/sql"
	"fmt"
	"log"
)

// migrate applies every schema step newer than the cache's recorded
// version. PRAGMA user_version holds the last applied step; the driver
// rejects that pragma inside a transaction, so the bump lands after each
// commit. Every step's DDL is IF NOT EXISTS, letting an interrupted step
// rerun on the next open.
func migrate(conn *sql.DB) error {
	var applied int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&applied); err != nil {
		return fmt.Errorf("reading cache version: %w", err)
	}

	for _, step := range schema {
		if step.version <= applied {
			continue
		}
		log.Printf("Upgrading cache to v%d: %s", step.version, step.describe)

		tx, err := conn.Begin()
		if err != nil {
			return fmt.Errorf("cache v%d: %w", step.version, err)
		}
		if _, err := tx.Exec(step.ddl); err != nil {
			tx.Rollback()
			return fmt.Errorf("cache v%d (%s): %w", step.version, step.describe, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("cache v%d: %w", step.version, err)
		}

		if _, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", step.version)); err != nil {
			return fmt.Errorf("recording cache v%d: %w", step.version, err)
		}
	}
	return nil
}
