package state

import (
	"context"
	"database/sql"

	"github.com/llehouerou/theater/internal/db"
)

const currentSchemaVersion = 2

func initSchema(conn *sql.DB) error {
	return db.WithTx(context.Background(), conn, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS preferences (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`)
		if err != nil {
			return err
		}

		// Set initial version if not exists
		_, err = tx.Exec(`
			INSERT OR IGNORE INTO schema_version (version) VALUES (?)
		`, currentSchemaVersion)
		if err != nil {
			return err
		}

		// Migration: add updated_at column if missing
		if !hasColumn(tx, "preferences", "updated_at") {
			if _, err := tx.Exec(`ALTER TABLE preferences ADD COLUMN updated_at INTEGER NOT NULL DEFAULT 0`); err != nil {
				return err
			}
		}
		return nil
	})
}

func hasColumn(tx *sql.Tx, table, column string) bool {
	rows, err := tx.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if rows.Scan(&name) == nil && name == column {
			return true
		}
	}
	return false
}
