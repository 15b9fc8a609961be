package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/theater/internal/db"
)

func getPreference(conn *sql.DB, key string) (string, bool, error) {
	var value string
	err := conn.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func savePreferences(conn *sql.DB, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	now := time.Now().Unix()
	return db.WithTx(context.Background(), conn, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO preferences (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for key, value := range values {
			if _, err := stmt.Exec(key, value, now); err != nil {
				return err
			}
		}
		return nil
	})
}
