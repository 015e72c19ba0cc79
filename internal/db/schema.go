package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
)

// QueryRower is the minimal surface shared by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable checks the current schema for a table. Bad connections report
// false rather than spamming logs.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

// HasColumn checks whether a column exists on a table in the current schema.
func HasColumn(q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

// NullIfEmpty helps store optional strings without writing empty text.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullFloat turns optional amounts into NULL instead of 0.
func NullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
