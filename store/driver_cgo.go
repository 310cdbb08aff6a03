//go:build cgo_sqlite

package store

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Driver names the database/sql driver used by [Open].
const Driver = "sqlite3"

func openDB(dataSource string) (*sql.DB, error) {
	return sql.Open(Driver, dataSource)
}
