//go:build !cgo_sqlite

package store

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// Driver names the database/sql driver used by [Open].
const Driver = "sqlite"

func openDB(dataSource string) (*sql.DB, error) {
	return sql.Open(Driver, dataSource)
}
