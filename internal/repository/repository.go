package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// psql is a Squirrel StatementBuilder configured for PostgreSQL
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
