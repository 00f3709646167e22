package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/errcode"
)

// ConnectionError creates an error for database connection failures.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database <em>%s</em>

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     pg_isready -h %s -p %d
  2. Verify database exists and user has access:
     psql -h %s -U %s -l
  3. Check ~/.config/convdb/config.yaml or CONVDB_DATABASE_* variables`

	vars := []any{database, host, port, host, user}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError creates an error for operations attempted
// before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// SchemaCheckError creates an error for failed inspection of a
// schema.
func SchemaCheckError(schema string, err error) error {
	msg := "Cannot check database schema <em>%s</em>"
	vars := []any{schema}

	return &gn.Error{
		Code: errcode.DBSchemaCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to check schema %s: %w", schema, err),
	}
}

// QueryTablesError creates an error for failed listing of the
// tables of a schema.
func QueryTablesError(schema string, err error) error {
	msg := "Cannot list tables of schema <em>%s</em>"
	vars := []any{schema}

	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to query tables of %s: %w", schema, err),
	}
}

// DropTableError creates an error for a failed DROP TABLE.
func DropTableError(table string, err error) error {
	msg := `Cannot drop table <em>%s</em>

<em>How to fix:</em>
  1. Check database user has DROP permissions
  2. Make sure no other session holds a lock on the table`
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
