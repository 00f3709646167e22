package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(dbSchema string, err error) error {
	msg := `Cannot create tables in schema <em>%s</em>

<em>Possible causes:</em>
  - Insufficient database permissions
  - Schema name clashes with an existing object

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: []any{dbSchema},
		Err:  fmt.Errorf("failed to create schema %s: %w", dbSchema, err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(dbSchema string, err error) error {
	msg := `Cannot migrate tables in schema <em>%s</em>

<em>Possible causes:</em>
  - Incompatible schema changes
  - Insufficient database permissions

<em>How to fix:</em>
  1. Backup data of the schema
  2. Run <em>convdb create --force</em> on a copy and compare`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: []any{dbSchema},
		Err:  fmt.Errorf("failed to migrate schema %s: %w", dbSchema, err),
	}
}
