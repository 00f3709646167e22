// Package errcode enumerates error codes of convdb. Every error
// returned by convdb packages is a *gn.Error carrying one of them.
package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBSchemaCheckError
	DBQueryTablesError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Registration errors
	RegValidationError
	RegNotFoundError
	RegPersistenceError
)

// Of returns the code of the first *gn.Error in the chain of err.
// Returns UnknownError if err is nil or carries no code.
func Of(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return UnknownError
}
