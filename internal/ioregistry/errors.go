package ioregistry

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/errcode"
)

// NotConnectedError is returned when a repository is created from an
// operator without a connection pool.
func NotConnectedError() error {
	msg := "Registry requires a database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// NotFoundError is returned when reg_num has no active registree.
func NotFoundError(regNum int) error {
	msg := "Registree <em>%d</em> is not found or is cancelled"
	vars := []any{regNum}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no active registree %d",
			fn.Name(), regNum),
	}
}

// PersistenceError is returned when a database statement of an
// operation fails.
func PersistenceError(op string, regNum int, err error) error {
	msg := `Database failure during <em>%s</em> of registree <em>%d</em>

<em>How to fix:</em>
  1. Check that PostgreSQL is running
  2. Run <em>convdb migrate</em> to update tables
  3. See the log for the failed statement`
	vars := []any{op, regNum}
	return &gn.Error{
		Code: errcode.RegPersistenceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s of registree %d: %w", op, regNum, err),
	}
}
