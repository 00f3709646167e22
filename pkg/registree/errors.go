package registree

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/errcode"
)

// ValidationError is returned when required identity fields are missing
// or malformed.
func ValidationError(regNum int, err error) error {
	msg := "Registree <em>%d</em> is invalid: %s"
	vars := []any{regNum, describe(err)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegValidationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid registree %d: %w",
			fn.Name(), regNum, err),
	}
}
