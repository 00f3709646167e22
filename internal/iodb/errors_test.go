package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "test", "postgres",
		originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Equal(t, []any{"test", "localhost", 5432, "localhost", "postgres"},
		gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestAllErrors verifies codes and wrapping of all errors.
func TestAllErrors(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		vars []any
	}{
		{
			name: "SchemaCheckError",
			err:  SchemaCheckError("md410_2021_conv", originalErr),
			code: errcode.DBSchemaCheckError,
			vars: []any{"md410_2021_conv"},
		},
		{
			name: "QueryTablesError",
			err:  QueryTablesError("md410_2021_conv", originalErr),
			code: errcode.DBQueryTablesError,
			vars: []any{"md410_2021_conv"},
		},
		{
			name: "DropTableError",
			err:  DropTableError(`"md410_2021_conv"."pins"`, originalErr),
			code: errcode.DBDropTableError,
			vars: []any{`"md410_2021_conv"."pins"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Equal(t, tt.vars, gnErr.Vars)
			assert.ErrorIs(t, gnErr.Err, originalErr)
		})
	}
}

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}
