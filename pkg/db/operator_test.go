package db_test

import (
	"testing"

	"github.com/kimvanwyk/md410-2021-conv-common/internal/iodb"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/db"
	"github.com/stretchr/testify/assert"
)

func TestNewPgxOperator(t *testing.T) {
	var op db.Operator = iodb.NewPgxOperator()
	assert.NotNil(t, op)
	assert.Nil(t, op.Pool(), "pool is nil before Connect")
	assert.NoError(t, op.Close(), "Close without Connect is a no-op")
}
