//go:build !integration

package iotesting

import (
	"testing"

	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
)

// TestDatabase returns the configuration of the database used by
// integration tests. Without the integration build tag it is the
// locally configured PostgreSQL with the test database name.
func TestDatabase(t *testing.T) *config.Config {
	t.Helper()
	return GetTestConfig()
}
