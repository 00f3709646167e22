// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"

	"github.com/kimvanwyk/md410-2021-conv-common/internal/ioconfig"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "convdb_test"

	// TestSchemaCurrent and TestSchemaPriorYear keep test tables apart
	// from real convention data.
	TestSchemaCurrent   = "convdb_test_current"
	TestSchemaPriorYear = "convdb_test_prior"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It loads the user's config (file and CONVDB_* env vars, or defaults)
// and overrides database and schema names for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	var cfgPath string
	if home, err := os.UserHomeDir(); err == nil {
		cfgPath = config.ConfigFilePath(home)
	}

	cfg, err := ioconfig.Load(cfgPath)
	if err != nil {
		cfg = config.New()
	}

	cfg.Update([]config.Option{
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptSchemaCurrent(TestSchemaCurrent),
		config.OptSchemaPriorYear(TestSchemaPriorYear),
	})
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
