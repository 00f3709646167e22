//go:build integration

package iotesting

import (
	"context"
	"sync"
	"testing"

	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	containerOnce sync.Once
	containerHost string
	containerPort int
	containerErr  error
)

// TestDatabase starts (once per test binary) a PostgreSQL container and
// returns a configuration pointing to it. Ryuk removes the container
// when the tests finish.
func TestDatabase(t *testing.T) *config.Config {
	t.Helper()

	containerOnce.Do(func() {
		containerHost, containerPort, containerErr = startPostgres()
	})
	if containerErr != nil {
		t.Fatalf("failed to start postgres container: %v", containerErr)
	}

	cfg := GetTestConfig()
	cfg.Update([]config.Option{
		config.OptDatabaseHost(containerHost),
		config.OptDatabasePort(containerPort),
		config.OptDatabaseUser(testUser),
		config.OptDatabasePassword(testPassword),
		config.OptDatabaseSSLMode("disable"),
	})
	return cfg
}

func startPostgres() (string, int, error) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase(TestDatabaseName),
		tcpostgres.WithUsername(testUser),
		tcpostgres.WithPassword(testPassword),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", 0, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return "", 0, err
	}

	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return "", 0, err
	}

	return host, port.Int(), nil
}
