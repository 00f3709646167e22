// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/db"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/lifecycle"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// target is a PostgreSQL schema with the models of its tables.
type target struct {
	name   string
	models []any
}

func targets(cfg *config.Config) []target {
	return []target{
		{cfg.Schemas.Current, schema.AllModels()},
		{cfg.Schemas.PriorYear, schema.PriorYearModels()},
	}
}

// Create makes sure both schemas exist and creates their tables.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	for _, t := range targets(cfg) {
		q := "CREATE SCHEMA IF NOT EXISTS " + pgx.Identifier{t.name}.Sanitize()
		if _, err := pool.Exec(ctx, q); err != nil {
			return CreateSchemaError(t.name, err)
		}

		gormDB, err := m.openGORM(ctx, t.name)
		if err != nil {
			return err
		}
		if err = schema.Migrate(gormDB, t.models...); err != nil {
			return CreateSchemaError(t.name, err)
		}
		slog.Info("Schema is ready", "schema", t.name, "tables", len(t.models))
	}

	return nil
}

// Migrate updates the tables of both schemas using GORM AutoMigrate.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	if m.operator.Pool() == nil {
		return NotConnectedError()
	}

	for _, t := range targets(cfg) {
		gormDB, err := m.openGORM(ctx, t.name)
		if err != nil {
			return err
		}
		if err = schema.Migrate(gormDB, t.models...); err != nil {
			return MigrateSchemaError(t.name, err)
		}
		slog.Info("Schema is migrated", "schema", t.name)
	}

	return nil
}

// openGORM wraps the operator's pool into a GORM connection that
// places tables into dbSchema.
func (m *manager) openGORM(
	ctx context.Context,
	dbSchema string,
) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(m.operator.Pool())

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{
			NamingStrategy: schema.NamingStrategy(dbSchema),
			Logger:         logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB.WithContext(ctx), nil
}
