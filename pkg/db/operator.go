package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
)

// Operator defines basic database management operations.
// It owns the connection pool and exposes it to the components
// (SchemaManager, Repository) that run their own SQL.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. It is nil before Connect.
	Pool() *pgxpool.Pool

	// SchemaExists checks if a schema exists in the database.
	SchemaExists(ctx context.Context, schema string) (bool, error)

	// HasTables checks if the schema has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context, schema string) (bool, error)

	// DropSchemaTables drops all tables of the schema.
	DropSchemaTables(ctx context.Context, schema string) error
}
