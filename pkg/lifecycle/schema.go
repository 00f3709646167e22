package lifecycle

import (
	"context"

	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create makes sure PostgreSQL schemas of the current and the
	// prior convention exist and creates their tables.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates tables of both schemas to the latest models.
	// Existing data is kept.
	Migrate(ctx context.Context, cfg *config.Config) error
}
