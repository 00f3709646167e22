// Package iodb implements database operations using pgxpool.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/db"
)

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// DSN builds a PostgreSQL connection URL from the configuration.
func DSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     cfg.Database,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// registration traffic is light
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	slog.Debug("Connected to database",
		"host", cfg.Host, "port", cfg.Port, "database", cfg.Database)
	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// SchemaExists checks if a schema exists in the current database.
func (p *pgxOperator) SchemaExists(
	ctx context.Context,
	schema string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.schemata
			WHERE schema_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, schema).Scan(&exists)
	if err != nil {
		return false, SchemaCheckError(schema, err)
	}
	return exists, nil
}

// HasTables checks if the schema has any tables.
func (p *pgxOperator) HasTables(
	ctx context.Context,
	schema string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = $1
		)
	`

	var hasTables bool
	err := p.pool.QueryRow(ctx, query, schema).Scan(&hasTables)
	if err != nil {
		return false, SchemaCheckError(schema, err)
	}
	return hasTables, nil
}

// DropSchemaTables drops all tables of the schema. The schema itself
// is kept.
func (p *pgxOperator) DropSchemaTables(
	ctx context.Context,
	schema string,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = $1
	`

	rows, err := p.pool.Query(ctx, query, schema)
	if err != nil {
		return QueryTablesError(schema, err)
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return QueryTablesError(schema, err)
	}

	for _, table := range tables {
		ident := pgx.Identifier{schema, table}.Sanitize()
		dropSQL := "DROP TABLE IF EXISTS " + ident + " CASCADE"
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(ident, err)
		}
		slog.Info("Dropped table", "table", ident)
	}

	return nil
}
