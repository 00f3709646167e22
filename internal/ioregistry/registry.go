// Package ioregistry implements registry.Repository on top of a pgx
// connection pool. Tables are addressed through the configured
// PostgreSQL schemas of the current and the prior convention.
package ioregistry

import (
	"context"
	"errors"

	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/db"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registry"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tables holds sanitized, schema-qualified table names.
type tables struct {
	registree, club, partnerProgram, fullReg, partialReg, pins string
	payment, registreePair                                     string

	priorRegistree, priorPayment string
}

func newTables(schemas config.SchemaConfig) tables {
	cur := func(name string) string {
		return pgx.Identifier{schemas.Current, name}.Sanitize()
	}
	prior := func(name string) string {
		return pgx.Identifier{schemas.PriorYear, name}.Sanitize()
	}
	return tables{
		registree:      cur("registree"),
		club:           cur("club"),
		partnerProgram: cur("partner_program"),
		fullReg:        cur("full_reg"),
		partialReg:     cur("partial_reg"),
		pins:           cur("pins"),
		payment:        cur("payment"),
		registreePair:  cur("registree_pair"),
		priorRegistree: prior("registree"),
		priorPayment:   prior("payment"),
	}
}

// dependents are tables with one row per registree that are replaced
// on upload and removed on cancellation.
func (t tables) dependents() []string {
	return []string{t.club, t.partnerProgram, t.fullReg, t.partialReg, t.pins}
}

type repo struct {
	pool *pgxpool.Pool
	t    tables
}

// New creates a Repository using the connection pool of a connected
// operator.
func New(op db.Operator, schemas config.SchemaConfig) (registry.Repository, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}
	res := repo{
		pool: pool,
		t:    newTables(schemas),
	}
	return &res, nil
}

// write runs fn in a read-write transaction. Errors that are not
// *gn.Error become PersistenceError of op.
func (r *repo) write(
	ctx context.Context,
	op string,
	regNum int,
	fn func(pgx.Tx) error,
) error {
	err := pgx.BeginFunc(ctx, r.pool, fn)
	return wrapErr(op, regNum, err)
}

// read runs fn in a read-only transaction, so all its queries see the
// same snapshot.
func (r *repo) read(
	ctx context.Context,
	op string,
	regNum int,
	fn func(pgx.Tx) error,
) error {
	opts := pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}
	err := pgx.BeginTxFunc(ctx, r.pool, opts, fn)
	return wrapErr(op, regNum, err)
}

func wrapErr(op string, regNum int, err error) error {
	if err == nil {
		return nil
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return err
	}
	return PersistenceError(op, regNum, err)
}

// optional scans a row that may be absent. It reports false without an
// error when there is no row.
func optional(row pgx.Row, dest ...any) (bool, error) {
	err := row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
