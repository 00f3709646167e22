package ioregistry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registree"
	"github.com/shopspring/decimal"
)

func (r *repo) PairedRegNums(ctx context.Context, regNum int) ([]int, error) {
	var res []int
	err := r.read(ctx, "pair lookup", regNum, func(tx pgx.Tx) error {
		var err error
		res, err = r.pairedRegNums(ctx, tx, regNum)
		return err
	})
	return res, err
}

func (r *repo) pairedRegNums(
	ctx context.Context,
	q querier,
	regNum int,
) ([]int, error) {
	query := fmt.Sprintf(`
		SELECT first_reg_num, second_reg_num
		FROM %s
		WHERE first_reg_num = $1 OR second_reg_num = $1
		ORDER BY first_reg_num
		LIMIT 1`, r.t.registreePair)

	var first, second int
	ok, err := optional(q.QueryRow(ctx, query, regNum), &first, &second)
	if err != nil {
		return nil, fmt.Errorf("select pair: %w", err)
	}
	if !ok {
		return []int{regNum}, nil
	}
	return []int{first, second}, nil
}

func (r *repo) Registrees(
	ctx context.Context,
	regNum int,
) ([]registree.Summary, error) {
	var res []registree.Summary
	err := r.read(ctx, "registree lookup", regNum, func(tx pgx.Tx) error {
		regNums, err := r.pairedRegNums(ctx, tx, regNum)
		if err != nil {
			return err
		}
		res, err = r.summaries(ctx, tx, regNums)
		return err
	})
	return res, err
}

func (r *repo) Registree(
	ctx context.Context,
	regNum int,
) (registree.Summary, error) {
	var res []registree.Summary
	err := r.read(ctx, "registree lookup", regNum, func(tx pgx.Tx) error {
		var err error
		res, err = r.summaries(ctx, tx, []int{regNum})
		return err
	})
	if err != nil {
		return registree.Summary{}, err
	}
	if len(res) == 0 {
		return registree.Summary{}, NotFoundError(regNum)
	}
	return res[0], nil
}

func (r *repo) AllRegistrees(
	ctx context.Context,
	regNums ...int,
) ([]registree.Summary, error) {
	var res []registree.Summary
	err := r.read(ctx, "registree listing", 0, func(tx pgx.Tx) error {
		var err error
		res, err = r.summaries(ctx, tx, regNums)
		return err
	})
	return res, err
}

// identity is a row of the registree table.
type identity struct {
	RegNum     int
	FirstNames string
	LastName   string
	Cell       string
	Email      string
	IsLion     bool
	Title      string
}

// summaries builds summaries of active registrees, restricted to
// regNums when it is not empty.
func (r *repo) summaries(
	ctx context.Context,
	q querier,
	regNums []int,
) ([]registree.Summary, error) {
	query := fmt.Sprintf(`
		SELECT reg_num,
			COALESCE(first_names, ''), COALESCE(last_name, ''),
			COALESCE(cell, ''), COALESCE(email, ''),
			COALESCE(is_lion, false), COALESCE(title, '')
		FROM %s
		WHERE cancellation_timestamp IS NULL`, r.t.registree)
	var args []any
	if len(regNums) > 0 {
		query += " AND reg_num = ANY($1)"
		args = append(args, regNums)
	}
	query += " ORDER BY reg_num"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select registrees: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowToStructByPos[identity])
	if err != nil {
		return nil, fmt.Errorf("scan registrees: %w", err)
	}

	res := make([]registree.Summary, 0, len(ids))
	for _, v := range ids {
		s, err := r.summary(ctx, q, v)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

// summary joins a registree to its club, purchases and payments. Each
// related row is optional; a missing one leaves the default value.
func (r *repo) summary(
	ctx context.Context,
	q querier,
	id identity,
) (registree.Summary, error) {
	p := registree.SummaryParams{
		RegNum:     id.RegNum,
		FirstNames: id.FirstNames,
		LastName:   id.LastName,
		Cell:       id.Cell,
		Email:      id.Email,
		IsLion:     id.IsLion,
		Title:      id.Title,
	}

	if id.IsLion {
		ok, err := r.club(ctx, q, id.RegNum, &p.Club)
		if err != nil {
			return registree.Summary{}, err
		}
		if !ok {
			slog.Debug("Lion has no club", "reg_num", id.RegNum)
		}
	}

	lookups := []struct {
		table string
		cols  string
		dest  []any
	}{
		{r.t.fullReg, "quantity", []any{&p.FullRegs}},
		{
			r.t.partialReg,
			"banquet_quantity, convention_quantity, theme_quantity",
			[]any{&p.Banquets, &p.Conventions, &p.Themes},
		},
		{r.t.pins, "quantity", []any{&p.Pins}},
	}
	for _, v := range lookups {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE reg_num = $1",
			v.cols, v.table)
		if _, err := optional(q.QueryRow(ctx, query, id.RegNum), v.dest...); err != nil {
			return registree.Summary{}, fmt.Errorf("select %s: %w", v.table, err)
		}
	}

	var err error
	if p.Payments, err = r.paymentTotal(ctx, q, id.RegNum); err != nil {
		return registree.Summary{}, err
	}

	return registree.NewSummary(p)
}

func (r *repo) club(
	ctx context.Context,
	q querier,
	regNum int,
	club *string,
) (bool, error) {
	query := fmt.Sprintf(
		"SELECT COALESCE(club, '') FROM %s WHERE reg_num = $1", r.t.club)
	ok, err := optional(q.QueryRow(ctx, query, regNum), club)
	if err != nil {
		return false, fmt.Errorf("select club: %w", err)
	}
	return ok, nil
}

func (r *repo) paymentTotal(
	ctx context.Context,
	q querier,
	regNum int,
) (decimal.Decimal, error) {
	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(amount), 0) FROM %s WHERE reg_num = $1",
		r.t.payment)
	var res decimal.Decimal
	if err := q.QueryRow(ctx, query, regNum).Scan(&res); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return res, nil
}

func (r *repo) Payments(
	ctx context.Context,
	regNum int,
) ([]registree.Payment, error) {
	query := fmt.Sprintf(`
		SELECT reg_num, timestamp, amount
		FROM %s
		WHERE reg_num = $1
		ORDER BY timestamp, id`, r.t.payment)

	var res []registree.Payment
	err := r.read(ctx, "payment listing", regNum, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, regNum)
		if err != nil {
			return fmt.Errorf("select payments: %w", err)
		}
		res, err = pgx.CollectRows(rows, pgx.RowToStructByPos[registree.Payment])
		if err != nil {
			return fmt.Errorf("scan payments: %w", err)
		}
		return nil
	})
	return res, err
}

func (r *repo) PriorYearPayees(
	ctx context.Context,
) (map[int]registree.Payee, error) {
	query := fmt.Sprintf(`
		SELECT r.reg_num, r.first_names, r.last_name, SUM(p.amount)
		FROM %s r
		JOIN %s p ON p.reg_num = r.reg_num
		WHERE r.cancellation_timestamp IS NULL
		GROUP BY r.reg_num, r.first_names, r.last_name
		ORDER BY r.reg_num`, r.t.priorRegistree, r.t.priorPayment)

	res := make(map[int]registree.Payee)
	err := r.read(ctx, "prior year payees", 0, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("select prior year payments: %w", err)
		}
		var (
			regNum      int
			first, last string
			total       decimal.Decimal
		)
		_, err = pgx.ForEachRow(rows, []any{&regNum, &first, &last, &total},
			func() error {
				res[regNum] = registree.NewPayee(regNum, first, last, total)
				return nil
			})
		if err != nil {
			return fmt.Errorf("scan prior year payments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Prior year payees", "count", len(res))
	return res, nil
}
