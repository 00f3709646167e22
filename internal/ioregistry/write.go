package ioregistry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registree"
	"github.com/shopspring/decimal"
)

func (r *repo) RecordPayment(
	ctx context.Context,
	regNum int,
	amount decimal.Decimal,
	ts time.Time,
) ([]registree.Payment, error) {
	if ts.IsZero() {
		ts = time.Now()
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (reg_num, timestamp, amount) VALUES ($1, $2, $3)",
		r.t.payment)

	var res []registree.Payment
	err := r.write(ctx, "payment", regNum, func(tx pgx.Tx) error {
		regNums, err := r.pairedRegNums(ctx, tx, regNum)
		if err != nil {
			return err
		}

		shares := registree.SplitAmount(amount, len(regNums))
		res = make([]registree.Payment, len(regNums))
		for i, v := range regNums {
			res[i] = registree.Payment{RegNum: v, Timestamp: ts, Amount: shares[i]}
			if _, err = tx.Exec(ctx, query, v, ts, shares[i]); err != nil {
				return fmt.Errorf("insert payment of %d: %w", v, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, v := range res {
		slog.Info("Payment recorded",
			"reg_num", v.RegNum, "amount", v.Amount.StringFixed(2))
	}
	return res, nil
}

func (r *repo) UploadRegistree(
	ctx context.Context,
	reg registree.Registration,
) (int, error) {
	if err := reg.Validate(); err != nil {
		return 0, err
	}
	if reg.Timestamp.IsZero() {
		reg.Timestamp = time.Now()
	}

	regNum := reg.RegNum
	err := r.write(ctx, "upload", reg.RegNum, func(tx pgx.Tx) error {
		var err error
		if reg.RegNum == 0 {
			regNum, err = r.insertRegistree(ctx, tx, reg)
			if err != nil {
				return err
			}
		} else {
			if err = r.deleteRegistree(ctx, tx, regNum); err != nil {
				return err
			}
			if _, err = r.insertRegistree(ctx, tx, reg); err != nil {
				return err
			}
			if err = r.syncRegNumSequence(ctx, tx); err != nil {
				return err
			}
		}
		return r.insertDependents(ctx, tx, regNum, reg)
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Registree uploaded",
		"reg_num", regNum, "is_lion", reg.IsLion)
	return regNum, nil
}

// deleteRegistree removes the registree row and its dependents. Pairs
// and payments are kept.
func (r *repo) deleteRegistree(
	ctx context.Context,
	tx pgx.Tx,
	regNum int,
) error {
	for _, table := range append([]string{r.t.registree}, r.t.dependents()...) {
		query := fmt.Sprintf("DELETE FROM %s WHERE reg_num = $1", table)
		if _, err := tx.Exec(ctx, query, regNum); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return nil
}

// insertRegistree inserts the registree row. A zero RegNum is assigned
// by the database. Returns the registration number of the row.
func (r *repo) insertRegistree(
	ctx context.Context,
	tx pgx.Tx,
	reg registree.Registration,
) (int, error) {
	cols := []string{
		"timestamp", "first_names", "last_name", "cell", "email",
		"dietary", "disability", "name_badge", "first_mdc", "mjf_lunch",
		"is_lion", "title",
	}
	args := []any{
		reg.Timestamp, reg.FirstNames, reg.LastName, reg.Cell, reg.Email,
		reg.Dietary, reg.Disability, reg.NameBadge, reg.FirstMDC,
		reg.MJFLunch, reg.IsLion, nullable(reg.Title),
	}
	if reg.RegNum != 0 {
		cols = append([]string{"reg_num"}, cols...)
		args = append([]any{reg.RegNum}, args...)
	}

	params := make([]string, len(cols))
	for i := range cols {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING reg_num",
		r.t.registree, strings.Join(cols, ", "), strings.Join(params, ", "))

	var res int
	if err := tx.QueryRow(ctx, query, args...).Scan(&res); err != nil {
		return 0, fmt.Errorf("insert registree: %w", err)
	}
	return res, nil
}

// syncRegNumSequence moves the reg_num sequence past explicitly given
// registration numbers, so later database-assigned numbers do not
// collide with them.
func (r *repo) syncRegNumSequence(ctx context.Context, tx pgx.Tx) error {
	query := fmt.Sprintf(`
		SELECT setval(
			pg_get_serial_sequence($1, 'reg_num'),
			GREATEST((SELECT MAX(reg_num) FROM %s), 1)
		)`, r.t.registree)
	if _, err := tx.Exec(ctx, query, r.t.registree); err != nil {
		return fmt.Errorf("sync reg_num sequence: %w", err)
	}
	return nil
}

// insertDependents stores the affiliation and purchases of a
// registree: a club for lions, the partner program for others, and
// every purchase with a non-zero quantity.
func (r *repo) insertDependents(
	ctx context.Context,
	tx pgx.Tx,
	regNum int,
	reg registree.Registration,
) error {
	type insert struct {
		table string
		cols  string
		args  []any
	}

	var inserts []insert
	if reg.IsLion {
		inserts = append(inserts, insert{r.t.club, "reg_num, club, district",
			[]any{regNum, reg.Club, reg.District}})
	} else {
		inserts = append(inserts, insert{r.t.partnerProgram, "reg_num, quantity",
			[]any{regNum, 1}})
	}
	if reg.FullReg > 0 {
		inserts = append(inserts, insert{r.t.fullReg, "reg_num, quantity",
			[]any{regNum, reg.FullReg}})
	}
	if !reg.PartialReg.IsEmpty() {
		pr := reg.PartialReg
		inserts = append(inserts, insert{
			r.t.partialReg,
			"reg_num, banquet_quantity, convention_quantity, theme_quantity",
			[]any{regNum, pr.Banquet, pr.Convention, pr.Theme},
		})
	}
	if reg.Pins > 0 {
		inserts = append(inserts, insert{r.t.pins, "reg_num, quantity",
			[]any{regNum, reg.Pins}})
	}

	for _, v := range inserts {
		params := make([]string, len(v.args))
		for i := range v.args {
			params[i] = fmt.Sprintf("$%d", i+1)
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			v.table, v.cols, strings.Join(params, ", "))
		if _, err := tx.Exec(ctx, query, v.args...); err != nil {
			return fmt.Errorf("insert into %s: %w", v.table, err)
		}
	}
	return nil
}

func (r *repo) CancelRegistration(ctx context.Context, regNums ...int) error {
	if len(regNums) == 0 {
		return nil
	}

	var cancelled int64
	err := r.write(ctx, "cancellation", regNums[0], func(tx pgx.Tx) error {
		for _, table := range r.t.dependents() {
			query := fmt.Sprintf("DELETE FROM %s WHERE reg_num = ANY($1)", table)
			if _, err := tx.Exec(ctx, query, regNums); err != nil {
				return fmt.Errorf("delete from %s: %w", table, err)
			}
		}

		query := fmt.Sprintf(
			"DELETE FROM %s WHERE first_reg_num = ANY($1)", r.t.registreePair)
		if _, err := tx.Exec(ctx, query, regNums); err != nil {
			return fmt.Errorf("delete pairs: %w", err)
		}

		// the first cancellation time is kept
		query = fmt.Sprintf(`
			UPDATE %s SET cancellation_timestamp = now()
			WHERE reg_num = ANY($1) AND cancellation_timestamp IS NULL`,
			r.t.registree)
		tag, err := tx.Exec(ctx, query, regNums)
		if err != nil {
			return fmt.Errorf("mark cancelled: %w", err)
		}
		cancelled = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Registrations cancelled",
		"reg_nums", regNums, "cancelled", cancelled)
	return nil
}

func (r *repo) PairRegistrees(ctx context.Context, first, second int) error {
	if err := validatePair(first, second); err != nil {
		return err
	}

	err := r.write(ctx, "pairing", first, func(tx pgx.Tx) error {
		query := fmt.Sprintf(
			"DELETE FROM %s WHERE first_reg_num = $1", r.t.registreePair)
		if _, err := tx.Exec(ctx, query, first); err != nil {
			return fmt.Errorf("delete pair: %w", err)
		}

		query = fmt.Sprintf(
			"INSERT INTO %s (first_reg_num, second_reg_num) VALUES ($1, $2)",
			r.t.registreePair)
		if _, err := tx.Exec(ctx, query, first, second); err != nil {
			return fmt.Errorf("insert pair: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Registrees paired", "first", first, "second", second)
	return nil
}

func validatePair(first, second int) error {
	switch {
	case first <= 0:
		return registree.ValidationError(first,
			fmt.Errorf("registration number must be positive"))
	case second <= 0:
		return registree.ValidationError(second,
			fmt.Errorf("registration number must be positive"))
	case first == second:
		return registree.ValidationError(first,
			fmt.Errorf("registree cannot be paired with itself"))
	}
	return nil
}

// nullable turns a blank string into SQL NULL.
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
