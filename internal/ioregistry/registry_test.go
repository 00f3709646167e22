package ioregistry_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/iodb"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/ioregistry"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/ioschema"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/iotesting"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/errcode"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registree"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests need PostgreSQL, see iotesting.TestDatabase.
// Skip them with `go test -short`.

func TestNewNotConnected(t *testing.T) {
	_, err := ioregistry.New(iodb.NewPgxOperator(), config.New().Schemas)
	assert.Equal(t, errcode.DBNotConnectedError, errcode.Of(err))
}

type fixture struct {
	ctx  context.Context
	cfg  *config.Config
	pool *pgxpool.Pool
	repo registry.Repository
}

// setup creates empty tables in test schemas and returns a repository
// working with them.
func setup(t *testing.T) fixture {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.TestDatabase(t)

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	t.Cleanup(func() { _ = op.Close() })

	for _, v := range []string{cfg.Schemas.Current, cfg.Schemas.PriorYear} {
		require.NoError(t, op.DropSchemaTables(ctx, v))
	}
	require.NoError(t, ioschema.NewManager(op).Create(ctx, cfg))

	repo, err := ioregistry.New(op, cfg.Schemas)
	require.NoError(t, err)

	return fixture{ctx: ctx, cfg: cfg, pool: op.Pool(), repo: repo}
}

func (f fixture) count(t *testing.T, table, where string, args ...any) int {
	t.Helper()
	query := fmt.Sprintf("SELECT count(*) FROM %s.%s WHERE %s",
		f.cfg.Schemas.Current, table, where)
	var res int
	require.NoError(t, f.pool.QueryRow(f.ctx, query, args...).Scan(&res))
	return res
}

func lion(regNum int, first string) registree.Registration {
	return registree.Registration{
		RegNum:     regNum,
		FirstNames: first,
		LastName:   "Smith",
		Cell:       "082 555 0000",
		Email:      "lion@example.com",
		Title:      "Lion",
		IsLion:     true,
		Club:       "Durban Host",
		District:   "410E",
		FullReg:    1,
	}
}

func partner(regNum int, first string) registree.Registration {
	return registree.Registration{
		RegNum:     regNum,
		FirstNames: first,
		LastName:   "Smith",
		PartialReg: &registree.PartialReg{Banquet: 1, Theme: 1},
		Pins:       2,
	}
}

func upload(t *testing.T, f fixture, regs ...registree.Registration) {
	t.Helper()
	for _, v := range regs {
		_, err := f.repo.UploadRegistree(f.ctx, v)
		require.NoError(t, err)
	}
}

func TestUploadAndRead(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(1, " Bob "), partner(2, "Ann"))

	res, err := f.repo.AllRegistrees(f.ctx)
	require.NoError(t, err)
	require.Len(t, res, 2)

	bob := res[0]
	assert.Equal(t, 1, bob.RegNum)
	assert.Equal(t, "Lion Bob", bob.TitledFirstNames)
	assert.Equal(t, "Durban Host", bob.Club)
	assert.Equal(t, 1, bob.FullRegs)
	assert.True(t, bob.Owed.Equal(decimal.NewFromInt(1285)))
	assert.False(t, bob.PaidInFull)

	ann := res[1]
	assert.False(t, ann.IsLion)
	assert.Empty(t, ann.Club)
	assert.Equal(t, registree.Quantities{Banquets: 1, Themes: 1, Pins: 2},
		ann.Quantities)
	assert.True(t, ann.Owed.Equal(decimal.NewFromInt(500+450+2*55)))

	assert.Equal(t, 1, f.count(t, "club", "reg_num = 1"))
	assert.Equal(t, 1, f.count(t, "partner_program", "reg_num = 2 AND quantity = 1"))
	assert.Equal(t, 0, f.count(t, "partner_program", "reg_num = 1"))

	one, err := f.repo.Registree(f.ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, ann, one)

	_, err = f.repo.Registree(f.ctx, 99)
	assert.Equal(t, errcode.RegNotFoundError, errcode.Of(err))

	filtered, err := f.repo.AllRegistrees(f.ctx, 2, 99)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].RegNum)
}

func TestUploadReplaces(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(5, "Bob"))
	_, err := f.repo.RecordPayment(f.ctx, 5, decimal.NewFromInt(100), time.Time{})
	require.NoError(t, err)

	second := partner(5, "Robert")
	upload(t, f, second)

	res, err := f.repo.AllRegistrees(f.ctx)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Robert", res[0].FirstNames)
	assert.False(t, res[0].IsLion)
	assert.Empty(t, res[0].Club)
	assert.Equal(t, 0, res[0].FullRegs)
	assert.Equal(t, 1, res[0].Banquets)

	assert.Equal(t, 1, f.count(t, "registree", "reg_num = 5"))
	assert.Equal(t, 0, f.count(t, "club", "reg_num = 5"))
	assert.Equal(t, 0, f.count(t, "full_reg", "reg_num = 5"))
	assert.Equal(t, 1, f.count(t, "partner_program", "reg_num = 5"))
	assert.True(t, res[0].Payments.Equal(decimal.NewFromInt(100)),
		"payments survive upload")
}

func TestUploadAssignsRegNum(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(10, "Bob"))

	regNum, err := f.repo.UploadRegistree(f.ctx, partner(0, "Ann"))
	require.NoError(t, err)
	assert.Equal(t, 11, regNum, "assigned numbers follow given ones")

	res, err := f.repo.Registree(f.ctx, regNum)
	require.NoError(t, err)
	assert.Equal(t, "Ann", res.FirstNames)
}

func TestUploadInvalid(t *testing.T) {
	f := setup(t)

	reg := lion(3, "Bob")
	reg.Club = ""
	_, err := f.repo.UploadRegistree(f.ctx, reg)
	assert.Equal(t, errcode.RegValidationError, errcode.Of(err))
	assert.Equal(t, 0, f.count(t, "registree", "true"), "nothing is written")
}

func TestLionWithoutClub(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(4, "Bob"))
	_, err := f.pool.Exec(f.ctx,
		"DELETE FROM "+f.cfg.Schemas.Current+".club WHERE reg_num = 4")
	require.NoError(t, err)

	res, err := f.repo.AllRegistrees(f.ctx)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.True(t, res[0].IsLion)
	assert.Empty(t, res[0].Club)
}

func TestPairing(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(1, "Bob"), partner(2, "Ann"), partner(3, "Sue"))

	nums, err := f.repo.PairedRegNums(f.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, nums, "unpaired")

	require.NoError(t, f.repo.PairRegistrees(f.ctx, 1, 2))
	for _, v := range []int{1, 2} {
		nums, err = f.repo.PairedRegNums(f.ctx, v)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, nums)
	}

	res, err := f.repo.Registrees(f.ctx, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 1, res[0].RegNum)
	assert.Equal(t, 2, res[1].RegNum)

	// re-pairing replaces the pair of the first member
	require.NoError(t, f.repo.PairRegistrees(f.ctx, 1, 3))
	assert.Equal(t, 1, f.count(t, "registree_pair", "first_reg_num = 1"))
	nums, err = f.repo.PairedRegNums(f.ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, nums)

	err = f.repo.PairRegistrees(f.ctx, 3, 3)
	assert.Equal(t, errcode.RegValidationError, errcode.Of(err))
}

func TestRecordPayment(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(1, "Bob"), partner(2, "Ann"), lion(3, "Joe"))
	require.NoError(t, f.repo.PairRegistrees(f.ctx, 1, 2))

	ts := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	res, err := f.repo.RecordPayment(f.ctx, 2, decimal.RequireFromString("100.00"), ts)
	require.NoError(t, err)
	require.Len(t, res, 2)

	for i, v := range []int{1, 2} {
		pays, err := f.repo.Payments(f.ctx, v)
		require.NoError(t, err)
		require.Len(t, pays, 1)
		assert.True(t, pays[0].Amount.Equal(decimal.NewFromInt(50)))
		assert.True(t, pays[0].Timestamp.Equal(ts))
		assert.Equal(t, res[i].RegNum, pays[0].RegNum)
	}

	_, err = f.repo.RecordPayment(f.ctx, 3, decimal.RequireFromString("100.00"), ts)
	require.NoError(t, err)
	pays, err := f.repo.Payments(f.ctx, 3)
	require.NoError(t, err)
	require.Len(t, pays, 1)
	assert.True(t, pays[0].Amount.Equal(decimal.NewFromInt(100)))

	// odd cent goes to the first member
	_, err = f.repo.RecordPayment(f.ctx, 1, decimal.RequireFromString("0.01"), ts)
	require.NoError(t, err)
	summaries, err := f.repo.Registrees(f.ctx, 1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "50.01", summaries[0].Payments.StringFixed(2))
	assert.Equal(t, "50.00", summaries[1].Payments.StringFixed(2))
}

func TestPaidInFull(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(1, "Bob"))

	_, err := f.repo.RecordPayment(f.ctx, 1, decimal.RequireFromString("1284.99"), time.Time{})
	require.NoError(t, err)
	res, err := f.repo.Registree(f.ctx, 1)
	require.NoError(t, err)
	assert.False(t, res.PaidInFull)

	_, err = f.repo.RecordPayment(f.ctx, 1, decimal.RequireFromString("0.01"), time.Time{})
	require.NoError(t, err)
	res, err = f.repo.Registree(f.ctx, 1)
	require.NoError(t, err)
	assert.True(t, res.PaidInFull)
	assert.True(t, res.Outstanding().IsZero())
}

func TestCancelRegistration(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(1, "Bob"), partner(2, "Ann"), lion(3, "Joe"))
	require.NoError(t, f.repo.PairRegistrees(f.ctx, 1, 2))

	require.NoError(t, f.repo.CancelRegistration(f.ctx, 1))

	_, err := f.repo.Registree(f.ctx, 1)
	assert.Equal(t, errcode.RegNotFoundError, errcode.Of(err))

	res, err := f.repo.Registrees(f.ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, res, "pair is gone, registree is cancelled")

	all, err := f.repo.AllRegistrees(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].RegNum)
	assert.Equal(t, 3, all[1].RegNum)

	for _, v := range []string{"club", "full_reg", "partner_program", "partial_reg", "pins"} {
		assert.Equal(t, 0, f.count(t, v, "reg_num = 1"), v)
	}
	assert.Equal(t, 0, f.count(t, "registree_pair", "first_reg_num = 1"))
	assert.Equal(t, 1,
		f.count(t, "registree", "reg_num = 1 AND cancellation_timestamp IS NOT NULL"))

	require.NoError(t, f.repo.CancelRegistration(f.ctx), "empty list is a no-op")
	require.NoError(t, f.repo.CancelRegistration(f.ctx, 2, 3, 42))
	all, err = f.repo.AllRegistrees(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPriorYearPayees(t *testing.T) {
	f := setup(t)
	prior := f.cfg.Schemas.PriorYear

	stmts := []string{
		`INSERT INTO ` + prior + `.registree (reg_num, first_names, last_name)
		 VALUES (1, ' Ann ', 'Smith  '), (2, 'Bob', 'Jones'), (3, 'Joe', 'Botha')`,
		`INSERT INTO ` + prior + `.registree
		 (reg_num, first_names, last_name, cancellation_timestamp)
		 VALUES (4, 'Sue', 'Nel', now())`,
		`INSERT INTO ` + prior + `.payment (reg_num, timestamp, amount)
		 VALUES (1, now(), 100.50), (1, now(), 200), (2, now(), 50),
		        (4, now(), 1000)`,
	}
	for _, v := range stmts {
		_, err := f.pool.Exec(f.ctx, v)
		require.NoError(t, err)
	}

	res, err := f.repo.PriorYearPayees(f.ctx)
	require.NoError(t, err)
	require.Len(t, res, 2, "no payments and cancelled are excluded")

	assert.Equal(t, "Smith, Ann", res[1].Name, "name parts are trimmed")
	assert.Equal(t, "300.50", res[1].Total.StringFixed(2))
	assert.Equal(t, "Jones, Bob", res[2].Name)
	assert.True(t, res[2].Total.Equal(decimal.NewFromInt(50)))
}

func TestStoredRowWithMalformedEmail(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(1, "Bob"))

	query := `INSERT INTO ` + f.cfg.Schemas.Current + `.registree
		(reg_num, first_names, last_name, email)
		VALUES (7, 'Ann', 'Smith', 'n/a')`
	_, err := f.pool.Exec(f.ctx, query)
	require.NoError(t, err)

	all, err := f.repo.AllRegistrees(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 7, all[1].RegNum)
	assert.Equal(t, "n/a", all[1].Email)

	res, err := f.repo.Registree(f.ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", res.FullName())
}

func TestUploadRollsBack(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(1, "Bob"))

	// pins are inserted last, after the registree, club and full_reg rows
	query := `ALTER TABLE ` + f.cfg.Schemas.Current + `.pins
		ADD CONSTRAINT pins_limit CHECK (quantity < 2)`
	_, err := f.pool.Exec(f.ctx, query)
	require.NoError(t, err)

	reg := lion(1, "Rob")
	reg.Club = "Pinetown"
	reg.FullReg = 2
	reg.Pins = 2
	_, err = f.repo.UploadRegistree(f.ctx, reg)
	require.Error(t, err)
	assert.Equal(t, errcode.RegPersistenceError, errcode.Of(err))

	res, err := f.repo.Registree(f.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bob", res.FirstNames)
	assert.Equal(t, "Durban Host", res.Club)
	assert.Equal(t, 1, res.FullRegs)
	assert.Equal(t, 0, res.Pins)
	assert.Equal(t, 1, f.count(t, "club", "reg_num = 1"))
	assert.Equal(t, 1, f.count(t, "full_reg", "reg_num = 1 AND quantity = 1"))

	reg = partner(0, "Ann")
	_, err = f.repo.UploadRegistree(f.ctx, reg)
	assert.Equal(t, errcode.RegPersistenceError, errcode.Of(err))
	assert.Equal(t, 1, f.count(t, "registree", "true"),
		"new registree is not kept")
	assert.Equal(t, 0, f.count(t, "partner_program", "true"))
}

func TestCancelRegistrationRollsBack(t *testing.T) {
	f := setup(t)
	upload(t, f, lion(1, "Bob"), partner(2, "Ann"))
	require.NoError(t, f.repo.PairRegistrees(f.ctx, 1, 2))

	// marking as cancelled is the last statement of a cancellation
	query := `ALTER TABLE ` + f.cfg.Schemas.Current + `.registree
		ADD CONSTRAINT never_cancelled CHECK (cancellation_timestamp IS NULL)`
	_, err := f.pool.Exec(f.ctx, query)
	require.NoError(t, err)

	err = f.repo.CancelRegistration(f.ctx, 1, 2)
	require.Error(t, err)
	assert.Equal(t, errcode.RegPersistenceError, errcode.Of(err))

	for _, v := range []string{"club", "full_reg"} {
		assert.Equal(t, 1, f.count(t, v, "reg_num = 1"), v)
	}
	for _, v := range []string{"partner_program", "partial_reg", "pins"} {
		assert.Equal(t, 1, f.count(t, v, "reg_num = 2"), v)
	}
	assert.Equal(t, 1, f.count(t, "registree_pair", "first_reg_num = 1"))

	res, err := f.repo.Registrees(f.ctx, 1)
	require.NoError(t, err)
	assert.Len(t, res, 2, "both registrees stay active")
}
