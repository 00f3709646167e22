// Package registry defines the contract of the registration data store.
package registry

import (
	"context"
	"time"

	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registree"
	"github.com/shopspring/decimal"
)

// Repository manages registrees of the current convention and reads
// payments of the prior one. Every operation receives the registration
// numbers it acts on; a Repository keeps no state between calls.
//
// Operations that change more than one row run in a single
// transaction. All errors are *gn.Error values with codes from
// pkg/errcode.
type Repository interface {
	// PairedRegNums returns both members of the pair regNum belongs to,
	// first member first. If regNum is not paired, it returns only
	// regNum.
	PairedRegNums(ctx context.Context, regNum int) ([]int, error)

	// Registrees returns summaries of active registrees among regNum and
	// its pair partner, ordered by registration number. The result is
	// empty if none of them is active.
	Registrees(ctx context.Context, regNum int) ([]registree.Summary, error)

	// Registree returns the summary of one active registree or a
	// RegNotFoundError.
	Registree(ctx context.Context, regNum int) (registree.Summary, error)

	// AllRegistrees returns summaries of all active registrees, or only
	// of those from regNums if any are given. Missing club, purchase or
	// payment rows result in default values.
	AllRegistrees(ctx context.Context, regNums ...int) ([]registree.Summary, error)

	// RecordPayment splits amount among regNum and its pair partner and
	// stores one payment per member. A zero ts means now.
	RecordPayment(
		ctx context.Context,
		regNum int,
		amount decimal.Decimal,
		ts time.Time,
	) ([]registree.Payment, error)

	// Payments returns payments of a registree in the order they were
	// made.
	Payments(ctx context.Context, regNum int) ([]registree.Payment, error)

	// UploadRegistree validates the registration and replaces the
	// registree with the same number together with its affiliation and
	// purchases. Payments and pairs are kept. If the registration has no
	// number, the database assigns one. Returns the registration number.
	UploadRegistree(ctx context.Context, reg registree.Registration) (int, error)

	// CancelRegistration removes affiliations, purchases and outgoing
	// pairs of the registrees and marks them cancelled.
	CancelRegistration(ctx context.Context, regNums ...int) error

	// PairRegistrees links two registrees, replacing the previous pair
	// of the first one.
	PairRegistrees(ctx context.Context, first, second int) error

	// PriorYearPayees returns the total paid by every active registree
	// of the prior convention. Payee names are "Last, First" with
	// surrounding spaces of both parts trimmed, so stored padding does
	// not show up in the name.
	PriorYearPayees(ctx context.Context) (map[int]registree.Payee, error)
}
