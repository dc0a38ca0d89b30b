package shared

import (
	"context"
	"time"

	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/domain/customer"
	"licoreria-api/internal/domain/fine"
	"licoreria-api/internal/domain/order"
	"licoreria-api/internal/domain/reward"
	"licoreria-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitOfWork wraps every multi-step ledger mutation in a transaction with
// at least read-committed isolation, retrying on serialization failures.
// A crash or concurrent writer can never leave stock, totals or point
// balances partially updated.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: non-transactional access for validations and single reads
	Reads() CommandReads
}

// Tx exposes the write repositories bound to one open transaction.
type Tx interface {
	Catalog() CatalogRepository
	Orders() OrderRepository
	Rewards() RewardRepository
	Fines() FineRepository
	Customers() CustomerRepository
	Users() UserRepository
	Reads() CommandReads
}

// CommandReads are the write-side lookups commands need before or during a
// transaction. Inside Within they see the transaction's own writes.
type CommandReads interface {
	ItemByRef(ctx context.Context, ref catalog.ItemRef) (*ItemSnapshot, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	CustomerByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	UserByEmail(ctx context.Context, email string) (*user.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)

	// Loyalty source figures, derived from history on demand.
	TotalSpent(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	UnpaidOrdersTotal(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	PointsRedeemed(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// ItemSnapshot prevents the write side from depending on read-side view
// types (CQRS separation).
type ItemSnapshot struct {
	ID        uuid.UUID
	Kind      catalog.ItemKind
	Name      string
	UnitPrice decimal.Decimal
	Stock     int32
}

type CatalogRepository interface {
	Create(ctx context.Context, item *catalog.Item) error
	// LockItem reads the row FOR UPDATE so two checkouts cannot both pass
	// the stock check and then both decrement past zero.
	LockItem(ctx context.Context, ref catalog.ItemRef) (*ItemSnapshot, error)
	// TakeStock decrements conditionally (stock >= qty); reports a
	// conflict kind when the guard fails.
	TakeStock(ctx context.Context, ref catalog.ItemRef, qty int32) error
	RestoreStock(ctx context.Context, ref catalog.ItemRef, qty int32) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	// LockByID reads the aggregate FOR UPDATE on the order row, guarding
	// the paid/points_assigned idempotency flags.
	LockByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	// Save persists status, totals, flags and the employee reference.
	Save(ctx context.Context, o *order.Order) error
	// Delete removes a cancelled order and its lines (cascade).
	Delete(ctx context.Context, id uuid.UUID) error
	InsertLine(ctx context.Context, line *order.LineItem) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	// UpdateTotals persists the recomputed total without re-triggering
	// reconciliation.
	UpdateTotals(ctx context.Context, orderID uuid.UUID, total, fineSurcharge decimal.Decimal) error
}

type RewardRepository interface {
	Create(ctx context.Context, r *reward.Reward) error
	// LockByID guards approval against double point-deduction from two
	// concurrent clicks.
	LockByID(ctx context.Context, id uuid.UUID) (*reward.Reward, error)
	Save(ctx context.Context, r *reward.Reward) error
}

type FineRepository interface {
	Create(ctx context.Context, f *fine.Fine) error
	LockByID(ctx context.Context, id uuid.UUID) (*fine.Fine, error)
	Save(ctx context.Context, f *fine.Fine) error
	// MarkPaidByOrderID settles every fine linked to the order, as part of
	// the mark-order-paid cascade. Returns the number of fines settled.
	MarkPaidByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *customer.Customer) error
	// AddLoanLimit applies the one-time post-payment increment atomically
	// on the row.
	AddLoanLimit(ctx context.Context, customerID uuid.UUID, increment decimal.Decimal) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}
