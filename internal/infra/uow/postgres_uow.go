package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/domain/customer"
	"licoreria-api/internal/domain/order"
	"licoreria-api/internal/domain/user"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/infra/readstore"
	"licoreria-api/internal/infra/repository"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; the
// row locks taken by the repositories do the rest.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx infra.DBTX

	// Lazy-initialized repositories
	catalogRepo  shared.CatalogRepository
	orderRepo    shared.OrderRepository
	rewardRepo   shared.RewardRepository
	fineRepo     shared.FineRepository
	customerRepo shared.CustomerRepository
	userRepo     shared.UserRepository
	reads        shared.CommandReads
}

func (t *pgTx) Catalog() shared.CatalogRepository {
	if t.catalogRepo == nil {
		t.catalogRepo = repository.NewCatalogRepository(t.dbtx)
	}
	return t.catalogRepo
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewOrderRepository(t.dbtx)
	}
	return t.orderRepo
}

func (t *pgTx) Rewards() shared.RewardRepository {
	if t.rewardRepo == nil {
		t.rewardRepo = repository.NewRewardRepository(t.dbtx)
	}
	return t.rewardRepo
}

func (t *pgTx) Fines() shared.FineRepository {
	if t.fineRepo == nil {
		t.fineRepo = repository.NewFineRepository(t.dbtx)
	}
	return t.fineRepo
}

func (t *pgTx) Customers() shared.CustomerRepository {
	if t.customerRepo == nil {
		t.customerRepo = repository.NewCustomerRepository(t.dbtx)
	}
	return t.customerRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.reads == nil {
		t.reads = &commandReads{dbtx: t.dbtx}
	}
	return t.reads
}

// commandReads runs on whatever DBTX it was built with: inside Within it
// sees the transaction's own writes, outside it reads from the pool.
type commandReads struct {
	dbtx infra.DBTX

	catalogRepo  *repository.CatalogRepository
	orderRepo    *repository.OrderRepository
	customerRepo *repository.CustomerRepository
	userRepo     *repository.UserRepository
	loyaltyStore *readstore.LoyaltyReadStore
}

func (r *commandReads) ItemByRef(ctx context.Context, ref catalog.ItemRef) (*shared.ItemSnapshot, error) {
	if r.catalogRepo == nil {
		r.catalogRepo = repository.NewCatalogRepository(r.dbtx)
	}
	return r.catalogRepo.FindItem(ctx, ref)
}

func (r *commandReads) OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	if r.orderRepo == nil {
		r.orderRepo = repository.NewOrderRepository(r.dbtx)
	}
	return r.orderRepo.FindByID(ctx, id)
}

func (r *commandReads) CustomerByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	if r.customerRepo == nil {
		r.customerRepo = repository.NewCustomerRepository(r.dbtx)
	}
	return r.customerRepo.FindByID(ctx, id)
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*user.User, error) {
	if r.userRepo == nil {
		r.userRepo = repository.NewUserRepository(r.dbtx)
	}
	return r.userRepo.FindByEmail(ctx, email)
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if r.userRepo == nil {
		r.userRepo = repository.NewUserRepository(r.dbtx)
	}
	return r.userRepo.FindByID(ctx, id)
}

func (r *commandReads) loyalty() *readstore.LoyaltyReadStore {
	if r.loyaltyStore == nil {
		r.loyaltyStore = readstore.NewLoyaltyReadStore(r.dbtx)
	}
	return r.loyaltyStore
}

func (r *commandReads) TotalSpent(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return r.loyalty().TotalSpent(ctx, customerID)
}

func (r *commandReads) UnpaidOrdersTotal(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return r.loyalty().UnpaidOrdersTotal(ctx, customerID)
}

func (r *commandReads) PointsRedeemed(ctx context.Context, customerID uuid.UUID) (int64, error) {
	return r.loyalty().PointsRedeemed(ctx, customerID)
}
