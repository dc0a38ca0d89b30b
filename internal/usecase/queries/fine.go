package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FineView struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	OrderID     *uuid.UUID      `json:"order_id,omitempty"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Paid        bool            `json:"paid"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type FineQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*FineView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, onlyUnpaid bool) ([]*FineView, error)
}

type FineReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FineView, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, onlyUnpaid bool) ([]*FineView, error)
}

type fineQueriesImpl struct {
	store FineReadStore
}

func NewFineQueries(store FineReadStore) FineQueries {
	return &fineQueriesImpl{store: store}
}

func (q *fineQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*FineView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *fineQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, onlyUnpaid bool) ([]*FineView, error) {
	return q.store.FindByCustomerID(ctx, customerID, onlyUnpaid)
}
