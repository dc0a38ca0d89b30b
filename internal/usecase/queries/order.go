package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderView struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	EmployeeID     *uuid.UUID      `json:"employee_id,omitempty"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	FineSurcharge  decimal.Decimal `json:"fine_surcharge"`
	Paid           bool            `json:"paid"`
	PointsAssigned bool            `json:"points_assigned"`
	Lines          []OrderLineView `json:"lines"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type OrderLineView struct {
	ID        uuid.UUID       `json:"id"`
	ItemKind  string          `json:"item_kind"`
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderListItem struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Paid      bool            `json:"paid"`
	LineCount int32           `json:"line_count"`
	CreatedAt time.Time       `json:"created_at"`
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*OrderListItem, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*OrderListItem, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *orderQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*OrderListItem, error) {
	return q.store.FindByCustomerID(ctx, customerID)
}
