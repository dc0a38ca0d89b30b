package queries

import (
	"context"
	"time"

	"licoreria-api/internal/domain/reward"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RewardView struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CatalogItemID int32           `json:"catalog_item_id"`
	Kind          string          `json:"kind"`
	Description   string          `json:"description"`
	Value         decimal.Decimal `json:"value"`
	PointCost     int32           `json:"point_cost"`
	Status        string          `json:"status"`
	Code          *string         `json:"code,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	ApproverID    *uuid.UUID      `json:"approver_id,omitempty"`
	OrderID       *uuid.UUID      `json:"order_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type RewardCatalogItemView struct {
	ID          int32           `json:"id"`
	Kind        string          `json:"kind"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PointCost   int32           `json:"point_cost"`
	Value       decimal.Decimal `json:"value"`
	MinPurchase decimal.Decimal `json:"min_purchase"`
}

type RewardQueries interface {
	Catalog(ctx context.Context) []RewardCatalogItemView
	GetByID(ctx context.Context, id uuid.UUID) (*RewardView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*RewardView, error)
}

type RewardReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RewardView, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*RewardView, error)
}

type rewardQueriesImpl struct {
	store   RewardReadStore
	catalog *reward.Catalog
}

func NewRewardQueries(store RewardReadStore, catalog *reward.Catalog) RewardQueries {
	return &rewardQueriesImpl{store: store, catalog: catalog}
}

func (q *rewardQueriesImpl) Catalog(_ context.Context) []RewardCatalogItemView {
	items := q.catalog.Items()
	views := make([]RewardCatalogItemView, len(items))
	for i, item := range items {
		views[i] = RewardCatalogItemView{
			ID:          item.ID,
			Kind:        item.Kind.String(),
			Name:        item.Name,
			Description: item.Description,
			PointCost:   item.PointCost,
			Value:       item.Value,
			MinPurchase: item.MinPurchase,
		}
	}
	return views
}

func (q *rewardQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RewardView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *rewardQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*RewardView, error) {
	return q.store.FindByCustomerID(ctx, customerID)
}
