//go:build unit || e2e

package builder

import (
	"time"

	"licoreria-api/internal/domain/reward"
	"licoreria-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type RewardBuilder struct {
	CustomerID    uuid.UUID
	CatalogItemID int32
}

func NewRewardBuilder() *RewardBuilder {
	return &RewardBuilder{
		CustomerID:    uuid.New(),
		CatalogItemID: 101,
	}
}

func (r *RewardBuilder) With(mutate func(*RewardBuilder)) *RewardBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *RewardBuilder) BuildDomain() (*reward.Reward, error) {
	item, err := reward.DefaultCatalog().FindByID(r.CatalogItemID)
	if err != nil {
		return nil, err
	}
	return reward.NewRedemption(r.CustomerID, item)
}

func (r *RewardBuilder) BuildView() *queries.RewardView {
	item, _ := reward.DefaultCatalog().FindByID(r.CatalogItemID)
	now := time.Now()
	return &queries.RewardView{
		ID:            uuid.New(),
		CustomerID:    r.CustomerID,
		CatalogItemID: item.ID,
		Kind:          item.Kind.String(),
		Description:   item.Name,
		Value:         item.Value,
		PointCost:     item.PointCost,
		Status:        "pending",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Fluent builder methods
func (r *RewardBuilder) WithCustomerID(customerID uuid.UUID) *RewardBuilder {
	r.CustomerID = customerID
	return r
}

func (r *RewardBuilder) WithCatalogItemID(id int32) *RewardBuilder {
	r.CatalogItemID = id
	return r
}
