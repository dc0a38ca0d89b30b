package commands

import (
	"context"

	"licoreria-api/internal/domain/loyalty"
	"licoreria-api/internal/domain/reward"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/queries"
	"licoreria-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type RewardCommands interface {
	// RequestRedemption opens a pending redemption if the customer's point
	// balance covers the catalog item's cost. The cost counts against the
	// balance from this moment on.
	RequestRedemption(ctx context.Context, customerID uuid.UUID, catalogItemID int32, actor Actor) (*queries.RewardView, error)
	// Approve confirms a pending redemption and issues the counter code.
	// The balance is re-checked under lock; it may have moved since the
	// request.
	Approve(ctx context.Context, rewardID uuid.UUID, notes *string, actor Actor) (*queries.RewardView, error)
	// Reject closes a pending redemption and releases its held points.
	Reject(ctx context.Context, rewardID uuid.UUID, notes *string, actor Actor) (*queries.RewardView, error)
	// ConfirmDelivery records the customer's receipt of an approved reward.
	ConfirmDelivery(ctx context.Context, rewardID uuid.UUID, actor Actor) (*queries.RewardView, error)
}

type rewardCommandsImpl struct {
	uow           shared.UnitOfWork
	engine        *loyalty.Engine
	catalog       *reward.Catalog
	rewardQueries queries.RewardQueries
	audit         AuditRecorder
}

func NewRewardCommands(
	uow shared.UnitOfWork,
	engine *loyalty.Engine,
	catalog *reward.Catalog,
	rewardQueries queries.RewardQueries,
	audit AuditRecorder,
) RewardCommands {
	return &rewardCommandsImpl{
		uow:           uow,
		engine:        engine,
		catalog:       catalog,
		rewardQueries: rewardQueries,
		audit:         audit,
	}
}

func (c *rewardCommandsImpl) RequestRedemption(ctx context.Context, customerID uuid.UUID, catalogItemID int32, actor Actor) (*queries.RewardView, error) {
	item, err := c.catalog.FindByID(catalogItemID)
	if err != nil {
		return nil, errs.ErrRewardItemNotFound
	}

	var rewardID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().CustomerByID(ctx, customerID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrCustomerNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		available, err := c.pointsAvailable(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if available < int64(item.PointCost) {
			return errs.Mark(errs.Newf("%d points available, %d required", available, item.PointCost), errs.ErrInsufficientPoints)
		}

		r, err := reward.NewRedemption(customerID, item)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if err := tx.Rewards().Create(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		rewardID = r.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "request_redemption", "rewards", map[string]any{
		"reward_id":       rewardID,
		"catalog_item_id": catalogItemID,
	})
	return c.rewardQueries.GetByID(ctx, rewardID)
}

func (c *rewardCommandsImpl) Approve(ctx context.Context, rewardID uuid.UUID, notes *string, actor Actor) (*queries.RewardView, error) {
	if actor.EmployeeID == nil {
		return nil, errs.Mark(errs.New("approver has no employee record"), errs.ErrDomainValidation)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := c.lockReward(ctx, tx, rewardID)
		if err != nil {
			return err
		}

		// The pending request already holds its cost against the balance,
		// so a negative balance here means the underlying history moved.
		available, err := c.pointsAvailable(ctx, tx, r.CustomerID())
		if err != nil {
			return err
		}
		if available < 0 {
			return errs.Mark(errs.Newf("point balance is %d", available), errs.ErrInsufficientPoints)
		}

		if err := r.Approve(*actor.EmployeeID, notes); err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		if err := tx.Rewards().Save(ctx, r); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateRedemptionCode)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "approve_redemption", "rewards", map[string]any{"reward_id": rewardID})
	return c.rewardQueries.GetByID(ctx, rewardID)
}

func (c *rewardCommandsImpl) Reject(ctx context.Context, rewardID uuid.UUID, notes *string, actor Actor) (*queries.RewardView, error) {
	if actor.EmployeeID == nil {
		return nil, errs.Mark(errs.New("approver has no employee record"), errs.ErrDomainValidation)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := c.lockReward(ctx, tx, rewardID)
		if err != nil {
			return err
		}
		if err := r.Reject(*actor.EmployeeID, notes); err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		if err := tx.Rewards().Save(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "reject_redemption", "rewards", map[string]any{"reward_id": rewardID})
	return c.rewardQueries.GetByID(ctx, rewardID)
}

func (c *rewardCommandsImpl) ConfirmDelivery(ctx context.Context, rewardID uuid.UUID, actor Actor) (*queries.RewardView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := c.lockReward(ctx, tx, rewardID)
		if err != nil {
			return err
		}
		// Customers confirm their own rewards; staff confirm any.
		if actor.CustomerID != nil && *actor.CustomerID != r.CustomerID() {
			return errs.ErrRewardNotFound
		}
		if err := r.ConfirmDelivery(); err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		if err := tx.Rewards().Save(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "confirm_delivery", "rewards", map[string]any{"reward_id": rewardID})
	return c.rewardQueries.GetByID(ctx, rewardID)
}

// pointsAvailable derives the live balance from paid-order history and
// non-rejected redemptions, without the zero clamp the read side applies.
func (c *rewardCommandsImpl) pointsAvailable(ctx context.Context, tx shared.Tx, customerID uuid.UUID) (int64, error) {
	totalSpent, err := tx.Reads().TotalSpent(ctx, customerID)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	redeemed, err := tx.Reads().PointsRedeemed(ctx, customerID)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return c.engine.PointsEarned(totalSpent) - redeemed, nil
}

func (c *rewardCommandsImpl) lockReward(ctx context.Context, tx shared.Tx, rewardID uuid.UUID) (*reward.Reward, error) {
	r, err := tx.Rewards().LockByID(ctx, rewardID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRewardNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return r, nil
}
