//go:build unit

package reward_test

import (
	"strings"
	"testing"

	"licoreria-api/internal/domain/reward"
	"licoreria-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedemption(t *testing.T) {
	t.Run("opens pending against a catalog item", func(t *testing.T) {
		customerID := uuid.New()
		actual, err := builder.NewRewardBuilder().WithCustomerID(customerID).BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, customerID, actual.CustomerID())
		assert.Equal(t, reward.StatusPending, actual.Status())
		assert.Nil(t, actual.Code())
		assert.Nil(t, actual.ApproverID())
	})

	t.Run("snapshots the catalog item figures", func(t *testing.T) {
		item, err := reward.DefaultCatalog().FindByID(103)
		require.NoError(t, err)

		actual, err := builder.NewRewardBuilder().WithCatalogItemID(103).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, item.ID, actual.CatalogItemID())
		assert.Equal(t, item.Kind, actual.Kind())
		assert.Equal(t, item.PointCost, actual.PointCost())
		assert.True(t, item.Value.Equal(actual.Value()))
	})
}

func TestRewardApprove(t *testing.T) {
	approverID := uuid.New()
	notes := "picked up Friday"

	t.Run("pending moves to approved with a counter code", func(t *testing.T) {
		r := mustRedemption(t)

		require.NoError(t, r.Approve(approverID, &notes))

		assert.Equal(t, reward.StatusApproved, r.Status())
		require.NotNil(t, r.Code())
		assert.True(t, strings.HasPrefix(*r.Code(), "RWD-"))
		require.NotNil(t, r.ApproverID())
		assert.Equal(t, approverID, *r.ApproverID())
		assert.Equal(t, &notes, r.Notes())
	})

	t.Run("approve twice", func(t *testing.T) {
		r := mustRedemption(t)
		require.NoError(t, r.Approve(approverID, nil))

		assert.ErrorIs(t, r.Approve(approverID, nil), reward.ErrNotPending)
	})

	t.Run("rejected request cannot be approved", func(t *testing.T) {
		r := mustRedemption(t)
		require.NoError(t, r.Reject(approverID, nil))

		assert.ErrorIs(t, r.Approve(approverID, nil), reward.ErrNotPending)
	})
}

func TestRewardReject(t *testing.T) {
	approverID := uuid.New()

	t.Run("pending moves to rejected without a code", func(t *testing.T) {
		r := mustRedemption(t)

		require.NoError(t, r.Reject(approverID, nil))

		assert.Equal(t, reward.StatusRejected, r.Status())
		assert.Nil(t, r.Code())
	})

	t.Run("approved request cannot be rejected", func(t *testing.T) {
		r := mustRedemption(t)
		require.NoError(t, r.Approve(approverID, nil))

		assert.ErrorIs(t, r.Reject(approverID, nil), reward.ErrNotPending)
	})
}

func TestRewardConfirmDelivery(t *testing.T) {
	approverID := uuid.New()

	t.Run("approved moves to delivered", func(t *testing.T) {
		r := mustRedemption(t)
		require.NoError(t, r.Approve(approverID, nil))

		require.NoError(t, r.ConfirmDelivery())
		assert.Equal(t, reward.StatusDelivered, r.Status())
	})

	t.Run("pending cannot be delivered", func(t *testing.T) {
		r := mustRedemption(t)

		assert.ErrorIs(t, r.ConfirmDelivery(), reward.ErrNotApproved)
	})

	t.Run("delivery is terminal", func(t *testing.T) {
		r := mustRedemption(t)
		require.NoError(t, r.Approve(approverID, nil))
		require.NoError(t, r.ConfirmDelivery())

		assert.ErrorIs(t, r.ConfirmDelivery(), reward.ErrNotApproved)
	})
}

func TestStatusCountsAgainstBalance(t *testing.T) {
	tests := []struct {
		status reward.Status
		want   bool
	}{
		{reward.StatusPending, true},
		{reward.StatusApproved, true},
		{reward.StatusDelivered, true},
		{reward.StatusRejected, false},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.CountsAgainstBalance())
		})
	}
}

func TestCatalog(t *testing.T) {
	catalog := reward.DefaultCatalog()

	t.Run("finds known item", func(t *testing.T) {
		item, err := catalog.FindByID(201)
		require.NoError(t, err)
		assert.Equal(t, reward.KindPercentDiscount, item.Kind)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := catalog.FindByID(999)
		assert.ErrorIs(t, err, reward.ErrCatalogItemNotFound)
	})

	t.Run("every item carries a valid kind", func(t *testing.T) {
		for _, item := range catalog.Items() {
			assert.True(t, item.Kind.IsValid(), "item %d", item.ID)
		}
	})
}

func mustRedemption(t *testing.T) *reward.Reward {
	t.Helper()
	r, err := builder.NewRewardBuilder().BuildDomain()
	require.NoError(t, err)
	return r
}
