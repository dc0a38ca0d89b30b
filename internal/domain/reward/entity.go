package reward

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidKind       = errors.New("invalid reward kind")
	ErrInvalidStatus     = errors.New("invalid redemption status")
	ErrNotPending        = errors.New("redemption is not pending")
	ErrNotApproved       = errors.New("redemption is not approved")
	ErrNegativePointCost = errors.New("point cost cannot be negative")
)

// Kind classifies the redeemable benefit.
type Kind string

const (
	KindCashCoupon      Kind = "cash_coupon"
	KindPercentDiscount Kind = "percent_discount"
	KindGift            Kind = "gift"
	KindBonus           Kind = "bonus"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindCashCoupon, KindPercentDiscount, KindGift, KindBonus:
		return true
	default:
		return false
	}
}

func NewKind(s string) (Kind, error) {
	kind := Kind(s)
	if !kind.IsValid() {
		return "", ErrInvalidKind
	}
	return kind, nil
}

// Status is the redemption workflow state.
//
//	pending -> approved -> delivered
//	pending -> rejected
//
// Points are deducted at the approved transition only; a rejected request
// never touches the balance.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDelivered Status = "delivered"
	StatusRejected  Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDelivered, StatusRejected:
		return true
	default:
		return false
	}
}

// CountsAgainstBalance reports whether the redemption's point cost is held
// against the customer's available balance. Any non-rejected redemption
// counts once from the moment it is created.
func (s Status) CountsAgainstBalance() bool {
	return s != StatusRejected
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Reward is a customer's redemption of a catalog benefit.
type Reward struct {
	id            uuid.UUID
	customerID    uuid.UUID
	catalogItemID int32
	kind          Kind
	description   string
	value         decimal.Decimal
	pointCost     int32
	status        Status
	code          *string
	notes         *string
	approverID    *uuid.UUID
	orderID       *uuid.UUID
	createdAt     time.Time
	updatedAt     time.Time
}

// NewRedemption opens a pending request against a catalog item. The caller
// verifies the customer's available balance first; the cost counts against
// the balance from this moment.
func NewRedemption(customerID uuid.UUID, item CatalogItem) (*Reward, error) {
	if !item.Kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if item.PointCost < 0 {
		return nil, ErrNegativePointCost
	}

	return &Reward{
		id:            uuid.New(),
		customerID:    customerID,
		catalogItemID: item.ID,
		kind:          item.Kind,
		description:   item.Name,
		value:         item.Value,
		pointCost:     item.PointCost,
		status:        StatusPending,
	}, nil
}

func ReconstructReward(
	id, customerID uuid.UUID,
	catalogItemID int32,
	kind Kind,
	description string,
	value decimal.Decimal,
	pointCost int32,
	status Status,
	code, notes *string,
	approverID, orderID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Reward {
	return &Reward{
		id:            id,
		customerID:    customerID,
		catalogItemID: catalogItemID,
		kind:          kind,
		description:   description,
		value:         value,
		pointCost:     pointCost,
		status:        status,
		code:          code,
		notes:         notes,
		approverID:    approverID,
		orderID:       orderID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Approve confirms the redemption and issues the code the customer shows
// at the counter. The caller re-checks the point balance under lock before
// calling, since the balance may have moved since the request.
func (r *Reward) Approve(approverID uuid.UUID, notes *string) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusApproved
	r.approverID = &approverID
	r.notes = notes
	code := generateRedemptionCode()
	r.code = &code
	return nil
}

// Reject closes a pending request without deducting points.
func (r *Reward) Reject(approverID uuid.UUID, notes *string) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusRejected
	r.approverID = &approverID
	r.notes = notes
	return nil
}

// ConfirmDelivery records the customer's receipt. Terminal.
func (r *Reward) ConfirmDelivery() error {
	if r.status != StatusApproved {
		return ErrNotApproved
	}
	r.status = StatusDelivered
	return nil
}

// AttachOrder links the reward to the order it was applied to. Whether a
// coupon applied to a later-cancelled credit order should be released is a
// product decision; current behavior keeps it consumed.
func (r *Reward) AttachOrder(orderID uuid.UUID) {
	r.orderID = &orderID
}

func (r *Reward) ID() uuid.UUID          { return r.id }
func (r *Reward) CustomerID() uuid.UUID  { return r.customerID }
func (r *Reward) CatalogItemID() int32   { return r.catalogItemID }
func (r *Reward) Kind() Kind             { return r.kind }
func (r *Reward) Description() string    { return r.description }
func (r *Reward) Value() decimal.Decimal { return r.value }
func (r *Reward) PointCost() int32       { return r.pointCost }
func (r *Reward) Status() Status         { return r.status }
func (r *Reward) Code() *string          { return r.code }
func (r *Reward) Notes() *string         { return r.notes }
func (r *Reward) ApproverID() *uuid.UUID { return r.approverID }
func (r *Reward) OrderID() *uuid.UUID    { return r.orderID }
func (r *Reward) CreatedAt() time.Time   { return r.createdAt }
func (r *Reward) UpdatedAt() time.Time   { return r.updatedAt }

func generateRedemptionCode() string {
	return "RWD-" + strings.ToUpper(uuid.New().String()[:8])
}
