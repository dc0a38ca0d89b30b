package fine

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidKind      = errors.New("invalid fine kind")
	ErrNegativeAmount   = errors.New("fine amount cannot be negative")
	ErrAlreadyPaid      = errors.New("fine is already paid")
	ErrEmptyDescription = errors.New("fine description cannot be empty")
)

// Kind classifies the penalty.
type Kind string

const (
	KindLatePayment Kind = "late_payment"
	KindLoanOverdue Kind = "loan_overdue"
	KindDamage      Kind = "damage"
	KindMisconduct  Kind = "misconduct"
	KindOther       Kind = "other"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindLatePayment, KindLoanOverdue, KindDamage, KindMisconduct, KindOther:
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

// Fine is an append-only penalty record. It may reference the order that
// triggered it; fines never reduce purchasing credit, they are surfaced as
// outstanding-balance warnings instead.
type Fine struct {
	id          uuid.UUID
	customerID  uuid.UUID
	orderID     *uuid.UUID
	kind        Kind
	amount      decimal.Decimal
	description string
	paid        bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewFine(customerID uuid.UUID, orderID *uuid.UUID, kind Kind, amount decimal.Decimal, description string) (*Fine, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	return &Fine{
		id:          uuid.New(),
		customerID:  customerID,
		orderID:     orderID,
		kind:        kind,
		amount:      amount,
		description: description,
	}, nil
}

func ReconstructFine(
	id, customerID uuid.UUID,
	orderID *uuid.UUID,
	kind Kind,
	amount decimal.Decimal,
	description string,
	paid bool,
	createdAt, updatedAt time.Time,
) *Fine {
	return &Fine{
		id:          id,
		customerID:  customerID,
		orderID:     orderID,
		kind:        kind,
		amount:      amount,
		description: description,
		paid:        paid,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// MarkPaid settles the fine, either by explicit payment or by the cascade
// when its linked order is marked paid.
func (f *Fine) MarkPaid() error {
	if f.paid {
		return ErrAlreadyPaid
	}
	f.paid = true
	return nil
}

func (f *Fine) ID() uuid.UUID           { return f.id }
func (f *Fine) CustomerID() uuid.UUID   { return f.customerID }
func (f *Fine) OrderID() *uuid.UUID     { return f.orderID }
func (f *Fine) Kind() Kind              { return f.kind }
func (f *Fine) Amount() decimal.Decimal { return f.amount }
func (f *Fine) Description() string     { return f.description }
func (f *Fine) Paid() bool              { return f.paid }
func (f *Fine) CreatedAt() time.Time    { return f.createdAt }
func (f *Fine) UpdatedAt() time.Time    { return f.updatedAt }
