package order

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNoLines             = errors.New("order must have at least one line item")
	ErrLineNotFound        = errors.New("line item not found on order")
	ErrNotRequested        = errors.New("order is not in requested state")
	ErrOrderTerminal       = errors.New("order is in a terminal state")
	ErrNegativeFine        = errors.New("fine amount cannot be negative")
	ErrAlreadyCancelled    = errors.New("order is already cancelled")
	ErrCancelAfterApproval = errors.New("only requested orders can be cancelled")
)

// Order owns its line items exclusively. The total is derived from the
// lines; the only authored adjustment is the fine surcharge, which is kept
// as a separate additive term so the line-sum invariant stays checkable.
type Order struct {
	id             uuid.UUID
	code           string
	customerID     uuid.UUID
	employeeID     *uuid.UUID
	lines          []*LineItem
	status         Status
	total          decimal.Decimal
	fineSurcharge  decimal.Decimal
	paid           bool
	pointsAssigned bool
	createdAt      time.Time
	updatedAt      time.Time
}

// NewOrder builds an order at the checkout boundary. Stock sufficiency is
// the caller's concern (checked and decremented under lock in the same
// transaction); the aggregate only enforces its own shape.
func NewOrder(customerID uuid.UUID, employeeID *uuid.UUID, lines []*LineItem, mode PaymentMode) (*Order, error) {
	if !mode.IsValid() {
		return nil, ErrInvalidPaymentMode
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	o := &Order{
		id:            uuid.New(),
		code:          generateCode(),
		customerID:    customerID,
		employeeID:    employeeID,
		status:        StatusRequested,
		fineSurcharge: decimal.Zero,
	}
	if mode == ModePay {
		o.status = StatusPaid
		o.paid = true
	}

	for _, line := range lines {
		line.attachTo(o.id)
		o.lines = append(o.lines, line)
	}
	o.recalculate()

	return o, nil
}

func ReconstructOrder(
	id uuid.UUID,
	code string,
	customerID uuid.UUID,
	employeeID *uuid.UUID,
	lines []*LineItem,
	status Status,
	total, fineSurcharge decimal.Decimal,
	paid, pointsAssigned bool,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:             id,
		code:           code,
		customerID:     customerID,
		employeeID:     employeeID,
		lines:          lines,
		status:         status,
		total:          total,
		fineSurcharge:  fineSurcharge,
		paid:           paid,
		pointsAssigned: pointsAssigned,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Approve moves a requested order onto the books as active store-credit
// debt, recording the supervisor who took the decision.
func (o *Order) Approve(approverID uuid.UUID) error {
	if o.status != StatusRequested {
		return ErrNotRequested
	}
	o.status = StatusOnLoan
	o.employeeID = &approverID
	return nil
}

// Cancel rejects or withdraws a requested order. The caller restores stock
// for every line in the same transaction before deleting the record.
func (o *Order) Cancel() error {
	switch o.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusRequested:
		o.status = StatusCancelled
		return nil
	default:
		return ErrCancelAfterApproval
	}
}

// MarkPaid settles the order. Safe to call twice: the second call reports
// alreadyPaid so callers skip the loyalty side effects.
func (o *Order) MarkPaid() (alreadyPaid bool, err error) {
	if o.status == StatusCancelled {
		return false, ErrOrderTerminal
	}
	if o.paid {
		return true, nil
	}
	o.paid = true
	o.status = StatusPaid
	return false, nil
}

// SettlePoints flips the one-time loyalty flag. It returns true exactly
// once per order, which is what keeps the point grant and the credit-limit
// increment from ever being applied twice.
func (o *Order) SettlePoints() bool {
	if o.pointsAssigned {
		return false
	}
	o.pointsAssigned = true
	return true
}

// ApplyFine attaches a penalty surcharge to an unsettled credit order.
// This is the one place the total is authored rather than derived: the
// surcharge is added on top of the line sum, not recomputed from it.
func (o *Order) ApplyFine(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeFine
	}
	if o.status != StatusRequested && o.status != StatusOnLoan && o.status != StatusFined {
		return ErrOrderTerminal
	}
	o.status = StatusFined
	o.fineSurcharge = o.fineSurcharge.Add(amount)
	o.recalculate()
	return nil
}

// AddLine appends a line item and recomputes the total. The caller adjusts
// stock in the same transaction.
func (o *Order) AddLine(line *LineItem) {
	line.attachTo(o.id)
	o.lines = append(o.lines, line)
	o.recalculate()
}

// RemoveLine deletes a line item and recomputes the total, returning the
// removed line so the caller can restore its stock. The last line cannot
// be removed; cancel the order instead.
func (o *Order) RemoveLine(lineID uuid.UUID) (*LineItem, error) {
	if len(o.lines) == 1 && o.lines[0].ID() == lineID {
		return nil, ErrNoLines
	}
	for i, line := range o.lines {
		if line.ID() == lineID {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			o.recalculate()
			return line, nil
		}
	}
	return nil, ErrLineNotFound
}

// LineSum is the pure derived part of the total.
func (o *Order) LineSum() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range o.lines {
		sum = sum.Add(line.Subtotal())
	}
	return sum
}

func (o *Order) recalculate() {
	o.total = o.LineSum().Add(o.fineSurcharge)
}

func (o *Order) ID() uuid.UUID                  { return o.id }
func (o *Order) Code() string                   { return o.code }
func (o *Order) CustomerID() uuid.UUID          { return o.customerID }
func (o *Order) EmployeeID() *uuid.UUID         { return o.employeeID }
func (o *Order) Lines() []*LineItem             { return o.lines }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) Total() decimal.Decimal         { return o.total }
func (o *Order) FineSurcharge() decimal.Decimal { return o.fineSurcharge }
func (o *Order) Paid() bool                     { return o.paid }
func (o *Order) PointsAssigned() bool           { return o.pointsAssigned }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) UpdatedAt() time.Time           { return o.updatedAt }

func generateCode() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}
