package order

import "errors"

var ErrInvalidStatus = errors.New("invalid order status")

// Status is the order lifecycle state.
//
//	requested -> on_loan -> paid
//	requested -> fined   -> paid
//	on_loan   -> fined
//	requested -> cancelled
//
// Direct-payment orders are born paid and never pass through the credit
// states. paid and cancelled are terminal.
type Status string

const (
	StatusRequested Status = "requested"
	StatusOnLoan    Status = "on_loan"
	StatusPaid      Status = "paid"
	StatusFined     Status = "fined"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusOnLoan, StatusPaid, StatusFined, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// PaymentMode selects between immediate payment and store credit at
// checkout.
type PaymentMode string

const (
	ModePay    PaymentMode = "pay"
	ModeCredit PaymentMode = "credit"
)

func (m PaymentMode) IsValid() bool {
	return m == ModePay || m == ModeCredit
}

var ErrInvalidPaymentMode = errors.New("invalid payment mode")

func NewPaymentMode(s string) (PaymentMode, error) {
	mode := PaymentMode(s)
	if !mode.IsValid() {
		return "", ErrInvalidPaymentMode
	}
	return mode, nil
}
