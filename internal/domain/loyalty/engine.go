package loyalty

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidRate = errors.New("loyalty rates must be non-negative")

// Engine holds the loyalty and credit arithmetic. Every figure is derived
// on demand from order history so balances can never drift; nothing here
// touches storage.
type Engine struct {
	dollarsPerPoint decimal.Decimal
	creditBase      decimal.Decimal
	creditRate      decimal.Decimal
	loanBonusRate   decimal.Decimal
}

func NewEngine(dollarsPerPoint int64, creditBase, creditRate, loanBonusRate decimal.Decimal) (*Engine, error) {
	if dollarsPerPoint <= 0 {
		return nil, ErrInvalidRate
	}
	if creditBase.IsNegative() || creditRate.IsNegative() || loanBonusRate.IsNegative() {
		return nil, ErrInvalidRate
	}
	return &Engine{
		dollarsPerPoint: decimal.NewFromInt(dollarsPerPoint),
		creditBase:      creditBase,
		creditRate:      creditRate,
		loanBonusRate:   loanBonusRate,
	}, nil
}

// PointsEarned is floor(total_spent / dollars-per-point): one point per
// ten dollars of lifetime paid spend at the default rate.
func (e *Engine) PointsEarned(totalSpent decimal.Decimal) int64 {
	if totalSpent.IsNegative() {
		return 0
	}
	return totalSpent.Div(e.dollarsPerPoint).Floor().IntPart()
}

// PointsAvailable never goes below zero even if historical data is odd.
func (e *Engine) PointsAvailable(totalSpent decimal.Decimal, pointsRedeemed int64) int64 {
	available := e.PointsEarned(totalSpent) - pointsRedeemed
	if available < 0 {
		return 0
	}
	return available
}

// CreditLimit grows monotonically with paid-order history:
// base + total_spent * rate.
func (e *Engine) CreditLimit(totalSpent decimal.Decimal) decimal.Decimal {
	if totalSpent.IsNegative() {
		totalSpent = decimal.Zero
	}
	return e.creditBase.Add(totalSpent.Mul(e.creditRate))
}

// CreditAvailable subtracts outstanding store-credit debt from the limit.
// Fines are deliberately excluded: they warn, they do not block credit.
func (e *Engine) CreditAvailable(totalSpent, unpaidTotal decimal.Decimal) decimal.Decimal {
	return e.CreditLimit(totalSpent).Sub(unpaidTotal)
}

// LoanBonus is the one-time loan-limit increment granted when an order is
// marked paid.
func (e *Engine) LoanBonus(paidAmount decimal.Decimal) decimal.Decimal {
	if paidAmount.IsNegative() {
		return decimal.Zero
	}
	return paidAmount.Mul(e.loanBonusRate)
}
