package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("customer name cannot be empty")
	ErrNegativeLoanLimit = errors.New("loan limit cannot be negative")
)

// Customer is the long-lived aggregation root for orders, rewards and
// fines. Points are derived from order history on demand, never stored as
// running counters; only the legacy loan limit lives on the row itself.
type Customer struct {
	id        uuid.UUID
	name      string
	email     string
	phone     *string
	code      Code
	loanLimit decimal.Decimal
	createdAt time.Time
	updatedAt time.Time
}

func NewCustomer(name, email string, phone *string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	return &Customer{
		id:        uuid.New(),
		name:      name,
		email:     strings.TrimSpace(email),
		phone:     phone,
		code:      GenerateCode(),
		loanLimit: decimal.Zero,
	}, nil
}

func ReconstructCustomer(
	id uuid.UUID,
	name, email string,
	phone *string,
	code Code,
	loanLimit decimal.Decimal,
	createdAt, updatedAt time.Time,
) *Customer {
	return &Customer{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		code:      code,
		loanLimit: loanLimit,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// RaiseLoanLimit grows the legacy loan limit after a paid order. The limit
// is monotonic non-decreasing under normal flow.
func (c *Customer) RaiseLoanLimit(increment decimal.Decimal) error {
	if increment.IsNegative() {
		return ErrNegativeLoanLimit
	}
	c.loanLimit = c.loanLimit.Add(increment)
	return nil
}

func (c *Customer) ID() uuid.UUID             { return c.id }
func (c *Customer) Name() string              { return c.name }
func (c *Customer) Email() string             { return c.email }
func (c *Customer) Phone() *string            { return c.phone }
func (c *Customer) Code() Code                { return c.code }
func (c *Customer) LoanLimit() decimal.Decimal { return c.loanLimit }
func (c *Customer) CreatedAt() time.Time      { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time      { return c.updatedAt }
