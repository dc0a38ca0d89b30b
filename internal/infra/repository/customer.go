package repository

import (
	"context"

	"licoreria-api/internal/domain/customer"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type CustomerRepository struct {
	db infra.DBTX
}

func NewCustomerRepository(db infra.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, name, email, phone, code, loan_limit)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID(),
		c.Name(),
		c.Email(),
		pgconv.StringPtrToPgtype(c.Phone()),
		c.Code().String(),
		pgconv.DecimalToNumeric(c.LoanLimit()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create customer", err)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var (
		customerID           uuid.UUID
		name, email          string
		phone                pgtype.Text
		code                 string
		loanLimit            pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone, code, loan_limit, created_at, updated_at
		FROM customers
		WHERE id = $1`, id).Scan(
		&customerID, &name, &email, &phone, &code, &loanLimit, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer", err)
	}

	customerCode, err := customer.NewCode(code)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid customer code in storage", err)
	}
	loanLimitDec, err := pgconv.DecimalFromNumeric(loanLimit)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid loan limit", err)
	}

	return customer.ReconstructCustomer(
		customerID,
		name, email,
		pgconv.StringPtrFromPgtype(phone),
		customerCode,
		loanLimitDec,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *CustomerRepository) AddLoanLimit(ctx context.Context, customerID uuid.UUID, increment decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE customers
		SET loan_limit = loan_limit + $2, updated_at = now()
		WHERE id = $1`,
		customerID,
		pgconv.DecimalToNumeric(increment),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to raise loan limit", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	return nil
}
