package commands

import (
	"context"

	"licoreria-api/internal/domain/customer"
	"licoreria-api/internal/domain/user"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/pkg/password"
	"licoreria-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrEmailTaken = errs.New("email already registered")

type RegisterCustomerInput struct {
	Name     string
	Email    string
	Phone    *string
	Password string
}

type RegisterCustomerResult struct {
	CustomerID uuid.UUID
	UserID     uuid.UUID
	Code       string
}

type CustomerCommands interface {
	// Register creates the customer record and its login in one
	// transaction, assigning the short customer code shown at the counter.
	Register(ctx context.Context, in RegisterCustomerInput) (*RegisterCustomerResult, error)
}

type customerCommandsImpl struct {
	uow   shared.UnitOfWork
	audit AuditRecorder
}

func NewCustomerCommands(uow shared.UnitOfWork, audit AuditRecorder) CustomerCommands {
	return &customerCommandsImpl{uow: uow, audit: audit}
}

func (c *customerCommandsImpl) Register(ctx context.Context, in RegisterCustomerInput) (*RegisterCustomerResult, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if _, err := user.NewPassword(in.Password); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	hash, err := password.HashPassword(in.Password)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	cust, err := customer.NewCustomer(in.Name, email.Value(), in.Phone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	customerID := cust.ID()
	u := user.NewUser(email, hash, user.RoleCustomer, &customerID, nil)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Customers().Create(ctx, cust); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrEmailTaken)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, u.ID(), "register", "customers", map[string]any{
		"customer_id": cust.ID(),
		"code":        cust.Code().String(),
	})
	return &RegisterCustomerResult{
		CustomerID: cust.ID(),
		UserID:     u.ID(),
		Code:       cust.Code().String(),
	}, nil
}
