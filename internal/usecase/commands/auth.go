package commands

import (
	"context"
	"log/slog"

	"licoreria-api/internal/domain/user"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/clock"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/pkg/jwt"
	"licoreria-api/internal/pkg/password"
	"licoreria-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUserInactive       = errs.New("user inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	CustomerID  *uuid.UUID
	EmployeeID  *uuid.UUID
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clock clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	u, err := a.uow.Reads().UserByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}
	if err := password.ComparePassword(u.PasswordHash(), plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role(), u.CustomerID(), u.EmployeeID())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	// Last-login bookkeeping must not fail an otherwise valid login.
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, u.ID(), a.clock.Now())
	})
	if err != nil {
		slog.Warn("failed to update last login", "user_id", u.ID(), "error", err.Error())
	}

	return &LoginResult{
		UserID:      u.ID(),
		Role:        u.Role(),
		CustomerID:  u.CustomerID(),
		EmployeeID:  u.EmployeeID(),
		AccessToken: token,
	}, nil
}
