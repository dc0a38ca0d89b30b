package usecase

import (
	"licoreria-api/internal/domain/user"
	"licoreria-api/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Identity is the authenticated party as middleware hands it to handlers.
type Identity struct {
	UserID     uuid.UUID
	Role       user.Role
	CustomerID *uuid.UUID
	EmployeeID *uuid.UUID
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		UserID:     claims.UserID,
		Role:       role,
		CustomerID: claims.CustomerID,
		EmployeeID: claims.EmployeeID,
	}, nil
}
