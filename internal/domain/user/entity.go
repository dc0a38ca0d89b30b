package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the login identity. A customer login links to its Customer row,
// an employee login links to its Employee row; either side may be nil.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	customerID   *uuid.UUID
	employeeID   *uuid.UUID
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash string, role Role, customerID, employeeID *uuid.UUID) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		customerID:   customerID,
		employeeID:   employeeID,
		isActive:     true,
	}
}

func ReconstructUser(
	id uuid.UUID,
	email Email,
	passwordHash string,
	role Role,
	customerID, employeeID *uuid.UUID,
	lastLogin *time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		customerID:   customerID,
		employeeID:   employeeID,
		lastLogin:    lastLogin,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID          { return u.id }
func (u *User) Email() Email           { return u.email }
func (u *User) PasswordHash() string   { return u.passwordHash }
func (u *User) Role() Role             { return u.role }
func (u *User) CustomerID() *uuid.UUID { return u.customerID }
func (u *User) EmployeeID() *uuid.UUID { return u.employeeID }
func (u *User) LastLogin() *time.Time  { return u.lastLogin }
func (u *User) IsActive() bool         { return u.isActive }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() time.Time   { return u.updatedAt }
