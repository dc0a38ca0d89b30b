package repository

import (
	"context"
	"time"

	"licoreria-api/internal/domain/user"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserRepository struct {
	db infra.DBTX
}

func NewUserRepository(db infra.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, customer_id, employee_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		pgconv.UUIDPtrToPgtype(u.CustomerID()),
		pgconv.UUIDPtrToPgtype(u.EmployeeID()),
		u.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*user.User, error) {
	sql := `
		SELECT id, email, password_hash, role, customer_id, employee_id,
		       last_login, is_active, created_at, updated_at
		FROM users
		` + where

	var (
		userID                 uuid.UUID
		email, hash, role      string
		customerID, employeeID pgtype.UUID
		lastLogin              pgtype.Timestamptz
		isActive               bool
		createdAt, updatedAt   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&userID, &email, &hash, &role, &customerID, &employeeID,
		&lastLogin, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	emailVO, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid email in storage", err)
	}
	roleVO, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid role in storage", err)
	}

	return user.ReconstructUser(
		userID,
		emailVO,
		hash,
		roleVO,
		pgconv.UUIDPtrFromPgtype(customerID), pgconv.UUIDPtrFromPgtype(employeeID),
		pgconv.TimePtrFromPgtype(lastLogin),
		isActive,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET last_login = $2, updated_at = now()
		WHERE id = $1`,
		userID,
		pgconv.TimeToPgtype(at),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
