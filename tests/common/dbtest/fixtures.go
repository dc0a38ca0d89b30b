//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123", precomputed so fixtures stay fast.
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestCustomer(t *testing.T, db DBLike, name, email string) uuid.UUID {
	t.Helper()

	customerID := uuid.New()
	code := "C-" + strings.ToUpper(customerID.String()[:8])

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO customers (id, name, email, code) VALUES ($1, $2, $3, $4)",
		customerID, name, email, code)
	require.NoError(t, err)

	return customerID
}

func CreateTestEmployee(t *testing.T, db DBLike, name, position string) uuid.UUID {
	t.Helper()

	employeeID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO employees (id, name, position) VALUES ($1, $2, $3)",
		employeeID, name, position)
	require.NoError(t, err)

	return employeeID
}

// CreateTestUser inserts a login with the fixture password. Customer roles
// get a linked customer row, staff roles a linked employee row.
func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	var customerID, employeeID *uuid.UUID
	if role == "customer" {
		id := CreateTestCustomer(t, db, "Cliente "+email, email)
		customerID = &id
	} else {
		id := CreateTestEmployee(t, db, "Empleado "+email, role)
		employeeID = &id
	}

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, customer_id, employee_id, is_active) VALUES ($1, $2, $3, $4, $5, $6, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role, customerID, employeeID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestProduct(t *testing.T, db DBLike, name string, unitPrice string, stock int32) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO products (id, name, unit_price, stock) VALUES ($1, $2, $3, $4)",
		productID, name, unitPrice, stock)
	require.NoError(t, err)

	return productID
}

func CreateTestCocktail(t *testing.T, db DBLike, name string, unitPrice string, stock int32) uuid.UUID {
	t.Helper()

	cocktailID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO cocktails (id, name, unit_price, stock) VALUES ($1, $2, $3, $4)",
		cocktailID, name, unitPrice, stock)
	require.NoError(t, err)

	return cocktailID
}

func CustomerIDForUser(t *testing.T, db DBLike, userID uuid.UUID) uuid.UUID {
	t.Helper()

	var customerID uuid.UUID
	err := db.QueryRow(context.Background(),
		"SELECT customer_id FROM users WHERE id = $1", userID).Scan(&customerID)
	require.NoError(t, err)
	return customerID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// A counter admin every flow can authenticate as.
	employeeID := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO employees (id, name, position)
		SELECT $1, 'Dueña', 'admin'
		WHERE NOT EXISTS (SELECT 1 FROM employees WHERE position = 'admin');
	`, employeeID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, employee_id, is_active)
		SELECT gen_random_uuid(), 'admin@licoreria.local', $1, 'admin',
		       (SELECT id FROM employees WHERE position = 'admin' LIMIT 1), true
		ON CONFLICT (email) DO NOTHING;
	`, testPasswordHash)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
