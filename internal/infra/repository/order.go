package repository

import (
	"context"

	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/domain/order"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	db infra.DBTX
}

func NewOrderRepository(db infra.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, code, customer_id, employee_id, status, total, fine_surcharge, paid, points_assigned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID(),
		o.Code(),
		o.CustomerID(),
		pgconv.UUIDPtrToPgtype(o.EmployeeID()),
		o.Status().String(),
		pgconv.DecimalToNumeric(o.Total()),
		pgconv.DecimalToNumeric(o.FineSurcharge()),
		o.Paid(),
		o.PointsAssigned(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	for _, line := range o.Lines() {
		if err := r.InsertLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) LockByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findByID(ctx, id, true)
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findByID(ctx, id, false)
}

func (r *OrderRepository) findByID(ctx context.Context, id uuid.UUID, lock bool) (*order.Order, error) {
	sql := `
		SELECT id, code, customer_id, employee_id, status, total, fine_surcharge,
		       paid, points_assigned, created_at, updated_at
		FROM orders
		WHERE id = $1`
	if lock {
		sql += `
		FOR UPDATE`
	}

	var (
		orderID, customerID  uuid.UUID
		code, status         string
		employeeID           pgtype.UUID
		total, fineSurcharge pgtype.Numeric
		paid, pointsAssigned bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&orderID, &code, &customerID, &employeeID, &status, &total, &fineSurcharge,
		&paid, &pointsAssigned, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	lines, err := r.linesByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	orderStatus, err := order.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order status in storage", err)
	}
	totalDec, err := pgconv.DecimalFromNumeric(total)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order total", err)
	}
	surchargeDec, err := pgconv.DecimalFromNumeric(fineSurcharge)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid fine surcharge", err)
	}

	return order.ReconstructOrder(
		orderID,
		code,
		customerID,
		pgconv.UUIDPtrFromPgtype(employeeID),
		lines,
		orderStatus,
		totalDec, surchargeDec,
		paid, pointsAssigned,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *OrderRepository) linesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*order.LineItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, cocktail_id, item_name, quantity, unit_price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order lines", err)
	}
	defer rows.Close()

	var lines []*order.LineItem
	for rows.Next() {
		var (
			lineID, lineOrderID   uuid.UUID
			productID, cocktailID pgtype.UUID
			itemName              string
			quantity              int32
			unitPrice             pgtype.Numeric
		)
		if err := rows.Scan(&lineID, &lineOrderID, &productID, &cocktailID, &itemName, &quantity, &unitPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line", err)
		}
		priceDec, err := pgconv.DecimalFromNumeric(unitPrice)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid line unit price", err)
		}
		lines = append(lines, order.ReconstructLineItem(
			lineID, lineOrderID,
			lineItemRef(productID, cocktailID),
			itemName,
			quantity,
			priceDec,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order lines", err)
	}
	return lines, nil
}

// Exactly one of product_id and cocktail_id is set per line; the schema
// enforces it with a CHECK constraint.
func lineItemRef(productID, cocktailID pgtype.UUID) catalog.ItemRef {
	if productID.Valid {
		return catalog.ItemRef{Kind: catalog.KindProduct, ID: uuid.UUID(productID.Bytes)}
	}
	return catalog.ItemRef{Kind: catalog.KindCocktail, ID: uuid.UUID(cocktailID.Bytes)}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $2, total = $3, fine_surcharge = $4, paid = $5,
		    points_assigned = $6, employee_id = $7, updated_at = now()
		WHERE id = $1`,
		o.ID(),
		o.Status().String(),
		pgconv.DecimalToNumeric(o.Total()),
		pgconv.DecimalToNumeric(o.FineSurcharge()),
		o.Paid(),
		o.PointsAssigned(),
		pgconv.UUIDPtrToPgtype(o.EmployeeID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) InsertLine(ctx context.Context, line *order.LineItem) error {
	var productID, cocktailID pgtype.UUID
	if line.Item().Kind == catalog.KindProduct {
		productID = pgconv.UUIDToPgtype(line.Item().ID)
	} else {
		cocktailID = pgconv.UUIDToPgtype(line.Item().ID)
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO order_lines (id, order_id, product_id, cocktail_id, item_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		line.ID(),
		line.OrderID(),
		productID,
		cocktailID,
		line.ItemName(),
		line.Quantity(),
		pgconv.DecimalToNumeric(line.UnitPrice()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert order line", err)
	}
	return nil
}

func (r *OrderRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM order_lines WHERE id = $1`, lineID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete order line", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order line not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) UpdateTotals(ctx context.Context, orderID uuid.UUID, total, fineSurcharge decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET total = $2, fine_surcharge = $3, updated_at = now()
		WHERE id = $1`,
		orderID,
		pgconv.DecimalToNumeric(total),
		pgconv.DecimalToNumeric(fineSurcharge),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order totals", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
