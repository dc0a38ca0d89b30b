package readstore

import (
	"context"

	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/pgconv"
	"licoreria-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db infra.DBTX
}

func NewOrderReadStore(db infra.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var (
		view                 queries.OrderView
		employeeID           pgtype.UUID
		total, fineSurcharge pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT o.id, o.code, o.customer_id, c.name, o.employee_id, o.status,
		       o.total, o.fine_surcharge, o.paid, o.points_assigned, o.created_at, o.updated_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1`, id).Scan(
		&view.ID, &view.Code, &view.CustomerID, &view.CustomerName, &employeeID, &view.Status,
		&total, &fineSurcharge, &view.Paid, &view.PointsAssigned, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	view.EmployeeID = pgconv.UUIDPtrFromPgtype(employeeID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	if view.Total, err = pgconv.DecimalFromNumeric(total); err != nil {
		return nil, infra.WrapRepoErr("invalid order total", err)
	}
	if view.FineSurcharge, err = pgconv.DecimalFromNumeric(fineSurcharge); err != nil {
		return nil, infra.WrapRepoErr("invalid fine surcharge", err)
	}

	lines, err := r.linesByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Lines = lines

	return &view, nil
}

func (r *OrderReadStore) linesByOrderID(ctx context.Context, orderID uuid.UUID) ([]queries.OrderLineView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id,
		       CASE WHEN product_id IS NOT NULL THEN 'product' ELSE 'cocktail' END,
		       COALESCE(product_id, cocktail_id),
		       item_name, quantity, unit_price, quantity * unit_price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order lines", err)
	}
	defer rows.Close()

	var lines []queries.OrderLineView
	for rows.Next() {
		var (
			line                queries.OrderLineView
			unitPrice, subtotal pgtype.Numeric
		)
		if err := rows.Scan(&line.ID, &line.ItemKind, &line.ItemID, &line.ItemName, &line.Quantity, &unitPrice, &subtotal); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line", err)
		}
		if line.UnitPrice, err = pgconv.DecimalFromNumeric(unitPrice); err != nil {
			return nil, infra.WrapRepoErr("invalid line unit price", err)
		}
		if line.Subtotal, err = pgconv.DecimalFromNumeric(subtotal); err != nil {
			return nil, infra.WrapRepoErr("invalid line subtotal", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order lines", err)
	}
	return lines, nil
}

func (r *OrderReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.code, o.status, o.total, o.paid,
		       (SELECT COUNT(*) FROM order_lines l WHERE l.order_id = o.id),
		       o.created_at
		FROM orders o
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC, o.id DESC`, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var items []*queries.OrderListItem
	for rows.Next() {
		var (
			item      queries.OrderListItem
			total     pgtype.Numeric
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.Code, &item.Status, &total, &item.Paid, &item.LineCount, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list item", err)
		}
		if item.Total, err = pgconv.DecimalFromNumeric(total); err != nil {
			return nil, infra.WrapRepoErr("invalid order total", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return items, nil
}
