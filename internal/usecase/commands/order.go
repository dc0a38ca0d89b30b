package commands

import (
	"context"
	"errors"

	"licoreria-api/internal/domain/cart"
	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/domain/fine"
	"licoreria-api/internal/domain/loyalty"
	"licoreria-api/internal/domain/order"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/queries"
	"licoreria-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutInput struct {
	CustomerID uuid.UUID
	Lines      []cart.Line
	Mode       order.PaymentMode
}

type ApplyFineInput struct {
	OrderID     uuid.UUID
	Kind        string
	Amount      decimal.Decimal
	Description string
}

type OrderCommands interface {
	// Checkout validates stock and credit, snapshots prices, decrements
	// stock and creates the order, all inside one transaction.
	Checkout(ctx context.Context, in CheckoutInput, actor Actor) (*queries.OrderView, error)
	// Approve moves a requested credit order to on_loan.
	Approve(ctx context.Context, orderID uuid.UUID, actor Actor) (*queries.OrderView, error)
	// Cancel restores stock for every line and deletes the order record.
	Cancel(ctx context.Context, orderID uuid.UUID, actor Actor) error
	// MarkPaid settles the order, grants the one-time loyalty increments
	// and cascades payment to linked fines. Idempotent.
	MarkPaid(ctx context.Context, orderID uuid.UUID, actor Actor) (*queries.OrderView, error)
	// ApplyFine adds a penalty surcharge to an unsettled order and opens a
	// linked fine record.
	ApplyFine(ctx context.Context, in ApplyFineInput, actor Actor) (*queries.OrderView, error)
	AddLine(ctx context.Context, orderID uuid.UUID, line cart.Line, actor Actor) (*queries.OrderView, error)
	RemoveLine(ctx context.Context, orderID, lineID uuid.UUID, actor Actor) (*queries.OrderView, error)
}

type orderCommandsImpl struct {
	uow          shared.UnitOfWork
	engine       *loyalty.Engine
	orderQueries queries.OrderQueries
	audit        AuditRecorder
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	engine *loyalty.Engine,
	orderQueries queries.OrderQueries,
	audit AuditRecorder,
) OrderCommands {
	return &orderCommandsImpl{
		uow:          uow,
		engine:       engine,
		orderQueries: orderQueries,
		audit:        audit,
	}
}

func (c *orderCommandsImpl) Checkout(ctx context.Context, in CheckoutInput, actor Actor) (*queries.OrderView, error) {
	if len(in.Lines) == 0 {
		return nil, errs.ErrEmptyCart
	}
	if !in.Mode.IsValid() {
		return nil, errs.Mark(order.ErrInvalidPaymentMode, errs.ErrDomainValidation)
	}

	var orderID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().CustomerByID(ctx, in.CustomerID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrCustomerNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		lines, err := c.reserveLines(ctx, tx, in.Lines)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(in.CustomerID, actor.EmployeeID, lines, in.Mode)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if in.Mode == order.ModeCredit {
			if err := c.checkCredit(ctx, tx, in.CustomerID, o.Total()); err != nil {
				return err
			}
		}

		// Direct payments are born settled; the loyalty flag is set before
		// insert so the row is consistent from the first write.
		if o.Paid() {
			o.SettlePoints()
		}

		if err := tx.Orders().Create(ctx, o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if o.Paid() {
			bonus := c.engine.LoanBonus(o.Total())
			if err := tx.Customers().AddLoanLimit(ctx, in.CustomerID, bonus); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		orderID = o.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "checkout", "orders", map[string]any{
		"order_id": orderID,
		"mode":     string(in.Mode),
	})
	return c.orderQueries.GetByID(ctx, orderID)
}

// reserveLines locks each item row, checks stock and decrements it, and
// returns line items carrying price snapshots taken under that lock.
func (c *orderCommandsImpl) reserveLines(ctx context.Context, tx shared.Tx, cartLines []cart.Line) ([]*order.LineItem, error) {
	lines := make([]*order.LineItem, 0, len(cartLines))
	for _, cl := range cartLines {
		ref := catalog.ItemRef{Kind: cl.Kind, ID: cl.ItemID}

		snap, err := tx.Catalog().LockItem(ctx, ref)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrItemNotFound
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if snap.Stock < cl.Qty {
			return nil, errs.Mark(errs.Newf("%s: %d of %d available", snap.Name, snap.Stock, cl.Qty), errs.ErrInsufficientStock)
		}
		if err := tx.Catalog().TakeStock(ctx, ref, cl.Qty); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return nil, errs.Mark(err, errs.ErrInsufficientStock)
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		line, err := order.NewLineItem(ref, snap.Name, cl.Qty, snap.UnitPrice)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (c *orderCommandsImpl) checkCredit(ctx context.Context, tx shared.Tx, customerID uuid.UUID, total decimal.Decimal) error {
	totalSpent, err := tx.Reads().TotalSpent(ctx, customerID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	unpaid, err := tx.Reads().UnpaidOrdersTotal(ctx, customerID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	available := c.engine.CreditAvailable(totalSpent, unpaid)
	if available.LessThan(total) {
		return errs.Mark(errs.Newf("credit available %s, order total %s", available, total), errs.ErrInsufficientCredit)
	}
	return nil
}

func (c *orderCommandsImpl) Approve(ctx context.Context, orderID uuid.UUID, actor Actor) (*queries.OrderView, error) {
	if actor.EmployeeID == nil {
		return nil, errs.Mark(errs.New("approver has no employee record"), errs.ErrDomainValidation)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := c.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := o.Approve(*actor.EmployeeID); err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		if err := tx.Orders().Save(ctx, o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "approve", "orders", map[string]any{"order_id": orderID})
	return c.orderQueries.GetByID(ctx, orderID)
}

func (c *orderCommandsImpl) Cancel(ctx context.Context, orderID uuid.UUID, actor Actor) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := c.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := o.Cancel(); err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		for _, line := range o.Lines() {
			if err := tx.Catalog().RestoreStock(ctx, line.Item(), line.Quantity()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		if err := tx.Orders().Delete(ctx, o.ID()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.audit.Record(ctx, actor.UserID, "cancel", "orders", map[string]any{"order_id": orderID})
	return nil
}

func (c *orderCommandsImpl) MarkPaid(ctx context.Context, orderID uuid.UUID, actor Actor) (*queries.OrderView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := c.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		alreadyPaid, err := o.MarkPaid()
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		if alreadyPaid && o.PointsAssigned() {
			// Replayed confirmation; every side effect already happened.
			return nil
		}

		if o.SettlePoints() {
			bonus := c.engine.LoanBonus(o.Total())
			if err := tx.Customers().AddLoanLimit(ctx, o.CustomerID(), bonus); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		if _, err := tx.Fines().MarkPaidByOrderID(ctx, o.ID()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Orders().Save(ctx, o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "mark_paid", "orders", map[string]any{"order_id": orderID})
	return c.orderQueries.GetByID(ctx, orderID)
}

func (c *orderCommandsImpl) ApplyFine(ctx context.Context, in ApplyFineInput, actor Actor) (*queries.OrderView, error) {
	kind, err := fine.NewKind(in.Kind)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := c.lockOrder(ctx, tx, in.OrderID)
		if err != nil {
			return err
		}
		if err := o.ApplyFine(in.Amount); err != nil {
			if errors.Is(err, order.ErrOrderTerminal) {
				return errs.Mark(err, errs.ErrInvalidStateTransition)
			}
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		f, err := fine.NewFine(o.CustomerID(), &in.OrderID, kind, in.Amount, in.Description)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if err := tx.Fines().Create(ctx, f); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Orders().Save(ctx, o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "apply_fine", "orders", map[string]any{
		"order_id": in.OrderID,
		"kind":     in.Kind,
	})
	return c.orderQueries.GetByID(ctx, in.OrderID)
}

func (c *orderCommandsImpl) AddLine(ctx context.Context, orderID uuid.UUID, line cart.Line, actor Actor) (*queries.OrderView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := c.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if o.Status() != order.StatusRequested {
			return errs.Mark(order.ErrNotRequested, errs.ErrInvalidStateTransition)
		}

		lines, err := c.reserveLines(ctx, tx, []cart.Line{line})
		if err != nil {
			return err
		}
		o.AddLine(lines[0])

		if err := tx.Orders().InsertLine(ctx, lines[0]); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Orders().UpdateTotals(ctx, o.ID(), o.Total(), o.FineSurcharge()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "add_line", "orders", map[string]any{"order_id": orderID})
	return c.orderQueries.GetByID(ctx, orderID)
}

func (c *orderCommandsImpl) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID, actor Actor) (*queries.OrderView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := c.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if o.Status() != order.StatusRequested {
			return errs.Mark(order.ErrNotRequested, errs.ErrInvalidStateTransition)
		}

		removed, err := o.RemoveLine(lineID)
		if err != nil {
			if errors.Is(err, order.ErrLineNotFound) {
				return errs.ErrOrderLineNotFound
			}
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.Catalog().RestoreStock(ctx, removed.Item(), removed.Quantity()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Orders().DeleteLine(ctx, lineID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Orders().UpdateTotals(ctx, o.ID(), o.Total(), o.FineSurcharge()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "remove_line", "orders", map[string]any{
		"order_id": orderID,
		"line_id":  lineID,
	})
	return c.orderQueries.GetByID(ctx, orderID)
}

func (c *orderCommandsImpl) lockOrder(ctx context.Context, tx shared.Tx, orderID uuid.UUID) (*order.Order, error) {
	o, err := tx.Orders().LockByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return o, nil
}
