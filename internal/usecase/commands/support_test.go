//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/domain/customer"
	"licoreria-api/internal/domain/fine"
	"licoreria-api/internal/domain/loyalty"
	"licoreria-api/internal/domain/order"
	"licoreria-api/internal/domain/reward"
	"licoreria-api/internal/domain/user"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/queries"
	"licoreria-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// In-memory unit of work. Every repository shares one state so command
// tests observe stock, totals and loyalty figures the way the real
// transaction would. No rollback: a failed command may leave partial
// writes behind, so tests assert on errors, not on untouched state.
type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	tx := &fakeTx{
		catalog:   &fakeCatalogRepo{items: map[catalog.ItemRef]*catalog.Item{}},
		orders:    &fakeOrderRepo{orders: map[uuid.UUID]*order.Order{}},
		rewards:   &fakeRewardRepo{rewards: map[uuid.UUID]*reward.Reward{}},
		fines:     &fakeFineRepo{fines: map[uuid.UUID]*fine.Fine{}},
		customers: &fakeCustomerRepo{customers: map[uuid.UUID]*customer.Customer{}},
		users:     &fakeUserRepo{byID: map[uuid.UUID]*user.User{}},
	}
	return &fakeUoW{tx: tx}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) Reads() shared.CommandReads {
	return u.tx.Reads()
}

type fakeTx struct {
	catalog   *fakeCatalogRepo
	orders    *fakeOrderRepo
	rewards   *fakeRewardRepo
	fines     *fakeFineRepo
	customers *fakeCustomerRepo
	users     *fakeUserRepo
}

func (t *fakeTx) Catalog() shared.CatalogRepository    { return t.catalog }
func (t *fakeTx) Orders() shared.OrderRepository       { return t.orders }
func (t *fakeTx) Rewards() shared.RewardRepository     { return t.rewards }
func (t *fakeTx) Fines() shared.FineRepository         { return t.fines }
func (t *fakeTx) Customers() shared.CustomerRepository { return t.customers }
func (t *fakeTx) Users() shared.UserRepository         { return t.users }
func (t *fakeTx) Reads() shared.CommandReads           { return &fakeReads{tx: t} }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type fakeCatalogRepo struct {
	items map[catalog.ItemRef]*catalog.Item
}

func (r *fakeCatalogRepo) Create(_ context.Context, item *catalog.Item) error {
	r.items[item.Ref()] = item
	return nil
}

func (r *fakeCatalogRepo) LockItem(_ context.Context, ref catalog.ItemRef) (*shared.ItemSnapshot, error) {
	item, ok := r.items[ref]
	if !ok {
		return nil, notFound("item")
	}
	return &shared.ItemSnapshot{
		ID:        item.ID(),
		Kind:      item.Kind(),
		Name:      item.Name(),
		UnitPrice: item.UnitPrice(),
		Stock:     item.Stock(),
	}, nil
}

func (r *fakeCatalogRepo) TakeStock(_ context.Context, ref catalog.ItemRef, qty int32) error {
	item, ok := r.items[ref]
	if !ok {
		return notFound("item")
	}
	if err := item.TakeStock(qty); err != nil {
		return infra.WrapRepoErr("stock guard failed", err, infra.KindConflict)
	}
	return nil
}

func (r *fakeCatalogRepo) RestoreStock(_ context.Context, ref catalog.ItemRef, qty int32) error {
	item, ok := r.items[ref]
	if !ok {
		return notFound("item")
	}
	return item.RestoreStock(qty)
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*order.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	r.orders[o.ID()] = o
	return nil
}

func (r *fakeOrderRepo) LockByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, notFound("order")
	}
	return o, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.orders[o.ID()] = o
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

// Line rows live inside the aggregate here, so the row-level operations
// have nothing extra to do.
func (r *fakeOrderRepo) InsertLine(_ context.Context, _ *order.LineItem) error { return nil }
func (r *fakeOrderRepo) DeleteLine(_ context.Context, _ uuid.UUID) error       { return nil }
func (r *fakeOrderRepo) UpdateTotals(_ context.Context, _ uuid.UUID, _, _ decimal.Decimal) error {
	return nil
}

type fakeRewardRepo struct {
	rewards map[uuid.UUID]*reward.Reward
}

func (r *fakeRewardRepo) Create(_ context.Context, rw *reward.Reward) error {
	r.rewards[rw.ID()] = rw
	return nil
}

func (r *fakeRewardRepo) LockByID(_ context.Context, id uuid.UUID) (*reward.Reward, error) {
	rw, ok := r.rewards[id]
	if !ok {
		return nil, notFound("reward")
	}
	return rw, nil
}

func (r *fakeRewardRepo) Save(_ context.Context, rw *reward.Reward) error {
	r.rewards[rw.ID()] = rw
	return nil
}

type fakeFineRepo struct {
	fines map[uuid.UUID]*fine.Fine
}

func (r *fakeFineRepo) Create(_ context.Context, f *fine.Fine) error {
	r.fines[f.ID()] = f
	return nil
}

func (r *fakeFineRepo) LockByID(_ context.Context, id uuid.UUID) (*fine.Fine, error) {
	f, ok := r.fines[id]
	if !ok {
		return nil, notFound("fine")
	}
	return f, nil
}

func (r *fakeFineRepo) Save(_ context.Context, f *fine.Fine) error {
	r.fines[f.ID()] = f
	return nil
}

func (r *fakeFineRepo) MarkPaidByOrderID(_ context.Context, orderID uuid.UUID) (int64, error) {
	var settled int64
	for _, f := range r.fines {
		if f.OrderID() != nil && *f.OrderID() == orderID && !f.Paid() {
			if err := f.MarkPaid(); err != nil {
				return settled, err
			}
			settled++
		}
	}
	return settled, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*customer.Customer
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	r.customers[c.ID()] = c
	return nil
}

func (r *fakeCustomerRepo) AddLoanLimit(_ context.Context, customerID uuid.UUID, increment decimal.Decimal) error {
	c, ok := r.customers[customerID]
	if !ok {
		return notFound("customer")
	}
	return c.RaiseLoanLimit(increment)
}

type fakeUserRepo struct {
	byID           map[uuid.UUID]*user.User
	lastLoginCalls int
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.byID {
		if existing.Email().Value() == u.Email().Value() {
			return infra.WrapRepoErr("email taken", nil, infra.KindDuplicateKey)
		}
	}
	r.byID[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	r.lastLoginCalls++
	return nil
}

// fakeReads derives the loyalty figures from the shared state the same way
// the SQL read side does, sums over the ledger rather than counters.
type fakeReads struct {
	tx *fakeTx
}

func (r *fakeReads) ItemByRef(ctx context.Context, ref catalog.ItemRef) (*shared.ItemSnapshot, error) {
	return r.tx.catalog.LockItem(ctx, ref)
}

func (r *fakeReads) OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.tx.orders.LockByID(ctx, id)
}

func (r *fakeReads) CustomerByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	c, ok := r.tx.customers.customers[id]
	if !ok {
		return nil, notFound("customer")
	}
	return c, nil
}

func (r *fakeReads) UserByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.tx.users.byID {
		if u.Email().Value() == email {
			return u, nil
		}
	}
	return nil, notFound("user")
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.tx.users.byID[id]
	if !ok {
		return nil, notFound("user")
	}
	return u, nil
}

func (r *fakeReads) TotalSpent(_ context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.tx.orders.orders {
		if o.CustomerID() == customerID && o.Paid() {
			total = total.Add(o.Total())
		}
	}
	return total, nil
}

func (r *fakeReads) UnpaidOrdersTotal(_ context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.tx.orders.orders {
		if o.CustomerID() == customerID && !o.Paid() {
			total = total.Add(o.Total())
		}
	}
	return total, nil
}

func (r *fakeReads) PointsRedeemed(_ context.Context, customerID uuid.UUID) (int64, error) {
	var redeemed int64
	for _, rw := range r.tx.rewards.rewards {
		if rw.CustomerID() == customerID && rw.Status().CountsAgainstBalance() {
			redeemed += int64(rw.PointCost())
		}
	}
	return redeemed, nil
}

type fakeAudit struct {
	actions []string
}

func (a *fakeAudit) Record(_ context.Context, _ uuid.UUID, action, _ string, _ map[string]any) {
	a.actions = append(a.actions, action)
}

type fakeOrderQueries struct {
	repo *fakeOrderRepo
}

func (q *fakeOrderQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.OrderView, error) {
	o, ok := q.repo.orders[id]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	view := &queries.OrderView{
		ID:             o.ID(),
		Code:           o.Code(),
		CustomerID:     o.CustomerID(),
		EmployeeID:     o.EmployeeID(),
		Status:         o.Status().String(),
		Total:          o.Total(),
		FineSurcharge:  o.FineSurcharge(),
		Paid:           o.Paid(),
		PointsAssigned: o.PointsAssigned(),
	}
	for _, l := range o.Lines() {
		view.Lines = append(view.Lines, queries.OrderLineView{
			ID:        l.ID(),
			ItemKind:  l.Item().Kind.String(),
			ItemID:    l.Item().ID,
			ItemName:  l.ItemName(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Subtotal:  l.Subtotal(),
		})
	}
	return view, nil
}

func (q *fakeOrderQueries) ListByCustomer(_ context.Context, _ uuid.UUID) ([]*queries.OrderListItem, error) {
	return nil, nil
}

type fakeRewardQueries struct {
	repo *fakeRewardRepo
}

func (q *fakeRewardQueries) Catalog(_ context.Context) []queries.RewardCatalogItemView {
	return nil
}

func (q *fakeRewardQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.RewardView, error) {
	rw, ok := q.repo.rewards[id]
	if !ok {
		return nil, errs.ErrRewardNotFound
	}
	return &queries.RewardView{
		ID:            rw.ID(),
		CustomerID:    rw.CustomerID(),
		CatalogItemID: rw.CatalogItemID(),
		Kind:          rw.Kind().String(),
		Description:   rw.Description(),
		Value:         rw.Value(),
		PointCost:     rw.PointCost(),
		Status:        rw.Status().String(),
		Code:          rw.Code(),
		Notes:         rw.Notes(),
		ApproverID:    rw.ApproverID(),
		OrderID:       rw.OrderID(),
	}, nil
}

func (q *fakeRewardQueries) ListByCustomer(_ context.Context, _ uuid.UUID) ([]*queries.RewardView, error) {
	return nil, nil
}

type fakeFineQueries struct {
	repo *fakeFineRepo
}

func (q *fakeFineQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.FineView, error) {
	f, ok := q.repo.fines[id]
	if !ok {
		return nil, errs.ErrFineNotFound
	}
	return &queries.FineView{
		ID:          f.ID(),
		CustomerID:  f.CustomerID(),
		OrderID:     f.OrderID(),
		Kind:        f.Kind().String(),
		Amount:      f.Amount(),
		Description: f.Description(),
		Paid:        f.Paid(),
	}, nil
}

func (q *fakeFineQueries) ListByCustomer(_ context.Context, customerID uuid.UUID, onlyUnpaid bool) ([]*queries.FineView, error) {
	var views []*queries.FineView
	for _, f := range q.repo.fines {
		if f.CustomerID() != customerID {
			continue
		}
		if onlyUnpaid && f.Paid() {
			continue
		}
		view, _ := q.GetByID(context.Background(), f.ID())
		views = append(views, view)
	}
	return views, nil
}

// Store defaults shared by the command tests: one point per $10 spent,
// $50 credit base, 10% credit growth, 2% loan bonus.
func newTestEngine(t *testing.T) *loyalty.Engine {
	t.Helper()
	engine, err := loyalty.NewEngine(
		10,
		decimal.NewFromInt(50),
		decimal.NewFromFloat(0.10),
		decimal.NewFromFloat(0.02),
	)
	require.NoError(t, err)
	return engine
}

func decimalFrom(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func seedCustomer(t *testing.T, uow *fakeUoW) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer("Maria Perez", "maria@example.com", nil)
	require.NoError(t, err)
	uow.tx.customers.customers[c.ID()] = c
	return c
}

func seedItem(t *testing.T, uow *fakeUoW, kind catalog.ItemKind, name string, price float64, stock int32) catalog.ItemRef {
	t.Helper()
	item, err := catalog.NewItem(kind, name, decimal.NewFromFloat(price), stock)
	require.NoError(t, err)
	uow.tx.catalog.items[item.Ref()] = item
	return item.Ref()
}

func stockOf(t *testing.T, uow *fakeUoW, ref catalog.ItemRef) int32 {
	t.Helper()
	item, ok := uow.tx.catalog.items[ref]
	require.True(t, ok)
	return item.Stock()
}
