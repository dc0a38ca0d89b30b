//go:build e2e

package order_test

import (
	"fmt"
	"net/http"
	"testing"

	reqdto "licoreria-api/internal/handler/dto/request"
	resdto "licoreria-api/internal/handler/dto/response"
	"licoreria-api/internal/usecase/queries"
	"licoreria-api/tests/common/authtest"
	"licoreria-api/tests/common/dbtest"
	"licoreria-api/tests/common/httptest"
	"licoreria-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	customersURL = "/api/customers"
	cartItemsURL = "/api/cart/items"
	checkoutURL  = "/api/cart/checkout"
	ordersURL    = "/api/orders"
	loyaltyURL   = "/api/customers/me/loyalty"
	rewardsURL   = "/api/rewards"

	adminEmail    = "admin@licoreria.local"
	fixturePasswd = "password123"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

type orderSuite struct {
	e2e.SharedSuite
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(orderSuite))
}

// registerCustomer signs up a fresh customer through the public API and
// returns its id together with a login token.
func (s *orderSuite) registerCustomer(email string) (uuid.UUID, string) {
	t := s.T()
	rec := httptest.PerformRequest(t, s.Router, http.MethodPost, customersURL, reqdto.RegisterCustomerRequest{
		Name:     "Maria Perez",
		Email:    email,
		Password: fixturePasswd,
	}, "")

	var response resdto.RegisterCustomerResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &response)
	s.Require().Len(response.Code, 8)

	return response.CustomerID, authtest.LoginUser(t, s.Router, email, fixturePasswd)
}

// checkout puts qty units of the product in the session cart and checks out.
func (s *orderSuite) checkout(token string, productID uuid.UUID, qty int32, mode string) (*queries.OrderView, int) {
	t := s.T()

	addRec := httptest.PerformRequest(t, s.Router, http.MethodPost, cartItemsURL, reqdto.CartAddRequest{
		Kind:     "product",
		ItemID:   productID,
		Quantity: qty,
	}, token)
	s.Require().Equal(http.StatusOK, addRec.Code, addRec.Body.String())

	// The cart lives in a cookie-keyed session, so carry the cookie over.
	rec := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, checkoutURL,
		reqdto.CheckoutRequest{Mode: mode}, httptest.ExtractCookies(addRec), token)
	if rec.Code != http.StatusCreated {
		return nil, rec.Code
	}

	var view queries.OrderView
	httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &view)
	return &view, rec.Code
}

func (s *orderSuite) stockOf(productID uuid.UUID) int32 {
	var stock int32
	err := s.DB.QueryRow(s.T().Context(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	s.Require().NoError(err)
	return stock
}

func (s *orderSuite) loyaltySummary(token string) queries.LoyaltySummary {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, loyaltyURL, nil, token)
	var summary queries.LoyaltySummary
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &summary)
	return summary
}

func (s *orderSuite) TestCreditOrderLifecycle() {
	s.Run("credit order runs requested, on_loan, paid and grows loyalty", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Ron Abuelo 7", "15.50", 10)
		adminToken := authtest.LoginUser(t, s.Router, adminEmail, fixturePasswd)
		customerID, customerToken := s.registerCustomer("maria@example.com")

		view, code := s.checkout(customerToken, productID, 2, "credit")
		s.Require().Equal(http.StatusCreated, code)

		expected := &queries.OrderView{
			CustomerID:    customerID,
			Status:        "requested",
			Total:         decimal.NewFromFloat(31.00),
			FineSurcharge: decimal.Zero,
			Lines: []queries.OrderLineView{
				{
					ItemKind:  "product",
					ItemID:    productID,
					ItemName:  "Ron Abuelo 7",
					Quantity:  2,
					UnitPrice: decimal.NewFromFloat(15.50),
					Subtotal:  decimal.NewFromFloat(31.00),
				},
			},
		}
		opts := []cmp.Option{
			decimalComparer,
			cmpopts.IgnoreFields(queries.OrderView{}, "ID", "Code", "CustomerName", "CreatedAt", "UpdatedAt"),
			cmpopts.IgnoreFields(queries.OrderLineView{}, "ID"),
		}
		if diff := cmp.Diff(expected, view, opts...); diff != "" {
			t.Errorf("order view mismatch (-expected +actual):\n%s", diff)
		}

		// Credit checkout holds the stock up front.
		s.Equal(int32(8), s.stockOf(productID))

		approveRec := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/approve", ordersURL, view.ID), nil, adminToken)
		var approved queries.OrderView
		httptest.AssertSuccessResponse(t, approveRec, http.StatusOK, &approved)
		s.Equal("on_loan", approved.Status)
		s.NotNil(approved.EmployeeID)

		// The outstanding loan consumes store credit.
		summary := s.loyaltySummary(customerToken)
		s.True(summary.CreditUsed.Equal(decimal.NewFromFloat(31.00)), summary.CreditUsed.String())
		s.Zero(summary.PointsEarned)

		payRec := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/pay", ordersURL, view.ID), nil, adminToken)
		var paid queries.OrderView
		httptest.AssertSuccessResponse(t, payRec, http.StatusOK, &paid)
		s.Equal("paid", paid.Status)
		s.True(paid.Paid)

		// $31 settled: 3 points, $1.55 loan-limit bonus at the 5% rate,
		// ceiling grows to 50 + 31 * 0.10.
		summary = s.loyaltySummary(customerToken)
		s.Equal(int64(3), summary.PointsEarned)
		s.True(summary.TotalSpent.Equal(decimal.NewFromFloat(31.00)), summary.TotalSpent.String())
		s.True(summary.CreditUsed.IsZero(), summary.CreditUsed.String())
		s.True(summary.CreditLimit.Equal(decimal.NewFromFloat(53.10)), summary.CreditLimit.String())
		s.True(summary.LoanLimit.Equal(decimal.NewFromFloat(1.55)), summary.LoanLimit.String())

		// Replaying the payment must not double the bonus.
		replayRec := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/pay", ordersURL, view.ID), nil, adminToken)
		s.Equal(http.StatusOK, replayRec.Code)
		summary = s.loyaltySummary(customerToken)
		s.True(summary.LoanLimit.Equal(decimal.NewFromFloat(1.55)), summary.LoanLimit.String())
	})

	s.Run("direct payment settles at the counter", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Cerveza Pilsener", "1.25", 24)
		_, customerToken := s.registerCustomer("pedro@example.com")

		view, code := s.checkout(customerToken, productID, 4, "pay")
		s.Require().Equal(http.StatusCreated, code)
		s.Equal("paid", view.Status)
		s.True(view.Paid)
		s.Equal(int32(20), s.stockOf(productID))
	})

	s.Run("checkout above the credit ceiling is refused", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Whisky 18", "60.00", 5)
		_, customerToken := s.registerCustomer("lucia@example.com")

		// A fresh customer only has the $50 base ceiling.
		_, code := s.checkout(customerToken, productID, 1, "credit")
		s.Equal(http.StatusUnprocessableEntity, code)
		s.Equal(int32(5), s.stockOf(productID))
	})

	s.Run("checkout beyond stock is refused", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Ron Abuelo 7", "15.50", 1)
		_, customerToken := s.registerCustomer("jose@example.com")

		_, code := s.checkout(customerToken, productID, 2, "pay")
		s.Equal(http.StatusConflict, code)
		s.Equal(int32(1), s.stockOf(productID))
	})
}

func (s *orderSuite) TestCancel() {
	s.Run("cancelling a requested order releases the stock", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Ron Abuelo 7", "15.50", 10)
		_, customerToken := s.registerCustomer("maria@example.com")

		view, code := s.checkout(customerToken, productID, 3, "credit")
		s.Require().Equal(http.StatusCreated, code)
		s.Equal(int32(7), s.stockOf(productID))

		cancelRec := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf("%s/%s", ordersURL, view.ID), nil, customerToken)
		s.Equal(http.StatusNoContent, cancelRec.Code)
		s.Equal(int32(10), s.stockOf(productID))

		getRec := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", ordersURL, view.ID), nil, customerToken)
		httptest.AssertErrorResponse(t, getRec, http.StatusNotFound, "Order not found")
	})

	s.Run("an approved loan cannot be cancelled", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Ron Abuelo 7", "15.50", 10)
		adminToken := authtest.LoginUser(t, s.Router, adminEmail, fixturePasswd)
		_, customerToken := s.registerCustomer("maria@example.com")

		view, code := s.checkout(customerToken, productID, 1, "credit")
		s.Require().Equal(http.StatusCreated, code)

		approveRec := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/approve", ordersURL, view.ID), nil, adminToken)
		s.Require().Equal(http.StatusOK, approveRec.Code)

		cancelRec := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf("%s/%s", ordersURL, view.ID), nil, customerToken)
		httptest.AssertErrorResponse(t, cancelRec, http.StatusConflict, "Order state does not allow this operation")
	})
}

func (s *orderSuite) TestRewardRedemption() {
	s.Run("earned points buy a coupon through the full approval flow", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Caja de vino", "30.00", 20)
		adminToken := authtest.LoginUser(t, s.Router, adminEmail, fixturePasswd)
		_, customerToken := s.registerCustomer("maria@example.com")

		// $150 of settled purchases earn 15 points.
		view, code := s.checkout(customerToken, productID, 5, "pay")
		s.Require().Equal(http.StatusCreated, code)
		s.Require().True(view.Paid)
		s.Equal(int64(15), s.loyaltySummary(customerToken).PointsAvailable)

		requestRec := httptest.PerformRequest(t, s.Router, http.MethodPost, rewardsURL,
			reqdto.RequestRedemptionRequest{CatalogItemID: 101}, customerToken)
		var redemption queries.RewardView
		httptest.AssertSuccessResponse(t, requestRec, http.StatusCreated, &redemption)
		s.Equal("pending", redemption.Status)

		// Pending requests hold the points.
		s.Equal(int64(5), s.loyaltySummary(customerToken).PointsAvailable)

		approveRec := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/approve", rewardsURL, redemption.ID),
			reqdto.ReviewRedemptionRequest{}, adminToken)
		var approved queries.RewardView
		httptest.AssertSuccessResponse(t, approveRec, http.StatusOK, &approved)
		s.Equal("approved", approved.Status)
		s.Require().NotNil(approved.Code)
		s.Contains(*approved.Code, "RWD-")

		confirmRec := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/confirm", rewardsURL, redemption.ID), nil, customerToken)
		var delivered queries.RewardView
		httptest.AssertSuccessResponse(t, confirmRec, http.StatusOK, &delivered)
		s.Equal("delivered", delivered.Status)
	})

	s.Run("a redemption without the points is refused", func() {
		t := s.T()
		_, customerToken := s.registerCustomer("maria@example.com")

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, rewardsURL,
			reqdto.RequestRedemptionRequest{CatalogItemID: 101}, customerToken)
		s.Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	})
}
