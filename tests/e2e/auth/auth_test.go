//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	reqdto "licoreria-api/internal/handler/dto/request"
	resdto "licoreria-api/internal/handler/dto/response"
	"licoreria-api/tests/common/authtest"
	"licoreria-api/tests/common/dbtest"
	"licoreria-api/tests/common/httptest"
	"licoreria-api/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL  = "/api/auth/login"
	logoutURL = "/api/auth/logout"
	meURL     = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "cliente@example.com", "customer")
	dbtest.CreateTestUser(s.T(), s.DB, "mostrador@example.com", "supervisor")
	dbtest.CreateTestUser(s.T(), s.DB, "inactivo@example.com", "customer")

	ctx := s.T().Context()
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false WHERE email = 'inactivo@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name         string
		email        string
		password     string
		expectedCode int
	}{
		{name: "customer logs in", email: "cliente@example.com", password: "password123", expectedCode: http.StatusOK},
		{name: "staff logs in", email: "mostrador@example.com", password: "password123", expectedCode: http.StatusOK},
		{name: "wrong password", email: "cliente@example.com", password: "wrong-password", expectedCode: http.StatusUnauthorized},
		{name: "unknown email", email: "nadie@example.com", password: "password123", expectedCode: http.StatusUnauthorized},
		{name: "inactive account", email: "inactivo@example.com", password: "password123", expectedCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
				reqdto.LoginRequest{Email: tt.email, Password: tt.password}, "")

			s.Equal(tt.expectedCode, rec.Code, rec.Body.String())
			if tt.expectedCode == http.StatusOK {
				tokenCookie := httptest.ExtractCookie(rec, "access_token")
				s.Require().NotNil(tokenCookie)
				s.NotEmpty(tokenCookie.Value)
			}
		})
	}

	s.Run("customer login exposes the customer link", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Email: "cliente@example.com", Password: "password123"}, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("customer", response.Role)
		s.NotNil(response.CustomerID)
		s.Nil(response.EmployeeID)
	})
}

func (s *authSuite) TestMe() {
	s.Run("returns the logged-in identity", func() {
		token := authtest.LoginUser(s.T(), s.Router, "mostrador@example.com", "password123")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)

		var response resdto.MeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("supervisor", response.Role)
		s.NotNil(response.EmployeeID)
		s.Nil(response.CustomerID)
	})

	s.Run("rejects a request without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("rejects a garbage token", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "not-a-jwt")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *authSuite) TestLogout() {
	s.Run("clears the access token cookie", func() {
		loginRec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Email: "cliente@example.com", Password: "password123"}, "")
		require.Equal(s.T(), http.StatusOK, loginRec.Code)

		authtest.LogoutUser(s.T(), s.Router, httptest.ExtractCookies(loginRec))
	})
}
