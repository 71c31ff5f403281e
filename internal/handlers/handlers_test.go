package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/finance_flow/internal/core/services"
	"github.com/SscSPs/finance_flow/internal/dto"
	"github.com/SscSPs/finance_flow/internal/handlers"
	"github.com/SscSPs/finance_flow/internal/middleware"
	"github.com/SscSPs/finance_flow/internal/platform/config"
	"github.com/SscSPs/finance_flow/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type APITestSuite struct {
	suite.Suite
	cfg    *config.Config
	router *gin.Engine
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *APITestSuite) SetupTest() {
	s.cfg = &config.Config{
		JWTSecret:          "handler-test-secret",
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "financeflow-test",
		BcryptCost:         bcrypt.MinCost,
		LoginRateLimit:     "100-M",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
	s.router = s.newRouter(s.cfg)
}

func (s *APITestSuite) newRouter(cfg *config.Config) *gin.Engine {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	container := services.NewServiceContainer(cfg, memory.NewRepositoryProvider())

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	s.Require().NoError(handlers.RegisterRoutes(r, cfg, container, prometheus.NewRegistry()))
	return r
}

func (s *APITestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *APITestSuite) registerAndLogin(username, password string) string {
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Username: username, Password: password})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	s.decode(w, &resp)
	s.Require().NotEmpty(resp.Token)
	s.True(resp.ExpiresAt.After(time.Now()))
	return resp.Token
}

func (s *APITestSuite) TestHealthAndMetrics() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
	s.NotEmpty(w.Header().Get(middleware.RequestIDHeader))

	w = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "financeflow_http_requests_total")
}

func (s *APITestSuite) TestRegister() {
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Username: "alice", Password: "pw123"})
	s.Equal(http.StatusCreated, w.Code)
	s.NotContains(w.Body.String(), "pw123")

	w = s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Username: "alice", Password: "other"})
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "bob"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestLogin_Failures() {
	s.registerAndLogin("alice", "pw123")

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)

	unknown := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "ghost", Password: "wrong"})
	s.Equal(http.StatusUnauthorized, unknown.Code)
	s.Equal(w.Body.String(), unknown.Body.String())
}

func (s *APITestSuite) TestLogin_RateLimited() {
	cfg := *s.cfg
	cfg.LoginRateLimit = "2-M"
	s.router = s.newRouter(&cfg)

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "ghost", Password: "x"})
		s.Equal(http.StatusUnauthorized, w.Code)
	}
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "ghost", Password: "x"})
	s.Equal(http.StatusTooManyRequests, w.Code)
}

func (s *APITestSuite) TestProtectedRoutesRequireToken() {
	for _, tc := range []struct{ method, path, token string }{
		{http.MethodGet, "/api/v1/income", ""},
		{http.MethodPost, "/api/v1/expenses", ""},
		{http.MethodDelete, "/api/v1/ledger", ""},
		{http.MethodGet, "/api/v1/summary", "not-a-token"},
		{http.MethodGet, "/api/v1/me", ""},
		{http.MethodGet, "/api/v1/transactions?kind=income", ""},
	} {
		w := s.do(tc.method, tc.path, tc.token, nil)
		s.Equal(http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func (s *APITestSuite) TestAliceScenario() {
	token := s.registerAndLogin("alice", "pw123")

	w := s.do(http.MethodPost, "/api/v1/income", token, map[string]any{"amount": 1000, "category": "Salary", "date": "2024-01-01"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created dto.CreatedResponse
	s.decode(w, &created)
	s.Positive(created.ID)

	w = s.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{"amount": "250", "category": "Rent", "date": "2024-01-02", "description": "January"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/expenses", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListTransactionsResponse
	s.decode(w, &list)
	s.Require().Len(list.Transactions, 1)
	s.Equal("Rent", list.Transactions[0].Category)
	s.Equal("2024-01-02", list.Transactions[0].Date)
	s.Equal("January", list.Transactions[0].Description)

	w = s.do(http.MethodGet, "/api/v1/summary", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var summary dto.SummaryResponse
	s.decode(w, &summary)
	s.Equal("1000", summary.TotalIncome.String())
	s.Equal("250", summary.TotalExpenses.String())
	s.Require().NotNil(summary.Surplus)
	s.Equal("750", summary.Surplus.String())
	s.Require().Len(summary.IncomeByCategory, 1)
	s.Equal("Salary", summary.IncomeByCategory[0].Category)

	w = s.do(http.MethodDelete, "/api/v1/ledger", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var cleared dto.ClearLedgerResponse
	s.decode(w, &cleared)
	s.Equal(dto.ClearLedgerResponse{IncomeRemoved: 1, ExpensesRemoved: 1}, cleared)

	w = s.do(http.MethodGet, "/api/v1/summary", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "surplus")
}

func (s *APITestSuite) TestMe() {
	token := s.registerAndLogin("alice", "pw123")

	w := s.do(http.MethodGet, "/api/v1/me", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.NotContains(w.Body.String(), "pw123")
	s.NotContains(w.Body.String(), "$2a$")

	var me dto.UserResponse
	s.decode(w, &me)
	s.Equal("alice", me.Username)
	s.Require().NotNil(me.CreatedAt)
	s.WithinDuration(time.Now(), *me.CreatedAt, time.Minute)
}

func (s *APITestSuite) TestTransactionsByKind() {
	token := s.registerAndLogin("alice", "pw123")
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/income", token, map[string]any{"amount": "0.12345", "category": "Interest"}).Code)
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/expenses", token, map[string]any{"amount": 9, "category": "Food"}).Code)

	for _, kind := range []string{"income", "INCOME"} {
		w := s.do(http.MethodGet, "/api/v1/transactions?kind="+kind, token, nil)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var list dto.ListTransactionsResponse
		s.decode(w, &list)
		s.Require().Len(list.Transactions, 1)
		s.Equal("Interest", list.Transactions[0].Category)
		s.Equal("0.12345", list.Transactions[0].Amount.String())
	}

	for _, kind := range []string{"expense", "expenses"} {
		var list dto.ListTransactionsResponse
		s.decode(s.do(http.MethodGet, "/api/v1/transactions?kind="+kind, token, nil), &list)
		s.Require().Len(list.Transactions, 1)
		s.Equal("Food", list.Transactions[0].Category)
	}

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/transactions?kind=transfer", token, nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/transactions", token, nil).Code)
}

func (s *APITestSuite) TestOwnerIsolation() {
	alice := s.registerAndLogin("alice", "pw-a")
	bob := s.registerAndLogin("bob", "pw-b")

	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/income", alice, map[string]any{"amount": 100, "category": "Gift"}).Code)
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/income", bob, map[string]any{"amount": 100, "category": "Gift"}).Code)

	var list dto.ListTransactionsResponse
	s.decode(s.do(http.MethodGet, "/api/v1/income", alice, nil), &list)
	s.Len(list.Transactions, 1)

	s.Require().Equal(http.StatusOK, s.do(http.MethodDelete, "/api/v1/ledger", bob, nil).Code)

	s.decode(s.do(http.MethodGet, "/api/v1/income", alice, nil), &list)
	s.Len(list.Transactions, 1)
}

func (s *APITestSuite) TestCreate_Validation() {
	token := s.registerAndLogin("alice", "pw123")

	for name, body := range map[string]map[string]any{
		"missing amount":   {"category": "Salary"},
		"missing category": {"amount": 10},
		"negative amount":  {"amount": -1, "category": "Salary"},
		"bad date":         {"amount": 1, "category": "Salary", "date": "01/02/2024"},
	} {
		w := s.do(http.MethodPost, "/api/v1/income", token, body)
		s.Equal(http.StatusBadRequest, w.Code, name)
	}

	var list dto.ListTransactionsResponse
	s.decode(s.do(http.MethodGet, "/api/v1/income", token, nil), &list)
	s.NotNil(list.Transactions)
	s.Empty(list.Transactions)
}

func (s *APITestSuite) TestSummary_CustomPeriod() {
	token := s.registerAndLogin("alice", "pw123")
	s.do(http.MethodPost, "/api/v1/income", token, map[string]any{"amount": 10, "category": "A", "date": "2024-01-15"})
	s.do(http.MethodPost, "/api/v1/income", token, map[string]any{"amount": 20, "category": "A", "date": "2024-02-15"})

	w := s.do(http.MethodGet, "/api/v1/summary?period=custom&from=2024-02-01&to=2024-02-29", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var summary dto.SummaryResponse
	s.decode(w, &summary)
	s.Equal("20", summary.TotalIncome.String())
	s.Equal("2024-02-01", summary.From)
	s.Equal("2024-02-29", summary.To)

	w = s.do(http.MethodGet, "/api/v1/summary?period=custom&from=2024-03-01&to=2024-02-01", token, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/summary?period=decade", token, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestExpiredTokenRejected() {
	cfg := *s.cfg
	cfg.JWTExpiryDuration = -time.Minute
	s.router = s.newRouter(&cfg)

	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Username: "alice", Password: "pw"}).Code)
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "pw"})
	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	s.decode(w, &resp)

	w = s.do(http.MethodGet, "/api/v1/income", resp.Token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "expired")
}
