package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Andr3icutrei/tw-copy/internal/cqrs"
	"github.com/Andr3icutrei/tw-copy/internal/errs"
	"github.com/Andr3icutrei/tw-copy/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ---- mock implementations ----

type mockTransactionCommander struct {
	createFn            func(cqrs.CreateTransactionCommand) (*models.Transaction, error)
	createWithDetailsFn func(cqrs.CreateTransactionCommand) (string, error)
	createWithNotifyFn  func(cqrs.CreateTransactionCommand) (string, error)
	replaceFn           func(cqrs.ReplaceTransactionCommand) error
	cancelFn            func(cqrs.CancelTransactionCommand) error
	executeFn           func(cqrs.ExecuteTransactionCommand) error
	changeTypeFn        func(cqrs.ChangeTransactionTypeCommand) error
	changeCurrencyFn    func(cqrs.ChangeTransactionCurrencyCommand) (*cqrs.CurrencyChangeResult, error)
}

func (m *mockTransactionCommander) CreateTransaction(_ context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) CreateTransactionWithAccountDetails(_ context.Context, cmd cqrs.CreateTransactionCommand) (string, error) {
	if m.createWithDetailsFn != nil {
		return m.createWithDetailsFn(cmd)
	}
	return "", fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) CreateTransactionWithNotification(_ context.Context, cmd cqrs.CreateTransactionCommand) (string, error) {
	if m.createWithNotifyFn != nil {
		return m.createWithNotifyFn(cmd)
	}
	return "", fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) ReplaceTransaction(_ context.Context, cmd cqrs.ReplaceTransactionCommand) error {
	if m.replaceFn != nil {
		return m.replaceFn(cmd)
	}
	return fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) CancelTransaction(_ context.Context, cmd cqrs.CancelTransactionCommand) error {
	if m.cancelFn != nil {
		return m.cancelFn(cmd)
	}
	return fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) ExecuteTransaction(_ context.Context, cmd cqrs.ExecuteTransactionCommand) error {
	if m.executeFn != nil {
		return m.executeFn(cmd)
	}
	return fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) ChangeTransactionType(_ context.Context, cmd cqrs.ChangeTransactionTypeCommand) error {
	if m.changeTypeFn != nil {
		return m.changeTypeFn(cmd)
	}
	return fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) ChangeTransactionCurrency(_ context.Context, cmd cqrs.ChangeTransactionCurrencyCommand) (*cqrs.CurrencyChangeResult, error) {
	if m.changeCurrencyFn != nil {
		return m.changeCurrencyFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockTransactionQuerier struct {
	getFn            func(cqrs.GetTransactionQuery) (*models.TransactionView, error)
	getWithDetailsFn func(string) (string, error)
	feeFn            func(string) (decimal.Decimal, error)
	antiFraudFn      func(string) (decimal.Decimal, error)
}

func (m *mockTransactionQuerier) GetTransaction(_ context.Context, q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionQuerier) GetTransactionWithAccountDetails(_ context.Context, transactionID string) (string, error) {
	if m.getWithDetailsFn != nil {
		return m.getWithDetailsFn(transactionID)
	}
	return "", fmt.Errorf("not configured")
}

func (m *mockTransactionQuerier) CalculateTransactionFee(_ context.Context, transactionID string) (decimal.Decimal, error) {
	if m.feeFn != nil {
		return m.feeFn(transactionID)
	}
	return decimal.Decimal{}, fmt.Errorf("not configured")
}

func (m *mockTransactionQuerier) AntiFraudCheck(_ context.Context, transactionID string) (decimal.Decimal, error) {
	if m.antiFraudFn != nil {
		return m.antiFraudFn(transactionID)
	}
	return decimal.Decimal{}, fmt.Errorf("not configured")
}

// ---- helpers ----

func newTxTestRouter(cmds TransactionCommander, qrys TransactionQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTransactionHandler(cmds, qrys)
	v1 := r.Group("/v1/transactions")
	v1.POST("", h.CreateTransaction)
	v1.POST("/with-account-details", h.CreateTransactionWithAccountDetails)
	v1.POST("/with-notification", h.CreateTransactionWithNotification)
	v1.GET("/:transactionId", h.GetTransaction)
	v1.GET("/:transactionId/with-account-details", h.GetTransactionWithAccountDetails)
	v1.PUT("/:transactionId", h.ReplaceTransaction)
	v1.DELETE("/:transactionId", h.CancelTransaction)
	v1.PATCH("/:transactionId/type", h.ChangeTransactionType)
	v1.PATCH("/:transactionId/currency", h.ChangeTransactionCurrency)
	v1.PATCH("/:transactionId/execute", h.ExecuteTransaction)
	v1.GET("/:transactionId/fee", h.CalculateTransactionFee)
	v1.GET("/:transactionId/anti-fraud", h.AntiFraudCheck)
	return r
}

func txDoRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validCreateBody() map[string]any {
	return map[string]any{
		"fromAccountNumber": "1111111111",
		"toAccountNumber":   "2222222222",
		"transactionType":   "TRANSFER",
		"amount":            "100.00",
		"currency":          "RON",
	}
}

// ---- tests ----

func TestCreateTransactionReturns201(t *testing.T) {
	cmds := &mockTransactionCommander{
		createFn: func(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
			return &models.Transaction{
				TransactionID:   "trx-abc",
				TransactionType: cmd.TransactionType,
				Amount:          cmd.Amount,
				Currency:        cmd.Currency,
				Status:          models.StatusPending,
			}, nil
		},
	}
	router := newTxTestRouter(cmds, &mockTransactionQuerier{})

	w := txDoRequest(router, http.MethodPost, "/v1/transactions", validCreateBody())

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.Transaction
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.TransactionID != "trx-abc" {
		t.Errorf("expected transaction id trx-abc, got %s", resp.TransactionID)
	}
	if resp.Status != models.StatusPending {
		t.Errorf("expected status PENDING, got %s", resp.Status)
	}
}

func TestCreateTransactionRejectsUnknownType(t *testing.T) {
	router := newTxTestRouter(&mockTransactionCommander{}, &mockTransactionQuerier{})

	body := validCreateBody()
	body["transactionType"] = "WIRE"
	w := txDoRequest(router, http.MethodPost, "/v1/transactions", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateTransactionRejectsMissingAccounts(t *testing.T) {
	router := newTxTestRouter(&mockTransactionCommander{}, &mockTransactionQuerier{})

	body := validCreateBody()
	delete(body, "fromAccountNumber")
	w := txDoRequest(router, http.MethodPost, "/v1/transactions", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateWithAccountDetailsDependencyFailure(t *testing.T) {
	cmds := &mockTransactionCommander{
		createWithDetailsFn: func(cqrs.CreateTransactionCommand) (string, error) {
			return "", errs.Dependency("account", fmt.Errorf("connection refused"))
		},
	}
	router := newTxTestRouter(cmds, &mockTransactionQuerier{})

	w := txDoRequest(router, http.MethodPost, "/v1/transactions/with-account-details", validCreateBody())

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "connection refused") {
		t.Errorf("expected cause in response, got %s", w.Body.String())
	}
}

func TestCreateWithNotificationReturnsConfirmation(t *testing.T) {
	cmds := &mockTransactionCommander{
		createWithNotifyFn: func(cqrs.CreateTransactionCommand) (string, error) {
			return "Transaction created successfully with new notification: hello for transactionId: trx-abc", nil
		},
	}
	router := newTxTestRouter(cmds, &mockTransactionQuerier{})

	w := txDoRequest(router, http.MethodPost, "/v1/transactions/with-notification", validCreateBody())

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "trx-abc") {
		t.Errorf("expected confirmation in response, got %s", w.Body.String())
	}
}

func TestGetTransactionNotFoundMapsTo404(t *testing.T) {
	qrys := &mockTransactionQuerier{
		getFn: func(cqrs.GetTransactionQuery) (*models.TransactionView, error) {
			return nil, errs.ErrTransactionNotFound
		},
	}
	router := newTxTestRouter(&mockTransactionCommander{}, qrys)

	w := txDoRequest(router, http.MethodGet, "/v1/transactions/trx-missing", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetTransactionReturnsView(t *testing.T) {
	qrys := &mockTransactionQuerier{
		getFn: func(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
			return &models.TransactionView{
				TransactionID: q.TransactionID,
				Status:        models.StatusCancelled,
			}, nil
		},
	}
	router := newTxTestRouter(&mockTransactionCommander{}, qrys)

	w := txDoRequest(router, http.MethodGet, "/v1/transactions/trx-1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"CANCELLED"`) {
		t.Errorf("expected cancelled status, got %s", w.Body.String())
	}
}

func TestReplaceTransactionNotFoundMapsTo404(t *testing.T) {
	cmds := &mockTransactionCommander{
		replaceFn: func(cqrs.ReplaceTransactionCommand) error {
			return errs.ErrTransactionNotFound
		},
	}
	router := newTxTestRouter(cmds, &mockTransactionQuerier{})

	body := validCreateBody()
	body["status"] = "FAILED"
	body["failureReason"] = "Insufficient funds"
	w := txDoRequest(router, http.MethodPut, "/v1/transactions/trx-missing", body)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestReplaceTransactionRejectsUnknownStatus(t *testing.T) {
	router := newTxTestRouter(&mockTransactionCommander{}, &mockTransactionQuerier{})

	body := validCreateBody()
	body["status"] = "ARCHIVED"
	w := txDoRequest(router, http.MethodPut, "/v1/transactions/trx-1", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCancelTransaction(t *testing.T) {
	var cancelled string
	cmds := &mockTransactionCommander{
		cancelFn: func(cmd cqrs.CancelTransactionCommand) error {
			cancelled = cmd.TransactionID
			return nil
		},
	}
	router := newTxTestRouter(cmds, &mockTransactionQuerier{})

	w := txDoRequest(router, http.MethodDelete, "/v1/transactions/trx-1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cancelled != "trx-1" {
		t.Errorf("expected cancel for trx-1, got %q", cancelled)
	}
}

func TestChangeTransactionCurrencyReturnsResult(t *testing.T) {
	cmds := &mockTransactionCommander{
		changeCurrencyFn: func(cmd cqrs.ChangeTransactionCurrencyCommand) (*cqrs.CurrencyChangeResult, error) {
			return &cqrs.CurrencyChangeResult{
				TransactionID: cmd.TransactionID,
				NewCurrency:   cmd.NewCurrency,
				NewAmount:     decimal.RequireFromString("20"),
			}, nil
		},
	}
	router := newTxTestRouter(cmds, &mockTransactionQuerier{})

	w := txDoRequest(router, http.MethodPatch, "/v1/transactions/trx-1/currency", map[string]any{"currency": "EUR"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"newCurrency":"EUR"`) {
		t.Errorf("expected new currency in response, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"newAmount":"20"`) {
		t.Errorf("expected new amount in response, got %s", w.Body.String())
	}
}

func TestChangeTransactionCurrencyRejectsUnknownCurrency(t *testing.T) {
	router := newTxTestRouter(&mockTransactionCommander{}, &mockTransactionQuerier{})

	w := txDoRequest(router, http.MethodPatch, "/v1/transactions/trx-1/currency", map[string]any{"currency": "GBP"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestExecuteTransaction(t *testing.T) {
	cmds := &mockTransactionCommander{
		executeFn: func(cqrs.ExecuteTransactionCommand) error { return nil },
	}
	router := newTxTestRouter(cmds, &mockTransactionQuerier{})

	w := txDoRequest(router, http.MethodPatch, "/v1/transactions/trx-1/execute", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCalculateFee(t *testing.T) {
	qrys := &mockTransactionQuerier{
		feeFn: func(string) (decimal.Decimal, error) {
			return decimal.RequireFromString("1.50"), nil
		},
	}
	router := newTxTestRouter(&mockTransactionCommander{}, qrys)

	w := txDoRequest(router, http.MethodGet, "/v1/transactions/trx-1/fee", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"fee":"1.5"`) {
		t.Errorf("expected fee in response, got %s", w.Body.String())
	}
}

func TestAntiFraudCheckNotCompletedMapsTo409(t *testing.T) {
	qrys := &mockTransactionQuerier{
		antiFraudFn: func(string) (decimal.Decimal, error) {
			return decimal.Decimal{}, errs.ErrNotCompleted
		},
	}
	router := newTxTestRouter(&mockTransactionCommander{}, qrys)

	w := txDoRequest(router, http.MethodGet, "/v1/transactions/trx-1/anti-fraud", nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestAntiFraudCheckReturnsScore(t *testing.T) {
	qrys := &mockTransactionQuerier{
		antiFraudFn: func(string) (decimal.Decimal, error) {
			return decimal.RequireFromString("0.7"), nil
		},
	}
	router := newTxTestRouter(&mockTransactionCommander{}, qrys)

	w := txDoRequest(router, http.MethodGet, "/v1/transactions/trx-1/anti-fraud", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"riskScore":"0.7"`) {
		t.Errorf("expected risk score in response, got %s", w.Body.String())
	}
}
