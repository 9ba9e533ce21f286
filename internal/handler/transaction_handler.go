package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Andr3icutrei/tw-copy/internal/cqrs"
	"github.com/Andr3icutrei/tw-copy/internal/errs"
	"github.com/Andr3icutrei/tw-copy/internal/middleware"
	"github.com/Andr3icutrei/tw-copy/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error)
	CreateTransactionWithAccountDetails(ctx context.Context, cmd cqrs.CreateTransactionCommand) (string, error)
	CreateTransactionWithNotification(ctx context.Context, cmd cqrs.CreateTransactionCommand) (string, error)
	ReplaceTransaction(ctx context.Context, cmd cqrs.ReplaceTransactionCommand) error
	CancelTransaction(ctx context.Context, cmd cqrs.CancelTransactionCommand) error
	ExecuteTransaction(ctx context.Context, cmd cqrs.ExecuteTransactionCommand) error
	ChangeTransactionType(ctx context.Context, cmd cqrs.ChangeTransactionTypeCommand) error
	ChangeTransactionCurrency(ctx context.Context, cmd cqrs.ChangeTransactionCurrencyCommand) (*cqrs.CurrencyChangeResult, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	GetTransaction(ctx context.Context, q cqrs.GetTransactionQuery) (*models.TransactionView, error)
	GetTransactionWithAccountDetails(ctx context.Context, transactionID string) (string, error)
	CalculateTransactionFee(ctx context.Context, transactionID string) (decimal.Decimal, error)
	AntiFraudCheck(ctx context.Context, transactionID string) (decimal.Decimal, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

type CreateTransactionRequest struct {
	FromAccountID     string          `json:"fromAccountId"`
	ToAccountID       string          `json:"toAccountId"`
	FromAccountNumber string          `json:"fromAccountNumber" validate:"required"`
	ToAccountNumber   string          `json:"toAccountNumber" validate:"required"`
	TransactionType   string          `json:"transactionType" validate:"required,oneof=TRANSFER DEPOSIT WITHDRAWAL PAYMENT"`
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	Currency          string          `json:"currency" validate:"omitempty,oneof=RON EUR USD"`
	Description       string          `json:"description"`
}

type ReplaceTransactionRequest struct {
	FromAccountID     string          `json:"fromAccountId"`
	ToAccountID       string          `json:"toAccountId"`
	FromAccountNumber string          `json:"fromAccountNumber" validate:"required"`
	ToAccountNumber   string          `json:"toAccountNumber" validate:"required"`
	TransactionType   string          `json:"transactionType" validate:"required,oneof=TRANSFER DEPOSIT WITHDRAWAL PAYMENT"`
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	Currency          string          `json:"currency" validate:"required,oneof=RON EUR USD"`
	Description       string          `json:"description"`
	Status            string          `json:"status" validate:"required,oneof=PENDING COMPLETED FAILED CANCELLED"`
	FailureReason     string          `json:"failureReason"`
}

type ChangeTransactionTypeRequest struct {
	TransactionType string `json:"transactionType" validate:"required,oneof=TRANSFER DEPOSIT WITHDRAWAL PAYMENT"`
}

type ChangeTransactionCurrencyRequest struct {
	Currency string `json:"currency" validate:"required,oneof=RON EUR USD"`
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	cmd, ok := h.bindCreate(c)
	if !ok {
		return
	}

	transaction, err := h.commands.CreateTransaction(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) CreateTransactionWithAccountDetails(c *gin.Context) {
	cmd, ok := h.bindCreate(c)
	if !ok {
		return
	}

	confirmation, err := h.commands.CreateTransactionWithAccountDetails(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": confirmation})
}

func (h *TransactionHandler) CreateTransactionWithNotification(c *gin.Context) {
	cmd, ok := h.bindCreate(c)
	if !ok {
		return
	}

	confirmation, err := h.commands.CreateTransactionWithNotification(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": confirmation})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	view, err := h.queries.GetTransaction(c.Request.Context(), cqrs.GetTransactionQuery{
		TransactionID: c.Param("transactionId"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TransactionHandler) GetTransactionWithAccountDetails(c *gin.Context) {
	confirmation, err := h.queries.GetTransactionWithAccountDetails(c.Request.Context(), c.Param("transactionId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": confirmation})
}

func (h *TransactionHandler) ReplaceTransaction(c *gin.Context) {
	var req ReplaceTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	err := h.commands.ReplaceTransaction(c.Request.Context(), cqrs.ReplaceTransactionCommand{
		TransactionID:     c.Param("transactionId"),
		FromAccountID:     req.FromAccountID,
		ToAccountID:       req.ToAccountID,
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		TransactionType:   models.TransactionType(req.TransactionType),
		Amount:            req.Amount,
		Currency:          models.Currency(req.Currency),
		Description:       req.Description,
		Status:            models.TransactionStatus(req.Status),
		FailureReason:     req.FailureReason,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction replaced"})
}

func (h *TransactionHandler) CancelTransaction(c *gin.Context) {
	err := h.commands.CancelTransaction(c.Request.Context(), cqrs.CancelTransactionCommand{
		TransactionID: c.Param("transactionId"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction cancelled"})
}

func (h *TransactionHandler) ExecuteTransaction(c *gin.Context) {
	err := h.commands.ExecuteTransaction(c.Request.Context(), cqrs.ExecuteTransactionCommand{
		TransactionID: c.Param("transactionId"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction executed"})
}

func (h *TransactionHandler) ChangeTransactionType(c *gin.Context) {
	var req ChangeTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	err := h.commands.ChangeTransactionType(c.Request.Context(), cqrs.ChangeTransactionTypeCommand{
		TransactionID:      c.Param("transactionId"),
		NewTransactionType: models.TransactionType(req.TransactionType),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction type updated"})
}

func (h *TransactionHandler) ChangeTransactionCurrency(c *gin.Context) {
	var req ChangeTransactionCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.commands.ChangeTransactionCurrency(c.Request.Context(), cqrs.ChangeTransactionCurrencyCommand{
		TransactionID: c.Param("transactionId"),
		NewCurrency:   models.Currency(req.Currency),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TransactionHandler) CalculateTransactionFee(c *gin.Context) {
	transactionID := c.Param("transactionId")
	fee, err := h.queries.CalculateTransactionFee(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactionId": transactionID, "fee": fee})
}

func (h *TransactionHandler) AntiFraudCheck(c *gin.Context) {
	transactionID := c.Param("transactionId")
	score, err := h.queries.AntiFraudCheck(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactionId": transactionID, "riskScore": score})
}

func (h *TransactionHandler) bindCreate(c *gin.Context) (cqrs.CreateTransactionCommand, bool) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return cqrs.CreateTransactionCommand{}, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return cqrs.CreateTransactionCommand{}, false
	}

	return cqrs.CreateTransactionCommand{
		FromAccountID:     req.FromAccountID,
		ToAccountID:       req.ToAccountID,
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		TransactionType:   models.TransactionType(req.TransactionType),
		Amount:            req.Amount,
		Currency:          models.Currency(req.Currency),
		Description:       req.Description,
	}, true
}

func respondServiceError(c *gin.Context, err error) {
	var depErr *errs.DependencyError
	switch {
	case errors.Is(err, errs.ErrTransactionNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, errs.ErrNotCompleted):
		middleware.RespondWithError(c, http.StatusConflict, "Transaction is not completed")
	case errors.As(err, &depErr):
		middleware.RespondWithError(c, http.StatusBadGateway, depErr.Error())
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
