package cqrs

import (
	"github.com/Andr3icutrei/tw-copy/internal/models"
	"github.com/shopspring/decimal"
)

type CreateTransactionCommand struct {
	FromAccountID     string
	ToAccountID       string
	FromAccountNumber string
	ToAccountNumber   string
	TransactionType   models.TransactionType
	Amount            decimal.Decimal
	Currency          models.Currency
	Description       string
}

// ReplaceTransactionCommand carries every mutable field for a full replace.
// The surrogate id and external transaction id of the existing record are
// always preserved.
type ReplaceTransactionCommand struct {
	TransactionID     string
	FromAccountID     string
	ToAccountID       string
	FromAccountNumber string
	ToAccountNumber   string
	TransactionType   models.TransactionType
	Amount            decimal.Decimal
	Currency          models.Currency
	Description       string
	Status            models.TransactionStatus
	FailureReason     string
}

type CancelTransactionCommand struct {
	TransactionID string
}

type ExecuteTransactionCommand struct {
	TransactionID string
}

type ChangeTransactionTypeCommand struct {
	TransactionID      string
	NewTransactionType models.TransactionType
}

type ChangeTransactionCurrencyCommand struct {
	TransactionID string
	NewCurrency   models.Currency
}
