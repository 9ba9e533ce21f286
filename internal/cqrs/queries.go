package cqrs

import (
	"github.com/Andr3icutrei/tw-copy/internal/models"
	"github.com/shopspring/decimal"
)

// GetTransactionQuery fetches a single transaction by its external id.
type GetTransactionQuery struct {
	TransactionID string
}

// CurrencyChangeResult reports the outcome of a currency change.
type CurrencyChangeResult struct {
	TransactionID string          `json:"transactionId"`
	NewCurrency   models.Currency `json:"newCurrency"`
	NewAmount     decimal.Decimal `json:"newAmount"`
}
