package events

import (
	"time"

	"github.com/Andr3icutrei/tw-copy/internal/models"
	"github.com/shopspring/decimal"
)

// Event types
const (
	TransactionCreated         = "transaction.created"
	TransactionReplaced        = "transaction.replaced"
	TransactionCancelled       = "transaction.cancelled"
	TransactionCompleted       = "transaction.completed"
	TransactionCurrencyChanged = "transaction.currency_changed"

	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"
)

// Stream names
const (
	TransactionEventsStream = "transaction.events"
	AccountEventsStream     = "account.events"
)

// Base event structure
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Transaction events
type TransactionCreatedEvent struct {
	TransactionID     string                 `json:"transactionId"`
	FromAccountNumber string                 `json:"fromAccountNumber"`
	ToAccountNumber   string                 `json:"toAccountNumber"`
	Amount            decimal.Decimal        `json:"amount"`
	Currency          models.Currency        `json:"currency"`
	TransactionType   models.TransactionType `json:"transactionType"`
}

type TransactionReplacedEvent struct {
	TransactionID string                   `json:"transactionId"`
	Status        models.TransactionStatus `json:"status"`
}

type TransactionCancelledEvent struct {
	TransactionID string `json:"transactionId"`
}

type TransactionCompletedEvent struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      models.Currency `json:"currency"`
}

type TransactionCurrencyChangedEvent struct {
	TransactionID string          `json:"transactionId"`
	OldCurrency   models.Currency `json:"oldCurrency"`
	NewCurrency   models.Currency `json:"newCurrency"`
	NewAmount     decimal.Decimal `json:"newAmount"`
}

// Account events consumed from the account service
type AccountUpdatedEvent struct {
	AccountNumber string `json:"accountNumber"`
}

type AccountDeletedEvent struct {
	AccountNumber string `json:"accountNumber"`
}
