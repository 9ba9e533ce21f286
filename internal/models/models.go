package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the write model persisted in PostgreSQL. ID is the numeric
// surrogate key assigned by the database; TransactionID is the external
// identifier clients use. Both survive a full replace.
type Transaction struct {
	ID                int64             `json:"-"`
	TransactionID     string            `json:"transactionId"`
	FromAccountID     string            `json:"fromAccountId,omitempty"`
	ToAccountID       string            `json:"toAccountId,omitempty"`
	FromAccountNumber string            `json:"fromAccountNumber"`
	ToAccountNumber   string            `json:"toAccountNumber"`
	TransactionType   TransactionType   `json:"transactionType"`
	Amount            decimal.Decimal   `json:"amount"`
	Currency          Currency          `json:"currency"`
	Description       string            `json:"description,omitempty"`
	Status            TransactionStatus `json:"status"`
	FailureReason     string            `json:"failureReason,omitempty"`
	InitiatedAt       time.Time         `json:"initiatedTimestamp"`
	CompletedAt       *time.Time        `json:"completedTimestamp,omitempty"`
	FailedAt          *time.Time        `json:"failedTimestamp,omitempty"`
}

// Account is the shape the account service returns for a single account.
type Account struct {
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	AccountNumber string `json:"accountNumber"`
}

// NotificationCreate is the payload posted to the notification service.
type NotificationCreate struct {
	RecipientID    string `json:"recipientId"`
	RecipientEmail string `json:"recipientEmail"`
	RecipientPhone string `json:"recipientPhone"`
	Channel        string `json:"channel"`
	Event          string `json:"event"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	Priority       string `json:"priority"`
}

// Notification is the delivery record returned by the notification service.
type Notification struct {
	Message        string `json:"message"`
	DeliveryStatus string `json:"deliveryStatus"`
}
