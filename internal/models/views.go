package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionView is the read model projection cached in Redis and served
// on the query path. It carries everything a client may see, never the
// surrogate key.
type TransactionView struct {
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

// ToView converts the write model to its read projection.
func (t *Transaction) ToView() *TransactionView {
	return &TransactionView{
		TransactionID:     t.TransactionID,
		FromAccountID:     t.FromAccountID,
		ToAccountID:       t.ToAccountID,
		FromAccountNumber: t.FromAccountNumber,
		ToAccountNumber:   t.ToAccountNumber,
		TransactionType:   t.TransactionType,
		Amount:            t.Amount,
		Currency:          t.Currency,
		Description:       t.Description,
		Status:            t.Status,
		FailureReason:     t.FailureReason,
		InitiatedAt:       t.InitiatedAt,
		CompletedAt:       t.CompletedAt,
		FailedAt:          t.FailedAt,
	}
}
