package models

import "fmt"

type TransactionType string

const (
	TypeTransfer   TransactionType = "TRANSFER"
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypePayment    TransactionType = "PAYMENT"
)

// ParseTransactionType validates a raw string against the closed type set.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeTransfer, TypeDeposit, TypeWithdrawal, TypePayment:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type: %q", s)
}

type TransactionStatus string

// FAILED has no dedicated transition; it is only reachable through a full
// replace that carries the status explicitly.
const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// ParseTransactionStatus validates a raw string against the closed status set.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return TransactionStatus(s), nil
	}
	return "", fmt.Errorf("unknown transaction status: %q", s)
}

type Currency string

const (
	RON Currency = "RON"
	EUR Currency = "EUR"
	USD Currency = "USD"
)

// currencyWeights is the closed conversion table. These are fixed ratio
// weights, not market exchange rates; adding a currency means adding a row.
var currencyWeights = map[Currency]int64{
	RON: 1,
	USD: 4,
	EUR: 5,
}

// Weight returns the fixed conversion weight for the currency.
func (c Currency) Weight() int64 {
	return currencyWeights[c]
}

// ParseCurrency validates a raw string against the closed currency set.
func ParseCurrency(s string) (Currency, error) {
	if _, ok := currencyWeights[Currency(s)]; !ok {
		return "", fmt.Errorf("unknown currency: %q", s)
	}
	return Currency(s), nil
}
