package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Andr3icutrei/tw-copy/internal/models"
)

// TransactionRepository handles all state-mutating operations for
// transactions. It operates exclusively against the PostgreSQL write store
// (source of truth).
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Insert persists a new transaction and fills in its surrogate key.
func (r *TransactionRepository) Insert(transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, from_account_id, to_account_id,
			from_account_number, to_account_number, transaction_type,
			amount, currency, description, status, failure_reason,
			initiated_at, completed_at, failed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err := r.db.QueryRow(query,
		transaction.TransactionID,
		nullString(transaction.FromAccountID), nullString(transaction.ToAccountID),
		transaction.FromAccountNumber, transaction.ToAccountNumber,
		string(transaction.TransactionType), transaction.Amount,
		string(transaction.Currency), nullString(transaction.Description),
		string(transaction.Status), nullString(transaction.FailureReason),
		transaction.InitiatedAt, nullTime(transaction.CompletedAt), nullTime(transaction.FailedAt),
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// FindByTransactionID returns the transaction with the given external id,
// or (nil, nil) if no such row exists.
func (r *TransactionRepository) FindByTransactionID(transactionID string) (*models.Transaction, error) {
	query := `
		SELECT id, transaction_id, from_account_id, to_account_id,
		       from_account_number, to_account_number, transaction_type,
		       amount, currency, description, status, failure_reason,
		       initiated_at, completed_at, failed_at
		FROM transactions
		WHERE transaction_id = $1
	`
	transaction, err := scanTransaction(r.db.QueryRow(query, transactionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return transaction, nil
}

// Save overwrites every mutable column of an existing transaction, keyed by
// its surrogate id.
func (r *TransactionRepository) Save(transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET from_account_id = $1, to_account_id = $2,
		    from_account_number = $3, to_account_number = $4,
		    transaction_type = $5, amount = $6, currency = $7,
		    description = $8, status = $9, failure_reason = $10,
		    completed_at = $11, failed_at = $12
		WHERE id = $13
	`
	_, err := r.db.Exec(query,
		nullString(transaction.FromAccountID), nullString(transaction.ToAccountID),
		transaction.FromAccountNumber, transaction.ToAccountNumber,
		string(transaction.TransactionType), transaction.Amount,
		string(transaction.Currency), nullString(transaction.Description),
		string(transaction.Status), nullString(transaction.FailureReason),
		nullTime(transaction.CompletedAt), nullTime(transaction.FailedAt),
		transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		t                           models.Transaction
		txType, currency, status    string
		fromID, toID, desc, failure sql.NullString
		completedAt, failedAt       sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.TransactionID, &fromID, &toID,
		&t.FromAccountNumber, &t.ToAccountNumber, &txType,
		&t.Amount, &currency, &desc, &status, &failure,
		&t.InitiatedAt, &completedAt, &failedAt,
	)
	if err != nil {
		return nil, err
	}
	t.TransactionType = models.TransactionType(txType)
	t.Currency = models.Currency(currency)
	t.Status = models.TransactionStatus(status)
	t.FromAccountID = fromID.String
	t.ToAccountID = toID.String
	t.Description = desc.String
	t.FailureReason = failure.String
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	if failedAt.Valid {
		t.FailedAt = &failedAt.Time
	}
	return &t, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
