package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Andr3icutrei/tw-copy/internal/models"
	sharedredis "github.com/Andr3icutrei/tw-copy/internal/redis"
	goredis "github.com/redis/go-redis/v9"
)

const transactionViewKeyPrefix = "transaction:view:"

// TransactionReadRepository serves transaction views. It uses Redis as the
// primary read store, falling back to PostgreSQL on a miss.
type TransactionReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.TransactionView]
}

func NewTransactionReadRepository(db *sql.DB, redisClient *goredis.Client) *TransactionReadRepository {
	return &TransactionReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.TransactionView](redisClient, 0),
	}
}

// GetByTransactionID returns a TransactionView by attempting Redis first,
// then PostgreSQL. Returns (nil, nil) when the transaction does not exist.
func (r *TransactionReadRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.TransactionView, error) {
	cacheKey := transactionViewKeyPrefix + transactionID
	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	// Fallback: PostgreSQL
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
		return nil, fmt.Errorf("failed to get transaction view: %w", err)
	}

	view := transaction.ToView()

	// Warm the cache
	r.CacheTransactionView(ctx, view)
	return view, nil
}

// CacheTransactionView stores the read model for a transaction in Redis.
// Called by the command side immediately after a successful write.
func (r *TransactionReadRepository) CacheTransactionView(ctx context.Context, view *models.TransactionView) {
	r.cache.Set(ctx, transactionViewKeyPrefix+view.TransactionID, view)
}
