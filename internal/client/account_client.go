package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Andr3icutrei/tw-copy/internal/errs"
	"github.com/Andr3icutrei/tw-copy/internal/events"
	"github.com/Andr3icutrei/tw-copy/internal/models"
	sharedredis "github.com/Andr3icutrei/tw-copy/internal/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

const accountCacheKeyPrefix = "account:lookup:"

// AccountClient fetches account details from the account service. Responses
// are cached in Redis for a short window; the account-events subscriber
// drops cached entries when the account service announces a change.
type AccountClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	cache   *sharedredis.ViewCache[models.Account]
}

func NewAccountClient(baseURL string, redisClient *goredis.Client) *AccountClient {
	return &AccountClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		breaker: newBreaker("account-service"),
		cache:   sharedredis.NewViewCache[models.Account](redisClient, 5*time.Minute),
	}
}

// FetchAccount resolves an account number to its canonical account record.
// Any transport error, non-2xx status or open breaker surfaces as a
// DependencyError carrying the cause.
func (c *AccountClient) FetchAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	cacheKey := accountCacheKeyPrefix + accountNumber
	if account, ok := c.cache.Get(ctx, cacheKey); ok {
		return account, nil
	}

	result, err := c.breaker.Execute(func() (any, error) {
		url := fmt.Sprintf("%s/v1/accounts/%s", c.baseURL, accountNumber)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("account service returned status %d for account %s", resp.StatusCode, accountNumber)
		}

		var account models.Account
		if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
			return nil, fmt.Errorf("failed to decode account response: %w", err)
		}
		return &account, nil
	})
	if err != nil {
		return nil, errs.Dependency("account", err)
	}

	account := result.(*models.Account)
	c.cache.Set(ctx, cacheKey, account)
	return account, nil
}

// HandleAccountEvent drops cached lookups for accounts the account service
// reports as updated or deleted. Wired as the account-events stream handler.
func (c *AccountClient) HandleAccountEvent(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.AccountUpdated, events.AccountDeleted:
	default:
		return nil
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to re-marshal event data: %w", err)
	}
	var payload events.AccountUpdatedEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal account event: %w", err)
	}
	if payload.AccountNumber == "" {
		return fmt.Errorf("account event %s has no account number", event.ID)
	}

	c.cache.Delete(ctx, accountCacheKeyPrefix+payload.AccountNumber)
	return nil
}
