package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Andr3icutrei/tw-copy/internal/cqrs"
	"github.com/Andr3icutrei/tw-copy/internal/errs"
	"github.com/Andr3icutrei/tw-copy/internal/events"
	"github.com/Andr3icutrei/tw-copy/internal/models"
	"github.com/Andr3icutrei/tw-copy/internal/utils"
	"github.com/shopspring/decimal"
)

// TransactionStore is the write-side persistence contract.
// FindByTransactionID returns (nil, nil) when no transaction matches.
type TransactionStore interface {
	Insert(transaction *models.Transaction) error
	FindByTransactionID(transactionID string) (*models.Transaction, error)
	Save(transaction *models.Transaction) error
}

// TransactionViewStore is the read-side cache contract.
type TransactionViewStore interface {
	GetByTransactionID(ctx context.Context, transactionID string) (*models.TransactionView, error)
	CacheTransactionView(ctx context.Context, view *models.TransactionView)
}

// AccountLookup resolves account numbers against the account service.
type AccountLookup interface {
	FetchAccount(ctx context.Context, accountNumber string) (*models.Account, error)
}

// NotificationSender dispatches messages through the notification service.
type NotificationSender interface {
	Send(ctx context.Context, create models.NotificationCreate) (*models.Notification, error)
}

// EventPublisher publishes domain events to a stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// TransactionService owns the transaction lifecycle: creation, lookup, full
// replace, cancellation, execution, type and currency changes, fee
// calculation and the anti-fraud check. Each operation is a synchronous
// read, optional collaborator calls, then a single store write; concurrent
// mutations of the same transaction race at last-write-wins.
type TransactionService struct {
	store     TransactionStore
	views     TransactionViewStore
	accounts  AccountLookup
	notifier  NotificationSender
	publisher EventPublisher
}

func NewTransactionService(
	store TransactionStore,
	views TransactionViewStore,
	accounts AccountLookup,
	notifier NotificationSender,
	publisher EventPublisher,
) *TransactionService {
	return &TransactionService{
		store:     store,
		views:     views,
		accounts:  accounts,
		notifier:  notifier,
		publisher: publisher,
	}
}

// CreateTransaction persists a new PENDING transaction built from the
// command. Currency defaults to RON when the caller leaves it unset.
func (s *TransactionService) CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	transaction := s.buildTransaction(cmd)
	if err := s.store.Insert(transaction); err != nil {
		return nil, err
	}
	s.views.CacheTransactionView(ctx, transaction.ToView())
	s.publish(ctx, events.TransactionCreated, events.TransactionCreatedEvent{
		TransactionID:     transaction.TransactionID,
		FromAccountNumber: transaction.FromAccountNumber,
		ToAccountNumber:   transaction.ToAccountNumber,
		Amount:            transaction.Amount,
		Currency:          transaction.Currency,
		TransactionType:   transaction.TransactionType,
	})
	return transaction, nil
}

// CreateTransactionWithAccountDetails resolves both account numbers against
// the account service before persisting; the stored numbers are the
// canonical ones returned by the lookup. Nothing is persisted when either
// lookup fails.
func (s *TransactionService) CreateTransactionWithAccountDetails(ctx context.Context, cmd cqrs.CreateTransactionCommand) (string, error) {
	fromAccount, err := s.accounts.FetchAccount(ctx, cmd.FromAccountNumber)
	if err != nil {
		return "", err
	}
	toAccount, err := s.accounts.FetchAccount(ctx, cmd.ToAccountNumber)
	if err != nil {
		return "", err
	}

	cmd.FromAccountNumber = fromAccount.AccountNumber
	cmd.ToAccountNumber = toAccount.AccountNumber
	transaction, err := s.CreateTransaction(ctx, cmd)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"Transaction created successfully with account details: customer name %s to %s, transactionId: %s",
		fromAccount.CustomerName, toAccount.CustomerName, transaction.TransactionID,
	), nil
}

// CreateTransactionWithNotification resolves both accounts, notifies the
// destination customer over SMS, then persists the transaction. Any
// collaborator failure aborts before the store write.
func (s *TransactionService) CreateTransactionWithNotification(ctx context.Context, cmd cqrs.CreateTransactionCommand) (string, error) {
	fromAccount, err := s.accounts.FetchAccount(ctx, cmd.FromAccountNumber)
	if err != nil {
		return "", err
	}
	toAccount, err := s.accounts.FetchAccount(ctx, cmd.ToAccountNumber)
	if err != nil {
		return "", err
	}

	notification, err := s.notifier.Send(ctx, models.NotificationCreate{
		RecipientID:    toAccount.CustomerID,
		RecipientEmail: toAccount.CustomerEmail,
		RecipientPhone: toAccount.CustomerPhone,
		Channel:        "SMS",
		Event:          "TRANSACTION_CREATED",
		Subject:        "Transaction Created",
		Body: fmt.Sprintf("Transaction from %s to %s for amount %s was created.",
			fromAccount.CustomerName, toAccount.CustomerName, cmd.Amount),
		Priority: "HIGH",
	})
	if err != nil {
		return "", err
	}

	transaction, err := s.CreateTransaction(ctx, cmd)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"Transaction created successfully with new notification: %s for transactionId: %s",
		notification.Message, transaction.TransactionID,
	), nil
}

// GetTransaction serves a single transaction view from the read store.
func (s *TransactionService) GetTransaction(ctx context.Context, q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	view, err := s.views.GetByTransactionID(ctx, q.TransactionID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, errs.ErrTransactionNotFound
	}
	return view, nil
}

// GetTransactionWithAccountDetails loads a transaction and resolves both of
// its account numbers, returning a confirmation naming the customers.
func (s *TransactionService) GetTransactionWithAccountDetails(ctx context.Context, transactionID string) (string, error) {
	transaction, err := s.findExisting(transactionID)
	if err != nil {
		return "", err
	}

	fromAccount, err := s.accounts.FetchAccount(ctx, transaction.FromAccountNumber)
	if err != nil {
		return "", err
	}
	toAccount, err := s.accounts.FetchAccount(ctx, transaction.ToAccountNumber)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"Transaction fetched successfully with account details: customer name %s to %s, transactionId: %s",
		fromAccount.CustomerName, toAccount.CustomerName, transaction.TransactionID,
	), nil
}

// ReplaceTransaction overwrites every mutable field of an existing
// transaction while preserving its surrogate and external ids.
func (s *TransactionService) ReplaceTransaction(ctx context.Context, cmd cqrs.ReplaceTransactionCommand) error {
	existing, err := s.findExisting(cmd.TransactionID)
	if err != nil {
		return err
	}

	replaced := &models.Transaction{
		ID:                existing.ID,
		TransactionID:     existing.TransactionID,
		FromAccountID:     cmd.FromAccountID,
		ToAccountID:       cmd.ToAccountID,
		FromAccountNumber: cmd.FromAccountNumber,
		ToAccountNumber:   cmd.ToAccountNumber,
		TransactionType:   cmd.TransactionType,
		Amount:            cmd.Amount,
		Currency:          cmd.Currency,
		Description:       cmd.Description,
		Status:            cmd.Status,
		FailureReason:     cmd.FailureReason,
		InitiatedAt:       existing.InitiatedAt,
		CompletedAt:       existing.CompletedAt,
		FailedAt:          existing.FailedAt,
	}
	if err := s.store.Save(replaced); err != nil {
		return err
	}
	s.views.CacheTransactionView(ctx, replaced.ToView())
	s.publish(ctx, events.TransactionReplaced, events.TransactionReplacedEvent{
		TransactionID: replaced.TransactionID,
		Status:        replaced.Status,
	})
	return nil
}

// CancelTransaction marks an existing transaction CANCELLED.
func (s *TransactionService) CancelTransaction(ctx context.Context, cmd cqrs.CancelTransactionCommand) error {
	transaction, err := s.findExisting(cmd.TransactionID)
	if err != nil {
		return err
	}

	transaction.Status = models.StatusCancelled
	if err := s.store.Save(transaction); err != nil {
		return err
	}
	s.views.CacheTransactionView(ctx, transaction.ToView())
	s.publish(ctx, events.TransactionCancelled, events.TransactionCancelledEvent{
		TransactionID: transaction.TransactionID,
	})
	return nil
}

// ExecuteTransaction marks an existing transaction COMPLETED. Moving funds
// between the accounts is deliberately not implemented here.
func (s *TransactionService) ExecuteTransaction(ctx context.Context, cmd cqrs.ExecuteTransactionCommand) error {
	transaction, err := s.findExisting(cmd.TransactionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	transaction.Status = models.StatusCompleted
	transaction.CompletedAt = &now
	if err := s.store.Save(transaction); err != nil {
		return err
	}
	s.views.CacheTransactionView(ctx, transaction.ToView())
	s.publish(ctx, events.TransactionCompleted, events.TransactionCompletedEvent{
		TransactionID: transaction.TransactionID,
		Amount:        transaction.Amount,
		Currency:      transaction.Currency,
	})
	return nil
}

// ChangeTransactionType overwrites the type of an existing transaction.
func (s *TransactionService) ChangeTransactionType(ctx context.Context, cmd cqrs.ChangeTransactionTypeCommand) error {
	transaction, err := s.findExisting(cmd.TransactionID)
	if err != nil {
		return err
	}

	transaction.TransactionType = cmd.NewTransactionType
	if err := s.store.Save(transaction); err != nil {
		return err
	}
	s.views.CacheTransactionView(ctx, transaction.ToView())
	return nil
}

// ChangeTransactionCurrency converts the amount into the new currency using
// the fixed weight table and persists both new values.
func (s *TransactionService) ChangeTransactionCurrency(ctx context.Context, cmd cqrs.ChangeTransactionCurrencyCommand) (*cqrs.CurrencyChangeResult, error) {
	transaction, err := s.findExisting(cmd.TransactionID)
	if err != nil {
		return nil, err
	}

	previousCurrency := transaction.Currency
	newAmount := models.ConvertCurrency(transaction.Amount, previousCurrency, cmd.NewCurrency)
	transaction.Currency = cmd.NewCurrency
	transaction.Amount = newAmount
	if err := s.store.Save(transaction); err != nil {
		return nil, err
	}
	s.views.CacheTransactionView(ctx, transaction.ToView())
	s.publish(ctx, events.TransactionCurrencyChanged, events.TransactionCurrencyChangedEvent{
		TransactionID: transaction.TransactionID,
		OldCurrency:   previousCurrency,
		NewCurrency:   cmd.NewCurrency,
		NewAmount:     newAmount,
	})

	return &cqrs.CurrencyChangeResult{
		TransactionID: transaction.TransactionID,
		NewCurrency:   cmd.NewCurrency,
		NewAmount:     newAmount,
	}, nil
}

// CalculateTransactionFee returns the fee owed for an existing transaction
// according to the per-type schedule.
func (s *TransactionService) CalculateTransactionFee(ctx context.Context, transactionID string) (decimal.Decimal, error) {
	transaction, err := s.findExisting(transactionID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return models.FeeFor(transaction.TransactionType, transaction.Amount), nil
}

// AntiFraudCheck scores an existing COMPLETED transaction by amount bucket.
// Non-COMPLETED transactions are rejected with ErrNotCompleted.
func (s *TransactionService) AntiFraudCheck(ctx context.Context, transactionID string) (decimal.Decimal, error) {
	transaction, err := s.findExisting(transactionID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if transaction.Status != models.StatusCompleted {
		return decimal.Decimal{}, errs.ErrNotCompleted
	}
	return models.RiskScore(transaction), nil
}

func (s *TransactionService) buildTransaction(cmd cqrs.CreateTransactionCommand) *models.Transaction {
	currency := cmd.Currency
	if currency == "" {
		currency = models.RON
	}
	return &models.Transaction{
		TransactionID:     utils.GenerateTransactionID(),
		FromAccountID:     cmd.FromAccountID,
		ToAccountID:       cmd.ToAccountID,
		FromAccountNumber: cmd.FromAccountNumber,
		ToAccountNumber:   cmd.ToAccountNumber,
		TransactionType:   cmd.TransactionType,
		Amount:            cmd.Amount,
		Currency:          currency,
		Description:       cmd.Description,
		Status:            models.StatusPending,
		InitiatedAt:       time.Now().UTC(),
	}
}

func (s *TransactionService) findExisting(transactionID string) (*models.Transaction, error) {
	transaction, err := s.store.FindByTransactionID(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, errs.ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *TransactionService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
