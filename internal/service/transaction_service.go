// Package service implements the domain operations on top of a
// storage.Store. Every operation takes the caller's owner identity as
// an explicit parameter, resolved once at the HTTP boundary; nothing
// here reads ambient auth state.
//
// The contract is asymmetric on purpose: mutations fail closed
// (ErrNotAuthenticated / ErrNotFoundOrUnauthorized) while list and
// summary reads fail open, returning empty or zero-valued results to
// an unauthenticated caller.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/finbook/backend/internal/calculator"
	"github.com/finbook/backend/internal/models"
	"github.com/finbook/backend/internal/storage"
)

// TransactionService implements the transaction ledger operations.
type TransactionService struct {
	store storage.TransactionStore
}

// NewTransactionService creates a new TransactionService with the
// given storage backend.
func NewTransactionService(store storage.TransactionStore) *TransactionService {
	return &TransactionService{store: store}
}

// NewTransaction carries the caller-supplied fields of a transaction.
type NewTransaction struct {
	Kind        models.TransactionKind
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        string
}

// Record creates a transaction owned by owner. Beyond the kind being
// one of the four known values, fields are stored as given; the amount
// sign is not checked.
func (s *TransactionService) Record(ctx context.Context, owner string, in NewTransaction) (*models.Transaction, error) {
	if owner == "" {
		return nil, ErrNotAuthenticated
	}
	if _, err := models.ParseTransactionKind(string(in.Kind)); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		UserID:      owner,
		Kind:        in.Kind,
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
	}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		slog.Error("Record transaction failed", "user_id", owner, "error", err)
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	slog.Debug("Transaction recorded", "transaction_id", tx.ID, "user_id", owner, "kind", tx.Kind)
	return tx, nil
}

// List returns the caller's transactions, newest first. An
// unauthenticated caller receives an empty list, never an error.
func (s *TransactionService) List(ctx context.Context, owner string) ([]models.Transaction, error) {
	if owner == "" {
		return []models.Transaction{}, nil
	}
	transactions, err := s.store.ListTransactions(ctx, owner)
	if err != nil {
		slog.Error("List transactions failed", "user_id", owner, "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// ListByKind returns the caller's transactions of one kind, newest
// first, filtered by the store. Fails open when unauthenticated.
func (s *TransactionService) ListByKind(ctx context.Context, owner string, kind models.TransactionKind) ([]models.Transaction, error) {
	if owner == "" {
		return []models.Transaction{}, nil
	}
	if _, err := models.ParseTransactionKind(string(kind)); err != nil {
		return nil, err
	}

	transactions, err := s.store.ListTransactionsByKind(ctx, owner, kind)
	if err != nil {
		slog.Error("List transactions by kind failed", "user_id", owner, "kind", kind, "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// Summarize computes the caller's financial summary fresh from all of
// their transactions. An unauthenticated caller receives the
// zero-valued summary.
func (s *TransactionService) Summarize(ctx context.Context, owner string) (models.Summary, error) {
	if owner == "" {
		return models.ZeroSummary(), nil
	}
	transactions, err := s.store.ListTransactions(ctx, owner)
	if err != nil {
		slog.Error("Summarize failed", "user_id", owner, "error", err)
		return models.Summary{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return calculator.Summarize(transactions), nil
}

// Remove deletes the caller's transaction. A missing record and
// another user's record both yield ErrNotFoundOrUnauthorized.
func (s *TransactionService) Remove(ctx context.Context, id, owner string) error {
	if owner == "" {
		return ErrNotAuthenticated
	}
	if err := s.store.DeleteTransaction(ctx, id, owner); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		slog.Error("Remove transaction failed", "transaction_id", id, "user_id", owner, "error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	slog.Debug("Transaction deleted", "transaction_id", id, "user_id", owner)
	return nil
}
