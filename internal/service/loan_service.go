package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/finbook/backend/internal/models"
	"github.com/finbook/backend/internal/storage"
)

// LoanService implements the loan ledger operations.
type LoanService struct {
	store storage.LoanStore
}

// NewLoanService creates a new LoanService with the given storage
// backend.
func NewLoanService(store storage.LoanStore) *LoanService {
	return &LoanService{store: store}
}

// NewLoan carries the caller-supplied fields of a loan.
type NewLoan struct {
	BorrowerName string
	Amount       decimal.Decimal
	Description  string
	Kind         models.LoanKind
	Date         string
	DueDate      string
}

// Record creates a loan owned by owner with status active.
func (s *LoanService) Record(ctx context.Context, owner string, in NewLoan) (*models.Loan, error) {
	if owner == "" {
		return nil, ErrNotAuthenticated
	}
	if _, err := models.ParseLoanKind(string(in.Kind)); err != nil {
		return nil, err
	}

	loan := &models.Loan{
		LenderID:     owner,
		BorrowerName: in.BorrowerName,
		Amount:       in.Amount,
		Description:  in.Description,
		DueDate:      in.DueDate,
		Kind:         in.Kind,
		Date:         in.Date,
		Status:       models.LoanActive,
	}
	if err := s.store.CreateLoan(ctx, loan); err != nil {
		slog.Error("Record loan failed", "user_id", owner, "error", err)
		return nil, fmt.Errorf("failed to record loan: %w", err)
	}

	slog.Debug("Loan recorded", "loan_id", loan.ID, "user_id", owner, "kind", loan.Kind)
	return loan, nil
}

// List returns the caller's loans, newest first. Fails open with an
// empty list when unauthenticated.
func (s *LoanService) List(ctx context.Context, owner string) ([]models.Loan, error) {
	if owner == "" {
		return []models.Loan{}, nil
	}
	loans, err := s.store.ListLoans(ctx, owner)
	if err != nil {
		slog.Error("List loans failed", "user_id", owner, "error", err)
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	return loans, nil
}

// MarkPaid transitions the loan to paid. The transition is one-way and
// idempotent: marking a paid loan again succeeds without change.
func (s *LoanService) MarkPaid(ctx context.Context, id, owner string) error {
	if owner == "" {
		return ErrNotAuthenticated
	}
	if err := s.store.MarkLoanPaid(ctx, id, owner); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		slog.Error("Mark loan paid failed", "loan_id", id, "user_id", owner, "error", err)
		return fmt.Errorf("failed to mark loan paid: %w", err)
	}
	slog.Debug("Loan marked paid", "loan_id", id, "user_id", owner)
	return nil
}

// Remove deletes the caller's loan.
func (s *LoanService) Remove(ctx context.Context, id, owner string) error {
	if owner == "" {
		return ErrNotAuthenticated
	}
	if err := s.store.DeleteLoan(ctx, id, owner); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		slog.Error("Remove loan failed", "loan_id", id, "user_id", owner, "error", err)
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	slog.Debug("Loan deleted", "loan_id", id, "user_id", owner)
	return nil
}
