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

// BillSplitService implements the bill split ledger operations.
type BillSplitService struct {
	store storage.BillSplitStore
}

// NewBillSplitService creates a new BillSplitService with the given
// storage backend.
func NewBillSplitService(store storage.BillSplitStore) *BillSplitService {
	return &BillSplitService{store: store}
}

// NewParticipant carries the caller-supplied fields of one bill
// participant.
type NewParticipant struct {
	Name   string
	Amount decimal.Decimal
}

// NewBillSplit carries the caller-supplied fields of a bill.
type NewBillSplit struct {
	Title        string
	TotalAmount  decimal.Decimal
	Participants []NewParticipant
	Description  string
	Date         string
}

// Create records a new bill owned by owner. Every participant is
// stamped with the creator's identity and paid=false; participants are
// plain names, not registered users. The server does not cross-check
// that participant amounts sum to the total; that is a client-side
// contract, not a stored invariant.
func (s *BillSplitService) Create(ctx context.Context, owner string, in NewBillSplit) (*models.BillSplit, error) {
	if owner == "" {
		return nil, ErrNotAuthenticated
	}

	participants := make([]models.Participant, len(in.Participants))
	for i, p := range in.Participants {
		participants[i] = models.Participant{
			UserID: owner,
			Name:   p.Name,
			Amount: p.Amount,
			Paid:   false,
		}
	}

	bill := &models.BillSplit{
		CreatedBy:    owner,
		Title:        in.Title,
		TotalAmount:  in.TotalAmount,
		Participants: participants,
		Description:  in.Description,
		Date:         in.Date,
		Settled:      false,
	}
	if err := s.store.CreateBillSplit(ctx, bill); err != nil {
		slog.Error("Create bill failed", "user_id", owner, "error", err)
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	slog.Debug("Bill created", "bill_id", bill.ID, "user_id", owner, "participants", len(participants))
	return bill, nil
}

// List returns the caller's bills, newest first. Fails open with an
// empty list when unauthenticated.
func (s *BillSplitService) List(ctx context.Context, owner string) ([]models.BillSplit, error) {
	if owner == "" {
		return []models.BillSplit{}, nil
	}
	bills, err := s.store.ListBillSplits(ctx, owner)
	if err != nil {
		slog.Error("List bills failed", "user_id", owner, "error", err)
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	if bills == nil {
		bills = []models.BillSplit{}
	}
	return bills, nil
}

// MarkParticipantPaid marks the participant at index as paid and
// recomputes the bill's settled flag; both writes land in one storage
// transaction. Re-marking a paid participant is a no-op. An
// out-of-range index rejects the operation without mutating state.
func (s *BillSplitService) MarkParticipantPaid(ctx context.Context, billID, owner string, index int) error {
	if owner == "" {
		return ErrNotAuthenticated
	}
	if err := s.store.MarkParticipantPaid(ctx, billID, owner, index); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return ErrNotFoundOrUnauthorized
		case errors.Is(err, storage.ErrParticipantIndex):
			return ErrInvalidParticipantIndex
		}
		slog.Error("Mark participant paid failed", "bill_id", billID, "user_id", owner, "index", index, "error", err)
		return fmt.Errorf("failed to mark participant paid: %w", err)
	}
	slog.Debug("Participant marked paid", "bill_id", billID, "user_id", owner, "index", index)
	return nil
}

// Remove deletes the caller's bill and its participants.
func (s *BillSplitService) Remove(ctx context.Context, id, owner string) error {
	if owner == "" {
		return ErrNotAuthenticated
	}
	if err := s.store.DeleteBillSplit(ctx, id, owner); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		slog.Error("Remove bill failed", "bill_id", id, "user_id", owner, "error", err)
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	slog.Debug("Bill deleted", "bill_id", id, "user_id", owner)
	return nil
}
