// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/finbook/backend/internal/models"
)

// ErrNotFound is returned by targeted operations when the record does
// not exist or is not owned by the given user. The two cases are
// deliberately indistinguishable so callers cannot probe for the
// existence of other users' records.
var ErrNotFound = errors.New("record not found")

// ErrParticipantIndex is returned by MarkParticipantPaid when the
// participant index is outside the bill's participant list. No state
// is mutated.
var ErrParticipantIndex = errors.New("participant index out of range")

// ErrEmailExists is returned by CreateUser when the email address is
// already registered.
var ErrEmailExists = errors.New("email already registered")

// TransactionStore persists ledger transactions.
type TransactionStore interface {
	// CreateTransaction persists a new transaction. ID and CreatedAt
	// are populated by the store if unset.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// ListTransactions returns every transaction owned by userID,
	// newest first.
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)

	// ListTransactionsByKind returns userID's transactions of one kind,
	// newest first. Filtering happens in the store via the
	// (user_id, kind) index, not in memory.
	ListTransactionsByKind(ctx context.Context, userID string, kind models.TransactionKind) ([]models.Transaction, error)

	// DeleteTransaction removes the transaction if it exists and is
	// owned by userID; otherwise it returns ErrNotFound.
	DeleteTransaction(ctx context.Context, id, userID string) error
}

// BillSplitStore persists bill splits and their embedded participants.
type BillSplitStore interface {
	// CreateBillSplit persists a new bill with its participants. ID,
	// participant IDs and CreatedAt are populated by the store if
	// unset.
	CreateBillSplit(ctx context.Context, bill *models.BillSplit) error

	// ListBillSplits returns every bill created by userID, newest
	// first, with participants in creation order.
	ListBillSplits(ctx context.Context, userID string) ([]models.BillSplit, error)

	// GetBillSplit returns the bill if it exists and was created by
	// userID; otherwise it returns ErrNotFound.
	GetBillSplit(ctx context.Context, id, userID string) (*models.BillSplit, error)

	// MarkParticipantPaid sets paid=true on the participant at the
	// given position and recomputes the bill's settled flag, all
	// within a single storage transaction. Re-marking an already-paid
	// participant is a no-op. Returns ErrNotFound if the bill is
	// missing or not created by userID, ErrParticipantIndex if the
	// position is out of range.
	MarkParticipantPaid(ctx context.Context, billID, userID string, index int) error

	// DeleteBillSplit removes the bill and its participants if it
	// exists and was created by userID; otherwise ErrNotFound.
	DeleteBillSplit(ctx context.Context, id, userID string) error
}

// LoanStore persists loans.
type LoanStore interface {
	// CreateLoan persists a new loan. ID and CreatedAt are populated
	// by the store if unset.
	CreateLoan(ctx context.Context, loan *models.Loan) error

	// ListLoans returns every loan owned by userID, newest first.
	ListLoans(ctx context.Context, userID string) ([]models.Loan, error)

	// MarkLoanPaid sets status=paid on the loan. Idempotent: marking a
	// paid loan again succeeds without change. Returns ErrNotFound if
	// the loan is missing or not owned by userID.
	MarkLoanPaid(ctx context.Context, id, userID string) error

	// DeleteLoan removes the loan if it exists and is owned by userID;
	// otherwise ErrNotFound.
	DeleteLoan(ctx context.Context, id, userID string) error
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrEmailExists if the
	// email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns the user with the given email, or
	// (nil, nil) if none exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns the user with the given ID, or (nil, nil) if
	// none exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store is the complete set of operations the application needs. It
// composes the per-entity interfaces so callers can depend on the
// narrowest one that serves them, and allows swapping storage backends
// without changing the service layer.
type Store interface {
	TransactionStore
	BillSplitStore
	LoanStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
