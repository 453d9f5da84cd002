package service

import (
	"context"
	"errors"
	"testing"

	"github.com/finbook/backend/internal/models"
)

func recordLoan(t *testing.T, svc *LoanService, owner string) *models.Loan {
	t.Helper()

	loan, err := svc.Record(context.Background(), owner, NewLoan{
		BorrowerName: "Charlie",
		Amount:       dec("200"),
		Description:  "Rent cover",
		Kind:         models.LoanGiven,
		Date:         "2025-03-01",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	return loan
}

func TestLoanRecordStartsActive(t *testing.T) {
	svc := NewLoanService(newTestStore(t))
	loan := recordLoan(t, svc, "alice")

	if loan.Status != models.LoanActive {
		t.Errorf("expected active status, got %s", loan.Status)
	}
	if loan.LenderID != "alice" {
		t.Errorf("expected owner alice, got %s", loan.LenderID)
	}
}

func TestLoanMarkPaidScenario(t *testing.T) {
	svc := NewLoanService(newTestStore(t))
	ctx := context.Background()
	loan := recordLoan(t, svc, "alice")

	if err := svc.MarkPaid(ctx, loan.ID, "alice"); err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}

	loans, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if loans[0].Status != models.LoanPaid {
		t.Errorf("expected paid status, got %s", loans[0].Status)
	}

	// Second call is a no-op, not an error.
	if err := svc.MarkPaid(ctx, loan.ID, "alice"); err != nil {
		t.Fatalf("second MarkPaid failed: %v", err)
	}
	loans, err = svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if loans[0].Status != models.LoanPaid {
		t.Errorf("expected status to stay paid, got %s", loans[0].Status)
	}
}

func TestLoanOwnershipIsolation(t *testing.T) {
	svc := NewLoanService(newTestStore(t))
	ctx := context.Background()
	loan := recordLoan(t, svc, "alice")

	if err := svc.MarkPaid(ctx, loan.ID, "bob"); !errors.Is(err, ErrNotFoundOrUnauthorized) {
		t.Errorf("expected ErrNotFoundOrUnauthorized for mark, got %v", err)
	}
	if err := svc.Remove(ctx, loan.ID, "bob"); !errors.Is(err, ErrNotFoundOrUnauthorized) {
		t.Errorf("expected ErrNotFoundOrUnauthorized for remove, got %v", err)
	}

	loans, err := svc.List(ctx, "bob")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(loans) != 0 {
		t.Errorf("expected bob to see no loans, got %d", len(loans))
	}
}

func TestLoanUnauthenticated(t *testing.T) {
	svc := NewLoanService(newTestStore(t))
	ctx := context.Background()

	if _, err := svc.Record(ctx, "", NewLoan{Kind: models.LoanGiven}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated for record, got %v", err)
	}
	if err := svc.MarkPaid(ctx, "id", ""); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated for mark, got %v", err)
	}

	loans, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(loans) != 0 {
		t.Errorf("expected empty list, got %d", len(loans))
	}
}

func TestLoanRecordRejectsUnknownKind(t *testing.T) {
	svc := NewLoanService(newTestStore(t))

	_, err := svc.Record(context.Background(), "alice", NewLoan{
		BorrowerName: "x", Amount: dec("1"), Kind: "borrowed", Date: "2025-01-01",
	})
	if err == nil {
		t.Fatal("expected error for unknown loan kind")
	}
}
