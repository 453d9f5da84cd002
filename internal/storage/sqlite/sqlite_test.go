package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finbook/backend/internal/models"
	"github.com/finbook/backend/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTransactionStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTransaction generates ID and timestamp", func(t *testing.T) {
		tx := &models.Transaction{
			UserID:      "user-1",
			Kind:        models.KindIncome,
			Amount:      dec("1000"),
			Description: "Salary",
			Category:    "Work",
			Date:        "2025-01-15",
		}

		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if tx.ID == "" {
			t.Error("Expected transaction ID to be generated")
		}
		if tx.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("ListTransactions is scoped to the owner, newest first", func(t *testing.T) {
		for _, d := range []string{"first", "second", "third"} {
			tx := &models.Transaction{
				UserID: "user-2", Kind: models.KindExpense,
				Amount: dec("10"), Description: d, Category: "Misc", Date: "2025-02-01",
			}
			if err := store.CreateTransaction(ctx, tx); err != nil {
				t.Fatalf("CreateTransaction failed: %v", err)
			}
		}

		got, err := store.ListTransactions(ctx, "user-2")
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Expected 3 transactions, got %d", len(got))
		}
		if got[0].Description != "third" || got[2].Description != "first" {
			t.Errorf("Expected newest-first order, got %q .. %q", got[0].Description, got[2].Description)
		}

		other, err := store.ListTransactions(ctx, "someone-else")
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(other) != 0 {
			t.Errorf("Expected no transactions for another user, got %d", len(other))
		}
	})

	t.Run("ListTransactionsByKind filters in the store", func(t *testing.T) {
		entries := []struct {
			kind   models.TransactionKind
			amount string
		}{
			{models.KindIncome, "100"},
			{models.KindExpense, "40"},
			{models.KindIncome, "25"},
		}
		for _, e := range entries {
			tx := &models.Transaction{
				UserID: "user-3", Kind: e.kind, Amount: dec(e.amount),
				Description: "x", Category: "y", Date: "2025-03-01",
			}
			if err := store.CreateTransaction(ctx, tx); err != nil {
				t.Fatalf("CreateTransaction failed: %v", err)
			}
		}

		incomes, err := store.ListTransactionsByKind(ctx, "user-3", models.KindIncome)
		if err != nil {
			t.Fatalf("ListTransactionsByKind failed: %v", err)
		}
		if len(incomes) != 2 {
			t.Fatalf("Expected 2 income transactions, got %d", len(incomes))
		}
		for _, tx := range incomes {
			if tx.Kind != models.KindIncome {
				t.Errorf("Expected kind income, got %s", tx.Kind)
			}
		}
	})

	t.Run("DeleteTransaction enforces ownership", func(t *testing.T) {
		tx := &models.Transaction{
			UserID: "user-4", Kind: models.KindExpense, Amount: dec("5"),
			Description: "coffee", Category: "Food", Date: "2025-04-01",
		}
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		if err := store.DeleteTransaction(ctx, tx.ID, "intruder"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for wrong owner, got %v", err)
		}
		if err := store.DeleteTransaction(ctx, tx.ID, "user-4"); err != nil {
			t.Errorf("DeleteTransaction failed for owner: %v", err)
		}
		if err := store.DeleteTransaction(ctx, tx.ID, "user-4"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for deleted record, got %v", err)
		}
	})

	t.Run("amounts round-trip exactly", func(t *testing.T) {
		tx := &models.Transaction{
			UserID: "user-5", Kind: models.KindIncome, Amount: dec("1234.56"),
			Description: "x", Category: "y", Date: "2025-05-01",
		}
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		got, err := store.ListTransactions(ctx, "user-5")
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if !got[0].Amount.Equal(dec("1234.56")) {
			t.Errorf("Amount mismatch: got %s, want 1234.56", got[0].Amount)
		}
	})
}

func TestBillSplitStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	newBill := func(t *testing.T, owner string) *models.BillSplit {
		t.Helper()
		bill := &models.BillSplit{
			CreatedBy:   owner,
			Title:       "Dinner",
			TotalAmount: dec("100"),
			Date:        "2025-06-01",
			Participants: []models.Participant{
				{UserID: owner, Name: "Alice", Amount: dec("50")},
				{UserID: owner, Name: "Bob", Amount: dec("50")},
			},
		}
		if err := store.CreateBillSplit(ctx, bill); err != nil {
			t.Fatalf("CreateBillSplit failed: %v", err)
		}
		return bill
	}

	t.Run("CreateBillSplit assigns bill and participant IDs", func(t *testing.T) {
		bill := newBill(t, "owner-1")

		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		for i, p := range bill.Participants {
			if p.ID == "" {
				t.Errorf("Expected participant %d to get an ID", i)
			}
		}
	})

	t.Run("GetBillSplit returns participants in creation order", func(t *testing.T) {
		bill := newBill(t, "owner-2")

		got, err := store.GetBillSplit(ctx, bill.ID, "owner-2")
		if err != nil {
			t.Fatalf("GetBillSplit failed: %v", err)
		}
		if len(got.Participants) != 2 {
			t.Fatalf("Expected 2 participants, got %d", len(got.Participants))
		}
		if got.Participants[0].Name != "Alice" || got.Participants[1].Name != "Bob" {
			t.Errorf("Participant order mismatch: %q, %q", got.Participants[0].Name, got.Participants[1].Name)
		}
		if got.Settled {
			t.Error("Expected new bill to be unsettled")
		}
	})

	t.Run("GetBillSplit merges missing and not-owned", func(t *testing.T) {
		bill := newBill(t, "owner-3")

		if _, err := store.GetBillSplit(ctx, bill.ID, "intruder"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for wrong owner, got %v", err)
		}
		if _, err := store.GetBillSplit(ctx, "nonexistent", "owner-3"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for missing bill, got %v", err)
		}
	})

	t.Run("MarkParticipantPaid recomputes settled", func(t *testing.T) {
		bill := newBill(t, "owner-4")

		if err := store.MarkParticipantPaid(ctx, bill.ID, "owner-4", 0); err != nil {
			t.Fatalf("MarkParticipantPaid failed: %v", err)
		}
		got, err := store.GetBillSplit(ctx, bill.ID, "owner-4")
		if err != nil {
			t.Fatalf("GetBillSplit failed: %v", err)
		}
		if !got.Participants[0].Paid {
			t.Error("Expected first participant to be paid")
		}
		if got.Participants[1].Paid {
			t.Error("Expected second participant to remain unpaid")
		}
		if got.Settled {
			t.Error("Expected bill to remain unsettled with one unpaid participant")
		}

		if err := store.MarkParticipantPaid(ctx, bill.ID, "owner-4", 1); err != nil {
			t.Fatalf("MarkParticipantPaid failed: %v", err)
		}
		got, err = store.GetBillSplit(ctx, bill.ID, "owner-4")
		if err != nil {
			t.Fatalf("GetBillSplit failed: %v", err)
		}
		if !got.Settled {
			t.Error("Expected bill to be settled after all participants paid")
		}
	})

	t.Run("MarkParticipantPaid is idempotent", func(t *testing.T) {
		bill := newBill(t, "owner-5")

		if err := store.MarkParticipantPaid(ctx, bill.ID, "owner-5", 0); err != nil {
			t.Fatalf("MarkParticipantPaid failed: %v", err)
		}
		if err := store.MarkParticipantPaid(ctx, bill.ID, "owner-5", 0); err != nil {
			t.Fatalf("Second MarkParticipantPaid failed: %v", err)
		}

		got, err := store.GetBillSplit(ctx, bill.ID, "owner-5")
		if err != nil {
			t.Fatalf("GetBillSplit failed: %v", err)
		}
		if !got.Participants[0].Paid || got.Participants[1].Paid {
			t.Error("Expected only the first participant to be paid")
		}
		if got.Settled {
			t.Error("Expected bill to remain unsettled")
		}
	})

	t.Run("MarkParticipantPaid rejects an out-of-range index", func(t *testing.T) {
		bill := newBill(t, "owner-6")

		if err := store.MarkParticipantPaid(ctx, bill.ID, "owner-6", 2); !errors.Is(err, storage.ErrParticipantIndex) {
			t.Errorf("Expected ErrParticipantIndex, got %v", err)
		}
		if err := store.MarkParticipantPaid(ctx, bill.ID, "owner-6", -1); !errors.Is(err, storage.ErrParticipantIndex) {
			t.Errorf("Expected ErrParticipantIndex for negative index, got %v", err)
		}

		// No state must have changed.
		got, err := store.GetBillSplit(ctx, bill.ID, "owner-6")
		if err != nil {
			t.Fatalf("GetBillSplit failed: %v", err)
		}
		for i, p := range got.Participants {
			if p.Paid {
				t.Errorf("Expected participant %d to remain unpaid", i)
			}
		}
	})

	t.Run("MarkParticipantPaid enforces ownership", func(t *testing.T) {
		bill := newBill(t, "owner-7")

		if err := store.MarkParticipantPaid(ctx, bill.ID, "intruder", 0); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for wrong owner, got %v", err)
		}
	})

	t.Run("DeleteBillSplit cascades to participants", func(t *testing.T) {
		bill := newBill(t, "owner-8")

		if err := store.DeleteBillSplit(ctx, bill.ID, "intruder"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for wrong owner, got %v", err)
		}
		if err := store.DeleteBillSplit(ctx, bill.ID, "owner-8"); err != nil {
			t.Fatalf("DeleteBillSplit failed: %v", err)
		}

		var count int
		err := store.db.QueryRow("SELECT COUNT(*) FROM bill_participants WHERE bill_id = ?", bill.ID).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to count participants: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected cascade delete of participants, found %d rows", count)
		}
	})
}

func TestLoanStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	newLoan := func(t *testing.T, owner string) *models.Loan {
		t.Helper()
		loan := &models.Loan{
			LenderID:     owner,
			BorrowerName: "Charlie",
			Amount:       dec("200"),
			Description:  "Lunch money",
			Kind:         models.LoanGiven,
			Status:       models.LoanActive,
			Date:         "2025-07-01",
		}
		if err := store.CreateLoan(ctx, loan); err != nil {
			t.Fatalf("CreateLoan failed: %v", err)
		}
		return loan
	}

	t.Run("CreateLoan and ListLoans round-trip", func(t *testing.T) {
		loan := newLoan(t, "lender-1")

		got, err := store.ListLoans(ctx, "lender-1")
		if err != nil {
			t.Fatalf("ListLoans failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Expected 1 loan, got %d", len(got))
		}
		if got[0].ID != loan.ID {
			t.Errorf("ID mismatch: got %s, want %s", got[0].ID, loan.ID)
		}
		if got[0].Status != models.LoanActive {
			t.Errorf("Expected active status, got %s", got[0].Status)
		}
		if !got[0].Amount.Equal(dec("200")) {
			t.Errorf("Amount mismatch: got %s", got[0].Amount)
		}
	})

	t.Run("MarkLoanPaid is one-way and idempotent", func(t *testing.T) {
		loan := newLoan(t, "lender-2")

		if err := store.MarkLoanPaid(ctx, loan.ID, "lender-2"); err != nil {
			t.Fatalf("MarkLoanPaid failed: %v", err)
		}
		if err := store.MarkLoanPaid(ctx, loan.ID, "lender-2"); err != nil {
			t.Fatalf("Second MarkLoanPaid failed: %v", err)
		}

		got, err := store.ListLoans(ctx, "lender-2")
		if err != nil {
			t.Fatalf("ListLoans failed: %v", err)
		}
		if got[0].Status != models.LoanPaid {
			t.Errorf("Expected paid status, got %s", got[0].Status)
		}
	})

	t.Run("MarkLoanPaid enforces ownership", func(t *testing.T) {
		loan := newLoan(t, "lender-3")

		if err := store.MarkLoanPaid(ctx, loan.ID, "intruder"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for wrong owner, got %v", err)
		}
	})

	t.Run("DeleteLoan enforces ownership", func(t *testing.T) {
		loan := newLoan(t, "lender-4")

		if err := store.DeleteLoan(ctx, loan.ID, "intruder"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for wrong owner, got %v", err)
		}
		if err := store.DeleteLoan(ctx, loan.ID, "lender-4"); err != nil {
			t.Fatalf("DeleteLoan failed: %v", err)
		}
		if err := store.DeleteLoan(ctx, loan.ID, "lender-4"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for deleted loan, got %v", err)
		}
	})
}

func TestUserStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and lookups", func(t *testing.T) {
		user := models.NewUser("alice@example.com", "Alice", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail == nil || byEmail.ID != user.ID {
			t.Errorf("GetUserByEmail mismatch: %+v", byEmail)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID == nil || byID.Email != "alice@example.com" {
			t.Errorf("GetUserByID mismatch: %+v", byID)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		if err := store.CreateUser(ctx, models.NewUser("bob@example.com", "Bob", "hash")); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		err := store.CreateUser(ctx, models.NewUser("bob@example.com", "Bobby", "hash2"))
		if !errors.Is(err, storage.ErrEmailExists) {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("missing user returns nil without error", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if user != nil {
			t.Errorf("Expected nil user, got %+v", user)
		}
	})
}
