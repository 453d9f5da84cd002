package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbook/backend/internal/models"
	"github.com/finbook/backend/internal/storage"
)

// CreateLoan persists a new loan to the database.
func (s *SQLiteStore) CreateLoan(ctx context.Context, loan *models.Loan) error {
	if loan.ID == "" {
		loan.ID = uuid.New().String()
	}
	if loan.CreatedAt == 0 {
		loan.CreatedAt = time.Now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO loans (id, lender_id, borrower_name, amount, description, due_date, kind, status, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loan.ID, loan.LenderID, loan.BorrowerName, loan.Amount.String(),
		loan.Description, loan.DueDate, string(loan.Kind), string(loan.Status),
		loan.Date, loan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}
	return nil
}

// ListLoans retrieves every loan owned by userID, newest first.
func (s *SQLiteStore) ListLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lender_id, borrower_name, amount, description, due_date, kind, status, date, created_at
		 FROM loans
		 WHERE lender_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		var loan models.Loan
		var amount, kind, status string
		if err := rows.Scan(&loan.ID, &loan.LenderID, &loan.BorrowerName, &amount,
			&loan.Description, &loan.DueDate, &kind, &status, &loan.Date, &loan.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse loan amount: %w", err)
		}
		loan.Amount = d
		loan.Kind = models.LoanKind(kind)
		loan.Status = models.LoanStatus(status)
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}
	return loans, nil
}

// MarkLoanPaid sets status=paid on a loan owned by userID. The update
// is unconditional on the current status, which makes it idempotent.
func (s *SQLiteStore) MarkLoanPaid(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE loans SET status = ? WHERE id = ? AND lender_id = ?",
		string(models.LoanPaid), id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark loan paid: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteLoan removes a loan owned by userID.
func (s *SQLiteStore) DeleteLoan(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM loans WHERE id = ? AND lender_id = ?",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
