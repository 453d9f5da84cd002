package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbook/backend/internal/calculator"
	"github.com/finbook/backend/internal/models"
	"github.com/finbook/backend/internal/storage"
)

// CreateBillSplit persists a new bill with its participants.
func (s *SQLiteStore) CreateBillSplit(ctx context.Context, bill *models.BillSplit) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bill_splits (id, created_by, title, total_amount, description, date, settled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.CreatedBy, bill.Title, bill.TotalAmount.String(),
		bill.Description, bill.Date, boolToInt(bill.Settled), bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i := range bill.Participants {
		p := &bill.Participants[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO bill_participants (id, bill_id, position, user_id, name, amount, paid)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, bill.ID, i, p.UserID, p.Name, p.Amount.String(), boolToInt(p.Paid),
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBillSplit retrieves a bill created by userID, with participants in
// creation order. Missing and not-owned both return ErrNotFound.
func (s *SQLiteStore) GetBillSplit(ctx context.Context, id, userID string) (*models.BillSplit, error) {
	bill, err := s.getBill(ctx, s.db, id, userID)
	if err != nil {
		return nil, err
	}
	participants, err := s.getParticipants(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	bill.Participants = participants
	return bill, nil
}

// ListBillSplits retrieves every bill created by userID, newest first.
func (s *SQLiteStore) ListBillSplits(ctx context.Context, userID string) ([]models.BillSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_by, title, total_amount, description, date, settled, created_at
		 FROM bill_splits
		 WHERE created_by = ?
		 ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.BillSplit
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	for i := range bills {
		participants, err := s.getParticipants(ctx, s.db, bills[i].ID)
		if err != nil {
			return nil, err
		}
		bills[i].Participants = participants
	}
	return bills, nil
}

// MarkParticipantPaid marks one participant as paid and recomputes the
// bill's settled flag. The read-modify-write runs inside a single
// database transaction so two concurrent calls on different
// participants of the same bill cannot drop an update or mis-derive
// settled.
func (s *SQLiteStore) MarkParticipantPaid(ctx context.Context, billID, userID string, index int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Ownership check: missing and not-owned are indistinguishable.
	var one int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM bill_splits WHERE id = ? AND created_by = ?",
		billID, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get bill: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bill_participants WHERE bill_id = ?",
		billID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count participants: %w", err)
	}
	if index < 0 || index >= count {
		return storage.ErrParticipantIndex
	}

	// Idempotent: re-marking a paid participant rewrites paid=1.
	_, err = tx.ExecContext(ctx,
		"UPDATE bill_participants SET paid = 1 WHERE bill_id = ? AND position = ?",
		billID, index,
	)
	if err != nil {
		return fmt.Errorf("failed to mark participant paid: %w", err)
	}

	// Recompute the materialized settled flag inside the same
	// transaction as the participant update.
	participants, err := s.getParticipants(ctx, tx, billID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE bill_splits SET settled = ? WHERE id = ?",
		boolToInt(calculator.AllPaid(participants)), billID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settled flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteBillSplit removes a bill created by userID; participants follow
// via FK cascade.
func (s *SQLiteStore) DeleteBillSplit(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM bill_splits WHERE id = ? AND created_by = ?",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
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

// querier lets the bill helpers run against either *sql.DB or *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) getBill(ctx context.Context, q querier, id, userID string) (*models.BillSplit, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, created_by, title, total_amount, description, date, settled, created_at
		 FROM bill_splits
		 WHERE id = ? AND created_by = ?`,
		id, userID,
	)
	bill, err := scanBill(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

func (s *SQLiteStore) getParticipants(ctx context.Context, q querier, billID string) ([]models.Participant, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, user_id, name, amount, paid
		 FROM bill_participants
		 WHERE bill_id = ?
		 ORDER BY position`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		var amount string
		var paid int
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &amount, &paid); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse participant amount: %w", err)
		}
		p.Amount = d
		p.Paid = paid != 0
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBill(row scanner) (*models.BillSplit, error) {
	bill := &models.BillSplit{}
	var amount string
	var settled int
	err := row.Scan(&bill.ID, &bill.CreatedBy, &bill.Title, &amount,
		&bill.Description, &bill.Date, &settled, &bill.CreatedAt)
	if err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bill total: %w", err)
	}
	bill.TotalAmount = d
	bill.Settled = settled != 0
	return bill, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
