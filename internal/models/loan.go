package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LoanKind records the direction of a loan from the owner's point of
// view: money they handed out, or money they took in.
type LoanKind string

const (
	LoanGiven    LoanKind = "given"
	LoanReceived LoanKind = "received"
)

// ParseLoanKind validates a wire-format loan kind string.
func ParseLoanKind(s string) (LoanKind, error) {
	switch k := LoanKind(s); k {
	case LoanGiven, LoanReceived:
		return k, nil
	}
	return "", fmt.Errorf("unknown loan kind %q", s)
}

// LoanStatus is the repayment state of a loan.
type LoanStatus string

const (
	LoanActive LoanStatus = "active"
	LoanPaid   LoanStatus = "paid"
)

// Loan represents an informal loan with a single named counterparty.
type Loan struct {
	// ID is the unique identifier for the loan (UUID format).
	ID string `json:"id"`

	// LenderID is the owning user regardless of direction; the
	// counterparty is identified only by BorrowerName.
	LenderID string `json:"lender_id"`

	// BorrowerName is the counterparty's display name (free text, not
	// a registered user).
	BorrowerName string `json:"borrower_name"`

	// Amount is the loan principal.
	Amount decimal.Decimal `json:"amount"`

	// Description is a free-form note.
	Description string `json:"description"`

	// DueDate is an optional repayment date as entered by the user.
	DueDate string `json:"due_date,omitempty"`

	// Kind is given or received.
	Kind LoanKind `json:"kind"`

	// Date is the loan date as entered by the user.
	Date string `json:"date"`

	// Status starts active and transitions to paid exactly once; there
	// is no un-pay.
	Status LoanStatus `json:"status"`

	// CreatedAt is the Unix millisecond timestamp when the loan was
	// recorded.
	CreatedAt int64 `json:"created_at"`
}
