package models

import "github.com/shopspring/decimal"

// BillSplit represents a shared bill split among named participants.
type BillSplit struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// CreatedBy is the user who created the bill and the only identity
	// allowed to mutate or delete it.
	CreatedBy string `json:"created_by"`

	// Title is the human-readable name for the bill.
	Title string `json:"title"`

	// TotalAmount is the stated bill total. The server does not
	// cross-check it against the participant amounts; keeping the two
	// consistent is a client-side contract.
	TotalAmount decimal.Decimal `json:"total_amount"`

	// Participants is the ordered list of people splitting the bill.
	// The list is append-only and fixed-order; participants are
	// addressed by position.
	Participants []Participant `json:"participants"`

	// Description is an optional note.
	Description string `json:"description,omitempty"`

	// Date is the bill date as entered by the user.
	Date string `json:"date"`

	// Settled is true iff every participant has paid. It is recomputed
	// and persisted in the same storage transaction as every
	// participant-paid mutation, never derived on read.
	Settled bool `json:"settled"`

	// CreatedAt is the Unix millisecond timestamp when the bill was
	// created.
	CreatedAt int64 `json:"created_at"`
}

// Participant is one person's share of a bill. It is embedded in a
// BillSplit, not a standalone record.
//
// Participants are not required to be registered users: Name is free
// text and UserID is the bill creator's identity, stamped at creation
// time.
type Participant struct {
	// ID is a stable identifier assigned at creation (UUID format).
	// The mutation API addresses participants by position; the ID
	// exists so rows survive reordering in storage.
	ID string `json:"id"`

	// UserID is the bill creator's user ID, copied at creation time.
	UserID string `json:"user_id"`

	// Name is the participant's display name.
	Name string `json:"name"`

	// Amount is this participant's share of the bill.
	Amount decimal.Decimal `json:"amount"`

	// Paid records whether this participant has paid their share.
	// Transitions false to true only.
	Paid bool `json:"paid"`
}
