// Package models defines the core domain models for Finbook.
//
// # Models
//
//   - Transaction: a dated income/expense/loan-flow entry for one user
//   - BillSplit: a shared bill with embedded participants and a
//     materialized settled flag
//   - Loan: an informal single-counterparty loan (given or received)
//   - Summary: the derived financial summary (never persisted)
//   - User: a registered account; its ID is the ownership key stamped
//     on every record
//
// # Design Principles
//
//  1. **Explicit ownership**: every record carries the owning user's ID
//     and is only ever visible to, and mutable by, that user.
//  2. **Money as decimals**: amounts use shopspring/decimal, never
//     float64, so summary arithmetic stays exact.
//  3. **Materialized aggregates**: BillSplit.Settled is recomputed and
//     persisted on every participant mutation, not derived on read.
//  4. **Avoid circular references**: records reference each other by ID
//     strings, never by pointer.
package models
