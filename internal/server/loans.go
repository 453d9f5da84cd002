package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/finbook/backend/internal/middleware"
	"github.com/finbook/backend/internal/models"
	"github.com/finbook/backend/internal/service"
)

type recordLoanRequest struct {
	BorrowerName string          `json:"borrower_name"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Kind         string          `json:"kind"`
	Date         string          `json:"date"`
	DueDate      string          `json:"due_date"`
}

func (s *Server) handleRecordLoan(w http.ResponseWriter, r *http.Request) {
	var req recordLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	kind, err := models.ParseLoanKind(req.Kind)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	loan, err := s.loans.Record(r.Context(), middleware.Identity(r.Context()), service.NewLoan{
		BorrowerName: req.BorrowerName,
		Amount:       req.Amount,
		Description:  req.Description,
		Kind:         kind,
		Date:         req.Date,
		DueDate:      req.DueDate,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, loan)
}

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.loans.List(r.Context(), middleware.Identity(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (s *Server) handleMarkLoanPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.loans.MarkPaid(r.Context(), id, middleware.Identity(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteLoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.loans.Remove(r.Context(), id, middleware.Identity(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
