package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/finbook/backend/internal/middleware"
	"github.com/finbook/backend/internal/service"
)

type createBillRequest struct {
	Title        string                     `json:"title"`
	TotalAmount  decimal.Decimal            `json:"total_amount"`
	Participants []createParticipantRequest `json:"participants"`
	Description  string                     `json:"description"`
	Date         string                     `json:"date"`
}

type createParticipantRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	participants := make([]service.NewParticipant, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = service.NewParticipant{Name: p.Name, Amount: p.Amount}
	}

	bill, err := s.bills.Create(r.Context(), middleware.Identity(r.Context()), service.NewBillSplit{
		Title:        req.Title,
		TotalAmount:  req.TotalAmount,
		Participants: participants,
		Description:  req.Description,
		Date:         req.Date,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bill)
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.List(r.Context(), middleware.Identity(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bills)
}

func (s *Server) handleMarkParticipantPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondBadRequest(w, "participant index must be an integer")
		return
	}

	if err := s.bills.MarkParticipantPaid(r.Context(), id, middleware.Identity(r.Context()), index); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.bills.Remove(r.Context(), id, middleware.Identity(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
