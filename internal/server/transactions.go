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

type recordTransactionRequest struct {
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req recordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	kind, err := models.ParseTransactionKind(req.Kind)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	tx, err := s.transactions.Record(r.Context(), middleware.Identity(r.Context()), service.NewTransaction{
		Kind:        kind,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

// handleListTransactions lists the caller's transactions, optionally
// filtered by ?kind=. An unauthenticated request gets an empty list.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner := middleware.Identity(r.Context())

	if kindParam := r.URL.Query().Get("kind"); kindParam != "" {
		kind, err := models.ParseTransactionKind(kindParam)
		if err != nil {
			respondBadRequest(w, err.Error())
			return
		}
		transactions, err := s.transactions.ListByKind(r.Context(), owner, kind)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, transactions)
		return
	}

	transactions, err := s.transactions.List(r.Context(), owner)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.transactions.Summarize(r.Context(), middleware.Identity(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.transactions.Remove(r.Context(), id, middleware.Identity(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
