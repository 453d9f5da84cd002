// Package server exposes the domain services over a JSON HTTP API.
// It resolves the caller's identity once per request (middleware) and
// passes it to the service layer explicitly; no handler reads auth
// state from anywhere else.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finbook/backend/internal/auth"
	"github.com/finbook/backend/internal/middleware"
	"github.com/finbook/backend/internal/service"
)

// Server holds the handler dependencies.
type Server struct {
	auth         *service.AuthService
	transactions *service.TransactionService
	bills        *service.BillSplitService
	loans        *service.LoanService
	jwtManager   *auth.JWTManager
}

// New creates a Server wired to the given services.
func New(
	authSvc *service.AuthService,
	transactions *service.TransactionService,
	bills *service.BillSplitService,
	loans *service.LoanService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		auth:         authSvc,
		transactions: transactions,
		bills:        bills,
		loans:        loans,
		jwtManager:   jwtManager,
	}
}

// Router builds the chi router with all routes and middleware mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.ResolveIdentity(s.jwtManager))
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Get("/me", s.handleCurrentUser)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Post("/", s.handleRecordTransaction)
			r.Delete("/{id}", s.handleDeleteTransaction)
		})
		r.Get("/summary", s.handleSummary)

		r.Route("/bills", func(r chi.Router) {
			r.Get("/", s.handleListBills)
			r.Post("/", s.handleCreateBill)
			r.Post("/{id}/participants/{index}/paid", s.handleMarkParticipantPaid)
			r.Delete("/{id}", s.handleDeleteBill)
		})

		r.Route("/loans", func(r chi.Router) {
			r.Get("/", s.handleListLoans)
			r.Post("/", s.handleRecordLoan)
			r.Post("/{id}/paid", s.handleMarkLoanPaid)
			r.Delete("/{id}", s.handleDeleteLoan)
		})
	})

	return r
}
