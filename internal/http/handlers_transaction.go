package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/service"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request, owner string) {
	var req struct {
		Amount       *core.Money `json:"amount"`
		Date         string      `json:"date"`
		Kind         core.Kind   `json:"kind"`
		CategoryID   string      `json:"categoryId"`
		CategoryName string      `json:"categoryName"`
		Description  string      `json:"description"`
		BudgetLimit  *core.Money `json:"budgetLimit"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if req.Amount == nil {
		s.writeError(r.Context(), w, core.Validationf("amount is required"))
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	tx, err := s.transactions.Create(r.Context(), owner, service.CreateTransactionInput{
		Amount:       *req.Amount,
		Date:         date,
		Kind:         req.Kind,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Description:  req.Description,
		BudgetLimit:  req.BudgetLimit,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, owner string) {
	query := r.URL.Query()

	window, err := windowFromQuery(query)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	page, err := intParam(query, "page", 0)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	pageSize, err := intParam(query, "pageSize", 0)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	rows, err := s.transactions.List(r.Context(), owner, service.ListTransactionsInput{
		Window:     window,
		CategoryID: strings.TrimSpace(query.Get("categoryId")),
		Kind:       core.Kind(strings.TrimSpace(query.Get("kind"))),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request, owner string) {
	var req struct {
		Amount       *core.Money `json:"amount"`
		Date         *string     `json:"date"`
		Kind         *core.Kind  `json:"kind"`
		CategoryID   *string     `json:"categoryId"`
		CategoryName *string     `json:"categoryName"`
		Description  *string     `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	tx, err := s.transactions.Update(r.Context(), owner, r.PathValue("id"), service.TransactionUpdate{
		Amount:       req.Amount,
		Date:         date,
		Kind:         req.Kind,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Description:  req.Description,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, owner string) {
	if err := s.transactions.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
