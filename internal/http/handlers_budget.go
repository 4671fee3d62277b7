package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/service"
)

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request, owner string) {
	var req struct {
		CategoryID string      `json:"categoryId"`
		Amount     *core.Money `json:"amount"`
		Period     core.Period `json:"period"`
		StartDate  string      `json:"startDate"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if req.Amount == nil {
		s.writeError(r.Context(), w, core.Validationf("amount is required"))
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	budget, err := s.budgets.Create(r.Context(), owner, service.CreateBudgetInput{
		CategoryID: req.CategoryID,
		Amount:     *req.Amount,
		Period:     req.Period,
		StartDate:  start,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, budget)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request, owner string) {
	budgets, err := s.budgets.List(r.Context(), owner)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request, owner string) {
	var req struct {
		CategoryID *string      `json:"categoryId"`
		Amount     *core.Money  `json:"amount"`
		Period     *core.Period `json:"period"`
		StartDate  *string      `json:"startDate"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	budget, err := s.budgets.Update(r.Context(), owner, r.PathValue("id"), service.BudgetUpdate{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
		StartDate:  start,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, budget)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request, owner string) {
	if err := s.budgets.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
