package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/service"
)

type categoryPayload struct {
	Name        string      `json:"name"`
	Kind        core.Kind   `json:"kind"`
	BudgetLimit *core.Money `json:"budgetLimit"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, owner string) {
	var req categoryPayload
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	limit := core.ZeroMoney()
	if req.BudgetLimit != nil {
		limit = *req.BudgetLimit
	}
	category, err := s.categories.Create(r.Context(), owner, req.Name, req.Kind, limit)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request, owner string) {
	kind := core.Kind(strings.TrimSpace(r.URL.Query().Get("kind")))
	categories, err := s.categories.List(r.Context(), owner, kind)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, owner string) {
	var req struct {
		Name        *string     `json:"name"`
		BudgetLimit *core.Money `json:"budgetLimit"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	category, err := s.categories.Update(r.Context(), owner, r.PathValue("id"), service.CategoryUpdate{
		Name:        req.Name,
		BudgetLimit: req.BudgetLimit,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, owner string) {
	if err := s.categories.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
