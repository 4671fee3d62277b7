package http

import "net/http"

// handleDashboard serves the single aggregated read behind the overview
// page: summary totals, trend charts, category breakdown and enriched
// budgets. The window comes from the same query parameters as transaction
// listings.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, owner string) {
	window, err := windowFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	d, err := s.dashboard.Dashboard(r.Context(), owner, window)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}
