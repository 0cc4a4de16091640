package handlers

import (
	"net/http"

	"beneficiarydesk/repository"
)

type StatsHandler struct {
	Repo repository.BeneficiaryRepository
}

// Dashboard returns the admin rollup: total, today's registrations, and the
// per-status breakdown, all from one aggregation pass.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.DashboardStats()
	if err != nil {
		writeRepoError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    stats,
	})
}
