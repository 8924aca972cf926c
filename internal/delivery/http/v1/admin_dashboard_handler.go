package v1

import (
	"net/http"

	"storefront-bff/internal/usecase"
	"storefront-bff/pkg/utils"
)

type AdminDashboardHandler struct {
	statsUC *usecase.StatsUsecase
}

func NewAdminDashboardHandler(uc *usecase.StatsUsecase) *AdminDashboardHandler {
	return &AdminDashboardHandler{statsUC: uc}
}

// GET /api/v1/admin/dashboard
func (h *AdminDashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	stats, err := h.statsUC.GetDashboard(r.Context(), sess)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}
