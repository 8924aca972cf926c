package v1

import (
	"net/http"

	"storefront-bff/internal/domain"
	"storefront-bff/internal/usecase"
	"storefront-bff/pkg/utils"
)

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: uc}
}

// GET /api/v1/orders/recent
func (h *OrderHandler) RecentOrder(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	order, err := h.orderUC.RecentOrder(r.Context(), sess)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	if len(order) == 0 {
		utils.WriteError(w, http.StatusNotFound, "No recent order")
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	orders, err := h.orderUC.ListOrders(r.Context(), sess)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.RawJSON{}
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}
