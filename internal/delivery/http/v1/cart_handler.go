package v1

import (
	"net/http"

	"storefront-bff/internal/domain"
	"storefront-bff/internal/usecase"
	"storefront-bff/pkg/utils"
)

type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: uc}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	cart, err := h.cartUC.GetCart(r.Context(), sess)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

// PUT /api/v1/cart
func (h *CartHandler) ReplaceCart(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	var cart domain.Cart
	if err := decodeJSON(r, &cart); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid cart: prices and quantities must be numbers")
		return
	}
	saved, err := h.cartUC.ReplaceCart(r.Context(), sess, &cart)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, saved)
}
