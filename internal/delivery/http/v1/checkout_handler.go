package v1

import (
	"net/http"
	"strings"

	"storefront-bff/internal/domain"
	"storefront-bff/internal/usecase"
	"storefront-bff/pkg/utils"
)

type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
	couponUC   *usecase.CouponUsecase
	shippingUC *usecase.ShippingUsecase
	settingsUC *usecase.SettingsUsecase
}

func NewCheckoutHandler(
	checkoutUC *usecase.CheckoutUsecase,
	couponUC *usecase.CouponUsecase,
	shippingUC *usecase.ShippingUsecase,
	settingsUC *usecase.SettingsUsecase,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: checkoutUC,
		couponUC:   couponUC,
		shippingUC: shippingUC,
		settingsUC: settingsUC,
	}
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	summary, err := h.checkoutUC.Summary(r.Context(), sess)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// GET /api/v1/payment-options
func (h *CheckoutHandler) PaymentOptions(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.settingsUC.PaymentOptions(r.Context()))
}

// GET /api/v1/shipping-areas
func (h *CheckoutHandler) ListShippingAreas(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	areas, err := h.shippingUC.ListAreas(r.Context(), sess)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, areas)
}

type selectShippingReq struct {
	AreaID *int64 `json:"shipping_area_id"`
}

// PUT /api/v1/checkout/shipping-area
// A null id clears the selection.
func (h *CheckoutHandler) SelectShippingArea(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	var req selectShippingReq
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	area, err := h.shippingUC.Select(r.Context(), sess, req.AreaID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSummary(w, r, sess, map[string]any{"selectedShippingArea": area})
}

type applyCouponReq struct {
	Code string `json:"coupon_code"`
}

// POST /api/v1/checkout/coupon
func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	var req applyCouponReq
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	coupon, err := h.couponUC.Apply(r.Context(), sess, strings.TrimSpace(req.Code))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSummary(w, r, sess, map[string]any{"appliedCoupon": coupon})
}

// respondSummary returns the fresh price summary after a pricing input changed. If re-pricing fails
// the change itself is still reported.
func (h *CheckoutHandler) respondSummary(w http.ResponseWriter, r *http.Request, sess *domain.Session, fallback any) {
	summary, err := h.checkoutUC.Summary(r.Context(), sess)
	if err != nil {
		utils.WriteJSON(w, http.StatusOK, fallback)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// POST /api/v1/checkout
// A client Idempotency-Key header is forwarded for cash orders; card orders are keyed by their intent.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	var in usecase.CheckoutInput
	if err := decodeJSON(r, &in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	in.IdempotencyKey = strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	result, err := h.checkoutUC.PlaceOrder(r.Context(), sess, in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, result)
}

// POST /api/v1/checkout/paypal/approve
func (h *CheckoutHandler) ApprovePayPal(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	var in usecase.PayPalApproval
	if err := decodeJSON(r, &in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	result, err := h.checkoutUC.ApprovePayPal(r.Context(), sess, in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, result)
}
