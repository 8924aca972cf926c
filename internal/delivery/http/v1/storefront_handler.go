package v1

import (
	"net/http"

	"storefront-bff/internal/domain"
	"storefront-bff/internal/usecase"
	"storefront-bff/pkg/utils"
)

type StorefrontHandler struct {
	storefrontUC *usecase.StorefrontUsecase
}

func NewStorefrontHandler(uc *usecase.StorefrontUsecase) *StorefrontHandler {
	return &StorefrontHandler{storefrontUC: uc}
}

// GET /api/v1/footer
// 204 tells the storefront to render no footer at all.
func (h *StorefrontHandler) Footer(w http.ResponseWriter, r *http.Request) {
	footer := h.storefrontUC.Footer(r.Context())
	if footer == nil {
		utils.WriteNoContent(w)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=60")
	utils.WriteJSON(w, http.StatusOK, footer)
}

// GET /api/v1/contact-info
func (h *StorefrontHandler) ContactInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.storefrontUC.ContactInfo(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, info)
}

// POST /api/v1/contact
func (h *StorefrontHandler) SendContactMessage(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := decodeJSON(r, &msg); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.storefrontUC.SendContactMessage(r.Context(), &msg); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusAccepted, map[string]string{"message": "Message sent successfully!"})
}
