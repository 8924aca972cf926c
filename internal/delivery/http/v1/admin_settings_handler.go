package v1

import (
	"net/http"

	"storefront-bff/internal/domain"
	"storefront-bff/internal/usecase"
	"storefront-bff/pkg/utils"
)

type AdminSettingsHandler struct {
	settingsUC *usecase.SettingsUsecase
}

func NewAdminSettingsHandler(uc *usecase.SettingsUsecase) *AdminSettingsHandler {
	return &AdminSettingsHandler{settingsUC: uc}
}

// GET /api/v1/admin/settings
func (h *AdminSettingsHandler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	schemas := make([]usecase.Schema, 0, len(domain.SettingsResources))
	for _, resource := range domain.SettingsResources {
		schema, err := usecase.SchemaFor(resource)
		if err != nil {
			continue
		}
		schemas = append(schemas, schema)
	}
	utils.WriteJSON(w, http.StatusOK, schemas)
}

// GET /api/v1/admin/settings/{resource}
// A failed fetch still returns the form, ready with defaults and an error message.
func (h *AdminSettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	form, err := h.settingsUC.LoadForm(r.Context(), sess, r.PathValue("resource"))
	if form == nil {
		writeUsecaseError(w, r, err)
		return
	}
	view := form.View()
	writeFormResult(w, r, &view, err)
}

// POST /api/v1/admin/settings/{resource}
// The body is the flat record: is_enabled plus one key per field.
func (h *AdminSettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}

	var body map[string]any
	if err := decodeJSON(r, &body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	req := usecase.SubmitSettingsReq{Values: body}
	if raw, ok := body["is_enabled"]; ok {
		delete(body, "is_enabled")
		enabled, valid := parseEnabled(raw)
		if !valid {
			writeUsecaseError(w, r, usecase.ValidationErrors{"is_enabled": "must be a boolean"})
			return
		}
		req.Enabled = &enabled
	}

	view, err := h.settingsUC.SubmitForm(r.Context(), sess, r.PathValue("resource"), req)
	if view == nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeFormResult(w, r, view, err)
}

// POST /api/v1/admin/settings/refresh
func (h *AdminSettingsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.settingsUC.Refresh(r.Context())
	utils.WriteNoContent(w)
}

// parseEnabled accepts the backend's own encodings of the toggle: true/false, 1/0, "1"/"0".
func parseEnabled(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t == 1, t == 0 || t == 1
	case string:
		switch t {
		case "1", "true":
			return true, true
		case "0", "false", "":
			return false, true
		}
	}
	return false, false
}
