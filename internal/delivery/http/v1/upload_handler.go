package v1

import (
	"net/http"
	"path/filepath"
	"strings"

	"storefront-bff/internal/usecase"
	"storefront-bff/pkg/logger"
	"storefront-bff/pkg/utils"
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
	}
)

type UploadHandler struct {
	brandingUC    *usecase.BrandingUsecase
	maxUploadSize int64
}

// NewUploadHandler accepts a nil usecase when object storage is not configured; uploads then answer 503.
func NewUploadHandler(uc *usecase.BrandingUsecase, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		brandingUC:    uc,
		maxUploadSize: maxUploadSizeMB << 20, // Convert MB to bytes
	}
}

// POST /api/v1/admin/settings/general/logo (multipart, field "file")
func (h *UploadHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context())

	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	if h.brandingUC == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		log.Warn().Err(err).Msg("Upload rejected: multipart parse failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		log.Warn().Str("content_type", contentType).Msg("Upload rejected: MIME type")
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	log.Debug().Str("filename", header.Filename).Int64("size", header.Size).Msg("Logo upload received")

	view, err := h.brandingUC.UploadLogo(r.Context(), sess, file, header.Filename)
	if view == nil && err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeFormResult(w, r, view, err)
}
