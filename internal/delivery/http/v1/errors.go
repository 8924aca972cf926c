package v1

import (
	"errors"
	"io"
	"net/http"

	"storefront-bff/internal/delivery/http/middleware"
	"storefront-bff/internal/domain"
	"storefront-bff/internal/usecase"
	"storefront-bff/pkg/logger"
	"storefront-bff/pkg/utils"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string                   `json:"error"`
	Fields usecase.ValidationErrors `json:"fields,omitempty"`
	Form   *usecase.FormView        `json:"form,omitempty"`
}

// statusFor maps a usecase error to an HTTP status and a message safe to show the shopper.
func statusFor(err error) (int, errorBody) {
	var (
		verr    usecase.ValidationErrors
		decline *usecase.DeclineError
		backend *domain.BackendError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, errorBody{Error: "Validation failed", Fields: verr}
	case errors.As(err, &decline):
		return http.StatusPaymentRequired, errorBody{Error: decline.Message}
	case errors.Is(err, usecase.ErrCheckoutInProgress), errors.Is(err, usecase.ErrFormBusy):
		return http.StatusConflict, errorBody{Error: err.Error()}
	case errors.Is(err, usecase.ErrCouponRejected):
		if msg, ok := domain.BackendMessage(err); ok {
			return http.StatusUnprocessableEntity, errorBody{Error: msg}
		}
		return http.StatusUnprocessableEntity, errorBody{Error: usecase.ErrCouponRejected.Error()}
	case errors.Is(err, usecase.ErrEmptyCart),
		errors.Is(err, usecase.ErrShippingAreaRequired),
		errors.Is(err, usecase.ErrShippingAreaUnavailable),
		errors.Is(err, usecase.ErrPaymentMethodUnavailable),
		errors.Is(err, usecase.ErrInvalidTotal):
		return http.StatusBadRequest, errorBody{Error: rootMessage(err)}
	case errors.Is(err, usecase.ErrPaymentNotConfigured):
		return http.StatusServiceUnavailable, errorBody{Error: err.Error()}
	case errors.Is(err, usecase.ErrUnknownResource):
		return http.StatusNotFound, errorBody{Error: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorBody{Error: "Unauthorized"}
	case errors.As(err, &backend):
		switch backend.Status {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return backend.Status, errorBody{Error: backendText(backend)}
		}
		return http.StatusBadGateway, errorBody{Error: backendText(backend)}
	}
	return http.StatusInternalServerError, errorBody{Error: "Internal server error"}
}

// rootMessage drops any "%w: detail" suffix so sentinel messages reach the client unchanged.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		usecase.ErrEmptyCart,
		usecase.ErrShippingAreaRequired,
		usecase.ErrShippingAreaUnavailable,
		usecase.ErrPaymentMethodUnavailable,
		usecase.ErrInvalidTotal,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func backendText(be *domain.BackendError) string {
	if be.Message != "" {
		return be.Message
	}
	return http.StatusText(be.Status)
}

func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := statusFor(err)
	logError(r, status, err)
	utils.WriteJSON(w, status, body)
}

// writeFormResult answers a settings submission. The form view travels with errors too, since it
// carries the outcome message.
func writeFormResult(w http.ResponseWriter, r *http.Request, view *usecase.FormView, err error) {
	if err == nil {
		utils.WriteJSON(w, http.StatusOK, view)
		return
	}
	status, body := statusFor(err)
	body.Form = view
	logError(r, status, err)
	utils.WriteJSON(w, status, body)
}

func logError(r *http.Request, status int, err error) {
	log := logger.WithContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Request failed")
		return
	}
	log.Debug().Err(err).Int("status", status).Msg("Request rejected")
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

// requireSession writes 401 and returns nil when AuthMiddleware did not run.
func requireSession(w http.ResponseWriter, r *http.Request) *domain.Session {
	sess := middleware.SessionFrom(r.Context())
	if sess == nil || sess.ID == "" {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}
	return sess
}
