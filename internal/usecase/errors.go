package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrCheckoutInProgress       = errors.New("a checkout is already in progress for this session")
	ErrEmptyCart                = errors.New("cart is empty")
	ErrPaymentMethodUnavailable = errors.New("payment method is not available")
	ErrShippingAreaRequired     = errors.New("please select a shipping area")
	ErrShippingAreaUnavailable  = errors.New("selected shipping area is no longer available")
	ErrCouponRejected           = errors.New("coupon could not be applied")
	ErrPaymentDeclined          = errors.New("payment was declined")
	ErrInvalidTotal             = errors.New("order total must be greater than zero")
	ErrUnknownResource          = errors.New("unknown settings resource")
	ErrFormBusy                 = errors.New("settings form is not ready")
	ErrPaymentNotConfigured     = errors.New("payment provider is not configured")
)

// ValidationErrors maps a field name to its message. It never reaches the backend.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DeclineError carries the payment provider's own message for a declined attempt.
type DeclineError struct {
	Message string
}

func (e *DeclineError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPaymentDeclined, e.Message)
}

func (e *DeclineError) Is(target error) bool {
	return target == ErrPaymentDeclined
}
