package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-bff/internal/usecase"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

type paymentIntentAPI interface {
	Confirm(id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error)
}

// Confirmer confirms payment intents server-side with the store's secret key.
type Confirmer struct {
	intents paymentIntentAPI
}

// NewConfirmer builds a confirmer bound to secretKey. backends may be nil.
func NewConfirmer(secretKey string, backends *stripe.Backends) *Confirmer {
	sc := client.New(secretKey, backends)
	return &Confirmer{intents: sc.PaymentIntents}
}

// Factory adapts NewConfirmer to usecase.CardConfirmerFactory.
func Factory(backends *stripe.Backends) usecase.CardConfirmerFactory {
	return func(secretKey string) usecase.CardConfirmer {
		return NewConfirmer(secretKey, backends)
	}
}

// ConfirmCardPayment confirms intentID with paymentMethodID. Card errors and intents left waiting for
// a new payment method or customer action come back as *usecase.DeclineError.
func (c *Confirmer) ConfirmCardPayment(ctx context.Context, intentID, paymentMethodID string) error {
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return errors.New("stripe: payment intent id is required")
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(strings.TrimSpace(paymentMethodID)),
	}
	params.Context = ctx

	intent, err := c.intents.Confirm(intentID, params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && isDecline(se) {
			return &usecase.DeclineError{Message: declineMessage(se)}
		}
		return fmt.Errorf("stripe: confirm payment intent: %w", err)
	}
	if intent == nil {
		return nil
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded,
		stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresCapture:
		return nil
	case stripe.PaymentIntentStatusRequiresAction:
		return &usecase.DeclineError{Message: "Your card requires additional authentication."}
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		if intent.LastPaymentError != nil {
			return &usecase.DeclineError{Message: declineMessage(intent.LastPaymentError)}
		}
		return &usecase.DeclineError{Message: "Your card was declined."}
	case stripe.PaymentIntentStatusCanceled:
		return &usecase.DeclineError{Message: "The payment was canceled."}
	}
	return fmt.Errorf("stripe: unexpected payment intent status %q", intent.Status)
}

// isDecline keeps configuration faults, such as an unknown or already confirmed intent, out of
// the shopper-facing decline path.
func isDecline(se *stripe.Error) bool {
	if se.Type == stripe.ErrorTypeCard {
		return true
	}
	return se.Type == stripe.ErrorTypeInvalidRequest && se.DeclineCode != ""
}

func declineMessage(se *stripe.Error) string {
	if msg := strings.TrimSpace(se.Msg); msg != "" {
		return msg
	}
	return "Your card was declined."
}
