package payments

import (
	"context"
	"errors"
	"testing"

	"storefront-bff/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"
)

type fakeIntents struct {
	gotID     string
	gotParams *stripe.PaymentIntentConfirmParams
	intent    *stripe.PaymentIntent
	err       error
}

func (f *fakeIntents) Confirm(id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error) {
	f.gotID = id
	f.gotParams = params
	return f.intent, f.err
}

func TestConfirmCardPayment_Succeeded(t *testing.T) {
	api := &fakeIntents{intent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded}}
	c := &Confirmer{intents: api}
	ctx := context.Background()

	require.NoError(t, c.ConfirmCardPayment(ctx, "pi_123", "pm_card_visa"))
	assert.Equal(t, "pi_123", api.gotID)
	assert.Equal(t, "pm_card_visa", *api.gotParams.PaymentMethod)
	assert.Equal(t, ctx, api.gotParams.Context)
}

func TestConfirmCardPayment_CardErrorIsDecline(t *testing.T) {
	api := &fakeIntents{err: &stripe.Error{Type: stripe.ErrorTypeCard, Msg: "Your card has insufficient funds."}}
	c := &Confirmer{intents: api}

	err := c.ConfirmCardPayment(context.Background(), "pi_123", "pm_x")

	require.ErrorIs(t, err, usecase.ErrPaymentDeclined)
	var decline *usecase.DeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, "Your card has insufficient funds.", decline.Message)
}

func TestConfirmCardPayment_InvalidRequestErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         *stripe.Error
		wantDecline bool
	}{
		{
			name:        "with decline code",
			err:         &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, DeclineCode: stripe.DeclineCodeGenericDecline, Msg: "Your card was declined."},
			wantDecline: true,
		},
		{
			name: "unknown intent",
			err:  &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Code: stripe.ErrorCodeResourceMissing, Msg: "No such payment_intent: 'pi_123'"},
		},
		{
			name: "already confirmed intent",
			err:  &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Code: stripe.ErrorCodePaymentIntentUnexpectedState, Msg: "This PaymentIntent's status is succeeded."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Confirmer{intents: &fakeIntents{err: tt.err}}

			err := c.ConfirmCardPayment(context.Background(), "pi_123", "pm_x")

			require.Error(t, err)
			if tt.wantDecline {
				assert.ErrorIs(t, err, usecase.ErrPaymentDeclined)
				return
			}
			assert.NotErrorIs(t, err, usecase.ErrPaymentDeclined)
		})
	}
}

func TestConfirmCardPayment_RequiresPaymentMethod(t *testing.T) {
	api := &fakeIntents{intent: &stripe.PaymentIntent{
		Status:           stripe.PaymentIntentStatusRequiresPaymentMethod,
		LastPaymentError: &stripe.Error{Msg: "Your card was declined."},
	}}
	c := &Confirmer{intents: api}

	err := c.ConfirmCardPayment(context.Background(), "pi_123", "pm_x")
	assert.ErrorIs(t, err, usecase.ErrPaymentDeclined)
}

func TestConfirmCardPayment_RequiresAction(t *testing.T) {
	api := &fakeIntents{intent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusRequiresAction}}
	c := &Confirmer{intents: api}

	err := c.ConfirmCardPayment(context.Background(), "pi_123", "pm_x")
	assert.ErrorIs(t, err, usecase.ErrPaymentDeclined)
}

func TestConfirmCardPayment_TransportErrorIsNotDecline(t *testing.T) {
	api := &fakeIntents{err: errors.New("connection reset")}
	c := &Confirmer{intents: api}

	err := c.ConfirmCardPayment(context.Background(), "pi_123", "pm_x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrPaymentDeclined)
}

func TestConfirmCardPayment_MissingIntent(t *testing.T) {
	c := &Confirmer{intents: &fakeIntents{}}
	assert.Error(t, c.ConfirmCardPayment(context.Background(), " ", "pm_x"))
}
