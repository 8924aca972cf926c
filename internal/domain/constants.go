package domain

// Payment Methods as selected by the shopper
const (
	PaymentMethodCard   = "credit-card"
	PaymentMethodPayPal = "paypal"
	PaymentMethodCOD    = "cash-on-delivery"
)

// Payment method labels stored on the backend order
const (
	PaymentLabelCard   = "credit card"
	PaymentLabelPayPal = "paypal"
	PaymentLabelCOD    = "cash on delivery"
)

// Payment Statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Client state keys, one value per session each
const (
	StateKeyAppliedCoupon = "appliedCoupon"
	StateKeyShippingArea  = "selectedShippingArea"
	StateKeyRecentOrder   = "recentOrder"
	StateKeyCart          = "cart"
	StateKeyOrders        = "orders"

	// StateKeyPendingPaymentIntent holds a confirmed card payment whose order post failed.
	StateKeyPendingPaymentIntent = "pendingPaymentIntent"
)

// Settings resources exposed by the backend under /api/admin/settings/{resource}
const (
	ResourceContactInfo = "contact-info"
	ResourceGeneral     = "general"
	ResourceSocialMedia = "social-media"
	ResourceMailchimp   = "mailchimp"
	ResourcePayPal      = "paypal"
	ResourceStripe      = "stripe"
	ResourcePusher      = "pusher"
)

var SettingsResources = []string{
	ResourceContactInfo,
	ResourceGeneral,
	ResourceSocialMedia,
	ResourceMailchimp,
	ResourcePayPal,
	ResourceStripe,
	ResourcePusher,
}

// ConfirmationPath is where the storefront lands after a successful order.
const ConfirmationPath = "/thank-you/order/%d"
