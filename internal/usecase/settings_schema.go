package usecase

import (
	"storefront-bff/internal/domain"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldURL      FieldType = "url"
	FieldSecret   FieldType = "secret"
	FieldBool     FieldType = "bool"
	FieldChoice   FieldType = "choice"
	FieldReadOnly FieldType = "readonly"
)

// Field is one declarative entry of a settings schema.
type Field struct {
	Name                string    `json:"name"`
	Label               string    `json:"label"`
	Type                FieldType `json:"type"`
	RequiredWhenEnabled bool      `json:"required"`
	Default             any       `json:"default,omitempty"`
	Choices             []string  `json:"choices,omitempty"`
}

// Schema describes one provider's settings resource.
type Schema struct {
	Resource string  `json:"resource"`
	Title    string  `json:"title"`
	Fields   []Field `json:"fields"`
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func required(name, label string, t FieldType) Field {
	return Field{Name: name, Label: label, Type: t, RequiredWhenEnabled: true}
}

func optional(name, label string, t FieldType) Field {
	return Field{Name: name, Label: label, Type: t}
}

var schemas = map[string]Schema{
	domain.ResourceContactInfo: {
		Resource: domain.ResourceContactInfo,
		Title:    "Contact information",
		Fields: []Field{
			required("address", "Address", FieldText),
			required("phone", "Phone", FieldText),
			required("email", "Email", FieldEmail),
		},
	},
	domain.ResourceGeneral: {
		Resource: domain.ResourceGeneral,
		Title:    "General",
		Fields: []Field{
			required("brand_name", "Brand Name", FieldText),
			required("description", "Description", FieldText),
			{Name: "maintenance_mode", Label: "Maintenance Mode", Type: FieldBool, Default: false},
			optional("logo_url", "Logo", FieldURL),
		},
	},
	domain.ResourceSocialMedia: {
		Resource: domain.ResourceSocialMedia,
		Title:    "Social media",
		Fields: []Field{
			required("facebook", "Facebook URL", FieldURL),
			required("twitter", "Twitter URL", FieldURL),
			required("instagram", "Instagram URL", FieldURL),
			required("tiktok", "TikTok URL", FieldURL),
		},
	},
	domain.ResourceMailchimp: {
		Resource: domain.ResourceMailchimp,
		Title:    "Mailchimp",
		Fields: []Field{
			required("api_key", "Mailchimp API Key", FieldSecret),
			required("list_id", "Mailchimp List ID", FieldText),
		},
	},
	domain.ResourcePayPal: {
		Resource: domain.ResourcePayPal,
		Title:    "PayPal",
		Fields: []Field{
			required("client_id", "PayPal Client ID", FieldText),
			required("client_secret", "PayPal Client Secret", FieldSecret),
			{Name: "mode", Label: "PayPal Mode", Type: FieldChoice, Default: "sandbox", Choices: []string{"sandbox", "live"}},
		},
	},
	domain.ResourceStripe: {
		Resource: domain.ResourceStripe,
		Title:    "Stripe",
		Fields: []Field{
			required("api_key", "Stripe API Key", FieldText),
			required("api_secret", "Stripe API Secret", FieldSecret),
			optional("webhook_secret", "Stripe Webhook Secret (Optional)", FieldSecret),
		},
	},
	domain.ResourcePusher: {
		Resource: domain.ResourcePusher,
		Title:    "Pusher",
		Fields: []Field{
			{Name: "broadcast_driver", Label: "Broadcast Driver", Type: FieldReadOnly, Default: "pusher"},
			required("app_id", "Pusher App ID", FieldText),
			required("app_key", "Pusher App Key", FieldText),
			required("app_secret", "Pusher App Secret", FieldSecret),
			required("app_cluster", "Pusher App Cluster", FieldText),
		},
	},
}

// SchemaFor returns the schema of a settings resource.
func SchemaFor(resource string) (Schema, error) {
	s, ok := schemas[resource]
	if !ok {
		return Schema{}, ErrUnknownResource
	}
	return s, nil
}
