package domain

import "context"

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SocialLink is one non-empty social profile shown in the storefront footer.
type SocialLink struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

// Footer is nil in responses when the contact-info integration is disabled.
type Footer struct {
	Address     string       `json:"address"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email"`
	BrandName   string       `json:"brandName,omitempty"`
	LogoURL     string       `json:"logoUrl,omitempty"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

type ContactRepository interface {
	SendContactMessage(ctx context.Context, msg *ContactMessage) error
}
