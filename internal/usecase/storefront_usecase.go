package usecase

import (
	"context"
	"strings"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"
)

var socialNetworks = []string{"facebook", "twitter", "instagram", "tiktok"}

// StorefrontUsecase backs the public footer and contact page.
type StorefrontUsecase struct {
	settings    *SettingsUsecase
	contactRepo domain.ContactRepository
}

func NewStorefrontUsecase(settings *SettingsUsecase, contactRepo domain.ContactRepository) *StorefrontUsecase {
	return &StorefrontUsecase{settings: settings, contactRepo: contactRepo}
}

// Footer returns nil when the contact-info integration is disabled: the footer is hidden entirely.
func (u *StorefrontUsecase) Footer(ctx context.Context) *domain.Footer {
	contact, enabled := u.settings.Enabled(ctx, domain.ResourceContactInfo)
	if !enabled {
		return nil
	}

	footer := &domain.Footer{
		Address:     contact.String("address"),
		Phone:       contact.String("phone"),
		Email:       contact.String("email"),
		SocialLinks: []domain.SocialLink{},
	}

	if social, ok := u.settings.Enabled(ctx, domain.ResourceSocialMedia); ok {
		for _, network := range socialNetworks {
			if link := strings.TrimSpace(social.String(network)); link != "" {
				footer.SocialLinks = append(footer.SocialLinks, domain.SocialLink{Network: network, URL: link})
			}
		}
	}

	if general, ok := u.settings.Enabled(ctx, domain.ResourceGeneral); ok {
		footer.BrandName = general.String("brand_name")
		footer.LogoURL = general.String("logo_url")
	}

	return footer
}

type ContactInfo struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// ContactInfo is shown on the contact page regardless of the footer toggle.
func (u *StorefrontUsecase) ContactInfo(ctx context.Context) (*ContactInfo, error) {
	contact, err := u.settings.GetSettings(ctx, nil, domain.ResourceContactInfo)
	if err != nil {
		return nil, err
	}
	return &ContactInfo{
		Address: contact.String("address"),
		Phone:   contact.String("phone"),
		Email:   contact.String("email"),
	}, nil
}

func (u *StorefrontUsecase) SendContactMessage(ctx context.Context, msg *domain.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		verr := ValidationErrors{}
		for field, v := range map[string]string{"name": msg.Name, "email": msg.Email, "message": msg.Message} {
			if v == "" {
				verr[field] = "is required"
			}
		}
		return verr
	}

	if err := u.contactRepo.SendContactMessage(ctx, msg); err != nil {
		return err
	}
	logger.WithContext(ctx).Info().Str("email", msg.Email).Msg("Contact message sent")
	return nil
}
