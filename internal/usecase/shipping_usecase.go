package usecase

import (
	"context"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"
)

type ShippingUsecase struct {
	shippingRepo domain.ShippingRepository
	state        *ClientState
}

func NewShippingUsecase(shippingRepo domain.ShippingRepository, state *ClientState) *ShippingUsecase {
	return &ShippingUsecase{shippingRepo: shippingRepo, state: state}
}

func (u *ShippingUsecase) ListAreas(ctx context.Context, sess *domain.Session) ([]domain.ShippingArea, error) {
	areas, err := u.shippingRepo.ListShippingAreas(ctx, sess)
	if err != nil {
		return nil, err
	}
	if areas == nil {
		areas = []domain.ShippingArea{}
	}
	return areas, nil
}

// Select persists the full area record so a later reload restores the same cost without a fetch.
// A nil id clears the selection.
func (u *ShippingUsecase) Select(ctx context.Context, sess *domain.Session, areaID *int64) (*domain.ShippingArea, error) {
	if areaID == nil {
		return nil, u.state.ClearShippingArea(ctx, sess.ID)
	}

	areas, err := u.ListAreas(ctx, sess)
	if err != nil {
		return nil, err
	}
	area := domain.FindShippingArea(areas, *areaID)
	if area == nil {
		return nil, ErrShippingAreaUnavailable
	}

	if err := u.state.SaveShippingArea(ctx, sess.ID, area); err != nil {
		return nil, err
	}
	return area, nil
}

// Selected reads the persisted selection only.
func (u *ShippingUsecase) Selected(ctx context.Context, sess *domain.Session) (*domain.ShippingArea, error) {
	return u.state.ShippingArea(ctx, sess.ID)
}

// Revalidate checks the persisted selection against the current area list and returns the fresh
// record. A selection is required whenever any area exists.
func (u *ShippingUsecase) Revalidate(ctx context.Context, sess *domain.Session) (*domain.ShippingArea, error) {
	areas, err := u.ListAreas(ctx, sess)
	if err != nil {
		return nil, err
	}
	stored, err := u.state.ShippingArea(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	if stored == nil {
		if len(areas) > 0 {
			return nil, ErrShippingAreaRequired
		}
		return nil, nil
	}

	fresh := domain.FindShippingArea(areas, stored.ID)
	if fresh == nil {
		if err := u.state.ClearShippingArea(ctx, sess.ID); err != nil {
			logger.WithContext(ctx).Error().Err(err).Msg("Failed to clear stale shipping area")
		}
		return nil, ErrShippingAreaUnavailable
	}

	if !fresh.ShippingCost.Equal(stored.ShippingCost) || fresh.Name != stored.Name {
		if err := u.state.SaveShippingArea(ctx, sess.ID, fresh); err != nil {
			return nil, err
		}
	}
	return fresh, nil
}
