package usecase

import (
	"context"
	"testing"

	"storefront-bff/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shippingAreas() []domain.ShippingArea {
	return []domain.ShippingArea{
		{ID: 1, Name: "Inside city", ShippingCost: dec("5.00")},
		{ID: 2, Name: "Outside city", ShippingCost: dec("12.50")},
	}
}

func TestShippingSelect_RestoredAfterReload(t *testing.T) {
	state := newTestState(t)
	sess := testSession()
	repo := &fakeShippingRepo{areas: shippingAreas()}

	id := int64(2)
	_, err := NewShippingUsecase(repo, state).Select(context.Background(), sess, &id)
	require.NoError(t, err)
	calls := repo.calls

	// a fresh usecase over the same store stands in for a page reload
	reloaded := NewShippingUsecase(repo, state)
	area, err := reloaded.Selected(context.Background(), sess)
	require.NoError(t, err)

	require.NotNil(t, area)
	assert.Equal(t, int64(2), area.ID)
	assert.Equal(t, "12.50", FormatAmount(area.ShippingCost))
	assert.Equal(t, calls, repo.calls, "restoring the selection needs no fetch")
}

func TestShippingSelect_UnknownArea(t *testing.T) {
	uc := NewShippingUsecase(&fakeShippingRepo{areas: shippingAreas()}, newTestState(t))

	id := int64(9)
	_, err := uc.Select(context.Background(), testSession(), &id)
	assert.ErrorIs(t, err, ErrShippingAreaUnavailable)
}

func TestShippingSelect_NilClears(t *testing.T) {
	state := newTestState(t)
	sess := testSession()
	uc := NewShippingUsecase(&fakeShippingRepo{areas: shippingAreas()}, state)

	id := int64(1)
	_, err := uc.Select(context.Background(), sess, &id)
	require.NoError(t, err)

	area, err := uc.Select(context.Background(), sess, nil)
	require.NoError(t, err)
	assert.Nil(t, area)

	stored, err := uc.Selected(context.Background(), sess)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestShippingRevalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("required when areas exist", func(t *testing.T) {
		uc := NewShippingUsecase(&fakeShippingRepo{areas: shippingAreas()}, newTestState(t))
		_, err := uc.Revalidate(ctx, testSession())
		assert.ErrorIs(t, err, ErrShippingAreaRequired)
	})

	t.Run("optional when no areas exist", func(t *testing.T) {
		uc := NewShippingUsecase(&fakeShippingRepo{}, newTestState(t))
		area, err := uc.Revalidate(ctx, testSession())
		require.NoError(t, err)
		assert.Nil(t, area)
	})

	t.Run("removed area is cleared", func(t *testing.T) {
		state := newTestState(t)
		sess := testSession()
		repo := &fakeShippingRepo{areas: shippingAreas()}
		uc := NewShippingUsecase(repo, state)
		id := int64(2)
		_, err := uc.Select(ctx, sess, &id)
		require.NoError(t, err)

		repo.areas = repo.areas[:1]
		_, err = uc.Revalidate(ctx, sess)
		assert.ErrorIs(t, err, ErrShippingAreaUnavailable)

		stored, err := uc.Selected(ctx, sess)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("changed cost is refreshed", func(t *testing.T) {
		state := newTestState(t)
		sess := testSession()
		repo := &fakeShippingRepo{areas: shippingAreas()}
		uc := NewShippingUsecase(repo, state)
		id := int64(1)
		_, err := uc.Select(ctx, sess, &id)
		require.NoError(t, err)

		repo.areas[0].ShippingCost = dec("7.00")
		area, err := uc.Revalidate(ctx, sess)
		require.NoError(t, err)
		assert.Equal(t, "7.00", FormatAmount(area.ShippingCost))

		stored, err := uc.Selected(ctx, sess)
		require.NoError(t, err)
		assert.Equal(t, "7.00", FormatAmount(stored.ShippingCost))
	})
}

func TestShippingListAreas_NeverNil(t *testing.T) {
	uc := NewShippingUsecase(&fakeShippingRepo{}, newTestState(t))

	areas, err := uc.ListAreas(context.Background(), testSession())
	require.NoError(t, err)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}
