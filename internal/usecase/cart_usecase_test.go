package usecase

import (
	"context"
	"testing"

	"storefront-bff/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUsecase_ReplaceAndGet(t *testing.T) {
	uc := NewCartUsecase(newTestState(t), 10)
	sess := testSession()
	ctx := context.Background()

	empty, err := uc.GetCart(ctx, sess)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
	assert.NotNil(t, empty.Lines)

	_, err = uc.ReplaceCart(ctx, sess, &domain.Cart{Lines: []domain.CartLine{
		{ProductID: 3, Name: "Sneaker", Price: dec("49.99"), Quantity: 2},
	}})
	require.NoError(t, err)

	got, err := uc.GetCart(ctx, sess)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Sneaker", got.Lines[0].Name)
	assert.True(t, got.Lines[0].Price.Equal(dec("49.99")))
}

func TestCartUsecase_ReplaceValidation(t *testing.T) {
	uc := NewCartUsecase(newTestState(t), 10)

	_, err := uc.ReplaceCart(context.Background(), testSession(), &domain.Cart{Lines: []domain.CartLine{
		{ProductID: 0, Price: dec("1"), Quantity: 1},
		{ProductID: 1, Price: dec("1"), Quantity: 0},
		{ProductID: 1, Price: dec("1"), Quantity: 11},
		{ProductID: 1, Price: dec("-1"), Quantity: 1},
	}})

	var verr ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "items[0].product_id")
	assert.Contains(t, verr, "items[1].quantity")
	assert.Contains(t, verr, "items[2].quantity")
	assert.Contains(t, verr, "items[3].price")
}

func TestCartUsecase_NilCartClears(t *testing.T) {
	uc := NewCartUsecase(newTestState(t), 0)

	cart, err := uc.ReplaceCart(context.Background(), testSession(), nil)
	require.NoError(t, err)
	assert.NotNil(t, cart.Lines)
	assert.Empty(t, cart.Lines)
}

func TestOrderUsecase_EmptyHistory(t *testing.T) {
	uc := NewOrderUsecase(newTestState(t))
	ctx := context.Background()

	recent, err := uc.RecentOrder(ctx, testSession())
	require.NoError(t, err)
	assert.Nil(t, recent)

	orders, err := uc.ListOrders(ctx, testSession())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestOrderUsecase_AfterFinalize(t *testing.T) {
	state := newTestState(t)
	sess := testSession()
	ctx := context.Background()
	require.NoError(t, state.FinalizeOrder(ctx, sess.ID, domain.RawJSON(`{"id":42}`)))

	uc := NewOrderUsecase(state)
	recent, err := uc.RecentOrder(ctx, sess)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42}`, string(recent))

	orders, err := uc.ListOrders(ctx, sess)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}
