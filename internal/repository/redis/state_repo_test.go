package redisrepo

import (
	"context"
	"testing"
	"time"

	"storefront-bff/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*StateRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStateRepository(client, time.Hour), mr
}

func TestGet_Missing(t *testing.T) {
	repo, _ := setupTestRedis(t)

	_, err := repo.Get(context.Background(), "s1", "cart")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestPut_SetsValueAndTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", "appliedCoupon", []byte(`{"coupon_code":"SAVE10"}`)))

	got, err := repo.Get(ctx, "s1", "appliedCoupon")
	require.NoError(t, err)
	assert.JSONEq(t, `{"coupon_code":"SAVE10"}`, string(got))
	assert.Equal(t, time.Hour, mr.TTL(stateKey("s1")))
}

func TestDelete_RemovesOnlyNamedKeys(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", "appliedCoupon", []byte(`{}`)))
	require.NoError(t, repo.Put(ctx, "s1", "cart", []byte(`{"lines":[]}`)))

	require.NoError(t, repo.Delete(ctx, "s1", "appliedCoupon"))

	_, err := repo.Get(ctx, "s1", "appliedCoupon")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
	_, err = repo.Get(ctx, "s1", "cart")
	assert.NoError(t, err)
}

func TestApply_FinalizeShape(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", "appliedCoupon", []byte(`{}`)))
	require.NoError(t, repo.Put(ctx, "s1", "selectedShippingArea", []byte(`{"id":1}`)))
	require.NoError(t, repo.Put(ctx, "s1", "orders", []byte(`[{"id":1}]`)))

	err := repo.Apply(ctx, "s1", domain.StateMutation{
		Puts:    map[string][]byte{"recentOrder": []byte(`{"id":2}`)},
		Deletes: []string{"appliedCoupon", "selectedShippingArea"},
		Appends: map[string][]byte{"orders": []byte(`{"id":2}`)},
	})
	require.NoError(t, err)

	orders, err := repo.Get(ctx, "s1", "orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(orders))

	recent, err := repo.Get(ctx, "s1", "recentOrder")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2}`, string(recent))

	_, err = repo.Get(ctx, "s1", "appliedCoupon")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
	_, err = repo.Get(ctx, "s1", "selectedShippingArea")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestApply_AppendStartsArray(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Apply(ctx, "s1", domain.StateMutation{
		Appends: map[string][]byte{"orders": []byte(`{"id":7}`)},
	}))

	orders, err := repo.Get(ctx, "s1", "orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7}]`, string(orders))
}

func TestApply_InvalidAppendLeavesStateUntouched(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", "appliedCoupon", []byte(`{}`)))

	err := repo.Apply(ctx, "s1", domain.StateMutation{
		Deletes: []string{"appliedCoupon"},
		Appends: map[string][]byte{"orders": []byte(`not json`)},
	})
	require.Error(t, err)

	_, err = repo.Get(ctx, "s1", "appliedCoupon")
	assert.NoError(t, err)
}

func TestSessionsAreIsolated(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", "cart", []byte(`{"lines":[]}`)))

	_, err := repo.Get(ctx, "s2", "cart")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}
