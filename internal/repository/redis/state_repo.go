package redisrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-bff/internal/domain"

	"github.com/redis/go-redis/v9"
)

const maxApplyRetries = 5

// StateRepository keeps each session in one hash, "state:{sid}", refreshed to ttl on every write.
type StateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStateRepository(client *redis.Client, ttl time.Duration) *StateRepository {
	return &StateRepository{client: client, ttl: ttl}
}

func stateKey(sessionID string) string {
	return fmt.Sprintf("state:%s", sessionID)
}

func (r *StateRepository) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	data, err := r.client.HGet(ctx, stateKey(sessionID), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget failed: %w", err)
	}
	return data, nil
}

func (r *StateRepository) Put(ctx context.Context, sessionID, key string, value []byte) error {
	return r.Apply(ctx, sessionID, domain.StateMutation{Puts: map[string][]byte{key: value}})
}

func (r *StateRepository) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, stateKey(sessionID), keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel failed: %w", err)
	}
	return nil
}

// Apply writes the mutation in one MULTI/EXEC. Appends read the current arrays under WATCH, so a
// concurrent writer forces a retry instead of a lost element.
func (r *StateRepository) Apply(ctx context.Context, sessionID string, m domain.StateMutation) error {
	if m.IsEmpty() {
		return nil
	}
	key := stateKey(sessionID)

	txf := func(tx *redis.Tx) error {
		appended := make(map[string][]byte, len(m.Appends))
		for field, elem := range m.Appends {
			current, err := tx.HGet(ctx, key, field).Bytes()
			if err != nil && !errors.Is(err, redis.Nil) {
				return fmt.Errorf("redis hget failed: %w", err)
			}
			next, err := domain.AppendToJSONArray(current, elem)
			if err != nil {
				return fmt.Errorf("append %s: %w", field, err)
			}
			appended[field] = next
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(m.Deletes) > 0 {
				pipe.HDel(ctx, key, m.Deletes...)
			}
			values := make(map[string]any, len(m.Puts)+len(appended))
			for field, v := range m.Puts {
				values[field] = v
			}
			for field, v := range appended {
				values[field] = v
			}
			if len(values) > 0 {
				pipe.HSet(ctx, key, values)
			}
			pipe.Expire(ctx, key, r.ttl)
			return nil
		})
		return err
	}

	for range maxApplyRetries {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("apply client state: %w", err)
		}
		return nil
	}
	return fmt.Errorf("apply client state: %w", redis.TxFailedErr)
}
