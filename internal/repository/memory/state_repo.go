package memoryrepo

import (
	"context"
	"maps"
	"sync"
	"time"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/cache"
)

// stateRepository keeps each session's values as one immutable map in the cache.
// Writers replace the map under mu, so readers never see a partial mutation.
type stateRepository struct {
	mu    sync.Mutex
	cache cache.CacheService
	ttl   time.Duration
}

// NewStateRepository stores client state in process memory. Sessions expire ttl after their last write.
func NewStateRepository(c cache.CacheService, ttl time.Duration) domain.ClientStateRepository {
	return &stateRepository{cache: c, ttl: ttl}
}

func stateKey(sessionID string) string {
	return "state:" + sessionID
}

func (r *stateRepository) snapshot(sessionID string) map[string][]byte {
	if val, found := r.cache.Get(stateKey(sessionID)); found {
		return val.(map[string][]byte)
	}
	return nil
}

func (r *stateRepository) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	values := r.snapshot(sessionID)
	v, ok := values[key]
	if !ok {
		return nil, domain.ErrStateNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *stateRepository) Put(ctx context.Context, sessionID, key string, value []byte) error {
	return r.Apply(ctx, sessionID, domain.StateMutation{Puts: map[string][]byte{key: value}})
}

func (r *stateRepository) Delete(ctx context.Context, sessionID string, keys ...string) error {
	return r.Apply(ctx, sessionID, domain.StateMutation{Deletes: keys})
}

func (r *stateRepository) Apply(_ context.Context, sessionID string, m domain.StateMutation) error {
	if m.IsEmpty() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := maps.Clone(r.snapshot(sessionID))
	if next == nil {
		next = make(map[string][]byte)
	}

	for _, k := range m.Deletes {
		delete(next, k)
	}
	for k, v := range m.Puts {
		next[k] = append([]byte(nil), v...)
	}
	for k, v := range m.Appends {
		merged, err := domain.AppendToJSONArray(next[k], v)
		if err != nil {
			return err
		}
		next[k] = merged
	}

	r.cache.Set(stateKey(sessionID), next, r.ttl)
	return nil
}
