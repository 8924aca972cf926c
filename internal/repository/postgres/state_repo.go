package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StateRepository struct {
	db  *pgxpool.Pool
	tx  domain.TransactionManager
	ttl time.Duration
}

// NewStateRepository stores client state in the client_state table. Rows older than ttl read as absent.
func NewStateRepository(db *pgxpool.Pool, tx domain.TransactionManager, ttl time.Duration) *StateRepository {
	return &StateRepository{db: db, tx: tx, ttl: ttl}
}

const (
	getStateSQL = `
SELECT value FROM client_state
WHERE session_id = $1 AND key = $2 AND updated_at > now() - make_interval(secs => $3)`

	putStateSQL = `
INSERT INTO client_state (session_id, key, value, updated_at)
VALUES ($1, $2, $3::jsonb, now())
ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	// An expired row restarts the array; Get already treats it as absent.
	appendStateSQL = `
INSERT INTO client_state (session_id, key, value, updated_at)
VALUES ($1, $2, jsonb_build_array($3::jsonb), now())
ON CONFLICT (session_id, key) DO UPDATE
SET value = CASE
		WHEN client_state.updated_at <= now() - make_interval(secs => $4) THEN EXCLUDED.value
		WHEN jsonb_typeof(client_state.value) = 'array' THEN client_state.value || EXCLUDED.value
		ELSE EXCLUDED.value
	END,
	updated_at = now()`

	deleteStateSQL = `DELETE FROM client_state WHERE session_id = $1 AND key = ANY($2)`

	purgeStateSQL = `DELETE FROM client_state WHERE updated_at < now() - make_interval(secs => $1)`
)

func (r *StateRepository) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	var value []byte
	err := ConnFromContext(ctx, r.db).QueryRow(ctx, getStateSQL, sessionID, key, r.ttl.Seconds()).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get client state: %w", err)
	}
	return value, nil
}

func (r *StateRepository) Put(ctx context.Context, sessionID, key string, value []byte) error {
	if _, err := ConnFromContext(ctx, r.db).Exec(ctx, putStateSQL, sessionID, key, string(value)); err != nil {
		return fmt.Errorf("put client state: %w", err)
	}
	return nil
}

func (r *StateRepository) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := ConnFromContext(ctx, r.db).Exec(ctx, deleteStateSQL, sessionID, keys); err != nil {
		return fmt.Errorf("delete client state: %w", err)
	}
	return nil
}

// Apply runs the whole mutation in one transaction.
func (r *StateRepository) Apply(ctx context.Context, sessionID string, m domain.StateMutation) error {
	if m.IsEmpty() {
		return nil
	}
	start := time.Now()
	err := r.tx.Do(ctx, func(txCtx context.Context) error {
		if err := r.Delete(txCtx, sessionID, m.Deletes...); err != nil {
			return err
		}
		for k, v := range m.Puts {
			if err := r.Put(txCtx, sessionID, k, v); err != nil {
				return err
			}
		}
		conn := ConnFromContext(txCtx, r.db)
		for k, v := range m.Appends {
			if _, err := conn.Exec(txCtx, appendStateSQL, sessionID, k, string(v), r.ttl.Seconds()); err != nil {
				return fmt.Errorf("append client state: %w", err)
			}
		}
		return nil
	})
	logger.DBQuery("apply client_state", time.Since(start), err)
	return err
}

// Purge removes expired rows and reports how many went.
func (r *StateRepository) Purge(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, purgeStateSQL, r.ttl.Seconds())
	if err != nil {
		return 0, fmt.Errorf("purge client state: %w", err)
	}
	return tag.RowsAffected(), nil
}
