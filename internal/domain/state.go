package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

// StateMutation is a multi-key change applied to one session's client state as a single unit.
type StateMutation struct {
	Puts    map[string][]byte
	Deletes []string
	// Appends adds each value as the last element of the JSON array stored under the key,
	// creating the array when the key is absent.
	Appends map[string][]byte
}

func (m StateMutation) IsEmpty() bool {
	return len(m.Puts) == 0 && len(m.Deletes) == 0 && len(m.Appends) == 0
}

// ClientStateRepository stores the per-session values the storefront would otherwise keep in the
// browser (applied coupon, selected shipping area, recent order, cart, order list).
// Values are raw JSON documents. Get returns ErrStateNotFound for an absent key.
type ClientStateRepository interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Put(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	Apply(ctx context.Context, sessionID string, m StateMutation) error
}

// TransactionManager runs fn in a database transaction carried by the context.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AppendToJSONArray returns arr with elem added as its last element. An empty arr starts a new array.
func AppendToJSONArray(arr, elem []byte) ([]byte, error) {
	var items []json.RawMessage
	if len(arr) > 0 {
		if err := json.Unmarshal(arr, &items); err != nil {
			return nil, fmt.Errorf("existing value is not a JSON array: %w", err)
		}
	}
	if !json.Valid(elem) {
		return nil, fmt.Errorf("appended value is not valid JSON")
	}
	items = append(items, json.RawMessage(elem))
	return json.Marshal(items)
}
