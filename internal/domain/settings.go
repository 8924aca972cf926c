package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

const enabledKey = "is_enabled"

// ProviderSettings is the flat key/value record of one integration plus its is_enabled flag.
// A nil value in Values means the field is absent (sent as JSON null).
type ProviderSettings struct {
	Resource string
	Enabled  bool
	Values   map[string]any
}

func NewProviderSettings(resource string) *ProviderSettings {
	return &ProviderSettings{Resource: resource, Values: map[string]any{}}
}

// String returns the field as a string; absent and non-string values yield "".
func (s *ProviderSettings) String(key string) string {
	if s == nil {
		return ""
	}
	switch v := s.Values[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func (s *ProviderSettings) Bool(key string) bool {
	if s == nil {
		return false
	}
	return truthy(s.Values[key])
}

// IsEnabled is nil-safe: a missing record is a disabled integration.
func (s *ProviderSettings) IsEnabled() bool {
	return s != nil && s.Enabled
}

func (s ProviderSettings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Values)+1)
	for k, v := range s.Values {
		out[k] = v
	}
	out[enabledKey] = s.Enabled
	return json.Marshal(out)
}

func (s *ProviderSettings) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	s.Enabled = truthy(raw[enabledKey])
	delete(raw, enabledKey)
	s.Values = raw
	return nil
}

// truthy accepts JSON true and the integer 1 some backends emit for boolean columns.
func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b == 1
	case json.Number:
		return b.String() == "1"
	}
	return false
}

type SettingsRepository interface {
	GetSettings(ctx context.Context, sess *Session, resource string) (*ProviderSettings, error)
	SaveSettings(ctx context.Context, sess *Session, settings *ProviderSettings) error
}
