package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"
)

type FormState string

const (
	FormLoading    FormState = "loading"
	FormReady      FormState = "ready"
	FormSubmitting FormState = "submitting"
)

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

type FormMessage struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// Form is the fetch-edit-submit cycle for one settings resource, driven by its Schema.
// A Form is not safe for concurrent use.
type Form struct {
	schema  Schema
	repo    domain.SettingsRepository
	state   FormState
	enabled bool
	values  map[string]any
	message *FormMessage
}

func NewForm(schema Schema, repo domain.SettingsRepository) *Form {
	f := &Form{
		schema: schema,
		repo:   repo,
		state:  FormLoading,
	}
	f.resetValues()
	return f
}

func (f *Form) resetValues() {
	f.values = make(map[string]any, len(f.schema.Fields))
	for _, fd := range f.schema.Fields {
		f.values[fd.Name] = defaultValue(fd)
	}
}

func defaultValue(fd Field) any {
	if fd.Default != nil {
		return fd.Default
	}
	if fd.Type == FieldBool {
		return false
	}
	return ""
}

func (f *Form) State() FormState { return f.state }
func (f *Form) Enabled() bool { return f.enabled }
func (f *Form) Message() *FormMessage { return f.message }
func (f *Form) Value(name string) any { return f.values[name] }
func (f *Form) Schema() Schema { return f.schema }

// Load fetches the stored record. On failure the form still becomes ready with default values
// and an error message, so the admin can fill it in from scratch.
func (f *Form) Load(ctx context.Context, sess *domain.Session) error {
	f.state = FormLoading
	f.resetValues()

	settings, err := f.repo.GetSettings(ctx, sess, f.schema.Resource)
	f.state = FormReady
	if err != nil {
		f.message = &FormMessage{Kind: MessageError, Text: fmt.Sprintf("Error fetching %s settings", f.schema.Title)}
		return fmt.Errorf("load %s settings: %w", f.schema.Resource, err)
	}

	if settings == nil {
		settings = domain.NewProviderSettings(f.schema.Resource)
	}

	f.enabled = settings.IsEnabled()
	for _, fd := range f.schema.Fields {
		if fd.Type == FieldReadOnly {
			continue
		}
		v, ok := settings.Values[fd.Name]
		if !ok || v == nil {
			continue
		}
		if fd.Type == FieldBool {
			f.values[fd.Name] = settings.Bool(fd.Name)
			continue
		}
		if s := settings.String(fd.Name); s != "" {
			f.values[fd.Name] = s
		}
	}
	return nil
}

func (f *Form) SetEnabled(enabled bool) {
	f.enabled = enabled
}

// Set assigns one field. Read-only fields keep their fixed value.
func (f *Form) Set(name string, value any) error {
	fd, ok := f.schema.Field(name)
	if !ok {
		return ValidationErrors{name: "is not a field of " + f.schema.Resource}
	}
	if fd.Type == FieldReadOnly {
		return nil
	}

	if fd.Type == FieldBool {
		b, ok := value.(bool)
		if !ok && value != nil {
			return ValidationErrors{name: "must be a boolean"}
		}
		f.values[name] = b
		return nil
	}

	switch v := value.(type) {
	case nil:
		f.values[name] = defaultValue(fd)
	case string:
		f.values[name] = v
	default:
		return ValidationErrors{name: "must be a string"}
	}
	return nil
}

// Bind applies a submitted record. Fields missing from values keep their current value.
func (f *Form) Bind(values map[string]any, enabled *bool) error {
	if enabled != nil {
		f.SetEnabled(*enabled)
	}
	verr := ValidationErrors{}
	for name, v := range values {
		if err := f.Set(name, v); err != nil {
			if ve, ok := err.(ValidationErrors); ok {
				for k, m := range ve {
					verr[k] = m
				}
				continue
			}
			return err
		}
	}
	if len(verr) > 0 {
		return verr
	}
	return nil
}

// VisibleFields is empty while the integration is disabled.
func (f *Form) VisibleFields() []Field {
	if !f.enabled {
		return []Field{}
	}
	return f.schema.Fields
}

// Validate checks only visible fields, so a disabled form always passes.
func (f *Form) Validate() error {
	verr := ValidationErrors{}
	for _, fd := range f.VisibleFields() {
		s, _ := f.values[fd.Name].(string)
		blank := strings.TrimSpace(s) == ""

		switch fd.Type {
		case FieldBool, FieldReadOnly:
			continue
		case FieldChoice:
			if !blank && !slices.Contains(fd.Choices, s) {
				verr[fd.Name] = "must be one of " + strings.Join(fd.Choices, ", ")
				continue
			}
		case FieldEmail:
			if !blank {
				if _, err := mail.ParseAddress(s); err != nil {
					verr[fd.Name] = "must be a valid email address"
					continue
				}
			}
		case FieldURL:
			if !blank {
				if u, err := url.Parse(s); err != nil || u.Scheme == "" || u.Host == "" {
					verr[fd.Name] = "must be a valid URL"
					continue
				}
			}
		}

		if fd.RequiredWhenEnabled && blank {
			verr[fd.Name] = "is required"
		}
	}
	if len(verr) > 0 {
		return verr
	}
	return nil
}

// Record is the full outgoing record: every schema field, blank strings as null.
func (f *Form) Record() *domain.ProviderSettings {
	rec := domain.NewProviderSettings(f.schema.Resource)
	rec.Enabled = f.enabled
	for _, fd := range f.schema.Fields {
		switch fd.Type {
		case FieldReadOnly:
			rec.Values[fd.Name] = fd.Default
		case FieldBool:
			b, _ := f.values[fd.Name].(bool)
			rec.Values[fd.Name] = b
		default:
			s, _ := f.values[fd.Name].(string)
			if strings.TrimSpace(s) == "" {
				rec.Values[fd.Name] = nil
			} else {
				rec.Values[fd.Name] = s
			}
		}
	}
	return rec
}

// Submit validates and sends the whole record. The message is reset first; a failed save keeps the
// in-memory values as they are.
func (f *Form) Submit(ctx context.Context, sess *domain.Session) error {
	if f.state != FormReady {
		return ErrFormBusy
	}
	f.message = nil

	if err := f.Validate(); err != nil {
		f.message = &FormMessage{Kind: MessageError, Text: "Please fill in all required fields"}
		return err
	}

	f.state = FormSubmitting
	err := f.repo.SaveSettings(ctx, sess, f.Record())
	f.state = FormReady

	if err != nil {
		f.message = &FormMessage{Kind: MessageError, Text: fmt.Sprintf("Error updating %s settings", f.schema.Title)}
		logger.WithContext(ctx).Error().Err(err).Str("resource", f.schema.Resource).Msg("Settings update failed")
		return fmt.Errorf("save %s settings: %w", f.schema.Resource, err)
	}

	f.message = &FormMessage{Kind: MessageSuccess, Text: fmt.Sprintf("%s settings updated successfully!", f.schema.Title)}
	return nil
}

type FieldView struct {
	Field
	Value any `json:"value"`
}

type FormView struct {
	Resource string       `json:"resource"`
	Title    string       `json:"title"`
	State    FormState    `json:"state"`
	Enabled  bool         `json:"is_enabled"`
	Fields   []FieldView  `json:"fields"`
	Message  *FormMessage `json:"message,omitempty"`
}

// View renders the form for the admin console: only visible fields, with current values.
func (f *Form) View() FormView {
	visible := f.VisibleFields()
	fields := make([]FieldView, 0, len(visible))
	for _, fd := range visible {
		fields = append(fields, FieldView{Field: fd, Value: f.values[fd.Name]})
	}
	return FormView{
		Resource: f.schema.Resource,
		Title:    f.schema.Title,
		State:    f.state,
		Enabled:  f.enabled,
		Fields:   fields,
		Message:  f.message,
	}
}
