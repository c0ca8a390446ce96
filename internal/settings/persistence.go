package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	applog "nexus/internal/log"
	"nexus/internal/storage"
	"nexus/models"
)

// DefaultKey is the storage key the settings document is written under.
const DefaultKey = "nexus-settings"

// Persistence loads and saves the settings document through a storage medium.
// A nil Medium means no durable storage exists: loads return defaults and
// saves are skipped.
type Persistence struct {
	Medium storage.Medium
	Key    string
}

func NewPersistence(medium storage.Medium, key string) *Persistence {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &Persistence{Medium: medium, Key: key}
}

func (p *Persistence) key() string {
	if p == nil || strings.TrimSpace(p.Key) == "" {
		return DefaultKey
	}
	return p.Key
}

// Load returns the stored settings merged over the defaults. Any problem
// reading or decoding the stored document yields the defaults.
func (p *Persistence) Load(ctx context.Context) models.Settings {
	if p == nil || p.Medium == nil {
		applog.Warn(ctx, "no storage medium available, using default settings")
		return models.DefaultSettings()
	}

	stored, ok, err := p.Medium.Get(ctx, p.key())
	if err != nil {
		applog.Error(ctx, "failed to read stored settings, using defaults", "key", p.key(), "error", err)
		return models.DefaultSettings()
	}
	if !ok || strings.TrimSpace(stored) == "" {
		applog.Debug(ctx, "no stored settings, using defaults", "key", p.key())
		return models.DefaultSettings()
	}

	merged, err := Merge(ctx, []byte(stored))
	if err != nil {
		if errors.Is(err, ErrInvalidSettings) {
			applog.Error(ctx, "invalid settings format, using defaults", "key", p.key())
		} else {
			applog.Error(ctx, "failed to parse stored settings, using defaults", "key", p.key(), "error", err)
		}
		return models.DefaultSettings()
	}
	return merged
}

// Merge decodes a stored document and overlays its top-level blocks on the
// defaults. A present block replaces the default block wholesale; fields it
// omits stay at their zero value.
func Merge(ctx context.Context, data []byte) (models.Settings, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if !models.ValidateSettings(doc) {
		return models.Settings{}, ErrInvalidSettings
	}

	merged := models.DefaultSettings()
	blocks := map[string]any{
		"general":      &merged.General,
		"theme":        &merged.Theme,
		"datetime":     &merged.DateTime,
		"search":       &merged.Search,
		"background":   &merged.Background,
		"integrations": &merged.Integrations,
	}

	for _, key := range models.SettingsKeys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		target := blocks[key]
		zero(target)
		if err := json.Unmarshal(raw, target); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return models.Settings{}, fmt.Errorf("decode %s settings: %w", key, err)
			}
			applog.Warn(ctx, "stored settings block has mistyped fields", "block", key, "field", typeErr.Field, "error", err)
		}
	}

	return merged, nil
}

func zero(target any) {
	value := reflect.ValueOf(target).Elem()
	value.Set(reflect.Zero(value.Type()))
}

// Save writes the whole settings document. Documents failing the top-level
// check are not written and ErrInvalidSettings is returned.
func (p *Persistence) Save(ctx context.Context, settings *models.Settings) error {
	if settings == nil {
		applog.Error(ctx, "invalid settings, not saving")
		return ErrInvalidSettings
	}

	data, err := json.Marshal(settings)
	if err != nil {
		applog.Error(ctx, "failed to encode settings", "error", err)
		return fmt.Errorf("encode settings: %w", err)
	}
	if !models.ValidateSettings(data) {
		applog.Error(ctx, "invalid settings, not saving")
		return ErrInvalidSettings
	}

	if p == nil || p.Medium == nil {
		applog.Warn(ctx, "no storage medium available, settings not persisted")
		return nil
	}

	if previous, ok, err := p.Medium.Get(ctx, p.key()); err == nil && ok {
		logChanges(ctx, []byte(previous), data)
	}

	if err := p.Medium.Set(ctx, p.key(), string(data)); err != nil {
		applog.Error(ctx, "failed to write settings", "key", p.key(), "error", err)
		return fmt.Errorf("write settings: %w", err)
	}

	applog.Debug(ctx, "settings saved", "key", p.key(), "bytes", len(data))
	return nil
}

// logChanges emits one line per leaf value that differs between the stored
// and the new document.
func logChanges(ctx context.Context, previous, next []byte) {
	var before, after any
	if err := json.Unmarshal(previous, &before); err != nil {
		applog.Debug(ctx, "failed to compare settings", "error", err)
		return
	}
	if err := json.Unmarshal(next, &after); err != nil {
		return
	}

	oldFlat := map[string]any{}
	newFlat := map[string]any{}
	flatten("", before, oldFlat)
	flatten("", after, newFlat)

	keys := make([]string, 0, len(newFlat))
	for key := range newFlat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := newFlat[key]
		if value == nil {
			continue
		}
		if _, isList := value.([]any); isList {
			continue
		}
		if old, ok := oldFlat[key]; ok && reflect.DeepEqual(old, value) {
			continue
		}
		applog.Info(ctx, "config change", "key", key, "old", oldFlat[key], "new", value)
	}
}

func flatten(prefix string, value any, out map[string]any) {
	object, ok := value.(map[string]any)
	if !ok {
		if prefix != "" {
			out[prefix] = value
		}
		return
	}
	for key, child := range object {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		flatten(name, child, out)
	}
}
