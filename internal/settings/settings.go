package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Persisted keys.
const (
	KeySelectedCategories = "selectedCategories"
	KeyLimit              = "limit"
	KeyTimerSeconds       = "timerInSeconds"
	KeyRecentTimers       = "recentTimers"
	KeyMaxHistorySize     = "maxHistorySize"
	KeyFullscreen         = "fullscreen"
	KeyTogglAPIKey        = "togglApiKey"
	KeyTogglWorkspaceID   = "togglWorkspaceId"
)

// KnownKeys lists every key Settings reads and writes.
var KnownKeys = []string{
	KeySelectedCategories,
	KeyLimit,
	KeyTimerSeconds,
	KeyRecentTimers,
	KeyMaxHistorySize,
	KeyFullscreen,
	KeyTogglAPIKey,
	KeyTogglWorkspaceID,
}

// KV is the storage Settings is loaded from and flushed to.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Settings is the typed view of the persisted user state. It is loaded once
// at startup, mutated by the UI and flushed back when it changes.
type Settings struct {
	SelectedCategories []string
	Limit              int
	TimerSeconds       int
	RecentTimers       []int
	MaxHistorySize     int
	Fullscreen         bool
	TogglAPIKey        string
	TogglWorkspaceID   int64
}

// Defaults returns the settings used before anything was stored.
func Defaults(maxHistorySize int) Settings {
	return Settings{MaxHistorySize: maxHistorySize}
}

// InvalidValuesError lists stored values that failed to parse. Load returns
// it after applying every other value.
type InvalidValuesError struct {
	keys []string
	errs []error
}

// Keys returns the offending keys in load order.
func (e *InvalidValuesError) Keys() []string { return append([]string(nil), e.keys...) }

func (e *InvalidValuesError) Error() string {
	parts := make([]string, len(e.keys))
	for i, key := range e.keys {
		parts[i] = fmt.Sprintf("%s: %v", key, e.errs[i])
	}
	return "invalid stored settings: " + strings.Join(parts, "; ")
}

// Load overlays the stored values onto s. Values that fail to parse keep
// their current value and are reported through *InvalidValuesError.
func (s *Settings) Load(ctx context.Context, kv KV) error {
	var invalid *InvalidValuesError
	for _, key := range KnownKeys {
		raw, ok, err := kv.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		if !ok {
			continue
		}
		if err := s.apply(key, raw); err != nil {
			if invalid == nil {
				invalid = &InvalidValuesError{}
			}
			invalid.keys = append(invalid.keys, key)
			invalid.errs = append(invalid.errs, err)
		}
	}
	if invalid != nil {
		return invalid
	}
	return nil
}

// Flush writes every field to kv. An empty Toggl credential removes the
// stored one along with its workspace.
func (s *Settings) Flush(ctx context.Context, kv KV) error {
	values, err := s.encode()
	if err != nil {
		return err
	}
	for _, key := range KnownKeys {
		value, ok := values[key]
		if !ok {
			if err := kv.Delete(ctx, key); err != nil {
				return fmt.Errorf("flush settings: %w", err)
			}
			continue
		}
		if err := kv.Set(ctx, key, value); err != nil {
			return fmt.Errorf("flush settings: %w", err)
		}
	}
	return nil
}

// Validate parses value for key without storing it.
func Validate(key, value string) error {
	var scratch Settings
	return scratch.apply(key, value)
}

// RememberTimer moves seconds to the front of RecentTimers, keeping at most
// limit distinct entries. Non-positive values are ignored.
func (s *Settings) RememberTimer(seconds, limit int) {
	if seconds <= 0 {
		return
	}
	recent := make([]int, 0, len(s.RecentTimers)+1)
	recent = append(recent, seconds)
	for _, value := range s.RecentTimers {
		if value != seconds && value > 0 {
			recent = append(recent, value)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	s.RecentTimers = recent
}

// ToggleCategory adds category to the selection or removes it. It reports
// whether the category is selected afterwards.
func (s *Settings) ToggleCategory(category string) bool {
	if i := slices.Index(s.SelectedCategories, category); i >= 0 {
		s.SelectedCategories = slices.Delete(slices.Clone(s.SelectedCategories), i, i+1)
		return false
	}
	s.SelectedCategories = append(slices.Clone(s.SelectedCategories), category)
	return true
}

// Selected reports whether category is selected.
func (s *Settings) Selected(category string) bool {
	return slices.Contains(s.SelectedCategories, category)
}

// TogglConfigured reports whether a Toggl credential is stored.
func (s *Settings) TogglConfigured() bool {
	return strings.TrimSpace(s.TogglAPIKey) != ""
}

func (s *Settings) apply(key, raw string) error {
	var err error
	switch key {
	case KeySelectedCategories:
		var categories []string
		if err = json.Unmarshal([]byte(raw), &categories); err == nil {
			s.SelectedCategories = categories
		}
	case KeyLimit:
		var limit int
		if limit, err = parseNonNegative(raw); err == nil {
			s.Limit = limit
		}
	case KeyTimerSeconds:
		var seconds int
		if seconds, err = parseNonNegative(raw); err == nil {
			s.TimerSeconds = seconds
		}
	case KeyRecentTimers:
		var recent []int
		if err = json.Unmarshal([]byte(raw), &recent); err == nil {
			s.RecentTimers = recent
		}
	case KeyMaxHistorySize:
		var size int
		if size, err = parseNonNegative(raw); err == nil {
			if size < 2 {
				err = fmt.Errorf("must be at least 2, got %d", size)
			} else {
				s.MaxHistorySize = size
			}
		}
	case KeyFullscreen:
		var fullscreen bool
		if fullscreen, err = strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			s.Fullscreen = fullscreen
		}
	case KeyTogglAPIKey:
		s.TogglAPIKey = strings.TrimSpace(raw)
	case KeyTogglWorkspaceID:
		var id int64
		if id, err = strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			s.TogglWorkspaceID = id
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

func (s *Settings) encode() (map[string]string, error) {
	categories := s.SelectedCategories
	if categories == nil {
		categories = []string{}
	}
	encodedCategories, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", KeySelectedCategories, err)
	}
	recent := s.RecentTimers
	if recent == nil {
		recent = []int{}
	}
	encodedRecent, err := json.Marshal(recent)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", KeyRecentTimers, err)
	}

	values := map[string]string{
		KeySelectedCategories: string(encodedCategories),
		KeyLimit:              strconv.Itoa(s.Limit),
		KeyTimerSeconds:       strconv.Itoa(s.TimerSeconds),
		KeyRecentTimers:       string(encodedRecent),
		KeyMaxHistorySize:     strconv.Itoa(s.MaxHistorySize),
		KeyFullscreen:         strconv.FormatBool(s.Fullscreen),
	}
	if key := strings.TrimSpace(s.TogglAPIKey); key != "" {
		values[KeyTogglAPIKey] = key
		if s.TogglWorkspaceID > 0 {
			values[KeyTogglWorkspaceID] = strconv.FormatInt(s.TogglWorkspaceID, 10)
		}
	}
	return values, nil
}

func parseNonNegative(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", value)
	}
	return value, nil
}
