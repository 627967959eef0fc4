package usecase

import (
	"strconv"
	"strings"
	"time"
)

// Defensive accessors for the provider's semi-structured payloads. Raw
// map[string]any items cross the mapping boundary exactly once; every
// accessor tolerates a nil map, a missing key and a wrong type, and
// returns the documented default instead.

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return nil
	}
	value, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return value
}

func getSlice(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return nil
	}
	value, ok := raw.([]any)
	if !ok {
		return nil
	}
	return value
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// getStringPtr distinguishes an absent or blank value (nil) from a
// present one, for columns stored as nullable text.
func getStringPtr(src map[string]any, key string) *string {
	value := getString(src, key)
	if value == "" {
		return nil
	}
	return &value
}

func getInt(src map[string]any, key string) int {
	return int(getInt64(src, key))
}

func getInt64(src map[string]any, key string) int64 {
	if src == nil {
		return 0
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return 0
	}
	switch typed := raw.(type) {
	case float64:
		return int64(typed)
	case float32:
		return int64(typed)
	case int:
		return int64(typed)
	case int64:
		return typed
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

func getIntPtr(src map[string]any, key string) *int {
	if src == nil {
		return nil
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return nil
	}
	switch typed := raw.(type) {
	case float64:
		v := int(typed)
		return &v
	case float32:
		v := int(typed)
		return &v
	case int:
		v := typed
		return &v
	case int64:
		v := int(typed)
		return &v
	default:
		return nil
	}
}

func getBool(src map[string]any, key string) bool {
	if src == nil {
		return false
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return false
	}
	value, ok := raw.(bool)
	if !ok {
		return false
	}
	return value
}

// payloadTimeLayouts covers the provider's two timestamp shapes: full
// RFC3339 fixture dates and date-only season bounds.
var payloadTimeLayouts = []string{time.RFC3339, "2006-01-02"}

func getTime(src map[string]any, key string) *time.Time {
	value := getString(src, key)
	if value == "" {
		return nil
	}
	for _, layout := range payloadTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
