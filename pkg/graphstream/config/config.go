// Package config provides type-safe configuration extraction for streaming
// sessions from map[string]any, typically loaded from YAML or JSON.
//
// Accessor methods handle missing keys and type mismatches gracefully by
// returning default values, so callers avoid verbose type assertions.
// HandlerOptions bridges recognized keys to graphstream handler options.
package config

import (
	"github.com/randalmurphal/graphstream/pkg/graphstream"
)

// Recognized configuration keys.
const (
	// KeyNamespaceSeparator overrides the checkpoint namespace separator.
	KeyNamespaceSeparator = "namespace_separator"

	// KeyMaxDepth overrides the extraction depth cap.
	KeyMaxDepth = "max_depth"

	// KeyBufferSize sets the fan-out channel buffer size.
	KeyBufferSize = "buffer_size"

	// KeyNonBlocking selects drop-when-full fan-out delivery.
	KeyNonBlocking = "non_blocking"
)

// Config wraps a map[string]any for type-safe value extraction.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (c Config) Bool(key string, defaultVal bool) bool {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
//
// Accepts:
//   - int: used directly
//   - int64: converted to int
//   - float64: converted to int (only if no fractional part)
func (c Config) Int(key string, defaultVal int) int {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// StringSlice returns the string slice for key, or defaultVal if missing or not convertible.
//
// Accepts:
//   - []string: used directly
//   - []any: each element converted to string if possible
func (c Config) StringSlice(key string, defaultVal []string) []string {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				// If any element isn't a string, return default
				return defaultVal
			}
			result = append(result, s)
		}
		return result
	}
	return defaultVal
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}

// HandlerOptions converts recognized keys into graphstream handler options.
// Unrecognized keys are ignored; missing keys contribute no option, so the
// handler's own defaults apply.
func (c Config) HandlerOptions() []graphstream.Option {
	var opts []graphstream.Option
	if sep := c.String(KeyNamespaceSeparator, ""); sep != "" {
		opts = append(opts, graphstream.WithNamespaceSeparator(sep))
	}
	if depth := c.Int(KeyMaxDepth, 0); depth > 0 {
		opts = append(opts, graphstream.WithMaxDepth(depth))
	}
	return opts
}
