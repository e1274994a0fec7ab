// Package config provides the template values passed to shell config
// documents, built from "key=value" assignments on the command line.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsil-dev/host-sdk/go/domain/errors"
)

// Values is the map exposed to config templates as {{.config}}.
type Values = map[string]any

// ParseAssignments builds Values from "key=value" pairs. Dotted keys create
// nested maps ("storage.table=t" is {{.config.storage.table}}). "true" and
// "false" become booleans and numeric values are stored as int or float64;
// everything else stays a string.
func ParseAssignments(assignments []string) (Values, error) {
	values := Values{}
	for _, assignment := range assignments {
		key, raw, ok := strings.Cut(assignment, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &errors.ConfigError{
				Field: assignment,
				Err:   fmt.Errorf("expected key=value"),
			}
		}
		if err := set(values, strings.Split(key, "."), coerce(raw)); err != nil {
			return nil, &errors.ConfigError{Field: key, Err: err}
		}
	}
	return values, nil
}

func set(values Values, path []string, value any) error {
	for i, segment := range path {
		if segment == "" {
			return fmt.Errorf("empty key segment")
		}
		if i == len(path)-1 {
			if _, isMap := values[segment].(Values); isMap {
				return fmt.Errorf("key %q already holds nested values", segment)
			}
			values[segment] = value
			return nil
		}
		next, exists := values[segment]
		if !exists {
			child := Values{}
			values[segment] = child
			values = child
			continue
		}
		child, ok := next.(Values)
		if !ok {
			return fmt.Errorf("key %q already holds a value", segment)
		}
		values = child
	}
	return nil
}

func coerce(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// GetString extracts a string from values, returning (value, found).
func GetString(values Values, key string) (string, bool) {
	v, ok := values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt extracts an int from values, handling int, int64, and float64.
func GetInt(values Values, key string) (int, bool) {
	v, ok := values[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// GetStringDefault extracts a string from values or returns the default value.
func GetStringDefault(values Values, key, defaultValue string) string {
	s, ok := GetString(values, key)
	if !ok {
		return defaultValue
	}
	return s
}
