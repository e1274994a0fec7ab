// Package template renders shell config documents with text/template before
// they are parsed.
package template

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// templateConfig holds configuration for the GoTemplateEngine.
type templateConfig struct {
	lookupEnv func(string) (string, bool)
	strict    bool // Fail on missing keys
}

func defaultTemplateConfig() templateConfig {
	return templateConfig{
		lookupEnv: os.LookupEnv,
		strict:    true,
	}
}

// TemplateOption configures a GoTemplateEngine.
type TemplateOption func(*templateConfig)

// WithStrict enables/disables strict mode for missing keys.
// When enabled (default), template rendering fails if a referenced key is missing.
func WithStrict(enabled bool) TemplateOption {
	return func(c *templateConfig) {
		c.strict = enabled
	}
}

// WithEnvLookup replaces the environment lookup behind the env function.
func WithEnvLookup(lookup func(string) (string, bool)) TemplateOption {
	return func(c *templateConfig) {
		c.lookupEnv = lookup
	}
}

// GoTemplateEngine implements TemplateEngine using standard text/template.
//
// Values are available as {{.config.key}}. Two functions are defined:
// {{env "NAME"}} reads an environment variable (an unset variable is an error
// in strict mode) and {{default "x" .config.key}} substitutes a fallback for
// an empty value.
type GoTemplateEngine struct {
	config templateConfig
}

// NewGoTemplateEngine creates a new GoTemplateEngine.
func NewGoTemplateEngine(opts ...TemplateOption) ports.TemplateEngine {
	cfg := defaultTemplateConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GoTemplateEngine{config: cfg}
}

// Render processes the raw config bytes with the provided values.
func (e *GoTemplateEngine) Render(raw []byte, values map[string]interface{}) ([]byte, error) {
	tmpl := template.New("config").Funcs(template.FuncMap{
		"env":     e.env,
		"default": defaultValue,
	})
	if e.config.strict {
		tmpl = tmpl.Option("missingkey=error")
	}

	tmpl, err := tmpl.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config template: %w", err)
	}

	if values == nil {
		values = map[string]interface{}{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}{"config": values}); err != nil {
		return nil, fmt.Errorf("failed to execute config template: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *GoTemplateEngine) env(name string) (string, error) {
	value, ok := e.config.lookupEnv(name)
	if !ok && e.config.strict {
		return "", fmt.Errorf("environment variable %s is not set", name)
	}
	return value, nil
}

func defaultValue(fallback, value interface{}) interface{} {
	if value == nil {
		return fallback
	}
	if s, ok := value.(string); ok && s == "" {
		return fallback
	}
	return value
}
