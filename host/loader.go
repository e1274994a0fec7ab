package host

import (
	"fmt"
	"os"
	"strings"

	apptemplate "github.com/jsil-dev/host-sdk/go/application/template"
	"github.com/jsil-dev/host-sdk/go/application/validation"
	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/jsil-dev/host-sdk/go/infrastructure/parser"
)

// loaderConfig holds configuration for the Loader.
type loaderConfig struct {
	templateEngine  ports.TemplateEngine
	parser          ports.ConfigParser
	validator       ports.ConfigValidator
	strictTemplates bool // Fail on missing template keys
}

func defaultLoaderConfig() loaderConfig {
	return loaderConfig{
		parser:          parser.NewYamlConfigParser(),
		validator:       validation.NewConfigValidator(),
		strictTemplates: true,
	}
}

// Loader orchestrates the shell config pipeline: template rendering, YAML
// parsing on top of the defaults, then struct validation.
type Loader struct {
	config loaderConfig
}

// LoaderOption configures the Loader.
type LoaderOption func(*loaderConfig)

// WithParser sets a custom config parser.
func WithParser(p ports.ConfigParser) LoaderOption {
	return func(c *loaderConfig) {
		c.parser = p
	}
}

// WithTemplateEngine sets a template engine.
func WithTemplateEngine(t ports.TemplateEngine) LoaderOption {
	return func(c *loaderConfig) {
		c.templateEngine = t
	}
}

// WithValidator sets the config validator. A nil validator skips validation.
func WithValidator(v ports.ConfigValidator) LoaderOption {
	return func(c *loaderConfig) {
		c.validator = v
	}
}

// WithStrictTemplates enables/disables strict template mode.
// When enabled (default), template rendering fails if a referenced key is missing.
func WithStrictTemplates(enabled bool) LoaderOption {
	return func(c *loaderConfig) {
		c.strictTemplates = enabled
	}
}

// NewLoader creates a new Loader with defaults.
func NewLoader(opts ...LoaderOption) *Loader {
	cfg := defaultLoaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.templateEngine == nil {
		cfg.templateEngine = apptemplate.NewGoTemplateEngine(
			apptemplate.WithStrict(cfg.strictTemplates),
		)
	}
	return &Loader{config: cfg}
}

// LoadConfig renders, parses and validates a shell config document.
func (l *Loader) LoadConfig(raw []byte, values map[string]interface{}) (*entities.ShellConfig, error) {
	data, err := l.config.templateEngine.Render(raw, values)
	if err != nil {
		return nil, fmt.Errorf("failed to render shell config: %w", err)
	}

	cfg, err := l.config.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shell config: %w", err)
	}

	if l.config.validator != nil {
		res, err := l.config.validator.Validate(cfg)
		if err != nil {
			return nil, fmt.Errorf("validation error: %w", err)
		}
		if !res.Valid {
			var b strings.Builder
			for _, e := range res.Errors {
				fmt.Fprintf(&b, "\n- %s: %s", e.Field, e.Message)
			}
			field := ""
			if len(res.Errors) == 1 {
				field = res.Errors[0].Field
			}
			return nil, &errors.ConfigError{Field: field, Err: fmt.Errorf("%d problem(s):%s", len(res.Errors), b.String())}
		}
	}

	return cfg, nil
}

// LoadConfigFile reads path and loads it with LoadConfig.
func (l *Loader) LoadConfigFile(path string, values map[string]interface{}) (*entities.ShellConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shell config: %w", err)
	}
	return l.LoadConfig(raw, values)
}
