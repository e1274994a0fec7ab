// Package parser decodes shell config documents.
package parser

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"gopkg.in/yaml.v3"
)

// parserConfig holds configuration for the YamlConfigParser.
type parserConfig struct {
	knownFields bool // Reject keys that do not map to a config field
}

func defaultParserConfig() parserConfig {
	return parserConfig{knownFields: true}
}

// ParserOption configures a YamlConfigParser.
type ParserOption func(*parserConfig)

// WithKnownFields enables/disables rejection of unknown keys. Default is true.
func WithKnownFields(enabled bool) ParserOption {
	return func(c *parserConfig) {
		c.knownFields = enabled
	}
}

// YamlConfigParser implements ports.ConfigParser for YAML.
type YamlConfigParser struct {
	config parserConfig
}

// NewYamlConfigParser creates a new YamlConfigParser.
func NewYamlConfigParser(opts ...ParserOption) ports.ConfigParser {
	cfg := defaultParserConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &YamlConfigParser{config: cfg}
}

// Parse unmarshals YAML bytes on top of entities.DefaultShellConfig, so keys
// absent from the document keep their defaults. An empty document yields the
// defaults unchanged.
func (p *YamlConfigParser) Parse(data []byte) (*entities.ShellConfig, error) {
	cfg := entities.DefaultShellConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(p.config.knownFields)
	if err := dec.Decode(&cfg); err != nil && !stdErrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode shell config: %w", err)
	}
	return &cfg, nil
}
