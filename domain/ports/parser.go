package ports

import "github.com/jsil-dev/host-sdk/go/domain/entities"

// ConfigParser parses raw YAML bytes into a ShellConfig.
type ConfigParser interface {
	// Parse unmarshals bytes on top of the default config.
	Parse(data []byte) (*entities.ShellConfig, error)
}
