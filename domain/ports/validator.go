package ports

import "github.com/jsil-dev/host-sdk/go/domain/entities"

// ConfigValidator validates a parsed shell config.
type ConfigValidator interface {
	Validate(cfg *entities.ShellConfig) (*entities.ValidationResult, error)
}
