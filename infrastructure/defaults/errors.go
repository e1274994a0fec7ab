package defaults

import (
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// FatalErrorService is the fail-fast "error" provider: it panics with a
// *errors.FatalError wrapping the reported failure and never returns.
type FatalErrorService struct{}

var _ ports.ErrorReporter = FatalErrorService{}

// NewFatalErrorService creates the fail-fast error provider.
func NewFatalErrorService() FatalErrorService {
	return FatalErrorService{}
}

// Error panics with the reported failure.
func (FatalErrorService) Error(err error) error {
	panic(&errors.FatalError{Err: err})
}

// ReturningErrorService is an "error" provider that hands the failure back to
// the caller instead of panicking.
type ReturningErrorService struct{}

var _ ports.ErrorReporter = ReturningErrorService{}

// NewReturningErrorService creates the non-panicking error provider.
func NewReturningErrorService() ReturningErrorService {
	return ReturningErrorService{}
}

// Error returns err wrapped in *errors.FatalError.
func (ReturningErrorService) Error(err error) error {
	return &errors.FatalError{Err: err}
}
