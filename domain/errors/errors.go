// Package errors provides domain-specific error types for the host SDK.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrServiceUnavailable matches every *ServiceUnavailableError.
	ErrServiceUnavailable = stdErrors.New("service unavailable")

	// ErrAlreadyRun is returned by an init queue that has already been drained.
	ErrAlreadyRun = stdErrors.New("init callbacks already run")

	// ErrNotFound is returned by key-value stores and volumes for missing keys.
	ErrNotFound = stdErrors.New("key not found")

	// ErrReadOnly is returned when writing to a read-only volume.
	ErrReadOnly = stdErrors.New("volume is read-only")
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail. New error types only need to implement this
// interface without modifying ToErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts err to an ErrorDetail. An ErrorDetail in the chain is
// returned as is; a DetailedError converts itself; anything else is "internal".
// A stack carried by any error in the chain (a StackTrace() string method) is
// copied into the result.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var detail *entities.ErrorDetail
	var de DetailedError
	if stdErrors.As(err, &de) {
		detail = de.ToErrorDetail()
	} else {
		detail = &entities.ErrorDetail{Message: err.Error(), Type: "internal"}
	}

	var st interface{ StackTrace() string }
	if detail.Stack == "" && stdErrors.As(err, &st) {
		detail.Stack = st.StackTrace()
	}
	return detail
}

// ServiceUnavailableError reports that a required capability has no registered provider.
type ServiceUnavailableError struct {
	Capability string
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("service unavailable: %q", e.Capability)
}

// Is makes every ServiceUnavailableError match ErrServiceUnavailable.
func (e *ServiceUnavailableError) Is(target error) bool {
	return target == ErrServiceUnavailable
}

// ToErrorDetail implements DetailedError.
func (e *ServiceUnavailableError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "capability", Code: e.Capability, IsNotFound: true}
}

// IsServiceUnavailable reports whether err means a required capability is missing.
func IsServiceUnavailable(err error) bool {
	return stdErrors.Is(err, ErrServiceUnavailable)
}

// ProviderError wraps a failure returned by a registered provider.
type ProviderError struct {
	Err        error
	Capability string
	Operation  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider failed during %s: %v", e.Capability, e.Operation, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ProviderError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{Message: e.Error(), Type: "provider", Code: e.Capability + "." + e.Operation}
	if e.Err != nil {
		detail.Wrapped = ToErrorDetail(e.Err)
	}
	return detail
}

// ContractError reports a provider that does not satisfy its capability's interface.
type ContractError struct {
	Capability string
	Want       string // Name of the required interface
	Got        string // Dynamic type of the rejected provider
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("provider %s for %q does not implement %s", e.Got, e.Capability, e.Want)
}

// ToErrorDetail implements DetailedError.
func (e *ContractError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "contract", Code: e.Capability}
}

// DefaultAssertionMessage is used when an assertion fails without a message.
const DefaultAssertionMessage = "Assertion Failed"

// AssertionError is the failure raised by a failed runtime assertion.
type AssertionError struct {
	Message string
}

// NewAssertionError creates an AssertionError, falling back to DefaultAssertionMessage.
func NewAssertionError(message string) *AssertionError {
	if message == "" {
		message = DefaultAssertionMessage
	}
	return &AssertionError{Message: message}
}

func (e *AssertionError) Error() string {
	return e.Message
}

// ToErrorDetail implements DetailedError.
func (e *AssertionError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Message, Type: "assertion"}
}

// FatalError is what the fail-fast error service panics with.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %v", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *FatalError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{Message: e.Error(), Type: "fatal"}
	if e.Err != nil {
		detail.Wrapped = ToErrorDetail(e.Err)
	}
	return detail
}

// InitQueueError reports misuse of the init callback queue.
type InitQueueError struct {
	Err       error
	Operation string // "enqueue" or "run"
}

func (e *InitQueueError) Error() string {
	return fmt.Sprintf("init queue %s: %v", e.Operation, e.Err)
}

func (e *InitQueueError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *InitQueueError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "init", Code: e.Operation}
}

// VolumeError reports a failed storage volume operation.
type VolumeError struct {
	Err       error
	Volume    string
	Key       string
	Operation string
}

func (e *VolumeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("volume %s: %s %q: %v", e.Volume, e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("volume %s: %s: %v", e.Volume, e.Operation, e.Err)
}

func (e *VolumeError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *VolumeError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message:    e.Error(),
		Type:       "storage",
		Code:       e.Operation,
		IsNotFound: stdErrors.Is(e.Err, ErrNotFound),
	}
}

// ConfigError represents a shell configuration error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}
