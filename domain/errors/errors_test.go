package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceUnavailableError(t *testing.T) {
	err := &ServiceUnavailableError{Capability: "canvas"}

	assert.Equal(t, `service unavailable: "canvas"`, err.Error())
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
	assert.True(t, IsServiceUnavailable(fmt.Errorf("wrapped: %w", err)))

	var svcErr *ServiceUnavailableError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &svcErr))
	assert.Equal(t, "canvas", svcErr.Capability)

	detail := err.ToErrorDetail()
	assert.Equal(t, "capability", detail.Type)
	assert.Equal(t, "canvas", detail.Code)
	assert.True(t, detail.IsNotFound)
}

func TestIsServiceUnavailable_OtherErrors(t *testing.T) {
	assert.False(t, IsServiceUnavailable(nil))
	assert.False(t, IsServiceUnavailable(fmt.Errorf("boom")))
	assert.False(t, IsServiceUnavailable(&ProviderError{Capability: "time", Operation: "get_utc", Err: fmt.Errorf("x")}))
}

func TestProviderError(t *testing.T) {
	baseErr := fmt.Errorf("disk full")
	err := &ProviderError{Capability: "stdout", Operation: "write", Err: baseErr}

	assert.Equal(t, "stdout provider failed during write: disk full", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	detail := err.ToErrorDetail()
	assert.Equal(t, "provider", detail.Type)
	assert.Equal(t, "stdout.write", detail.Code)
	require.NotNil(t, detail.Wrapped)
	assert.Equal(t, "disk full", detail.Wrapped.Message)
}

func TestContractError(t *testing.T) {
	err := &ContractError{Capability: "time", Want: "ports.TimeProvider", Got: "string"}

	assert.Equal(t, `provider string for "time" does not implement ports.TimeProvider`, err.Error())
	assert.Equal(t, "contract", err.ToErrorDetail().Type)
}

func TestAssertionError(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"explicit message", "index out of range", "index out of range"},
		{"default message", "", DefaultAssertionMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAssertionError(tt.message)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, "assertion", err.ToErrorDetail().Type)
		})
	}
}

func TestFatalError(t *testing.T) {
	baseErr := NewAssertionError("")
	err := &FatalError{Err: baseErr}

	assert.Equal(t, "fatal: Assertion Failed", err.Error())

	var assertErr *AssertionError
	require.True(t, errors.As(err, &assertErr))

	detail := err.ToErrorDetail()
	assert.Equal(t, "fatal", detail.Type)
	require.NotNil(t, detail.Wrapped)
	assert.Equal(t, "assertion", detail.Wrapped.Type)
}

func TestInitQueueError(t *testing.T) {
	err := &InitQueueError{Operation: "run", Err: ErrAlreadyRun}

	assert.Equal(t, "init queue run: init callbacks already run", err.Error())
	assert.True(t, errors.Is(err, ErrAlreadyRun))
	assert.Equal(t, "run", err.ToErrorDetail().Code)
}

func TestVolumeError(t *testing.T) {
	err := &VolumeError{Volume: "saves", Key: "slot1", Operation: "get", Err: ErrNotFound}

	assert.Equal(t, `volume saves: get "slot1": key not found`, err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, err.ToErrorDetail().IsNotFound)
}

func TestVolumeError_NoKey(t *testing.T) {
	err := &VolumeError{Volume: "saves", Operation: "clear", Err: ErrReadOnly}

	assert.Equal(t, "volume saves: clear: volume is read-only", err.Error())
	assert.False(t, err.ToErrorDetail().IsNotFound)
}

func TestConfigError(t *testing.T) {
	baseErr := fmt.Errorf("must be positive")
	err := &ConfigError{Field: "canvas.width", Err: baseErr}

	assert.Equal(t, "config validation failed for field 'canvas.width': must be positive", err.Error())
	assert.True(t, errors.Is(err, baseErr))
}

func TestConfigError_NoField(t *testing.T) {
	err := &ConfigError{Err: fmt.Errorf("invalid format")}

	assert.Equal(t, "config validation failed: invalid format", err.Error())
}

func TestToErrorDetail(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToErrorDetail(nil))
	})

	t.Run("generic error", func(t *testing.T) {
		detail := ToErrorDetail(fmt.Errorf("something broke"))
		assert.Equal(t, "internal", detail.Type)
		assert.Equal(t, "something broke", detail.Message)
	})

	t.Run("wrapped detailed error", func(t *testing.T) {
		err := fmt.Errorf("call failed: %w", &ServiceUnavailableError{Capability: "stderr"})
		detail := ToErrorDetail(err)
		assert.Equal(t, "capability", detail.Type)
		assert.Equal(t, "stderr", detail.Code)
	})

	t.Run("stack from chain", func(t *testing.T) {
		err := &FatalError{Err: stackErr{}}
		detail := ToErrorDetail(err)
		assert.Equal(t, "fatal", detail.Type)
		assert.Equal(t, "at main.js:3", detail.Stack)
	})

	t.Run("entity passthrough", func(t *testing.T) {
		entity := entities.NewErrorDetail("config", "bad")
		assert.Same(t, entity, ToErrorDetail(entity))
	})
}

type stackErr struct{}

func (stackErr) Error() string      { return "script failed" }
func (stackErr) StackTrace() string { return "at main.js:3" }

func TestErrorUnwrapping(t *testing.T) {
	baseErr := fmt.Errorf("base error")

	tests := []struct {
		name string
		err  error
	}{
		{"ProviderError", &ProviderError{Capability: "time", Operation: "test", Err: baseErr}},
		{"FatalError", &FatalError{Err: baseErr}},
		{"InitQueueError", &InitQueueError{Operation: "run", Err: baseErr}},
		{"VolumeError", &VolumeError{Volume: "v", Operation: "put", Err: baseErr}},
		{"ConfigError", &ConfigError{Field: "test", Err: baseErr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, baseErr), "errors.Is should find base error")
			unwrapped := errors.Unwrap(tt.err)
			assert.Equal(t, baseErr, unwrapped, "errors.Unwrap should return base error")
		})
	}
}
