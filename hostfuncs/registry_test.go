package hostfuncs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(body string) ByteHandler {
	return func(context.Context, []byte) ([]byte, error) {
		return []byte(body), nil
	}
}

func TestNewRegistry(t *testing.T) {
	empty, err := NewRegistry()
	require.NoError(t, err)
	assert.Empty(t, empty.Names())
	assert.Equal(t, DefaultMaxRequestSize, empty.MaxRequestSize())

	reg, err := NewRegistry(
		WithByteHandler("warning", constant(`{}`)),
		WithByteHandler("get_time", constant(`{}`)),
		WithByteHandler("log_write", constant(`{}`)),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"get_time", "log_write", "warning"}, reg.Names())
	assert.True(t, reg.Has("get_time"))
	assert.False(t, reg.Has("get_clipboard"))
}

func TestNewRegistry_RejectsBadHandlers(t *testing.T) {
	tests := []struct {
		name    string
		opts    []RegistryOption
		wantErr string
	}{
		{"empty name", []RegistryOption{WithByteHandler("", constant(`{}`))}, "cannot be empty"},
		{"nil handler", []RegistryOption{WithByteHandler("get_time", nil)}, `"get_time" cannot be nil`},
		{
			"duplicate",
			[]RegistryOption{WithByteHandler("get_time", constant(`{}`)), WithByteHandler("get_time", constant(`{}`))},
			`duplicate handler name: "get_time"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.opts...)
			assert.Nil(t, reg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHandlerRegistry_Invoke(t *testing.T) {
	var gotFunction string
	var gotPayload string
	reg, err := NewRegistry(
		WithByteHandler("log_write", func(ctx context.Context, payload []byte) ([]byte, error) {
			gotFunction, _ = FunctionFromContext(ctx)
			gotPayload = string(payload)
			return []byte(`{}`), nil
		}),
	)
	require.NoError(t, err)

	resp, err := reg.Invoke(context.Background(), "log_write", []byte(`{"text":"hi"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(resp))
	assert.Equal(t, "log_write", gotFunction)
	assert.Equal(t, `{"text":"hi"}`, gotPayload)

	resp, err = reg.Invoke(context.Background(), "get_clipboard", nil)
	require.NoError(t, err)
	errResp := decodeError(t, resp)
	assert.Equal(t, KindNotFound, errResp.Error)
	assert.Equal(t, 404, errResp.Code)
	assert.Equal(t, "unknown host function: get_clipboard", errResp.Message)
}

func TestHandlerRegistry_MaxRequestSize(t *testing.T) {
	calls := 0
	reg, err := NewRegistry(
		WithMaxRequestSize(8),
		WithByteHandler("log_write", func(context.Context, []byte) ([]byte, error) {
			calls++
			return []byte(`{}`), nil
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, 8, reg.MaxRequestSize())

	resp, err := reg.Invoke(context.Background(), "log_write", []byte(`{"text":"too long"}`))
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	errResp := decodeError(t, resp)
	assert.Equal(t, KindValidation, errResp.Error)
	assert.Contains(t, errResp.Message, "exceeds maximum 8 bytes")

	_, err = reg.Invoke(context.Background(), "log_write", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	reg, err = NewRegistry(WithMaxRequestSize(-1))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxRequestSize, reg.MaxRequestSize())
}
