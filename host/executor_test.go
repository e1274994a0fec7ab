package host

import (
	"context"
	"testing"

	"github.com/jsil-dev/host-sdk/go/hostfuncs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyModule is the smallest valid WebAssembly binary: magic and version.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func TestNewExecutor(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx, newTestHost(t, nil))
	require.NoError(t, err)
	require.NotNil(t, e)

	assert.Contains(t, e.Functions(), "get_time")
	assert.Contains(t, e.Functions(), "log_write_line")
	assert.NoError(t, e.Close(ctx))
}

func TestNewExecutor_NilHost(t *testing.T) {
	_, err := NewExecutor(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewExecutor_ExtraHostFunctions(t *testing.T) {
	ctx := context.Background()
	extra := hostfuncs.NewBundle(map[string]hostfuncs.ByteHandler{
		"ping": func(context.Context, []byte) ([]byte, error) { return []byte(`"pong"`), nil },
	})

	e, err := NewExecutor(ctx, newTestHost(t, nil), WithHostFunctions(extra), WithHostModuleName("custom_host"))
	require.NoError(t, err)
	defer e.Close(ctx)

	assert.Contains(t, e.Functions(), "ping")
	assert.Contains(t, e.Functions(), "get_time")
}

func TestNewExecutor_DuplicateHostFunctionsOverride(t *testing.T) {
	ctx := context.Background()
	override := hostfuncs.NewBundle(map[string]hostfuncs.ByteHandler{
		"get_time": func(context.Context, []byte) ([]byte, error) { return []byte(`{}`), nil },
	})

	e, err := NewExecutor(ctx, newTestHost(t, nil), WithHostFunctions(override))
	require.NoError(t, err)
	defer e.Close(ctx)

	assert.Equal(t, 1, countOf(e.Functions(), "get_time"))
}

func TestNewExecutor_CustomRegistry(t *testing.T) {
	ctx := context.Background()
	reg, err := hostfuncs.NewRegistry()
	require.NoError(t, err)

	e, err := NewExecutor(ctx, newTestHost(t, nil), WithHandlerRegistry(reg))
	require.NoError(t, err)
	defer e.Close(ctx)

	assert.Empty(t, e.Functions())
}

func TestExecutor_LoadGuest(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx, newTestHost(t, nil))
	require.NoError(t, err)
	defer e.Close(ctx)

	t.Run("invalid bytes", func(t *testing.T) {
		_, err := e.LoadGuest(ctx, []byte("not wasm"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to instantiate guest")
	})

	t.Run("missing export", func(t *testing.T) {
		guest, err := e.LoadGuest(ctx, emptyModule)
		require.NoError(t, err)
		defer guest.Close(ctx)

		_, err = guest.Call(ctx, "tick", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `export "tick" not found`)

		var resp map[string]any
		err = guest.CallJSON(ctx, "describe", map[string]any{}, &resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `export "describe" not found`)
	})
}

func countOf(items []string, want string) int {
	n := 0
	for _, item := range items {
		if item == want {
			n++
		}
	}
	return n
}
