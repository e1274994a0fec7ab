package volume

import (
	"context"
	stdErrors "errors"
	"testing"

	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/infrastructure/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Validation(t *testing.T) {
	store := kvstore.NewMemoryStore()

	tests := []struct {
		name    string
		volume  string
		wantErr bool
	}{
		{"simple", "saves", false},
		{"empty", "", true},
		{"slash", "a/b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(store, tt.volume)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	_, err := Open(nil, "saves")
	assert.Error(t, err)
}

func TestVolume_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	vol, err := Open(store, "saves")
	require.NoError(t, err)

	require.NoError(t, vol.Put(ctx, "slot1", []byte("level=3")))

	value, err := vol.Get(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, []byte("level=3"), value)

	raw, err := store.Get(ctx, "volume/saves/slot1")
	require.NoError(t, err)
	assert.Equal(t, []byte("level=3"), raw)
}

func TestVolume_IsolatedByPrefix(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	a, err := Open(store, "a")
	require.NoError(t, err)
	b, err := Open(store, "ab")
	require.NoError(t, err)

	require.NoError(t, a.Put(ctx, "k1", []byte("1")))
	require.NoError(t, a.Put(ctx, "k2", []byte("2")))
	require.NoError(t, b.Put(ctx, "k1", []byte("other")))

	keys, err := a.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, keys)

	require.NoError(t, a.Clear(ctx))
	keys, err = a.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	value, err := b.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), value)
}

func TestVolume_MissingKey(t *testing.T) {
	vol, err := Open(kvstore.NewMemoryStore(), "saves")
	require.NoError(t, err)

	_, err = vol.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	var volErr *errors.VolumeError
	require.True(t, stdErrors.As(err, &volErr))
	assert.Equal(t, "saves", volErr.Volume)
	assert.Equal(t, "nope", volErr.Key)
	assert.Equal(t, "get", volErr.Operation)
}

func TestVolume_ReadOnly(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "volume/assets/logo", []byte("png")))

	vol, err := OpenReadOnly(store, "assets")
	require.NoError(t, err)
	assert.True(t, vol.ReadOnly())
	assert.Equal(t, "assets", vol.Name())

	value, err := vol.Get(ctx, "logo")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), value)

	assert.ErrorIs(t, vol.Put(ctx, "logo", []byte("gif")), errors.ErrReadOnly)
	assert.ErrorIs(t, vol.Delete(ctx, "logo"), errors.ErrReadOnly)
	assert.ErrorIs(t, vol.Clear(ctx), errors.ErrReadOnly)

	value, err = store.Get(ctx, "volume/assets/logo")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), value)
}

func TestVolume_PutEmptyKey(t *testing.T) {
	vol, err := Open(kvstore.NewMemoryStore(), "saves")
	require.NoError(t, err)
	assert.Error(t, vol.Put(context.Background(), "", []byte("x")))
}
