package goja

import (
	"io"
	"log/slog"
	"testing"

	"github.com/dop251/goja"
	"github.com/jsil-dev/host-sdk/go/host"
	"github.com/jsil-dev/host-sdk/go/host/registry"
	"github.com/jsil-dev/host-sdk/go/infrastructure/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVolumeRuntime(t *testing.T, withStore bool) *goja.Runtime {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	services := registry.New(registry.WithLogger(quiet))
	if withStore {
		require.NoError(t, services.Register("storage", kvstore.NewMemoryStore()))
	}
	h := host.New(services, host.WithLogger(quiet), host.WithStackTraces(false))
	vm := goja.New()
	require.NoError(t, Install(vm, h, WithVolumes(h), WithLogger(quiet)))
	return vm
}

func TestOpenVolume_RoundTrip(t *testing.T) {
	vm := newVolumeRuntime(t, true)

	v, err := vm.RunString(`
		var saves = JSIL.Host.openVolume("saves");
		saves.put("slot2", "b");
		saves.put("slot1", "a");
		[saves.name, saves.readOnly, saves.get("slot1"), saves.get("missing"), saves.keys().join(",")].join("|")
	`)
	require.NoError(t, err)
	assert.Equal(t, "saves|false|a|null|slot1,slot2", v.String())

	v, err = vm.RunString(`saves.delete("slot1"); saves.keys().join(",")`)
	require.NoError(t, err)
	assert.Equal(t, "slot2", v.String())

	v, err = vm.RunString(`saves.clear(); saves.keys().length`)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.ToInteger())
}

func TestOpenVolume_ReadOnlyThrows(t *testing.T) {
	vm := newVolumeRuntime(t, true)

	v, err := vm.RunString(`
		var ro = JSIL.Host.openVolume("saves", true);
		var msg = "";
		try { ro.put("k", "v"); } catch (e) { msg = e.message; }
		ro.readOnly + ":" + msg
	`)
	require.NoError(t, err)
	assert.Equal(t, `true:volume saves: put "k": volume is read-only`, v.String())
}

func TestOpenVolume_MissingStorageThrows(t *testing.T) {
	vm := newVolumeRuntime(t, false)

	_, err := vm.RunString(`JSIL.Host.openVolume("saves")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `service unavailable: "storage"`)
}

func TestOpenVolume_UndefinedWithoutOpener(t *testing.T) {
	f := newFixture(t)
	v := f.run(t, `typeof JSIL.Host.openVolume`)
	assert.Equal(t, "undefined", v.String())
}
