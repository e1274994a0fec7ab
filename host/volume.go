package host

import (
	"github.com/jsil-dev/host-sdk/go/application/volume"
	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/jsil-dev/host-sdk/go/host/registry"
)

// Volume opens a writable storage volume on the required "storage" service.
func (h *Host) Volume(name string) (*volume.Volume, error) {
	store, err := h.store()
	if err != nil {
		return nil, err
	}
	return volume.Open(store, name)
}

// ReadOnlyVolume opens a storage volume that rejects writes.
func (h *Host) ReadOnlyVolume(name string) (*volume.Volume, error) {
	store, err := h.store()
	if err != nil {
		return nil, err
	}
	return volume.OpenReadOnly(store, name)
}

func (h *Host) store() (ports.KVStore, error) {
	store, _, err := registry.Lookup[ports.KVStore](h.services, entities.CapabilityStorage.String(), false)
	return store, err
}
