// Package volume provides named storage volumes over a ports.KVStore.
//
// Every volume owns the key range "volume/<name>/" of the store it is opened
// on, so volumes sharing a store never see each other's entries.
package volume

import (
	"context"
	"fmt"
	"strings"

	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

const keyPrefix = "volume/"

// Volume is a named, optionally read-only view over a KVStore.
type Volume struct {
	store    ports.KVStore
	name     string
	readOnly bool
}

// Open returns a writable volume named name.
func Open(store ports.KVStore, name string) (*Volume, error) {
	return open(store, name, false)
}

// OpenReadOnly returns a volume named name that rejects writes.
func OpenReadOnly(store ports.KVStore, name string) (*Volume, error) {
	return open(store, name, true)
}

func open(store ports.KVStore, name string, readOnly bool) (*Volume, error) {
	if store == nil {
		return nil, fmt.Errorf("volume %q: store cannot be nil", name)
	}
	if name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("invalid volume name %q", name)
	}
	return &Volume{store: store, name: name, readOnly: readOnly}, nil
}

// Name returns the volume name.
func (v *Volume) Name() string {
	return v.name
}

// ReadOnly reports whether the volume rejects writes.
func (v *Volume) ReadOnly() bool {
	return v.readOnly
}

// Get returns the value stored under key.
func (v *Volume) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := v.store.Get(ctx, v.storeKey(key))
	if err != nil {
		return nil, v.fail("get", key, err)
	}
	return value, nil
}

// Put stores value under key.
func (v *Volume) Put(ctx context.Context, key string, value []byte) error {
	if v.readOnly {
		return v.fail("put", key, errors.ErrReadOnly)
	}
	if key == "" {
		return v.fail("put", key, fmt.Errorf("key cannot be empty"))
	}
	if err := v.store.Put(ctx, v.storeKey(key), value); err != nil {
		return v.fail("put", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (v *Volume) Delete(ctx context.Context, key string) error {
	if v.readOnly {
		return v.fail("delete", key, errors.ErrReadOnly)
	}
	if err := v.store.Delete(ctx, v.storeKey(key)); err != nil {
		return v.fail("delete", key, err)
	}
	return nil
}

// Keys returns the volume's keys, sorted, without the volume prefix.
func (v *Volume) Keys(ctx context.Context) ([]string, error) {
	prefix := v.prefix()
	stored, err := v.store.Keys(ctx, prefix)
	if err != nil {
		return nil, v.fail("keys", "", err)
	}
	keys := make([]string, 0, len(stored))
	for _, key := range stored {
		keys = append(keys, strings.TrimPrefix(key, prefix))
	}
	return keys, nil
}

// Clear removes every key of the volume.
func (v *Volume) Clear(ctx context.Context) error {
	if v.readOnly {
		return v.fail("clear", "", errors.ErrReadOnly)
	}
	keys, err := v.Keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := v.store.Delete(ctx, v.storeKey(key)); err != nil {
			return v.fail("clear", key, err)
		}
	}
	return nil
}

func (v *Volume) prefix() string {
	return keyPrefix + v.name + "/"
}

func (v *Volume) storeKey(key string) string {
	return v.prefix() + key
}

func (v *Volume) fail(operation, key string, err error) error {
	return &errors.VolumeError{Volume: v.name, Key: key, Operation: operation, Err: err}
}
