package goja

import (
	"context"
	stdErrors "errors"

	"github.com/dop251/goja"
	"github.com/jsil-dev/host-sdk/go/application/volume"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
)

// VolumeOpener opens named storage volumes. *host.Host implements it.
type VolumeOpener interface {
	Volume(name string) (*volume.Volume, error)
	ReadOnlyVolume(name string) (*volume.Volume, error)
}

// openVolume returns the JS function openVolume(name, readOnly). The volume
// object stores strings: get returns null for a missing key.
func (b *bridge) openVolume(opener VolumeOpener) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		open := opener.Volume
		if call.Argument(1).ToBoolean() {
			open = opener.ReadOnlyVolume
		}
		v, err := open(name)
		b.throwIf(err)
		obj, err := b.volumeObject(v)
		b.throwIf(err)
		return obj
	}
}

func (b *bridge) volumeObject(v *volume.Volume) (*goja.Object, error) {
	ctx := context.Background()
	obj := b.vm.NewObject()

	methods := map[string]func(goja.FunctionCall) goja.Value{
		"get": func(call goja.FunctionCall) goja.Value {
			value, err := v.Get(ctx, call.Argument(0).String())
			if stdErrors.Is(err, errors.ErrNotFound) {
				return goja.Null()
			}
			b.throwIf(err)
			return b.vm.ToValue(string(value))
		},
		"put": func(call goja.FunctionCall) goja.Value {
			b.throwIf(v.Put(ctx, call.Argument(0).String(), []byte(call.Argument(1).String())))
			return goja.Undefined()
		},
		"delete": func(call goja.FunctionCall) goja.Value {
			b.throwIf(v.Delete(ctx, call.Argument(0).String()))
			return goja.Undefined()
		},
		"keys": func(goja.FunctionCall) goja.Value {
			keys, err := v.Keys(ctx)
			b.throwIf(err)
			items := make([]interface{}, len(keys))
			for i, k := range keys {
				items[i] = k
			}
			return b.vm.NewArray(items...)
		},
		"clear": func(goja.FunctionCall) goja.Value {
			b.throwIf(v.Clear(ctx))
			return goja.Undefined()
		},
	}
	if err := defineMethods(obj, methods); err != nil {
		return nil, err
	}
	if err := obj.Set("name", v.Name()); err != nil {
		return nil, err
	}
	if err := obj.Set("readOnly", v.ReadOnly()); err != nil {
		return nil, err
	}
	return obj, nil
}
