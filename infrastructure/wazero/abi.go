package wazero

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// span is a region of guest memory passed across the boundary as one i64:
// the offset in the high 32 bits, the length in the low 32 bits.
type span struct {
	offset uint32
	length uint32
}

func decodeSpan(v uint64) span {
	return span{offset: uint32(v >> 32), length: uint32(v)} //nolint:gosec // both halves are 32-bit by construction
}

func (s span) encode() uint64 {
	return uint64(s.offset)<<32 | uint64(s.length)
}

// read copies the span out of guest memory.
func (s span) read(mod api.Module) ([]byte, bool) {
	if s.length == 0 {
		return []byte{}, true
	}
	data, ok := mod.Memory().Read(s.offset, s.length)
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

// deliver asks the guest's allocator for len(data) bytes and copies data there.
func deliver(ctx context.Context, mod api.Module, allocator string, data []byte) (span, error) {
	alloc := mod.ExportedFunction(allocator)
	if alloc == nil {
		return span{}, fmt.Errorf("guest %q does not export %q", mod.Name(), allocator)
	}
	results, err := alloc.Call(ctx, uint64(len(data)))
	if err != nil {
		return span{}, fmt.Errorf("guest %s(%d) failed: %w", allocator, len(data), err)
	}
	if len(results) == 0 {
		return span{}, fmt.Errorf("guest %s returned no pointer", allocator)
	}
	s := span{offset: uint32(results[0]), length: uint32(len(data))} //nolint:gosec // wasm32 offsets and bounded responses
	if !mod.Memory().Write(s.offset, data) {
		return span{}, fmt.Errorf("response of %d bytes does not fit at offset %d", s.length, s.offset)
	}
	return s, nil
}
