package hostfuncs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// HostFunc is a typed host function. Failures travel inside Resp.
type HostFunc[Req any, Resp any] func(context.Context, Req) Resp

// ByteHandler takes a JSON request and returns a JSON response. A Go error
// means the response itself could not be produced.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// NewJSONHandler adapts fn to a ByteHandler.
// An empty payload decodes to the zero request. A malformed payload is
// answered with a VALIDATION_ERROR response without calling fn.

func NewJSONHandler[Req any, Resp any](fn HostFunc[Req, Resp]) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var req Req
		if len(bytes.TrimSpace(payload)) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return NewValidationError(fmt.Sprintf("malformed request: %v", err)).ToJSON(), nil
			}
		}

		resp := fn(ctx, req)

		respBytes, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return respBytes, nil
	}
}
