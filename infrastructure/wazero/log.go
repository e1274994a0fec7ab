package wazero

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/tetratelabs/wazero/api"
)

// logRecord is the JSON payload of a guest log_message call.
type logRecord struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// LogMessageHandler returns the fire and forget "log_message" function.
// Messages at warn or error level go to the facade's Warning, everything else
// to LogWriteLine. Payloads that are not JSON are written verbatim.
func LogMessageHandler(facade ports.Host, logger *slog.Logger) CustomHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CustomHandler{
		Name: "log_message",
		Handler: func(ctx context.Context, mod api.Module, stack []uint64) {
			payload, ok := decodeSpan(stack[0]).read(mod)
			if !ok {
				logger.ErrorContext(ctx, "wazero: failed to read log message", "guest", GetGuestName(ctx, mod))
				return
			}

			var rec logRecord
			if err := json.Unmarshal(payload, &rec); err != nil {
				rec = logRecord{Message: string(payload)}
			}

			var err error
			switch strings.ToLower(rec.Level) {
			case "warn", "warning", "error":
				err = facade.Warning(rec.Message)
			default:
				err = facade.LogWriteLine(rec.Message)
			}
			if err != nil {
				logger.WarnContext(ctx, "wazero: guest log dropped", "guest", GetGuestName(ctx, mod), "error", err)
			}
		},
		ParamTypes:  []api.ValueType{api.ValueTypeI64},
		ResultTypes: []api.ValueType{},
	}
}
