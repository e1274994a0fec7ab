package host

import (
	stdErrors "errors"
	"strings"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/jsil-dev/host-sdk/go/host/registry"
)

// stackTracer is implemented by failures that carry their own call stack,
// such as exceptions thrown inside a script engine.
type stackTracer interface {
	StackTrace() string
}

// LogWrite writes text verbatim to the "stdout" service.
func (h *Host) LogWrite(text string) error {
	return h.write(entities.CapabilityStdout, text)
}

// LogWriteLine writes text followed by a newline to the "stdout" service.
func (h *Host) LogWriteLine(text string) error {
	return h.write(entities.CapabilityStdout, text+"\n")
}

// Warning writes text to the "stderr" service. When stack traces are enabled
// the caller's stack follows the message on its own line.
func (h *Host) Warning(text string) error {
	svc, err := h.writer(entities.CapabilityStderr)
	if err != nil {
		return err
	}
	if h.config.stackTraces {
		if stack := callerStack(); stack != "" {
			text = text + "\n" + stack
		}
	}
	if err := svc.Write(text); err != nil {
		return &errors.ProviderError{Capability: entities.CapabilityStderr.String(), Operation: "write", Err: err}
	}
	return nil
}

// Abort reports an unrecoverable failure. It writes extraInfo, the failure
// message and the failure's stack (when it carries one) to "stderr", each as
// its own line. A failing write is logged and does not stop the remaining
// writes. The failure is then forwarded to the "error" service and whatever
// that service returns is returned.
func (h *Host) Abort(err error, extraInfo ...string) error {
	stderr, lookupErr := h.writer(entities.CapabilityStderr)
	if lookupErr != nil {
		return lookupErr
	}
	if err == nil {
		err = stdErrors.New("abort")
	}

	lines := make([]string, 0, len(extraInfo)+2)
	for _, info := range extraInfo {
		if info != "" {
			lines = append(lines, info)
		}
	}
	lines = append(lines, err.Error())
	var st stackTracer
	if stdErrors.As(err, &st) {
		if stack := strings.TrimRight(st.StackTrace(), "\n"); stack != "" {
			lines = append(lines, stack)
		}
	}

	for _, line := range lines {
		if writeErr := stderr.Write(line + "\n"); writeErr != nil {
			h.config.logger.Warn("host: abort write failed", "error", writeErr)
		}
	}

	reporter, _, lookupErr := registry.Lookup[ports.ErrorReporter](h.services, entities.CapabilityError.String(), false)
	if lookupErr != nil {
		return lookupErr
	}
	return reporter.Error(err)
}

// AssertionFailed forwards an *errors.AssertionError to the "error" service.
// Without a message the failure reads errors.DefaultAssertionMessage.
func (h *Host) AssertionFailed(message ...string) error {
	reporter, _, err := registry.Lookup[ports.ErrorReporter](h.services, entities.CapabilityError.String(), false)
	if err != nil {
		return err
	}
	return reporter.Error(errors.NewAssertionError(strings.Join(message, " ")))
}

func (h *Host) writer(capability entities.Capability) (ports.TextWriter, error) {
	svc, _, err := registry.Lookup[ports.TextWriter](h.services, capability.String(), false)
	return svc, err
}

func (h *Host) write(capability entities.Capability, text string) error {
	svc, err := h.writer(capability)
	if err != nil {
		return err
	}
	if err := svc.Write(text); err != nil {
		return &errors.ProviderError{Capability: capability.String(), Operation: "write", Err: err}
	}
	return nil
}
