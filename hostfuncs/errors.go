package hostfuncs

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"

	"github.com/jsil-dev/host-sdk/go/domain/errors"
)

// Error kinds carried in ErrorResponse.Error, with the status code sent alongside.
const (
	KindValidation         = "VALIDATION_ERROR"
	KindNotFound           = "NOT_FOUND"
	KindAssertionFailed    = "ASSERTION_FAILED"
	KindInternal           = "INTERNAL_ERROR"
	KindProvider           = "PROVIDER_ERROR"
	KindServiceUnavailable = "SERVICE_UNAVAILABLE"
)

var kindCodes = map[string]int{
	KindValidation:         400,
	KindNotFound:           404,
	KindAssertionFailed:    417,
	KindInternal:           500,
	KindProvider:           502,
	KindServiceUnavailable: 503,
}

// ErrorResponse is the JSON body a host function returns instead of its
// normal response when the call fails.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func newErrorResponse(kind, message string) ErrorResponse {
	return ErrorResponse{Error: kind, Message: message, Code: kindCodes[kind]}
}

// ToJSON encodes the response. The struct holds only strings and an int, so
// encoding cannot fail.
func (e ErrorResponse) ToJSON() []byte {
	data, _ := json.Marshal(e)
	return data
}

// NewValidationError reports a request the guest encoded incorrectly.
func NewValidationError(message string) ErrorResponse {
	return newErrorResponse(KindValidation, message)
}

// NewNotFoundError reports a call to a function the registry does not export.
func NewNotFoundError(name string) ErrorResponse {
	return newErrorResponse(KindNotFound, fmt.Sprintf("unknown host function: %s", name))
}

// NewServiceUnavailableError reports a call whose required capability has no provider.
func NewServiceUnavailableError(capability string) ErrorResponse {
	return newErrorResponse(KindServiceUnavailable, fmt.Sprintf("service unavailable: %s", capability))
}

// NewInternalError reports a host-side failure.
func NewInternalError(message string) ErrorResponse {
	return newErrorResponse(KindInternal, message)
}

// NewPanicError reports a handler panic recovered by PanicRecoveryMiddleware.
func NewPanicError(recovered any) ErrorResponse {
	var msg string
	switch v := recovered.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprintf("%v", v)
	}
	return newErrorResponse(KindInternal, "panic: "+msg)
}

// FromError maps a facade failure onto an ErrorResponse. It returns nil for a nil error.
func FromError(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	var unavailable *errors.ServiceUnavailableError
	var provider *errors.ProviderError
	var assertion *errors.AssertionError
	var resp ErrorResponse
	switch {
	case stdErrors.As(err, &unavailable):
		resp = NewServiceUnavailableError(unavailable.Capability)
	case stdErrors.As(err, &assertion):
		resp = newErrorResponse(KindAssertionFailed, err.Error())
	case stdErrors.As(err, &provider):
		resp = newErrorResponse(KindProvider, err.Error())
	default:
		resp = NewInternalError(err.Error())
	}
	return &resp
}
