package entities

import "strings"

// ErrorDetail is the structured, serializable form of a host failure.
//
// Type is one of "capability", "provider", "contract", "assertion", "fatal",
// "init", "storage", "config" or "internal". Code narrows it down: the
// capability name, "capability.operation" or a config field.
type ErrorDetail struct {
	Type       string       `json:"type"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Stack      string       `json:"stack,omitempty"`
	IsNotFound bool         `json:"is_not_found,omitempty"`
	Wrapped    *ErrorDetail `json:"wrapped,omitempty"`
}

// NewErrorDetail creates an ErrorDetail of the given type.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{Type: errorType, Message: message}
}

// Error renders "type[code]: message", then the wrapped chain after " <- ".
// The "internal" type is left out.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for d := e; d != nil; d = d.Wrapped {
		if d != e {
			b.WriteString(" <- ")
		}
		if d.Type != "" && d.Type != "internal" {
			b.WriteString(d.Type)
			if d.Code != "" {
				b.WriteString("[" + d.Code + "]")
			}
			b.WriteString(": ")
		}
		b.WriteString(d.Message)
	}
	return b.String()
}
