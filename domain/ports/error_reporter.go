package ports

// ErrorReporter backs the "error" capability: it receives fatal application
// failures. Implementations may panic (fail fast) or return the failure.
type ErrorReporter interface {
	Error(err error) error
}
