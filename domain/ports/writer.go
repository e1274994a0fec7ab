package ports

// TextWriter backs the "stdout" and "stderr" capabilities.
type TextWriter interface {
	Write(text string) error
}
