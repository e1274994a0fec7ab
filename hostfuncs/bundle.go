package hostfuncs

// HostFuncBundle supplies a group of named handlers to WithBundle.
type HostFuncBundle interface {
	Handlers() map[string]ByteHandler
}

// Bundle is a HostFuncBundle over a plain map.
type Bundle map[string]ByteHandler

// Handlers implements HostFuncBundle.
func (b Bundle) Handlers() map[string]ByteHandler {
	return b
}

// NewBundle returns handlers as a HostFuncBundle.
func NewBundle(handlers map[string]ByteHandler) HostFuncBundle {
	return Bundle(handlers)
}

type combined []HostFuncBundle

func (c combined) Handlers() map[string]ByteHandler {
	merged := make(map[string]ByteHandler)
	for _, bundle := range c {
		for name, handler := range bundle.Handlers() {
			merged[name] = handler
		}
	}
	return merged
}

// Combine merges bundles. Later bundles replace same-named handlers of
// earlier ones; the merge happens each time Handlers is called.
func Combine(bundles ...HostFuncBundle) HostFuncBundle {
	return combined(bundles)
}
