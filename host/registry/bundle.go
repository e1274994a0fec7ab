package registry

// ServiceBundle is a pre-configured set of related providers.
// Bundles allow registering a whole environment's services at once.
type ServiceBundle interface {
	// Services returns a map of capability names to providers.
	Services() map[string]any
}

// StaticBundle implements ServiceBundle with a fixed set of providers.
type StaticBundle map[string]any

// Services implements ServiceBundle.
func (b StaticBundle) Services() map[string]any {
	return b
}

// compositeBundle combines multiple bundles into one. Later bundles win on
// name collisions, matching registry semantics.
type compositeBundle struct {
	bundles []ServiceBundle
}

func (b *compositeBundle) Services() map[string]any {
	result := make(map[string]any)
	for _, bundle := range b.bundles {
		for name, service := range bundle.Services() {
			result[name] = service
		}
	}
	return result
}

// Combine returns a bundle containing the providers of every given bundle.
func Combine(bundles ...ServiceBundle) ServiceBundle {
	return &compositeBundle{bundles: bundles}
}
