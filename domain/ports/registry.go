package ports

// ServiceResolver looks up capability providers by name.
type ServiceResolver interface {
	// GetService returns the provider registered under name. When nothing is
	// registered it returns (nil, nil) if optional is true and a
	// *errors.ServiceUnavailableError otherwise.
	GetService(name string, optional bool) (any, error)
}

// ServiceRegistry is a ServiceResolver that also accepts registrations.
type ServiceRegistry interface {
	ServiceResolver

	// Register stores service under name, replacing any previous provider.
	Register(name string, service any) error

	// RegisterServices registers every entry of services.
	RegisterServices(services map[string]any) error

	// Has reports whether a provider is registered under name.
	Has(name string) bool

	// Names returns the registered names, sorted.
	Names() []string
}
