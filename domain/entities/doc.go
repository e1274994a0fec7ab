// Package entities provides core domain entities for the host SDK.
// These are plain value types shared by the registry, the facade and every
// environment adapter. They carry no behavior that depends on a host.
package entities
