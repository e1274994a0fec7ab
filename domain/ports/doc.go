// Package ports defines the capability contracts a hosting environment implements.
// Each capability name in entities has exactly one interface here; the registry
// checks providers against these interfaces at registration time and the host
// facade only ever talks to providers through them.
package ports
