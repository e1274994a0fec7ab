// Package shell assembles a headless JSIL environment: default and headless
// providers in a registry, a storage backend, optional Prometheus metrics and
// a goja runtime with the facade installed. cmd/jsil-shell is a thin cobra
// front end over it.
package shell
