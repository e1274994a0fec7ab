// Package headless provides in-memory providers for running a generated
// runtime without a browser: canvas surfaces, keyboard and mouse state, page
// visibility, a frame-driven tick scheduler and a logging performance
// reporter. Environment bundles them for registration.
package headless
