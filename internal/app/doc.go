// Package app contains the core application logic: it wires the logger,
// the registry with its built-in modules, the graph document, and the
// executor into a runnable whole, decoupled from any specific entrypoint
// like a CLI.
package app
