// Package registry holds the process-wide catalogs the engine resolves
// names against: value types carried on edges, and the functions that
// nodes are bound to.
//
// Both catalogs are populated at startup (built-in modules plus whatever
// the embedder registers) and are read-only for the duration of a run.
// Registration is strict: rebinding a name is an error, and a function
// may only declare slots whose type names are already registered.
package registry
