// Package executor drives a plan over a graph: for each considered node
// it decides execute or skip, gathers inputs from upstream cached
// outputs, invokes the function through the execution context, and
// commits the results to a new cache.
//
// A run is atomic from the caller's perspective. The executor works on a
// copy of the prior cache; on any error the caller's cache comes back
// untouched.
package executor
