// Package graph holds the static structure of a computation: nodes bound
// to registered functions, and typed edges connecting output endpoints to
// input endpoints.
//
// Mutations are all-or-nothing: an edit that would violate an invariant
// (type agreement, unique input binding, acyclicity) fails without
// changing the graph. Indices are dense and stable for the graph's
// lifetime; removals tombstone their slot rather than renumbering, so
// caches and documents keyed by index stay valid between commits.
package graph
