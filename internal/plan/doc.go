// Package plan turns a graph and a requested node set into the ordered
// list of nodes a run will consider: the backward cone of the requested
// set, dependencies strictly before dependents, ties broken by ascending
// node index so runs are reproducible.
package plan
