package graph

import "errors"

var (
	// ErrTypeMismatch is returned when an edge would connect endpoints whose
	// declared value types differ.
	ErrTypeMismatch = errors.New("endpoint value types differ")

	// ErrInputAlreadyBound is returned when an edge would terminate at an
	// input endpoint that already has an incoming edge.
	ErrInputAlreadyBound = errors.New("input endpoint already bound")

	// ErrWouldCreateCycle is returned when an edge would make the graph cyclic.
	ErrWouldCreateCycle = errors.New("edge would create a cycle")

	// ErrNoSuchNode is returned when an index does not name a live node.
	ErrNoSuchNode = errors.New("no such node")

	// ErrNoSuchEdge is returned when an index does not name a live edge.
	ErrNoSuchEdge = errors.New("no such edge")

	// ErrNoSuchSlot is returned when an endpoint names a slot the node's
	// function does not declare.
	ErrNoSuchSlot = errors.New("no such slot")
)
