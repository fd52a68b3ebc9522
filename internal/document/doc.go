// Package document maps graphs to and from their persistent HCL form: a
// flat sequence of node and edge blocks. Loading rebuilds the graph
// through its mutators, so every structural invariant is re-checked on
// the way in, and saving emits canonical hclwrite formatting, so a
// document written by Save is byte-identical after a load/save cycle.
// Other documents are normalized by that cycle: attributes come out in a
// fixed order, and behavior is always written, even where it was omitted.
package document
