// Package graph builds the compact, read-only graph representation consumed
// by the matching engine. Vertex identifiers of an input edge list are
// renumbered into the dense range [0, n), preserving the ascending order of
// original identifiers, and each vertex's neighbors are sorted by descending
// (weight, neighbor id). This is the order in which a vertex extends
// proposals. Graphs also carry an initial vertex order: descending by the
// weight of each vertex's heaviest edge, with ties broken by descending id.
//
// A Graph is immutable once built and is safe for concurrent readers.
package graph
