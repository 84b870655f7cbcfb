// Package matching computes approximate maximum-weight b-matchings using a
// parallel variant of the b-Suitor algorithm.
//
// Every vertex u may be matched with up to b(u) neighbors. Vertices extend
// proposals to their neighbors in order of descending edge weight, and each
// vertex p retains the best b(p) proposals it has received within a bounded
// suitor.Set. A proposal arriving at a full Set either displaces the Set's
// worst proposal, or is rejected.
//
// Matching proceeds in rounds. Each round, a pool of workers claims vertices
// from a shared queue and runs each vertex's proposal procedure until the
// vertex has exhausted its quota or its neighbors. A vertex displaced from
// any Set during the round is queued (exactly once) for the next round, with
// a quota equal to the number of proposals it lost. Rounds repeat until no
// displacements occur, at which point no single further proposal would be
// admitted anywhere: the suitor Sets are at a fixed point.
//
// Because neighbors are examined in a fixed order and admission to each Set
// is serialized by that Set's lock, the resulting matching does not depend
// on the interleaving of workers, nor on their number. Ties of edge weight
// are broken towards higher vertex IDs, both when ordering neighbors and when
// ranking proposals, which together form a single total order over edges.
package matching
