// Package layout implements the indexed layered-layout core: a dense,
// integer-indexed, structure-of-arrays graph representation (Graph, the
// "IG") plus its three algorithmic phases — Rank (Network Simplex), Order
// (barycentre crossing minimisation) and Position (Brandes–Köpf coordinate
// assignment).
//
// Every inner loop here is a scan over a contiguous []int32/[]float64
// array keyed by a small dense index; no algorithmic path hashes a string.
// String identifiers live only at the boundary, in the host graph
// (internal/hostgraph) and in Graph's id<->index maps.
//
// Graph is single-owner and single-threaded: one caller builds it, runs
// phases against it in order, and discards it. It is not safe for
// concurrent use by multiple goroutines.
package layout
