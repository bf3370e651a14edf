// Package refmatch is a reference serial matcher used to verify the
// engine: it computes the exact minimum-weight perfect matching of a
// small defect set over a decoding graph, allowing each defect to pair
// with another defect or to be absorbed by its nearest virtual boundary
// vertex.
//
// Distances come from Dijkstra's algorithm with a lazy-decrease-key
// min-heap; the matching itself is a bitmask dynamic program over defect
// subsets, O(2ᵏ·k²) for k defects, bounded by MaxDefects.
//
// This package trades speed for obviousness on purpose: it is the
// yardstick the pipelined engine is measured against in property tests.
package refmatch
