// Package codes builds the decoding graphs the engine is exercised on.
//
// Two code-capacity families are provided:
//
//   - Planar surface code of distance d: a d × (d+1) grid whose leftmost
//     and rightmost columns are virtual boundary absorbers. Horizontal
//     edges join row neighbours; vertical edges join column neighbours
//     of the interior columns. All edges carry weight 2·halfWeight.
//   - Repetition code of distance d: a chain of d+1 vertices whose two
//     endpoints are virtual, with d unit edges of weight 2·halfWeight.
//
// Syndromes are sampled deterministically: the same seed and error rate
// always produce the same defect set, which keeps randomized property
// tests reproducible across platforms.
package codes
