// Package core defines the compact types shared by the primal and dual
// halves of the decoder: index spaces, optional values, growth states,
// obstacles with their deterministic reduction order, match targets, and
// the narrow DualDriver contract the primal module drives the dual with.
//
// Design constraints carried by this package:
//
//   - All entity references are small unsigned integers (NodeIndex,
//     VertexIndex, EdgeIndex are distinct index spaces); a "none" is the
//     absence of a value (Option), never a reserved numeric constant.
//   - Weights are non-negative; MaxWeight is the saturation value meaning
//     "no finite growth length from this source".
//   - Obstacle reduction is a total, deterministic order: conflicts first,
//     blossom expansions second, finite grow lengths by increasing length,
//     ties resolved by source sweep order.
package core
