// Package rtl is a clock-cycle-accurate software model of the decoder's
// dual module: the per-vertex / per-edge combinational pipeline that
// grows dual variables, detects obstacles and optionally pre-matches
// trivial defect pairs.
//
// Every instruction executes as three ordered sweeps over all vertices
// and all edges, with a barrier between stages:
//
//	execute — vertices react to AddDefect / SetSpeed / SetBlossom / Grow;
//	          edges accumulate per-side growth while their endpoints
//	          belong to different regions.
//	update  — a non-defect, non-virtual vertex at zero dual inherits
//	          ownership from a growing peer across a fully-grown edge,
//	          or relaxes to an unowned resting state.
//	write   — vertices and edges emit obstacles; the module reduces them
//	          deterministically (conflicts, then blossom expansions, then
//	          the minimum finite grow length).
//
// The stage barrier is realized with double-buffered register arrays:
// each sweep reads the previous stage's complete snapshot, so the model
// matches a hardware pipeline cycle for cycle regardless of sweep order.
//
// Obstacle detection resolves ownership through shadows: a shrinking
// vertex whose dual reached zero is attributed to the region about to
// conquer it, which lets conflicts fire through a fully retreated region
// in the same cycle its dual hits zero.
//
// Pre-matching, when enabled, pairs two growing defect vertices across a
// tight edge (or a defect with a virtual boundary vertex) without
// engaging the primal module, provided the edge is the unique contended
// tight edge of each endpoint. A later conflict that names a pre-matched
// node cancels the pre-match before the obstacle is surfaced, so the
// offload never changes the produced matching.
package rtl
