// Package solver couples the primal store with the dual pipeline into
// the decoding engine consumed by a driver harness:
//
//	Clear         — reset arena and dual registers, reuse all buffers.
//	LoadSyndrome  — register defect vertices with the dual, one fresh
//	                node index per defect in report order.
//	Solve         — iterate find-obstacle → handle → grow until no
//	                conflict, virtual touch or blossom expansion remains.
//	EmitMatching  — invoke a sink once per matched vertex pair (or
//	                vertex-to-virtual), in ascending-defect order,
//	                merging pre-matched pairs with the perfect matching.
//
// Input validation uses sentinel errors; everything downstream of a
// valid syndrome follows the engine's fatal-diagnostic error model.
package solver
