// Package mwpm is a streaming Minimum-Weight Perfect Matching decoder
// core for real-time quantum error correction.
//
// 🚀 What is mwpm?
//
//	A compact, allocation-free implementation of the primal-dual blossom
//	algorithm, co-designed with a hardware-style dual pipeline:
//
//	  • Primal store: fixed-capacity arena of defect & blossom nodes,
//	    alternating trees, temporary matches, touching links
//	  • Dual pipeline: cycle-accurate execute → update → write sweeps
//	    over vertices and edges, deterministic obstacle reduction
//	  • Pre-matching: optional combinational offload for trivial pairs
//
// ✨ Why choose mwpm?
//
//   - Deterministic          — equal syndromes ⇒ bit-identical obstacle streams
//   - Allocation-free core   — fixed 2N-slot arenas, compact 16-bit indices
//   - Hardware-faithful      — stage barriers match the RTL design contract
//   - Pure Go                — no cgo, testify-only test dependency
//
// Under the hood, everything is organized under six subpackages:
//
//	core/     — compact indices, grow states, obstacles, the dual contract
//	primal/   — node arena, blossom cycles, tree operations, matching walks
//	rtl/      — the pipelined dual module with pre-matching offload
//	solver/   — the decoding engine: load syndrome, solve, emit matching
//	codes/    — planar & repetition decoding graphs for tests and benchmarks
//	refmatch/ — exact serial reference matcher used for verification
//
// Quick ASCII example (repetition code, two defects):
//
//	[v]──●──●──○──○──○──[v]
//	      \_/
//	    matched
//
//	two adjacent defects pair across one tight edge; a lone defect
//	would instead match its nearest virtual boundary vertex [v].
//
// See DESIGN.md for the grounding of each component.
package mwpm
