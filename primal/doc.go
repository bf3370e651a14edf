// Package primal implements the node store and the alternating-tree /
// blossom state machine of the decoder.
//
// The store is a fixed-capacity arena of 2N slots: slots [0, N) hold
// defect nodes, slots [N, 2N) hold blossoms. Defect slots are created
// lazily, on the first obstacle that mentions them — a pre-decoder may
// legitimately never report some defects, so absence below the defect
// high-water mark is a first-class state. Blossom slots are bump-allocated
// and never reused within a decoding episode.
//
// A node record holds a grow state (Grow/Shrink/Stay for outer nodes,
// absent for blossom members), three index chains (parent, first child,
// sibling) whose meaning depends on the node's role, and a touching link
// identifying which inner defect and which vertex participate in the
// node's contact with its matched or tree-adjacent peer.
//
// The tree operations — grow, augment, blossom formation, blossom
// expansion, temporary matches — mutate the arena and forward every
// speed change to the dual module through the core.DualDriver contract.
// Matching extraction is two layered walks: the intermediate walk reports
// each matched outer node once in ascending ID order; the perfect walk
// recursively expands blossoms into their per-defect pairings.
//
// All contract breaches (touching an absent node, disposing a non-blossom,
// resolving an obstacle between two matched nodes, overflowing the arena)
// are fatal and halt with a diagnostic.
package primal
