// Package rtl - configuration options and instruction encoding.
package rtl

import (
	"errors"

	"github.com/katalvlaran/mwpm/core"
)

// Sentinel errors for module construction.
var (
	// ErrBadCapacity indicates a non-positive defect capacity.
	ErrBadCapacity = errors.New("rtl: defect capacity must be positive")
	// ErrBadGraph wraps an initializer validation failure.
	ErrBadGraph = errors.New("rtl: invalid decoding graph")
)

// Option configures a Module via functional arguments.
type Option func(*options)

type options struct {
	preMatching        bool
	virtualPreMatching bool
}

// WithPreMatching enables the combinational offload that matches two
// growing defects across a tight edge without engaging the primal.
func WithPreMatching() Option {
	return func(o *options) { o.preMatching = true }
}

// WithVirtualPreMatching additionally pre-matches a defect to a virtual
// boundary vertex across a tight boundary edge.
func WithVirtualPreMatching() Option {
	return func(o *options) { o.virtualPreMatching = true }
}

// PreMatch is one offloaded match: a defect vertex paired with a peer
// defect or, when Node2 is absent, with the virtual vertex Vertex2.
type PreMatch struct {
	Node1   core.NodeIndex
	Vertex1 core.VertexIndex
	Node2   core.Option[core.NodeIndex]
	Vertex2 core.VertexIndex
}

type opcode uint8

const (
	opAddDefect opcode = iota
	opSetSpeed
	opSetBlossom
	opGrow
	opFindObstacle
)

// instruction is the single-cycle command broadcast to every vertex and
// edge. Exactly the fields selected by op are meaningful.
type instruction struct {
	op      opcode
	vertex  core.VertexIndex
	node    core.NodeIndex
	blossom core.NodeIndex
	speed   core.GrowState
	length  core.Weight
}
