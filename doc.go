// Package vertex provides a vertex-stage transform pipeline for Go.
//
// # Overview
//
// vertex is a Pure Go implementation of a programmable vertex stage,
// designed to integrate with the GoGPU ecosystem. The core unit is a
// translate stage: each input vertex position is shifted by two uniform
// scalar offsets and extended to a homogeneous clip-space position,
// while the per-vertex color passes through unchanged.
//
// # Quick Start
//
//	import "github.com/gogpu/vertex"
//
//	// Bind attribute buffers (slot 0: position, slot 1: color)
//	va := vertex.NewVertexArray()
//	va.SetBuffer(vertex.SlotPosition, vertex.BufferFromVec3(positions))
//	va.SetBuffer(vertex.SlotColor, vertex.BufferFromVec3(colors))
//
//	// Host-owned uniforms, addressed by name like GL uniforms
//	u := vertex.NewUniformBlock()
//	u.SetXPosition(0.25)
//
//	// One draw call: one output per vertex
//	p := vertex.NewPipeline()
//	out, err := p.Draw(va, u)
//
// # Execution Model
//
// The stage is pure and stateless: one invocation per vertex, no
// invocation observing another's state. Uniforms are snapshotted when a
// draw begins, so host mutation never affects a draw in flight. Large
// draws run data-parallel across a worker pool; results are identical
// to sequential execution.
//
// # GPU Acceleration
//
// The CPU path is always available. GPU dispatch via gogpu/wgpu is
// opt-in through a blank import:
//
//	import _ "github.com/gogpu/vertex/gpu" // enables GPU dispatch
//
// # Architecture
//
// The library is organized into:
//   - Public API: Input, Output, UniformBlock, Pipeline, VertexArray
//   - Layout surface: gputypes vertex layouts, index formats
//   - Shader surface: embedded WGSL stage plus naga-based reflection
//   - Internal: parallel (worker pool), gpu (wgpu compute executor)
package vertex

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
