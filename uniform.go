package vertex

import (
	"errors"
	"sync"
)

// Uniform names understood by the stage. Hosts address uniforms by
// these strings, mirroring GL-style location lookup.
const (
	// UniformXPosition is the name of the horizontal offset uniform.
	UniformXPosition = "xPosition"

	// UniformYPosition is the name of the vertical offset uniform.
	UniformYPosition = "yPosition"
)

// ErrUnknownUniform indicates a uniform name the stage does not declare.
var ErrUnknownUniform = errors.New("vertex: unknown uniform name")

// Uniforms holds the stage's uniform values for one draw call.
//
// Uniforms is a plain value: the pipeline snapshots a UniformBlock into
// a Uniforms at the start of each draw, so every invocation of that
// draw observes the same values. The zero value applies no offset.
type Uniforms struct {
	// XPosition is added to each vertex position's x component.
	XPosition float32

	// YPosition is added to each vertex position's y component.
	YPosition float32
}

// Offset returns the uniform pair as a displacement vector.
func (u Uniforms) Offset() Vec2 {
	return Vec2{X: u.XPosition, Y: u.YPosition}
}

// UniformBlock is the host-owned, mutable container behind Uniforms.
//
// The block supports lookup and update by uniform name so hosts can
// drive the stage the way GL programs drive uniforms: resolve a name,
// then set it per frame. All methods are safe for concurrent use; a
// draw call in flight keeps working from the snapshot it took and never
// observes later mutation.
type UniformBlock struct {
	mu sync.Mutex
	u  Uniforms
}

// NewUniformBlock creates a uniform block with both offsets zero.
func NewUniformBlock() *UniformBlock {
	return &UniformBlock{}
}

// Snapshot returns the current uniform values by value.
// Pipelines call this once per draw; see the Uniforms doc.
func (b *UniformBlock) Snapshot() Uniforms {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.u
}

// SetXPosition sets the horizontal offset uniform.
func (b *UniformBlock) SetXPosition(v float32) {
	b.mu.Lock()
	b.u.XPosition = v
	b.mu.Unlock()
}

// SetYPosition sets the vertical offset uniform.
func (b *UniformBlock) SetYPosition(v float32) {
	b.mu.Lock()
	b.u.YPosition = v
	b.mu.Unlock()
}

// SetOffset sets both offsets at once.
func (b *UniformBlock) SetOffset(x, y float32) {
	b.mu.Lock()
	b.u.XPosition = x
	b.u.YPosition = y
	b.mu.Unlock()
}

// Set assigns a uniform by name.
// Returns ErrUnknownUniform for names the stage does not declare.
func (b *UniformBlock) Set(name string, v float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch name {
	case UniformXPosition:
		b.u.XPosition = v
	case UniformYPosition:
		b.u.YPosition = v
	default:
		return ErrUnknownUniform
	}
	return nil
}

// Add adds delta to a uniform by name. Successive calls compose
// additively, which is how hosts implement incremental movement.
// Returns ErrUnknownUniform for names the stage does not declare.
func (b *UniformBlock) Add(name string, delta float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch name {
	case UniformXPosition:
		b.u.XPosition += delta
	case UniformYPosition:
		b.u.YPosition += delta
	default:
		return ErrUnknownUniform
	}
	return nil
}

// Get returns a uniform's current value by name.
// Returns ErrUnknownUniform for names the stage does not declare.
func (b *UniformBlock) Get(name string) (float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch name {
	case UniformXPosition:
		return b.u.XPosition, nil
	case UniformYPosition:
		return b.u.YPosition, nil
	default:
		return 0, ErrUnknownUniform
	}
}

// UniformNames returns the names the stage declares, in binding order.
func UniformNames() []string {
	return []string{UniformXPosition, UniformYPosition}
}
