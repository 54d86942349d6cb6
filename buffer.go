package vertex

import (
	"errors"
	"fmt"
)

// Buffer and vertex-array errors. Draw-time validation surfaces these
// instead of reading out of bounds.
var (
	// ErrBufferLayout indicates uploaded data whose length is not a
	// multiple of the buffer's component count.
	ErrBufferLayout = errors.New("vertex: buffer data does not match component layout")

	// ErrSlotRange indicates an attribute slot outside [0, NumSlots).
	ErrSlotRange = errors.New("vertex: attribute slot out of range")

	// ErrSlotUnbound indicates a draw over a vertex array with no buffer
	// bound to a required attribute slot.
	ErrSlotUnbound = errors.New("vertex: no buffer bound to attribute slot")

	// ErrLengthMismatch indicates attribute buffers with different
	// vertex counts bound to the same vertex array.
	ErrLengthMismatch = errors.New("vertex: attribute buffers have different vertex counts")

	// ErrVertexRange indicates a vertex index past the end of the
	// bound buffers.
	ErrVertexRange = errors.New("vertex: vertex index out of range")
)

// Buffer holds planar float32 attribute data for one slot.
//
// A buffer stores its own copy of the data: Upload copies, so the host
// may reuse or mutate its slice afterwards without affecting draws.
type Buffer struct {
	components int
	data       []float32
}

// NewBuffer creates an empty buffer for attributes with the given
// component count. If components is 0 or negative, 3 is used (the width
// of both of the stage's attributes).
func NewBuffer(components int) *Buffer {
	if components <= 0 {
		components = 3
	}
	return &Buffer{components: components}
}

// BufferFromVec3 creates a 3-component buffer holding a copy of data.
func BufferFromVec3(data []Vec3) *Buffer {
	b := NewBuffer(3)
	b.data = make([]float32, 0, len(data)*3)
	for _, v := range data {
		b.data = append(b.data, v.X, v.Y, v.Z)
	}
	return b
}

// Upload replaces the buffer contents with a copy of data.
// The length must be a multiple of the component count; otherwise the
// contents are left unchanged and ErrBufferLayout is returned.
func (b *Buffer) Upload(data []float32) error {
	if len(data)%b.components != 0 {
		return fmt.Errorf("%w: %d floats, %d components", ErrBufferLayout, len(data), b.components)
	}
	b.data = append(b.data[:0], data...)
	return nil
}

// Components returns the per-vertex component count.
func (b *Buffer) Components() int { return b.components }

// Len returns the number of vertices stored in the buffer.
func (b *Buffer) Len() int { return len(b.data) / b.components }

// Floats returns the underlying float32 storage.
// The slice is the buffer's own copy; callers must not grow it.
func (b *Buffer) Floats() []float32 { return b.data }

// Vec3At returns vertex i as a Vec3.
//
// Buffers with fewer than three components fill the remaining fields
// with zero. Out-of-range indices return the zero vector; draws
// validate ranges before fetching, so this only matters for direct use.
func (b *Buffer) Vec3At(i int) Vec3 {
	if i < 0 || i >= b.Len() {
		return Vec3{}
	}
	base := i * b.components
	var v Vec3
	switch {
	case b.components >= 3:
		v.Z = b.data[base+2]
		fallthrough
	case b.components == 2:
		v.Y = b.data[base+1]
		fallthrough
	default:
		v.X = b.data[base]
	}
	return v
}

// VertexArray binds one attribute buffer per slot, forming the stage's
// complete input surface. Slot 0 carries positions, slot 1 colors.
type VertexArray struct {
	buffers [NumSlots]*Buffer
}

// NewVertexArray creates a vertex array with no buffers bound.
func NewVertexArray() *VertexArray {
	return &VertexArray{}
}

// SetBuffer binds a buffer to an attribute slot.
// Returns ErrSlotRange if the slot does not exist.
func (va *VertexArray) SetBuffer(slot int, b *Buffer) error {
	if slot < 0 || slot >= NumSlots {
		return fmt.Errorf("%w: %d", ErrSlotRange, slot)
	}
	va.buffers[slot] = b
	return nil
}

// Buffer returns the buffer bound to slot, or nil if the slot is
// unbound or out of range.
func (va *VertexArray) Buffer(slot int) *Buffer {
	if slot < 0 || slot >= NumSlots {
		return nil
	}
	return va.buffers[slot]
}

// VertexCount returns the common vertex count across all bound slots.
//
// Every slot must be bound and all buffers must store the same number
// of vertices; otherwise ErrSlotUnbound or ErrLengthMismatch is
// returned. An array of empty buffers has count zero, which is valid.
func (va *VertexArray) VertexCount() (int, error) {
	n := -1
	for slot, b := range va.buffers {
		if b == nil {
			return 0, fmt.Errorf("%w: slot %d", ErrSlotUnbound, slot)
		}
		if n == -1 {
			n = b.Len()
			continue
		}
		if b.Len() != n {
			return 0, fmt.Errorf("%w: slot %d has %d, want %d", ErrLengthMismatch, slot, b.Len(), n)
		}
	}
	return n, nil
}

// Assemble gathers vertex i from all bound slots into an Input.
// Returns ErrVertexRange if i is outside the common vertex count.
func (va *VertexArray) Assemble(i int) (Input, error) {
	n, err := va.VertexCount()
	if err != nil {
		return Input{}, err
	}
	if i < 0 || i >= n {
		return Input{}, fmt.Errorf("%w: %d of %d", ErrVertexRange, i, n)
	}
	return Input{
		Position: va.buffers[SlotPosition].Vec3At(i),
		Color:    va.buffers[SlotColor].Vec3At(i),
	}, nil
}

// Inputs assembles the whole array into a slice of Input records, the
// form accelerators consume. Returns an empty slice for an empty array.
func (va *VertexArray) Inputs() ([]Input, error) {
	n, err := va.VertexCount()
	if err != nil {
		return nil, err
	}
	in := make([]Input, n)
	pos, col := va.buffers[SlotPosition], va.buffers[SlotColor]
	for i := 0; i < n; i++ {
		in[i] = Input{Position: pos.Vec3At(i), Color: col.Vec3At(i)}
	}
	return in, nil
}
