package vertex

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrIndexRange indicates an index entry addressing a vertex past the
// end of the bound buffers.
var ErrIndexRange = errors.New("vertex: index out of range of vertex buffers")

// IndexBuffer holds primitive indices in one of the two formats the
// GPU vocabulary defines, 16-bit or 32-bit unsigned.
type IndexBuffer struct {
	format gputypes.IndexFormat
	u16    []uint16
	u32    []uint32
}

// IndicesU16 creates an index buffer holding a copy of 16-bit indices.
func IndicesU16(indices []uint16) *IndexBuffer {
	return &IndexBuffer{
		format: gputypes.IndexFormatUint16,
		u16:    append([]uint16(nil), indices...),
	}
}

// IndicesU32 creates an index buffer holding a copy of 32-bit indices.
func IndicesU32(indices []uint32) *IndexBuffer {
	return &IndexBuffer{
		format: gputypes.IndexFormatUint32,
		u32:    append([]uint32(nil), indices...),
	}
}

// Format returns the element format of the buffer.
func (ib *IndexBuffer) Format() gputypes.IndexFormat { return ib.format }

// Len returns the number of index entries.
func (ib *IndexBuffer) Len() int {
	if ib.format == gputypes.IndexFormatUint16 {
		return len(ib.u16)
	}
	return len(ib.u32)
}

// At returns index entry i widened to uint32.
// Out-of-range entries return zero; draws validate first.
func (ib *IndexBuffer) At(i int) uint32 {
	if i < 0 || i >= ib.Len() {
		return 0
	}
	if ib.format == gputypes.IndexFormatUint16 {
		return uint32(ib.u16[i])
	}
	return ib.u32[i]
}

// Uint32 returns all entries widened to uint32, the form accelerators
// and indexed draws consume.
func (ib *IndexBuffer) Uint32() []uint32 {
	out := make([]uint32, ib.Len())
	for i := range out {
		out[i] = ib.At(i)
	}
	return out
}

// Validate checks every entry against the given vertex count.
// Returns ErrIndexRange naming the first offending entry.
func (ib *IndexBuffer) Validate(vertexCount int) error {
	n := ib.Len()
	for i := 0; i < n; i++ {
		if idx := ib.At(i); int(idx) >= vertexCount {
			return fmt.Errorf("%w: entry %d is %d, have %d vertices", ErrIndexRange, i, idx, vertexCount)
		}
	}
	return nil
}
