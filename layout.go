package vertex

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrLayoutStride indicates a vertex buffer layout whose attributes do
// not fit inside its array stride.
var ErrLayoutStride = errors.New("vertex: attribute exceeds layout stride")

// InputLayout returns the stage's input surface as a single interleaved
// vertex buffer layout: position at offset 0, color at offset 12,
// 24 bytes per vertex.
func InputLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: InputByteSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: SlotPosition},
			{Format: gputypes.VertexFormatFloat32x3, Offset: PositionByteSize, ShaderLocation: SlotColor},
		},
	}
}

// PlanarLayouts returns the input surface as one single-attribute
// layout per slot, for hosts that bind separate position and color
// buffers the way GL vertex arrays do.
func PlanarLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: PositionByteSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: SlotPosition},
			},
		},
		{
			ArrayStride: ColorByteSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: SlotColor},
			},
		},
	}
}

// formatByteSize returns the byte size of the vertex formats the stage
// uses. Unknown formats return 0.
func formatByteSize(f gputypes.VertexFormat) uint64 {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 4
	case gputypes.VertexFormatFloat32x2:
		return 8
	case gputypes.VertexFormatFloat32x3:
		return 12
	case gputypes.VertexFormatFloat32x4:
		return 16
	default:
		return 0
	}
}

// ValidateLayout checks that every attribute of a layout fits inside
// the array stride. Returns ErrLayoutStride naming the first attribute
// that does not.
func ValidateLayout(l gputypes.VertexBufferLayout) error {
	for _, a := range l.Attributes {
		size := formatByteSize(a.Format)
		if size == 0 {
			return fmt.Errorf("vertex: unsupported vertex format %v at location %d", a.Format, a.ShaderLocation)
		}
		if a.Offset+size > l.ArrayStride {
			return fmt.Errorf("%w: location %d ends at %d, stride %d",
				ErrLayoutStride, a.ShaderLocation, a.Offset+size, l.ArrayStride)
		}
	}
	return nil
}

// FetchInterleaved gathers vertex i from interleaved float32 data laid
// out per InputLayout (six floats per vertex: x y z r g b).
// Returns ErrVertexRange if i is out of range and ErrBufferLayout if
// the data length is not a multiple of six.
func FetchInterleaved(data []float32, i int) (Input, error) {
	const stride = InputByteSize / 4
	if len(data)%stride != 0 {
		return Input{}, fmt.Errorf("%w: %d floats, stride %d", ErrBufferLayout, len(data), stride)
	}
	n := len(data) / stride
	if i < 0 || i >= n {
		return Input{}, fmt.Errorf("%w: %d of %d", ErrVertexRange, i, n)
	}
	base := i * stride
	return Input{
		Position: V3(data[base], data[base+1], data[base+2]),
		Color:    V3(data[base+3], data[base+4], data[base+5]),
	}, nil
}

// Interleave packs inputs into interleaved float32 data laid out per
// InputLayout. The inverse of FetchInterleaved over whole buffers.
func Interleave(in []Input) []float32 {
	const stride = InputByteSize / 4
	out := make([]float32, 0, len(in)*stride)
	for _, v := range in {
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Color.X, v.Color.Y, v.Color.Z,
		)
	}
	return out
}
