package vertex

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestInputLayout(t *testing.T) {
	l := InputLayout()

	if l.ArrayStride != InputByteSize {
		t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, InputByteSize)
	}
	if l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want per-vertex", l.StepMode)
	}
	if len(l.Attributes) != NumSlots {
		t.Fatalf("len(Attributes) = %d, want %d", len(l.Attributes), NumSlots)
	}

	pos := l.Attributes[0]
	if pos.ShaderLocation != SlotPosition || pos.Offset != 0 || pos.Format != gputypes.VertexFormatFloat32x3 {
		t.Errorf("position attribute = %+v", pos)
	}

	col := l.Attributes[1]
	if col.ShaderLocation != SlotColor || col.Offset != PositionByteSize || col.Format != gputypes.VertexFormatFloat32x3 {
		t.Errorf("color attribute = %+v", col)
	}
}

func TestPlanarLayouts(t *testing.T) {
	layouts := PlanarLayouts()
	if len(layouts) != NumSlots {
		t.Fatalf("len = %d, want %d", len(layouts), NumSlots)
	}

	for slot, l := range layouts {
		if len(l.Attributes) != 1 {
			t.Fatalf("slot %d has %d attributes, want 1", slot, len(l.Attributes))
		}
		a := l.Attributes[0]
		if int(a.ShaderLocation) != slot {
			t.Errorf("slot %d attribute location = %d", slot, a.ShaderLocation)
		}
		if a.Offset != 0 {
			t.Errorf("slot %d attribute offset = %d, want 0", slot, a.Offset)
		}
		if l.ArrayStride != PositionByteSize {
			t.Errorf("slot %d stride = %d, want %d", slot, l.ArrayStride, PositionByteSize)
		}
	}
}

func TestValidateLayout(t *testing.T) {
	t.Run("interleaved valid", func(t *testing.T) {
		if err := ValidateLayout(InputLayout()); err != nil {
			t.Errorf("ValidateLayout(InputLayout()) = %v", err)
		}
	})

	t.Run("planar valid", func(t *testing.T) {
		for slot, l := range PlanarLayouts() {
			if err := ValidateLayout(l); err != nil {
				t.Errorf("slot %d: ValidateLayout() = %v", slot, err)
			}
		}
	})

	t.Run("attribute exceeds stride", func(t *testing.T) {
		l := gputypes.VertexBufferLayout{
			ArrayStride: 8,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		}
		if err := ValidateLayout(l); !errors.Is(err, ErrLayoutStride) {
			t.Errorf("ValidateLayout() = %v, want ErrLayoutStride", err)
		}
	})

	t.Run("offset pushes attribute past stride", func(t *testing.T) {
		l := gputypes.VertexBufferLayout{
			ArrayStride: 16,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 0},
			},
		}
		if err := ValidateLayout(l); !errors.Is(err, ErrLayoutStride) {
			t.Errorf("ValidateLayout() = %v, want ErrLayoutStride", err)
		}
	})
}

func TestFormatByteSize(t *testing.T) {
	tests := []struct {
		format gputypes.VertexFormat
		want   uint64
	}{
		{gputypes.VertexFormatFloat32, 4},
		{gputypes.VertexFormatFloat32x2, 8},
		{gputypes.VertexFormatFloat32x3, 12},
		{gputypes.VertexFormatFloat32x4, 16},
	}
	for _, tt := range tests {
		if got := formatByteSize(tt.format); got != tt.want {
			t.Errorf("formatByteSize(%v) = %d, want %d", tt.format, got, tt.want)
		}
	}
}

func TestFetchInterleaved(t *testing.T) {
	data := []float32{
		1, 2, 3, 0.1, 0.2, 0.3,
		4, 5, 6, 0.4, 0.5, 0.6,
	}

	in, err := FetchInterleaved(data, 1)
	if err != nil {
		t.Fatalf("FetchInterleaved(1) = %v", err)
	}
	if in.Position != V3(4, 5, 6) {
		t.Errorf("Position = %v, want (4, 5, 6)", in.Position)
	}
	if !in.Color.Approx(V3(0.4, 0.5, 0.6), 1e-6) {
		t.Errorf("Color = %v, want (0.4, 0.5, 0.6)", in.Color)
	}

	if _, err := FetchInterleaved(data, 2); !errors.Is(err, ErrVertexRange) {
		t.Errorf("FetchInterleaved(2) = %v, want ErrVertexRange", err)
	}
	if _, err := FetchInterleaved(data[:7], 0); !errors.Is(err, ErrBufferLayout) {
		t.Errorf("FetchInterleaved(short data) = %v, want ErrBufferLayout", err)
	}
}

func TestInterleave(t *testing.T) {
	in := []Input{
		In(1, 2, 3, 0.1, 0.2, 0.3),
		In(4, 5, 6, 0.4, 0.5, 0.6),
	}

	data := Interleave(in)
	if len(data) != len(in)*InputByteSize/4 {
		t.Fatalf("len = %d, want %d", len(data), len(in)*InputByteSize/4)
	}

	// Fetch reverses the packing.
	got, err := FetchInterleaved(data, 0)
	if err != nil {
		t.Fatalf("FetchInterleaved(0) = %v", err)
	}
	if got != in[0] {
		t.Errorf("roundtrip vertex 0 = %+v, want %+v", got, in[0])
	}
}
