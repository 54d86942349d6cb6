package vertex

// Attribute slot numbers for the stage's input surface.
// Hosts bind one buffer per slot; the numbers match the shader's
// @location indices.
const (
	// SlotPosition is the attribute slot carrying the 3-component position.
	SlotPosition = 0

	// SlotColor is the attribute slot carrying the 3-component color.
	SlotColor = 1
)

// NumSlots is the number of attribute slots the stage consumes.
const NumSlots = 2

// Attribute sizes in components and bytes. The byte sizes describe the
// tightly packed host-side representation used by buffers and layouts.
const (
	// PositionComponents is the component count of the position attribute.
	PositionComponents = 3

	// ColorComponents is the component count of the color attribute.
	ColorComponents = 3

	// PositionByteSize is the packed byte size of one position.
	PositionByteSize = PositionComponents * 4

	// ColorByteSize is the packed byte size of one color.
	ColorByteSize = ColorComponents * 4

	// InputByteSize is the packed byte size of one interleaved input vertex.
	InputByteSize = PositionByteSize + ColorByteSize

	// OutputByteSize is the packed byte size of one output vertex
	// (vec4 clip position followed by vec3 color).
	OutputByteSize = 4*4 + ColorByteSize
)

// Input is the per-vertex record consumed by one stage invocation.
// It is immutable within the invocation: the stage reads it and never
// writes back.
type Input struct {
	// Position is the model-space vertex position (attribute slot 0).
	Position Vec3

	// Color is the per-vertex color (attribute slot 1), forwarded to the
	// next stage unchanged.
	Color Vec3
}

// In builds an Input from position and color components.
func In(px, py, pz, cr, cg, cb float32) Input {
	return Input{Position: V3(px, py, pz), Color: V3(cr, cg, cb)}
}

// Output is the per-vertex record produced by one stage invocation and
// consumed by the next pipeline stage.
type Output struct {
	// ClipPosition is the homogeneous clip-space position.
	ClipPosition Vec4

	// Color is the varying forwarded from the input.
	Color Vec3
}

// Approx returns true if two outputs are approximately equal within epsilon.
func (o Output) Approx(p Output, epsilon float32) bool {
	return o.ClipPosition.Approx(p.ClipPosition, epsilon) &&
		o.Color.Approx(p.Color, epsilon)
}
