package vertex

// Transform runs the translate stage for a single vertex.
//
// The entire computation:
//
//	clip.x = in.Position.X + u.XPosition
//	clip.y = in.Position.Y + u.YPosition
//	clip.z = in.Position.Z
//	clip.w = 1.0
//	color  = in.Color
//
// Transform is pure and total: it has no side effects and never
// rejects an input. NaN and Inf flow through the arithmetic unchanged,
// and out-of-range clip coordinates are not clamped here; clipping
// belongs to the downstream pipeline.
func Transform(in Input, u Uniforms) Output {
	return Output{
		ClipPosition: Vec4{
			X: in.Position.X + u.XPosition,
			Y: in.Position.Y + u.YPosition,
			Z: in.Position.Z,
			W: 1.0,
		},
		Color: in.Color,
	}
}

// Stage is a per-vertex transform executed once per input vertex.
//
// Implementations must be pure with respect to the invocation: a call
// may not retain or mutate shared state, so the pipeline is free to run
// invocations concurrently in any order.
type Stage interface {
	// Name returns the stage name (e.g., "translate").
	Name() string

	// Process transforms one input vertex under the given uniforms.
	Process(in Input, u Uniforms) Output
}

// StageFunc adapts an ordinary function to the Stage interface.
type StageFunc func(Input, Uniforms) Output

// Name returns "func" for all function-backed stages.
func (StageFunc) Name() string { return "func" }

// Process calls the function.
func (f StageFunc) Process(in Input, u Uniforms) Output { return f(in, u) }

// TranslateStage is the canonical stage: Transform behind the Stage
// interface. The zero value is ready to use.
type TranslateStage struct{}

// Name returns "translate".
func (TranslateStage) Name() string { return "translate" }

// Process transforms one vertex via Transform.
func (TranslateStage) Process(in Input, u Uniforms) Output {
	return Transform(in, u)
}

var _ Stage = TranslateStage{}
var _ Stage = StageFunc(nil)
