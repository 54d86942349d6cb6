package vertex

// Option configures a Pipeline during creation.
// Use functional options to customize Pipeline behavior.
//
// Example:
//
//	// Default translate stage, parallel over GOMAXPROCS workers
//	p := vertex.NewPipeline()
//
//	// Custom stage, sequential only
//	p := vertex.NewPipeline(
//	    vertex.WithStage(myStage),
//	    vertex.WithParallelThreshold(0),
//	)
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	stage             Stage
	workers           int
	parallelThreshold int
	useAccelerator    bool
}

// defaultPipelineOptions returns the default pipeline options.
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		stage:             TranslateStage{},
		workers:           0, // GOMAXPROCS
		parallelThreshold: defaultParallelThreshold,
		useAccelerator:    true,
	}
}

// WithStage sets a custom per-vertex stage for the Pipeline.
// The default is TranslateStage. Custom stages always execute on the
// CPU path; the accelerator only understands the canonical stage.
func WithStage(s Stage) Option {
	return func(o *pipelineOptions) {
		if s != nil {
			o.stage = s
		}
	}
}

// WithWorkers sets the worker count for parallel draws.
// If n is 0 or negative, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(o *pipelineOptions) {
		o.workers = n
	}
}

// WithParallelThreshold sets the vertex count at which draws switch
// from sequential to parallel execution. A threshold of 0 parallelizes
// every non-empty draw; a negative threshold disables parallel
// execution entirely.
func WithParallelThreshold(n int) Option {
	return func(o *pipelineOptions) {
		o.parallelThreshold = n
	}
}

// WithoutAccelerator disables accelerator dispatch for this Pipeline,
// forcing the CPU path even when a GPU backend is registered.
func WithoutAccelerator() Option {
	return func(o *pipelineOptions) {
		o.useAccelerator = false
	}
}
