package vertex

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/vertex/internal/parallel"
)

// defaultParallelThreshold is the vertex count at which draws switch to
// the worker pool. Below it the per-vertex work is too cheap to amortize
// goroutine handoff.
const defaultParallelThreshold = 4096

// Pipeline executes a per-vertex stage over bound buffers, the
// in-process analog of one draw call.
//
// Each draw snapshots the uniform block once at entry, so every
// invocation of that draw observes the same values and host mutation
// never affects a draw in flight. Outputs preserve input order: out[i]
// derives from vertex i (or from vertex indices[i] for indexed draws),
// whether execution is sequential, parallel, or accelerated.
//
// A Pipeline is safe for concurrent use. The worker pool is created
// lazily on the first parallel draw; Close releases it.
type Pipeline struct {
	stage             Stage
	workers           int
	parallelThreshold int
	useAccelerator    bool

	mu   sync.Mutex
	pool *parallel.WorkerPool
}

// NewPipeline creates a pipeline with the given options.
// The default configuration runs TranslateStage, switches to parallel
// execution at defaultParallelThreshold vertices, and dispatches to a
// registered accelerator when one claims the draw.
func NewPipeline(opts ...Option) *Pipeline {
	o := defaultPipelineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		stage:             o.stage,
		workers:           o.workers,
		parallelThreshold: o.parallelThreshold,
		useAccelerator:    o.useAccelerator,
	}
}

// Stage returns the pipeline's per-vertex stage.
func (p *Pipeline) Stage() Stage { return p.stage }

// Close releases the pipeline's worker pool, if one was created.
// The pipeline remains usable; subsequent parallel draws recreate it.
func (p *Pipeline) Close() {
	p.mu.Lock()
	pool := p.pool
	p.pool = nil
	p.mu.Unlock()
	if pool != nil {
		pool.Close()
	}
}

// Draw runs the stage over every vertex of the array, producing exactly
// one output per vertex in input order. An array of empty buffers
// yields an empty slice and nil error.
func (p *Pipeline) Draw(va *VertexArray, u *UniformBlock) ([]Output, error) {
	in, err := va.Inputs()
	if err != nil {
		return nil, err
	}
	snap := snapshotOf(u)

	if out, ok, err := p.tryAccelerator(in, nil, snap); err != nil {
		return nil, err
	} else if ok {
		return out, nil
	}

	out := make([]Output, len(in))
	p.processInto(out, in, snap)
	return out, nil
}

// DrawIndexed runs the stage over in[indices[i]] for each index entry,
// producing one output per entry in index order. Every entry is
// validated against the vertex count before any work runs. A nil or
// empty index buffer draws nothing.
func (p *Pipeline) DrawIndexed(va *VertexArray, ib *IndexBuffer, u *UniformBlock) ([]Output, error) {
	in, err := va.Inputs()
	if err != nil {
		return nil, err
	}
	if ib == nil || ib.Len() == 0 {
		return []Output{}, nil
	}
	if err := ib.Validate(len(in)); err != nil {
		return nil, err
	}
	idx := ib.Uint32()
	snap := snapshotOf(u)

	if out, ok, err := p.tryAccelerator(in, idx, snap); err != nil {
		return nil, err
	} else if ok {
		return out, nil
	}

	out := make([]Output, len(idx))
	p.processIndexedInto(out, in, idx, snap)
	return out, nil
}

// DrawTo runs the stage into a caller-allocated output slice, for
// steady-state hosts that redraw every frame without reallocating.
// dst must have exactly one element per vertex. DrawTo always executes
// on the CPU path.
func (p *Pipeline) DrawTo(dst []Output, va *VertexArray, u *UniformBlock) error {
	in, err := va.Inputs()
	if err != nil {
		return err
	}
	if len(dst) != len(in) {
		return fmt.Errorf("%w: dst has %d, vertices %d", ErrLengthMismatch, len(dst), len(in))
	}
	p.processInto(dst, in, snapshotOf(u))
	return nil
}

// snapshotOf reads the uniform block once. A nil block applies no offset.
func snapshotOf(u *UniformBlock) Uniforms {
	if u == nil {
		return Uniforms{}
	}
	return u.Snapshot()
}

// tryAccelerator dispatches the draw to the registered accelerator.
// The second return is true when the accelerator produced the result.
// ErrFallbackToCPU is swallowed; any other accelerator error aborts.
func (p *Pipeline) tryAccelerator(in []Input, idx []uint32, u Uniforms) ([]Output, bool, error) {
	if !p.useAccelerator {
		return nil, false, nil
	}
	// Only the canonical stage has a GPU-side definition.
	if _, ok := p.stage.(TranslateStage); !ok {
		return nil, false, nil
	}
	a := Accelerator()
	if a == nil {
		return nil, false, nil
	}
	op := AccelTranslate
	if idx != nil {
		op |= AccelIndexed
	}
	if !a.CanAccelerate(op) {
		return nil, false, nil
	}

	var (
		out []Output
		err error
	)
	if idx != nil {
		out, err = a.DispatchDrawIndexed(in, idx, u)
	} else {
		out, err = a.DispatchDraw(in, u)
	}
	if err != nil {
		if errors.Is(err, ErrFallbackToCPU) {
			Logger().Debug("accelerator declined draw", "accel", a.Name(), "vertices", len(in))
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("vertex: accelerator %s: %w", a.Name(), err)
	}
	return out, true, nil
}

// processInto runs the stage over in, writing dst[i] from in[i].
// Parallel execution splits the range into disjoint chunks, so the
// result is identical to the sequential loop.
func (p *Pipeline) processInto(dst []Output, in []Input, u Uniforms) {
	if !p.parallelEligible(len(in)) {
		for i, v := range in {
			dst[i] = p.stage.Process(v, u)
		}
		return
	}
	p.ensurePool().ExecuteChunks(len(in), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = p.stage.Process(in[i], u)
		}
	})
}

// processIndexedInto runs the stage over the gathered entries, writing
// dst[i] from in[idx[i]]. Indices are validated by the caller.
func (p *Pipeline) processIndexedInto(dst []Output, in []Input, idx []uint32, u Uniforms) {
	if !p.parallelEligible(len(idx)) {
		for i, j := range idx {
			dst[i] = p.stage.Process(in[j], u)
		}
		return
	}
	p.ensurePool().ExecuteChunks(len(idx), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = p.stage.Process(in[idx[i]], u)
		}
	})
}

// parallelEligible reports whether a draw of n vertices goes to the
// worker pool. Negative thresholds disable parallel execution.
func (p *Pipeline) parallelEligible(n int) bool {
	if p.parallelThreshold < 0 || n == 0 {
		return false
	}
	return n >= p.parallelThreshold
}

// ensurePool returns the worker pool, creating it on first use.
func (p *Pipeline) ensurePool() *parallel.WorkerPool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool == nil {
		p.pool = parallel.NewWorkerPool(p.workers)
	}
	return p.pool
}
