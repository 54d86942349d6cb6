package vertex

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the accelerator cannot handle this draw.
// The caller should transparently fall back to CPU execution.
var ErrFallbackToCPU = errors.New("vertex: falling back to CPU execution")

// AcceleratedOp describes operation types for capability checking.
type AcceleratedOp uint32

const (
	// AccelTranslate represents the translate stage over a vertex range.
	AccelTranslate AcceleratedOp = 1 << iota

	// AccelIndexed represents indexed draws (gather through an index
	// buffer before the stage runs).
	AccelIndexed
)

// StageAccelerator is an optional GPU execution provider for draws.
//
// When registered via RegisterAccelerator, Pipeline tries the
// accelerator first for supported operations. If it returns
// ErrFallbackToCPU, execution transparently falls back to the CPU path;
// any other error aborts the draw.
//
// Implementations should be provided by GPU backend packages.
// Users opt in via blank import:
//
//	import _ "github.com/gogpu/vertex/gpu" // enables GPU dispatch
type StageAccelerator interface {
	// Name returns the accelerator name (e.g., "wgpu-translate").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// CanAccelerate reports whether the accelerator supports the given
	// operation. This is a fast check used to skip dispatch entirely.
	CanAccelerate(op AcceleratedOp) bool

	// DispatchDraw runs the stage over all inputs under one uniform
	// snapshot, producing one output per input in order.
	// Returns ErrFallbackToCPU if the draw cannot be accelerated.
	DispatchDraw(in []Input, u Uniforms) ([]Output, error)

	// DispatchDrawIndexed runs the stage over in[indices[i]] for each
	// index entry, producing one output per entry in order.
	// Returns ErrFallbackToCPU if the draw cannot be accelerated.
	DispatchDrawIndexed(in []Input, indices []uint32, u Uniforms) ([]Output, error)
}

// DeviceProviderAware is an optional interface for accelerators that
// can share GPU resources with an external provider (e.g., a gogpu
// window). When SetDeviceProvider is called, the accelerator reuses the
// provided device instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   StageAccelerator
)

// RegisterAccelerator registers an accelerator for optional GPU draws.
//
// Only one accelerator can be registered. Subsequent calls replace the
// previous one. The accelerator's Init() method is called during
// registration; if Init() fails, the accelerator is not registered and
// the error is returned.
//
// Typical usage via blank import in GPU backend packages:
//
//	func init() {
//	    vertex.RegisterAccelerator(NewExecutor())
//	}
func RegisterAccelerator(a StageAccelerator) error {
	if a == nil {
		return errors.New("vertex: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Accelerator returns the currently registered accelerator, or nil.
func Accelerator() StageAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// CloseAccelerator closes and unregisters the current accelerator.
// Hosts sharing a GPU device should call this before tearing the
// device down, so the accelerator can drain its queue and release
// its buffers while the device is still alive. Safe to call when no
// accelerator is registered.
func CloseAccelerator() {
	accelMu.Lock()
	old := accel
	accel = nil
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
}

// SetAcceleratorDeviceProvider passes a device provider to the
// registered accelerator, enabling GPU device sharing. If no
// accelerator is registered or it doesn't support device sharing, this
// is a no-op.
//
// The provider should implement HalDevice() any and HalQueue() any
// methods that return wgpu/hal types.
func SetAcceleratorDeviceProvider(provider any) error {
	a := Accelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
