//go:build !nogpu

// Package gpu registers the GPU stage executor for hardware-accelerated
// draw calls.
//
// Import this package to run translate-stage draws on the GPU via
// wgpu/hal compute dispatch. If GPU initialization fails (no
// Vulkan/Metal/DX12 available), the executor stays registered and
// serves draws from a CPU mirror of the shader, so importing this
// package never breaks a pipeline.
//
// Usage:
//
//	import _ "github.com/gogpu/vertex/gpu" // enable GPU acceleration
package gpu

import (
	"github.com/gogpu/vertex"
	gpuimpl "github.com/gogpu/vertex/internal/gpu"
)

func init() {
	accel := &gpuimpl.Executor{}
	if err := vertex.RegisterAccelerator(accel); err != nil {
		vertex.Logger().Warn("GPU stage executor not available", "err", err)
	}
}

// SetDeviceProvider configures the stage executor to use a shared GPU
// device from an external provider (e.g., gogpu). This avoids creating
// a separate GPU instance and enables efficient device sharing.
//
// The provider should be a gpucontext.DeviceProvider that also
// implements gpucontext.HalProvider for direct HAL access.
//
// Call this after importing the package, before issuing draw calls.
func SetDeviceProvider(provider any) error {
	return vertex.SetAcceleratorDeviceProvider(provider)
}
