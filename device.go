package vertex

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the integration point between vertex and GPU
// frameworks like gogpu. The host application implements DeviceHandle
// and passes it to BindDevice, allowing the accelerator to run on the
// shared GPU device instead of creating its own.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// package-local name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// BindDevice forwards a host device handle to the registered
// accelerator. Providers that also expose HAL types (HalDevice() any,
// HalQueue() any) let the accelerator skip its own instance creation
// entirely. Without a registered accelerator this is a no-op.
func BindDevice(h DeviceHandle) error {
	return SetAcceleratorDeviceProvider(h)
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only execution where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
