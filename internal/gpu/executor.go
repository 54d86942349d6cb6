// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vertex"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// workgroupSize matches @workgroup_size in translate_compute.wgsl.
const workgroupSize = 64

// Executor runs the translate stage on the GPU using wgpu/hal compute
// dispatch. It implements vertex.StageAccelerator.
//
// A draw call uploads the vertex inputs and uniforms, dispatches one
// compute invocation per vertex, and reads the clip positions back.
// When no GPU device is available the executor computes the same
// algorithm on the CPU, so a registered executor always serves draws.
type Executor struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	gpuReady       bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

// Interface compliance checks.
var _ vertex.StageAccelerator = (*Executor)(nil)
var _ vertex.DeviceProviderAware = (*Executor)(nil)

// Name returns the accelerator identifier.
func (e *Executor) Name() string { return "wgpu-translate" }

// CanAccelerate reports whether this executor supports the given operation.
func (e *Executor) CanAccelerate(op vertex.AcceleratedOp) bool {
	return op&(vertex.AccelTranslate|vertex.AccelIndexed) != 0
}

// Init attempts to bring up a standalone GPU device. Failure is not
// fatal: the executor stays registered and serves draws from the CPU
// mirror until a device arrives via SetDeviceProvider.
func (e *Executor) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.initGPU(); err != nil {
		slogger().Warn("wgpu-translate: GPU init failed, using CPU mirror", "error", err)
	}
	return nil
}

// Close releases all GPU resources held by the executor.
func (e *Executor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroyPipelines()
	if !e.externalDevice {
		if e.device != nil {
			e.device.Destroy()
			e.device = nil
		}
		if e.instance != nil {
			e.instance.Destroy()
			e.instance = nil
		}
	} else {
		// Don't destroy shared resources -- we don't own them.
		e.device = nil
		e.instance = nil
	}
	e.queue = nil
	e.gpuReady = false
	e.externalDevice = false
}

// SetLogger sets the logger for the executor and its internal helpers.
// Called by vertex.SetLogger to propagate logging configuration.
func (e *Executor) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// GPUReady reports whether a device and pipeline are available (for testing).
func (e *Executor) GPUReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gpuReady
}

// SetDeviceProvider switches the executor to use a shared GPU device
// from an external provider (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (e *Executor) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu-translate: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu-translate: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu-translate: provider HalQueue is not hal.Queue")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Destroy own resources if we created them.
	e.destroyPipelines()
	if !e.externalDevice && e.device != nil {
		e.device.Destroy()
	}
	if e.instance != nil {
		e.instance.Destroy()
		e.instance = nil
	}

	// Use provided resources.
	e.device = device
	e.queue = queue
	e.externalDevice = true

	// Recreate pipelines with the shared device.
	if err := e.createPipelines(); err != nil {
		e.gpuReady = false
		return fmt.Errorf("wgpu-translate: create pipelines with shared device: %w", err)
	}
	e.gpuReady = true
	slogger().Debug("wgpu-translate: switched to shared GPU device")
	return nil
}

// DispatchDraw processes every input through the translate stage and
// returns the outputs in input order.
func (e *Executor) DispatchDraw(in []vertex.Input, u vertex.Uniforms) ([]vertex.Output, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runLocked(in, u)
}

// DispatchDrawIndexed gathers inputs through the index list, then
// processes the gathered run like DispatchDraw. Output i corresponds
// to indices[i].
func (e *Executor) DispatchDrawIndexed(in []vertex.Input, indices []uint32, u vertex.Uniforms) ([]vertex.Output, error) {
	gathered := make([]vertex.Input, len(indices))
	for i, j := range indices {
		if int(j) >= len(in) {
			return nil, fmt.Errorf("wgpu-translate: index %d out of range of %d vertices", j, len(in))
		}
		gathered[i] = in[j]
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runLocked(gathered, u)
}

func (e *Executor) runLocked(in []vertex.Input, u vertex.Uniforms) ([]vertex.Output, error) {
	if len(in) == 0 {
		return []vertex.Output{}, nil
	}
	if e.gpuReady {
		out, err := e.dispatchGPU(in, u)
		if err == nil {
			return out, nil
		}
		slogger().Warn("wgpu-translate: GPU dispatch failed, computing on CPU", "vertices", len(in), "error", err)
	}
	return computeCPU(in, u), nil
}

// dispatchGPU uploads inputs and uniforms, runs one compute invocation
// per vertex, and reads the outputs back through a staging buffer.
// One submit + one fence wait per draw call.
func (e *Executor) dispatchGPU(in []vertex.Input, u vertex.Uniforms) ([]vertex.Output, error) {
	n := len(in)
	srcBytes := inputsToBytes(in)
	paramsBytes := paramsToBytes(u, uint32(n)) //nolint:gosec // vertex count fits uint32
	dstSize := uint64(n * outputFloats * 4)

	paramsBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "translate_params", Size: paramsByteSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create params buffer: %w", err)
	}
	defer e.device.DestroyBuffer(paramsBuf)

	srcBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "translate_src", Size: uint64(len(srcBytes)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create src buffer: %w", err)
	}
	defer e.device.DestroyBuffer(srcBuf)

	dstBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "translate_dst", Size: dstSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create dst buffer: %w", err)
	}
	defer e.device.DestroyBuffer(dstBuf)

	stagingBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "translate_staging", Size: dstSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer e.device.DestroyBuffer(stagingBuf)

	e.queue.WriteBuffer(paramsBuf, 0, paramsBytes)
	e.queue.WriteBuffer(srcBuf, 0, srcBytes)

	bg, err := e.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "translate_bind", Layout: e.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: paramsByteSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: srcBuf.NativeHandle(), Offset: 0, Size: uint64(len(srcBytes))}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: dstBuf.NativeHandle(), Offset: 0, Size: dstSize}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	defer e.device.DestroyBindGroup(bg)

	encoder, err := e.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "translate_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("translate_draw"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	computePass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "translate_pass"})
	computePass.SetPipeline(e.pipeline)
	computePass.SetBindGroup(0, bg, nil)
	computePass.Dispatch((uint32(n)+workgroupSize-1)/workgroupSize, 1, 1) //nolint:gosec // vertex count fits uint32
	computePass.End()

	encoder.CopyBufferToBuffer(dstBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: dstSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer e.device.FreeCommandBuffer(cmdBuf)

	fence, err := e.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer e.device.DestroyFence(fence)
	if err := e.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := e.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, dstSize)
	if err := e.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}
	return outputsFromBytes(readback, n), nil
}

// initGPU creates a standalone Vulkan device for compute-only use.
// This is the fallback path when no external device is provided via
// SetDeviceProvider (e.g., when vertex is used without gogpu).
func (e *Executor) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	e.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	e.device = openDev.Device
	e.queue = openDev.Queue

	if err := e.createPipelines(); err != nil {
		e.device.Destroy()
		e.device = nil
		e.queue = nil
		return fmt.Errorf("create pipelines: %w", err)
	}
	e.gpuReady = true
	slogger().Info("wgpu-translate: GPU initialized (standalone)", "adapter", selected.Info.Name)
	return nil
}

func (e *Executor) createPipelines() error {
	words, err := compileShader()
	if err != nil {
		return err
	}
	shader, err := e.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "translate_compute",
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return fmt.Errorf("create translate shader module: %w", err)
	}
	e.shader = shader

	bindLayout, err := e.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "translate_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	e.bindLayout = bindLayout

	pipeLayout, err := e.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "translate_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{e.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	e.pipeLayout = pipeLayout

	pipeline, err := e.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "translate_pipeline", Layout: e.pipeLayout,
		Compute: hal.ComputeState{Module: e.shader, EntryPoint: "cs_translate"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	e.pipeline = pipeline

	return nil
}

func (e *Executor) destroyPipelines() {
	if e.device == nil {
		return
	}
	if e.pipeline != nil {
		e.device.DestroyComputePipeline(e.pipeline)
		e.pipeline = nil
	}
	if e.pipeLayout != nil {
		e.device.DestroyPipelineLayout(e.pipeLayout)
		e.pipeLayout = nil
	}
	if e.bindLayout != nil {
		e.device.DestroyBindGroupLayout(e.bindLayout)
		e.bindLayout = nil
	}
	if e.shader != nil {
		e.device.DestroyShaderModule(e.shader)
		e.shader = nil
	}
}
