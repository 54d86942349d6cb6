// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu executes the translate stage on the GPU via wgpu/hal
// compute dispatch, with a CPU mirror of the shader algorithm as
// fallback.
package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/vertex"
)

// Embedded WGSL compute wrapper around the translate stage.
// Compiled at build time using a go:embed directive.
//
//go:embed shaders/translate_compute.wgsl
var translateComputeWGSL string

// ComputeShaderSource returns the WGSL source of the compute wrapper.
func ComputeShaderSource() string { return translateComputeWGSL }

// compileShader compiles the compute wrapper to SPIR-V words for
// shader module creation.
func compileShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(translateComputeWGSL)
	if err != nil {
		return nil, fmt.Errorf("compile translate compute shader: %w", err)
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// computeCPU runs the same algorithm as the compute shader on the CPU.
// This serves as reference implementation and as the execution path
// when no GPU device is available.
func computeCPU(in []vertex.Input, u vertex.Uniforms) []vertex.Output {
	out := make([]vertex.Output, len(in))
	for i, v := range in {
		out[i] = vertex.Output{
			ClipPosition: vertex.V4(v.Position.X+u.XPosition, v.Position.Y+u.YPosition, v.Position.Z, 1.0),
			Color:        v.Color,
		}
	}
	return out
}
