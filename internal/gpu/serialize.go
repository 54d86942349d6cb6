// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/vertex"
)

// GPU buffer strides. Flat f32 layouts, no vec3 alignment padding;
// must match translate_compute.wgsl.
const (
	// inputFloats is the number of floats per vertex in the source
	// buffer (position xyz, color rgb).
	inputFloats = 6

	// outputFloats is the number of floats per vertex in the
	// destination buffer (clip xyzw, color rgb).
	outputFloats = 7

	// paramsByteSize is the byte size of the Params uniform
	// (two offsets, vertex count, padding).
	paramsByteSize = 16
)

// Byte serialization helpers for GPU buffer upload.

func writeUint32(buf []byte, offset int, val uint32) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}

func writeFloat32(buf []byte, offset int, val float32) {
	writeUint32(buf, offset, math.Float32bits(val))
}

func readFloat32(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

// inputsToBytes packs vertices into the flat source layout.
func inputsToBytes(in []vertex.Input) []byte {
	buf := make([]byte, len(in)*inputFloats*4)
	for i, v := range in {
		off := i * inputFloats * 4
		writeFloat32(buf, off+0, v.Position.X)
		writeFloat32(buf, off+4, v.Position.Y)
		writeFloat32(buf, off+8, v.Position.Z)
		writeFloat32(buf, off+12, v.Color.X)
		writeFloat32(buf, off+16, v.Color.Y)
		writeFloat32(buf, off+20, v.Color.Z)
	}
	return buf
}

// paramsToBytes packs the uniform snapshot and vertex count into the
// Params uniform layout.
func paramsToBytes(u vertex.Uniforms, count uint32) []byte {
	buf := make([]byte, paramsByteSize)
	writeFloat32(buf, 0, u.XPosition)
	writeFloat32(buf, 4, u.YPosition)
	writeUint32(buf, 8, count)
	return buf
}

// outputsFromBytes unpacks the flat destination layout into outputs.
func outputsFromBytes(buf []byte, n int) []vertex.Output {
	out := make([]vertex.Output, n)
	for i := range out {
		off := i * outputFloats * 4
		out[i] = vertex.Output{
			ClipPosition: vertex.V4(
				readFloat32(buf, off+0),
				readFloat32(buf, off+4),
				readFloat32(buf, off+8),
				readFloat32(buf, off+12),
			),
			Color: vertex.V3(
				readFloat32(buf, off+16),
				readFloat32(buf, off+20),
				readFloat32(buf, off+24),
			),
		}
	}
	return out
}
