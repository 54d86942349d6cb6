// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/vertex"
)

func TestInputsToBytes(t *testing.T) {
	in := []vertex.Input{
		vertex.In(1, 2, 3, 0.25, 0.5, 0.75),
		vertex.In(-0.5, 0.5, 0, 1, 0, 0),
	}

	buf := inputsToBytes(in)
	if want := len(in) * inputFloats * 4; len(buf) != want {
		t.Fatalf("len = %d, want %d", len(buf), want)
	}

	// Vertex 0: position then color, tightly packed.
	if got := readFloat32(buf, 0); got != 1 {
		t.Errorf("position.x = %v, want 1", got)
	}
	if got := readFloat32(buf, 8); got != 3 {
		t.Errorf("position.z = %v, want 3", got)
	}
	if got := readFloat32(buf, 12); got != 0.25 {
		t.Errorf("color.r = %v, want 0.25", got)
	}

	// Vertex 1 starts after 6 floats.
	if got := readFloat32(buf, 24); got != -0.5 {
		t.Errorf("position.x = %v, want -0.5", got)
	}
	if got := readFloat32(buf, 36); got != 1 {
		t.Errorf("color.r = %v, want 1", got)
	}
}

func TestParamsToBytes(t *testing.T) {
	buf := paramsToBytes(vertex.Uniforms{XPosition: 10, YPosition: -5}, 4)
	if len(buf) != paramsByteSize {
		t.Fatalf("len = %d, want %d", len(buf), paramsByteSize)
	}

	if got := readFloat32(buf, 0); got != 10 {
		t.Errorf("xPosition = %v, want 10", got)
	}
	if got := readFloat32(buf, 4); got != -5 {
		t.Errorf("yPosition = %v, want -5", got)
	}
	if got := binary.LittleEndian.Uint32(buf[8:]); got != 4 {
		t.Errorf("vertexCount = %d, want 4", got)
	}
	// Trailing pad stays zero.
	if got := binary.LittleEndian.Uint32(buf[12:]); got != 0 {
		t.Errorf("pad = %d, want 0", got)
	}
}

func TestOutputsFromBytes(t *testing.T) {
	// Hand-pack two vertices in the flat destination layout:
	// clip xyzw then color rgb, 7 floats each.
	buf := make([]byte, 2*outputFloats*4)
	vals := [][outputFloats]float32{
		{11, -3, 3, 1, 0.5, 0.5, 0.5},
		{-0.25, 0.5, 0, 1, 1, 0, 0},
	}
	for i, v := range vals {
		off := i * outputFloats * 4
		for j, f := range v {
			writeFloat32(buf, off+j*4, f)
		}
	}

	got := outputsFromBytes(buf, 2)
	want := []vertex.Output{
		{ClipPosition: vertex.V4(11, -3, 3, 1), Color: vertex.V3(0.5, 0.5, 0.5)},
		{ClipPosition: vertex.V4(-0.25, 0.5, 0, 1), Color: vertex.V3(1, 0, 0)},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("out[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
