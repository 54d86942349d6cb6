package vertex

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestVec2_Creation(t *testing.T) {
	tests := []struct {
		name string
		x, y float32
	}{
		{"zero", 0, 0},
		{"positive", 3, 4},
		{"negative", -1, -2},
		{"mixed", -5, 10},
		{"fractional", 1.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := V2(tt.x, tt.y)
			if v.X != tt.x || v.Y != tt.y {
				t.Errorf("V2(%v, %v) = %v, want (%v, %v)", tt.x, tt.y, v, tt.x, tt.y)
			}
		})
	}
}

func TestVec2_Add(t *testing.T) {
	tests := []struct {
		name   string
		v, w   Vec2
		expect Vec2
	}{
		{"zero+zero", V2(0, 0), V2(0, 0), V2(0, 0)},
		{"positive", V2(1, 2), V2(3, 4), V2(4, 6)},
		{"negative", V2(-1, -2), V2(-3, -4), V2(-4, -6)},
		{"mixed", V2(1, -2), V2(-3, 4), V2(-2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Add(tt.w)
			if !result.Approx(tt.expect, 1e-6) {
				t.Errorf("%v.Add(%v) = %v, want %v", tt.v, tt.w, result, tt.expect)
			}
		})
	}
}

func TestVec2_Sub(t *testing.T) {
	tests := []struct {
		name   string
		v, w   Vec2
		expect Vec2
	}{
		{"zero-zero", V2(0, 0), V2(0, 0), V2(0, 0)},
		{"positive", V2(5, 7), V2(2, 3), V2(3, 4)},
		{"negative", V2(-1, -2), V2(-3, -4), V2(2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Sub(tt.w)
			if !result.Approx(tt.expect, 1e-6) {
				t.Errorf("%v.Sub(%v) = %v, want %v", tt.v, tt.w, result, tt.expect)
			}
		})
	}
}

func TestVec2_Mul(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec2
		s      float32
		expect Vec2
	}{
		{"zero scalar", V2(1, 2), 0, V2(0, 0)},
		{"identity", V2(1, 2), 1, V2(1, 2)},
		{"double", V2(1, 2), 2, V2(2, 4)},
		{"negative", V2(1, 2), -1, V2(-1, -2)},
		{"fractional", V2(4, 8), 0.5, V2(2, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Mul(tt.s)
			if !result.Approx(tt.expect, 1e-6) {
				t.Errorf("%v.Mul(%v) = %v, want %v", tt.v, tt.s, result, tt.expect)
			}
		})
	}
}

func TestVec2_Dot(t *testing.T) {
	tests := []struct {
		name   string
		v, w   Vec2
		expect float32
	}{
		{"orthogonal", V2(1, 0), V2(0, 1), 0},
		{"parallel", V2(1, 0), V2(1, 0), 1},
		{"opposite", V2(1, 0), V2(-1, 0), -1},
		{"general", V2(1, 2), V2(3, 4), 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Dot(tt.w)
			if math32.Abs(result-tt.expect) > 1e-6 {
				t.Errorf("%v.Dot(%v) = %v, want %v", tt.v, tt.w, result, tt.expect)
			}
		})
	}
}

func TestVec2_Length(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec2
		expect float32
	}{
		{"zero", V2(0, 0), 0},
		{"unit x", V2(1, 0), 1},
		{"unit y", V2(0, 1), 1},
		{"3-4-5", V2(3, 4), 5},
		{"negative", V2(-3, -4), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Length()
			if math32.Abs(result-tt.expect) > 1e-6 {
				t.Errorf("%v.Length() = %v, want %v", tt.v, result, tt.expect)
			}
		})
	}
}

func TestVec2_IsZero(t *testing.T) {
	if !V2(0, 0).IsZero() {
		t.Error("V2(0, 0).IsZero() = false, want true")
	}
	if V2(0.001, 0).IsZero() {
		t.Error("V2(0.001, 0).IsZero() = true, want false")
	}
}

func TestVec3_Creation(t *testing.T) {
	v := V3(1, 2, 3)
	if v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Errorf("V3(1, 2, 3) = %v", v)
	}
}

func TestVec3_AddSub(t *testing.T) {
	v := V3(1, 2, 3)
	w := V3(4, 5, 6)

	sum := v.Add(w)
	if !sum.Approx(V3(5, 7, 9), 1e-6) {
		t.Errorf("Add = %v, want (5, 7, 9)", sum)
	}

	diff := w.Sub(v)
	if !diff.Approx(V3(3, 3, 3), 1e-6) {
		t.Errorf("Sub = %v, want (3, 3, 3)", diff)
	}
}

func TestVec3_MulNeg(t *testing.T) {
	v := V3(1, -2, 3)

	scaled := v.Mul(2)
	if !scaled.Approx(V3(2, -4, 6), 1e-6) {
		t.Errorf("Mul(2) = %v, want (2, -4, 6)", scaled)
	}

	neg := v.Neg()
	if !neg.Approx(V3(-1, 2, -3), 1e-6) {
		t.Errorf("Neg() = %v, want (-1, 2, -3)", neg)
	}
}

func TestVec3_Dot(t *testing.T) {
	tests := []struct {
		name   string
		v, w   Vec3
		expect float32
	}{
		{"orthogonal", V3(1, 0, 0), V3(0, 1, 0), 0},
		{"parallel", V3(0, 0, 1), V3(0, 0, 1), 1},
		{"general", V3(1, 2, 3), V3(4, 5, 6), 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Dot(tt.w)
			if math32.Abs(result-tt.expect) > 1e-6 {
				t.Errorf("%v.Dot(%v) = %v, want %v", tt.v, tt.w, result, tt.expect)
			}
		})
	}
}

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name   string
		v, w   Vec3
		expect Vec3
	}{
		{"x cross y", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y cross z", V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{"z cross x", V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{"parallel is zero", V3(2, 2, 2), V3(2, 2, 2), V3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Cross(tt.w)
			if !result.Approx(tt.expect, 1e-6) {
				t.Errorf("%v.Cross(%v) = %v, want %v", tt.v, tt.w, result, tt.expect)
			}
		})
	}
}

func TestVec3_Length(t *testing.T) {
	v := V3(2, 3, 6)
	if math32.Abs(v.Length()-7) > 1e-6 {
		t.Errorf("Length() = %v, want 7", v.Length())
	}
	if math32.Abs(v.LengthSq()-49) > 1e-6 {
		t.Errorf("LengthSq() = %v, want 49", v.LengthSq())
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"unit x", V3(1, 0, 0)},
		{"diagonal", V3(1, 1, 1)},
		{"arbitrary", V3(3, -4, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalize()
			if math32.Abs(n.Length()-1) > 1e-6 {
				t.Errorf("Normalize().Length() = %v, want 1", n.Length())
			}
		})
	}

	// Zero vector normalizes to zero, not NaN.
	z := V3(0, 0, 0).Normalize()
	if !z.IsZero() {
		t.Errorf("V3(0,0,0).Normalize() = %v, want zero", z)
	}
}

func TestVec3_Lerp(t *testing.T) {
	v := V3(0, 0, 0)
	w := V3(10, 20, 30)

	tests := []struct {
		name   string
		t      float32
		expect Vec3
	}{
		{"start", 0, V3(0, 0, 0)},
		{"end", 1, V3(10, 20, 30)},
		{"middle", 0.5, V3(5, 10, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Lerp(w, tt.t)
			if !result.Approx(tt.expect, 1e-6) {
				t.Errorf("Lerp(%v) = %v, want %v", tt.t, result, tt.expect)
			}
		})
	}
}

func TestVec3_Extend(t *testing.T) {
	v := V3(1, 2, 3)
	e := v.Extend(1)
	if e != V4(1, 2, 3, 1) {
		t.Errorf("Extend(1) = %v, want (1, 2, 3, 1)", e)
	}
	if e.XYZ() != v {
		t.Errorf("Extend(1).XYZ() = %v, want %v", e.XYZ(), v)
	}
}

func TestVec3_XY(t *testing.T) {
	v := V3(1, 2, 3)
	if v.XY() != V2(1, 2) {
		t.Errorf("XY() = %v, want (1, 2)", v.XY())
	}
}

func TestVec4_Creation(t *testing.T) {
	v := V4(1, 2, 3, 4)
	if v.X != 1 || v.Y != 2 || v.Z != 3 || v.W != 4 {
		t.Errorf("V4(1, 2, 3, 4) = %v", v)
	}
}

func TestVec4_Add(t *testing.T) {
	v := V4(1, 2, 3, 4).Add(V4(4, 3, 2, 1))
	if !v.Approx(V4(5, 5, 5, 5), 1e-6) {
		t.Errorf("Add = %v, want (5, 5, 5, 5)", v)
	}
}

func TestVec4_Dot(t *testing.T) {
	got := V4(1, 2, 3, 4).Dot(V4(5, 6, 7, 8))
	if math32.Abs(got-70) > 1e-6 {
		t.Errorf("Dot = %v, want 70", got)
	}
}

func TestVecApprox(t *testing.T) {
	if !V3(1, 2, 3).Approx(V3(1.0000001, 2, 3), 1e-5) {
		t.Error("nearly equal vectors should be approx equal")
	}
	if V3(1, 2, 3).Approx(V3(1.1, 2, 3), 1e-5) {
		t.Error("distinct vectors should not be approx equal")
	}
}
