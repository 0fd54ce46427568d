package core

import (
	"math"
	"testing"
)

func TestVec3_CrossAndDot(t *testing.T) {
	tests := []struct {
		name          string
		a, b          Vec3
		expectedCross Vec3
		expectedDot   float64
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1), 0},
		{"Y cross X", NewVec3(0, 1, 0), NewVec3(1, 0, 0), NewVec3(0, 0, -1), 0},
		{"Parallel vectors", NewVec3(2, 0, 0), NewVec3(3, 0, 0), NewVec3(0, 0, 0), 6},
		{"General case", NewVec3(1, 2, 3), NewVec3(4, 5, 6), NewVec3(-3, 6, -3), 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cross := tt.a.Cross(tt.b); !cross.Equals(tt.expectedCross) {
				t.Errorf("Expected cross %v, got %v", tt.expectedCross, cross)
			}
			if dot := tt.a.Dot(tt.b); dot != tt.expectedDot {
				t.Errorf("Expected dot %f, got %f", tt.expectedDot, dot)
			}
		})
	}
}

func TestVec3_UnitAndNormalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	unit := v.Unit()
	if math.Abs(unit.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", unit.Length())
	}
	if !unit.Equals(v.Normalize()) {
		t.Errorf("Unit and Normalize should agree for non-zero vectors: %v vs %v", unit, v.Normalize())
	}

	zero := Vec3{}
	if !math.IsNaN(zero.Unit().X) {
		t.Errorf("Expected NaN for unit of zero vector, got %v", zero.Unit())
	}
	if !zero.Normalize().Equals(zero) {
		t.Errorf("Expected Normalize of zero vector to stay zero, got %v", zero.Normalize())
	}
}

func TestReflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0)
	normal := NewVec3(0, 1, 0)
	reflected := Reflect(incoming, normal)

	expected := NewVec3(1, 1, 0)
	if !reflected.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestRefract_StraightThrough(t *testing.T) {
	// Head-on ray is not bent regardless of the ratio
	incoming := NewVec3(0, -1, 0)
	normal := NewVec3(0, 1, 0)
	refracted := Refract(incoming, normal, 1.0/1.5)

	if refracted.Subtract(incoming).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", incoming, refracted)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"finite", NewVec3(1, 2, 3), true},
		{"NaN", NewVec3(math.NaN(), 0, 0), false},
		{"positive infinity", NewVec3(0, math.Inf(1), 0), false},
		{"negative infinity", NewVec3(0, 0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.expected {
				t.Errorf("Expected IsFinite=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))
	point := ray.At(1.5)

	expected := NewVec3(1, 3, 0)
	if !point.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, point)
	}
}
