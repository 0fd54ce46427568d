package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

func TestPlane_Hit(t *testing.T) {
	plane, err := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), material.NewEmpty())
	if err != nil {
		t.Fatalf("NewPlane: %v", err)
	}
	if !plane.Normal.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected normalized normal, got %v", plane.Normal)
	}

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
		front     bool
	}{
		{"from above", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), true, 1.0, true},
		{"from below", core.NewRay(core.NewVec3(3, -2, 1), core.NewVec3(0, 1, 0)), true, 2.0, false},
		{"parallel", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)), false, 0, false},
		{"behind origin", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)), false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := plane.Hit(tt.ray, 0.001, 1000.0)
			if ok != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.front {
				t.Errorf("Expected front face %v, got %v", tt.front, hit.FrontFace)
			}
		})
	}
}

func TestNewPlane_Validation(t *testing.T) {
	if _, err := NewPlane(core.NewVec3(0, 0, 0), core.Vec3{}, material.NewEmpty()); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry for zero normal, got %v", err)
	}
	if _, err := NewPlane(core.NewVec3(math.Inf(1), 0, 0), core.NewVec3(0, 1, 0), material.NewEmpty()); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry for infinite point, got %v", err)
	}
}
