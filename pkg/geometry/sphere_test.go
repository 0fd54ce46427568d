package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

func mustSphere(t *testing.T, center core.Vec3, radius float64, mat material.Material) *Sphere {
	t.Helper()
	s, err := NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return s
}

func TestSphere_HitFromOutside(t *testing.T) {
	for _, r := range []float64{0.5, 1.0, 2.0, 4.5} {
		sphere := mustSphere(t, core.NewVec3(0, 0, 0), r, material.NewDiffuse(core.White))
		ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

		hit, ok := sphere.Hit(ray, 0, math.Inf(1))
		if !ok {
			t.Fatalf("r=%f: expected hit, got miss", r)
		}
		if math.Abs(hit.T-(5-r)) > 1e-9 {
			t.Errorf("r=%f: expected t=%f, got t=%f", r, 5-r, hit.T)
		}
		if !hit.FrontFace {
			t.Errorf("r=%f: expected front face", r)
		}

		// Offset perpendicular to the ray by more than the radius
		miss := core.NewRay(core.NewVec3(r+0.01, 0, 5), core.NewVec3(0, 0, -1))
		if _, ok := sphere.Hit(miss, 0, math.Inf(1)); ok {
			t.Errorf("r=%f: expected miss for offset ray", r)
		}
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0, material.NewDiffuse(core.White))

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(core.NewRay(tt.rayOrigin, tt.rayDirection), 0.001, 1000.0)
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_RangeSelectsFartherRoot(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0, material.NewDiffuse(core.White))
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	hit, ok := sphere.Hit(ray, 4.5, 100)
	if !ok || math.Abs(hit.T-6) > 1e-9 {
		t.Errorf("Expected exit hit at t=6, got %v (hit=%v)", hit.T, ok)
	}
	if _, ok := sphere.Hit(ray, 6.5, 100); ok {
		t.Error("Expected miss when both roots fall below tMin")
	}
	if _, ok := sphere.Hit(ray, 0, 3.5); ok {
		t.Error("Expected miss when both roots exceed tMax")
	}
}

func TestNewSphere_Validation(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
	}{
		{"zero radius", core.NewVec3(0, 0, 0), 0},
		{"negative radius", core.NewVec3(0, 0, 0), -1},
		{"NaN radius", core.NewVec3(0, 0, 0), math.NaN()},
		{"infinite radius", core.NewVec3(0, 0, 0), math.Inf(1)},
		{"NaN center", core.NewVec3(math.NaN(), 0, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSphere(tt.center, tt.radius, material.NewEmpty())
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}
