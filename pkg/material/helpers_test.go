package material

import "github.com/df07/go-bvh-pathtracer/pkg/core"

// fixedSampler pins Get1D so lobe choices are deterministic while direction
// sampling still draws from a seeded generator
type fixedSampler struct {
	*core.RandomSampler
	value float64
}

func newFixedSampler(value float64) *fixedSampler {
	return &fixedSampler{RandomSampler: core.NewSeededSampler(7), value: value}
}

func (f *fixedSampler) Get1D() float64 {
	return f.value
}

func upHit(frontFace bool) HitRecord {
	return HitRecord{
		T:         1.0,
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: frontFace,
	}
}
