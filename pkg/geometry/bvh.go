package geometry

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// DefaultMaxDepth caps BVH recursion for pathological inputs
const DefaultMaxDepth = 2048

var logger = log.New("bvh")

// Node is a BVH node stored in a flat arena. Leaves have Left == Right == -1;
// internal nodes always have both children.
type Node struct {
	Bounds      core.AABB
	Start, End  int // Range into the BVH's index array
	Left, Right int // Child node indices
}

// IsLeaf reports whether the node has no children
func (n Node) IsLeaf() bool {
	return n.Left < 0
}

// Count returns the number of primitives under the node
func (n Node) Count() int {
	return n.End - n.Start
}

// BuildOptions tunes BVH construction
type BuildOptions struct {
	MaxDepth int // Depth at which ranges become leaves regardless of size
	LeafSize int // Ranges of at most this many primitives become leaves (minimum 1)
}

// DefaultBuildOptions returns one primitive per leaf and the default depth cap
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{MaxDepth: DefaultMaxDepth, LeafSize: 1}
}

// BVH is a bounding volume hierarchy over a borrowed primitive slice. Leaves
// reference primitives through a permuted index array so the primitives
// themselves are never reordered.
type BVH struct {
	primitives []Primitive
	indices    []int
	nodes      []Node
	options    BuildOptions
}

// NewBVH builds a BVH over primitives using the identity permutation and
// default options
func NewBVH(primitives []Primitive) *BVH {
	indices := make([]int, len(primitives))
	for i := range indices {
		indices[i] = i
	}
	// The identity permutation always passes validation
	bvh, _ := BuildWithOptions(primitives, indices, DefaultBuildOptions())
	return bvh
}

// Build constructs a BVH with one primitive per leaf. indices must be a
// permutation of [0, len(primitives)); it is reordered in place and retained.
func Build(primitives []Primitive, indices []int, maxDepth int) (*BVH, error) {
	opts := DefaultBuildOptions()
	opts.MaxDepth = maxDepth
	return BuildWithOptions(primitives, indices, opts)
}

// BuildWithOptions constructs a BVH using object-median splits along the
// longest axis of each node's bounds
func BuildWithOptions(primitives []Primitive, indices []int, opts BuildOptions) (*BVH, error) {
	if err := validatePermutation(indices, len(primitives)); err != nil {
		return nil, err
	}
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth %d must not be negative", opts.MaxDepth)
	}
	if opts.LeafSize < 1 {
		opts.LeafSize = 1
	}

	b := &BVH{
		primitives: primitives,
		indices:    indices,
		options:    opts,
	}
	if len(primitives) == 0 {
		return b, nil
	}

	centroids := make([]core.Vec3, len(primitives))
	for i, p := range primitives {
		centroids[i] = p.Centroid()
	}

	b.nodes = make([]Node, 0, 2*len(primitives)-1)
	b.build(centroids, 0, len(indices), 0)

	if log.Enabled(log.Debug) {
		stats := b.Stats()
		logger.Debugf("built BVH: %d primitives, %d nodes, %d leaves, max depth %d",
			stats.Primitives, stats.Nodes, stats.Leaves, stats.MaxDepth)
	}

	return b, nil
}

func validatePermutation(indices []int, n int) error {
	if len(indices) != n {
		return fmt.Errorf("index array has %d entries for %d primitives", len(indices), n)
	}
	seen := make([]bool, n)
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("index %d out of range [0, %d)", idx, n)
		}
		if seen[idx] {
			return fmt.Errorf("index %d appears more than once", idx)
		}
		seen[idx] = true
	}
	return nil
}

// build appends the node for indices[start:end] and its subtree, returning
// the node's arena index
func (b *BVH) build(centroids []core.Vec3, start, end, depth int) int {
	bounds := core.EmptyAABB()
	for _, idx := range b.indices[start:end] {
		bounds.Join(b.primitives[idx].BoundingBox())
	}

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, Node{Bounds: bounds, Start: start, End: end, Left: -1, Right: -1})

	if end-start <= b.options.LeafSize || depth >= b.options.MaxDepth {
		return nodeIndex
	}

	// Sort by centroid along the split axis; ties fall back to primitive index
	axis := bounds.LongestAxis()
	slices.SortStableFunc(b.indices[start:end], func(i, j int) int {
		if c := cmp.Compare(centroids[i].Axis(axis), centroids[j].Axis(axis)); c != 0 {
			return c
		}
		return cmp.Compare(i, j)
	})

	mid := (start + end) / 2
	left := b.build(centroids, start, mid, depth+1)
	right := b.build(centroids, mid, end, depth+1)

	node := &b.nodes[nodeIndex]
	node.Left = left
	node.Right = right
	node.Bounds = b.nodes[left].Bounds.Union(b.nodes[right].Bounds)

	return nodeIndex
}

// Hit returns the closest intersection in [tMin, tMax]
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if len(b.nodes) == 0 {
		return material.HitRecord{}, false
	}
	return b.hitNode(0, ray, tMin, tMax)
}

func (b *BVH) hitNode(nodeIndex int, ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	node := &b.nodes[nodeIndex]
	if !node.Bounds.Hit(ray) {
		return material.HitRecord{}, false
	}

	if node.IsLeaf() {
		var closest material.HitRecord
		found := false
		for _, idx := range b.indices[node.Start:node.End] {
			hit, ok := b.primitives[idx].Hit(ray, tMin, tMax)
			if ok && (!found || hit.T < closest.T) {
				closest = hit
				found = true
				tMax = hit.T
			}
		}
		return closest, found
	}

	// The right child only has to beat the left child's hit
	leftHit, leftOk := b.hitNode(node.Left, ray, tMin, tMax)
	if leftOk {
		tMax = leftHit.T
	}
	if rightHit, ok := b.hitNode(node.Right, ray, tMin, tMax); ok {
		return rightHit, true
	}
	return leftHit, leftOk
}

// Walk visits every node in depth-first pre-order
func (b *BVH) Walk(fn func(node Node, depth int)) {
	if len(b.nodes) == 0 {
		return
	}
	b.walk(0, 0, fn)
}

func (b *BVH) walk(nodeIndex, depth int, fn func(Node, int)) {
	node := b.nodes[nodeIndex]
	fn(node, depth)
	if !node.IsLeaf() {
		b.walk(node.Left, depth+1, fn)
		b.walk(node.Right, depth+1, fn)
	}
}

// Bounds returns the root bounds, or an empty box for an empty BVH
func (b *BVH) Bounds() core.AABB {
	if len(b.nodes) == 0 {
		return core.EmptyAABB()
	}
	return b.nodes[0].Bounds
}

// Len returns the number of primitives in the BVH
func (b *BVH) Len() int {
	return len(b.primitives)
}

// Indices returns the permuted index array. Callers must not modify it.
func (b *BVH) Indices() []int {
	return b.indices
}

// Primitive returns the primitive at its original position
func (b *BVH) Primitive(i int) Primitive {
	return b.primitives[i]
}

// Stats summarizes the tree's shape
type Stats struct {
	Primitives   int
	Nodes        int
	Leaves       int
	MaxDepth     int
	AvgLeafDepth float64
	MaxLeafSize  int
}

// Stats walks the tree and collects shape statistics
func (b *BVH) Stats() Stats {
	stats := Stats{Primitives: len(b.primitives)}
	totalLeafDepth := 0

	b.Walk(func(node Node, depth int) {
		stats.Nodes++
		stats.MaxDepth = max(stats.MaxDepth, depth)
		if node.IsLeaf() {
			stats.Leaves++
			totalLeafDepth += depth
			stats.MaxLeafSize = max(stats.MaxLeafSize, node.Count())
		}
	})

	if stats.Leaves > 0 {
		stats.AvgLeafDepth = float64(totalLeafDepth) / float64(stats.Leaves)
	}
	return stats
}
