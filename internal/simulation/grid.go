package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-ant-colony/pkg/geometry"
)

type gridKey struct {
	x, y int
}

// SpatialIndex is a uniform bucket grid over agent positions, rebuilt
// wholesale before each query phase. Naive all-pairs proximity checks are
// O(n²); hashing agents into cells no smaller than the query radius keeps
// the typical cost near O(n) for the population sizes we run (hundreds to
// low thousands), which is why the index is a throwaway cache rather than
// incrementally maintained state.
type SpatialIndex struct {
	cellSize  float64
	positions []geometry.Vector2D // by agent id, valid until next Rebuild
	buckets   map[gridKey][]int
}

// NewSpatialIndex creates an index with the given bucket size. Queries with
// a radius larger than cellSize still work but scan more cells.
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	// Clamp to a minimum of 10 to avoid tiny grids or div by zero
	return &SpatialIndex{
		cellSize: math.Max(cellSize, 10.0),
		buckets:  make(map[gridKey][]int),
	}
}

// Rebuild re-buckets all agents from their current positions, indexed by
// agent id. O(n).
func (s *SpatialIndex) Rebuild(positions []geometry.Vector2D) {
	// Reset bucket slices to length 0 but keep capacity: the underlying
	// arrays get reused, so steady-state rebuilds allocate almost nothing.
	for k := range s.buckets {
		s.buckets[k] = s.buckets[k][:0]
	}

	s.positions = positions
	for id, p := range positions {
		key := gridKey{x: int(p.X / s.cellSize), y: int(p.Y / s.cellSize)}
		s.buckets[key] = append(s.buckets[key], id)
	}
}

// Position returns the indexed position of an agent as of the last Rebuild.
func (s *SpatialIndex) Position(id int) geometry.Vector2D {
	return s.positions[id]
}

// NeighborsWithin appends to out the ids of agents within radius of pos,
// excluding self (pass a negative self to include everyone). Ids come out
// in ascending order per bucket and buckets are scanned in a fixed row-major
// sweep, so the result order is deterministic.
func (s *SpatialIndex) NeighborsWithin(self int, pos geometry.Vector2D, radius float64, out []int) []int {
	radiusSq := radius * radius

	// Only the cells that could contain a point within radius
	minGx := int((pos.X - radius) / s.cellSize)
	maxGx := int((pos.X + radius) / s.cellSize)
	minGy := int((pos.Y - radius) / s.cellSize)
	maxGy := int((pos.Y + radius) / s.cellSize)

	for gy := minGy; gy <= maxGy; gy++ {
		for gx := minGx; gx <= maxGx; gx++ {
			ids, ok := s.buckets[gridKey{x: gx, y: gy}]
			if !ok {
				continue
			}
			for _, id := range ids {
				if id == self {
					continue
				}
				if s.positions[id].DistanceSquaredTo(pos) < radiusSq {
					out = append(out, id)
				}
			}
		}
	}
	return out
}
