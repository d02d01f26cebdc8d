package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-ant-colony/pkg/geometry"
)

func TestSpatialIndex_Rebuild(t *testing.T) {
	// 1. Setup: cell size 100
	s := NewSpatialIndex(100)

	positions := []geometry.Vector2D{
		{X: 50, Y: 50},   // id 0 -> grid 0,0
		{X: 150, Y: 50},  // id 1 -> grid 1,0
		{X: 50, Y: 150},  // id 2 -> grid 0,1
		{X: 250, Y: 250}, // id 3 -> grid 2,2
	}

	// 2. Execute
	s.Rebuild(positions)

	// 3. Verify
	contains := func(list []int, id int) bool {
		for _, got := range list {
			if got == id {
				return true
			}
		}
		return false
	}

	if list := s.buckets[gridKey{x: 0, y: 0}]; !contains(list, 0) {
		t.Errorf("Expected id 0 in grid 0,0, got %v", list)
	}
	if list := s.buckets[gridKey{x: 1, y: 0}]; !contains(list, 1) {
		t.Errorf("Expected id 1 in grid 1,0, got %v", list)
	}
	if list := s.buckets[gridKey{x: 0, y: 1}]; !contains(list, 2) {
		t.Errorf("Expected id 2 in grid 0,1, got %v", list)
	}
	if list := s.buckets[gridKey{x: 2, y: 2}]; !contains(list, 3) {
		t.Errorf("Expected id 3 in grid 2,2, got %v", list)
	}

	// Ensure no cross-contamination
	if contains(s.buckets[gridKey{x: 0, y: 0}], 1) {
		t.Errorf("Did not expect id 1 in grid 0,0")
	}
}

func TestSpatialIndex_RebuildReusesBuckets(t *testing.T) {
	s := NewSpatialIndex(100)
	positions := []geometry.Vector2D{{X: 50, Y: 50}, {X: 60, Y: 60}}

	s.Rebuild(positions)
	s.Rebuild(positions)

	// Bucket must hold each id exactly once after a second rebuild
	if got := len(s.buckets[gridKey{x: 0, y: 0}]); got != 2 {
		t.Errorf("bucket 0,0 has %d entries after rebuild; want 2", got)
	}
}

func TestSpatialIndex_NeighborsWithin(t *testing.T) {
	s := NewSpatialIndex(100)
	positions := []geometry.Vector2D{
		{X: 100, Y: 100}, // id 0, the querying agent
		{X: 105, Y: 100}, // id 1, 5 away
		{X: 100, Y: 130}, // id 2, 30 away
		{X: 400, Y: 400}, // id 3, far outside any radius
	}
	s.Rebuild(positions)

	t.Run("ExcludesSelf", func(t *testing.T) {
		got := s.NeighborsWithin(0, positions[0], 10, nil)
		if len(got) != 1 || got[0] != 1 {
			t.Errorf("NeighborsWithin(0, r=10) = %v; want [1]", got)
		}
	})

	t.Run("RadiusFilters", func(t *testing.T) {
		got := s.NeighborsWithin(0, positions[0], 50, nil)
		if len(got) != 2 {
			t.Errorf("NeighborsWithin(0, r=50) = %v; want ids 1 and 2", got)
		}
	})

	t.Run("NegativeSelfIncludesEveryone", func(t *testing.T) {
		got := s.NeighborsWithin(-1, positions[0], 10, nil)
		if len(got) != 2 { // ids 0 and 1
			t.Errorf("NeighborsWithin(-1, r=10) = %v; want ids 0 and 1", got)
		}
	})

	t.Run("ReusesProvidedBuffer", func(t *testing.T) {
		buf := make([]int, 0, 8)
		got := s.NeighborsWithin(0, positions[0], 10, buf[:0])
		if len(got) != 1 {
			t.Errorf("buffered query = %v; want one id", got)
		}
	})

	t.Run("DeterministicOrder", func(t *testing.T) {
		a := s.NeighborsWithin(0, positions[0], 500, nil)
		b := s.NeighborsWithin(0, positions[0], 500, nil)
		if len(a) != len(b) {
			t.Fatalf("query lengths differ: %v vs %v", a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("query order differs: %v vs %v", a, b)
			}
		}
	})
}

func BenchmarkSpatialIndex_Rebuild(b *testing.B) {
	// Setup: 1000 agents
	s := NewSpatialIndex(100)
	positions := make([]geometry.Vector2D, 1000)
	for i := range positions {
		positions[i] = geometry.Vector2D{X: float64(i % 1000), Y: float64(i % 1000)}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Rebuild(positions)
	}
}

func BenchmarkSpatialIndex_NeighborsWithin(b *testing.B) {
	// Setup: populated grid
	s := NewSpatialIndex(100)
	positions := make([]geometry.Vector2D, 1000)
	for i := range positions {
		positions[i] = geometry.Vector2D{X: float64(i % 1000), Y: float64(i % 1000)}
	}
	s.Rebuild(positions)

	buf := make([]int, 0, 64)
	center := geometry.Vector2D{X: 500, Y: 500}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Query middle of the map
		buf = s.NeighborsWithin(-1, center, 100, buf[:0])
	}
}
