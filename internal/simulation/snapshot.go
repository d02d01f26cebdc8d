package simulation

import "github.com/lao-tseu-is-alive/go-ant-colony/pkg/geometry"

// Snapshot is the read-only view a front end renders from. Everything in it
// is deep-copied at the moment of the call; mutating a snapshot has no
// effect on the simulation.
type Snapshot struct {
	Step      uint64
	Delivered int // food units dropped off at home so far
	Agents    []AgentView
	Food      []FoodView
	Field     FieldView
}

type AgentView struct {
	ID      int
	Pos     geometry.Vector2D
	Heading float64
	Mode    Mode
}

type FoodView struct {
	ID       FoodID
	Pos      geometry.Vector2D
	Quantity float64
}

// FieldView is a flat row-major copy of both pheromone layers.
type FieldView struct {
	Cols, Rows int
	CellSize   float64
	Home       []float64
	Food       []float64
}

// At returns the intensities of the two channels at grid cell (cx, cy).
func (v FieldView) At(cx, cy int) (home, food float64) {
	i := cy*v.Cols + cx
	return v.Home[i], v.Food[i]
}
