package simulation

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-ant-colony/pkg/geometry"
)

// FoodID identifies a food source. Ids are never reused.
type FoodID int

// NoFood is the nil target of an ant without a selected source.
const NoFood FoodID = -1

type FoodSource struct {
	ID       FoodID
	Pos      geometry.Vector2D
	Quantity float64
}

// FoodRegistry tracks the active food sources. Sources are created by user
// placement and removed exactly when their quantity reaches zero. Iteration
// follows insertion order so queries are deterministic.
type FoodRegistry struct {
	width, height float64
	nextID        FoodID
	sources       map[FoodID]*FoodSource
	order         []FoodID
}

func NewFoodRegistry(width, height float64) *FoodRegistry {
	return &FoodRegistry{
		width:   width,
		height:  height,
		sources: make(map[FoodID]*FoodSource),
	}
}

// Place creates a new source. The position must lie on the plane and the
// quantity must be positive; violations are reported, not fatal.
func (r *FoodRegistry) Place(pos geometry.Vector2D, quantity float64) (FoodID, error) {
	if pos.X < 0 || pos.X > r.width || pos.Y < 0 || pos.Y > r.height {
		return NoFood, fmt.Errorf("%w: food at %s", ErrOutOfBounds, pos)
	}
	if quantity <= 0 {
		return NoFood, fmt.Errorf("%w: got %g", ErrInvalidQuantity, quantity)
	}

	id := r.nextID
	r.nextID++
	r.sources[id] = &FoodSource{ID: id, Pos: pos, Quantity: quantity}
	r.order = append(r.order, id)
	return id, nil
}

// Get returns the source with the given id, if still active.
func (r *FoodRegistry) Get(id FoodID) (*FoodSource, bool) {
	src, ok := r.sources[id]
	return src, ok
}

// Consume decrements a source's quantity, removing it when it hits zero.
// Quantity never goes negative. Consuming a vanished id is a no-op.
func (r *FoodRegistry) Consume(id FoodID, amount float64) {
	src, ok := r.sources[id]
	if !ok {
		return
	}
	src.Quantity -= amount
	if src.Quantity <= 0 {
		src.Quantity = 0
		r.remove(id)
	}
}

func (r *FoodRegistry) remove(id FoodID) {
	delete(r.sources, id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// NearestWithin returns the closest active source within radius of pos.
// Ties break by insertion order.
func (r *FoodRegistry) NearestWithin(pos geometry.Vector2D, radius float64) (FoodID, bool) {
	best := NoFood
	bestDistSq := radius * radius
	for _, id := range r.order {
		src := r.sources[id]
		if distSq := src.Pos.DistanceSquaredTo(pos); distSq < bestDistSq {
			best = id
			bestDistSq = distSq
		}
	}
	return best, best != NoFood
}

// Len returns the number of active sources.
func (r *FoodRegistry) Len() int {
	return len(r.order)
}

// view builds the snapshot slice, in insertion order.
func (r *FoodRegistry) view() []FoodView {
	out := make([]FoodView, 0, len(r.order))
	for _, id := range r.order {
		src := r.sources[id]
		out = append(out, FoodView{ID: src.ID, Pos: src.Pos, Quantity: src.Quantity})
	}
	return out
}
