package simulation

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-ant-colony/pkg/geometry"
)

// Channel identifies one pheromone trail type.
type Channel int

const (
	// ChannelHome is laid by searching ants and read by returning ants.
	ChannelHome Channel = iota
	// ChannelFood is laid by ants carrying food and read by searching ants.
	ChannelFood

	numChannels
)

func (c Channel) String() string {
	switch c {
	case ChannelHome:
		return "home"
	case ChannelFood:
		return "food"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// intensityEpsilon is the cutoff below which a cell is considered empty.
// Decayed values under it clamp to exactly zero so stale trails vanish
// instead of lingering as denormals.
const intensityEpsilon = 1e-4

// PheromoneField is a discretized scalar intensity grid covering the plane,
// one layer per channel. A fixed grid bounds memory by world size instead of
// trail history, and makes decay O(cells) per step no matter how long the
// simulation runs.
type PheromoneField struct {
	cols, rows    int
	cellSize      float64
	width, height float64
	decayFactor   float64
	maxIntensity  float64
	cells         [numChannels][]float64
}

func NewPheromoneField(width, height, cellSize, decayFactor, maxIntensity float64) *PheromoneField {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	f := &PheromoneField{
		cols:         cols,
		rows:         rows,
		cellSize:     cellSize,
		width:        width,
		height:       height,
		decayFactor:  decayFactor,
		maxIntensity: maxIntensity,
	}
	for ch := range f.cells {
		f.cells[ch] = make([]float64, cols*rows)
	}
	return f
}

// cellOf maps a plane position to grid coordinates. ok is false outside the plane.
func (f *PheromoneField) cellOf(pos geometry.Vector2D) (cx, cy int, ok bool) {
	cx = int(pos.X / f.cellSize)
	cy = int(pos.Y / f.cellSize)
	if pos.X < 0 || pos.Y < 0 || cx >= f.cols || cy >= f.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// DecayStep multiplies every cell of every channel by decayFactor^dt, the
// closed form of dP/dt = -k*P with k = -ln(decayFactor). Values falling
// below the epsilon clamp to zero. Runs in O(cells).
func (f *PheromoneField) DecayStep(dt float64) {
	factor := math.Pow(f.decayFactor, dt)
	for ch := range f.cells {
		layer := f.cells[ch]
		for i, v := range layer {
			v *= factor
			if v < intensityEpsilon {
				v = 0
			}
			layer[i] = v
		}
	}
}

// Deposit adds amount to the cell containing pos (nearest-cell splat).
// The cell is capped at maxIntensity. Out-of-bounds positions are a
// silent no-op; a negative amount is a programming error.
func (f *PheromoneField) Deposit(pos geometry.Vector2D, ch Channel, amount float64) {
	if amount < 0 {
		panic(fmt.Sprintf("simulation: negative pheromone deposit %g", amount))
	}
	cx, cy, ok := f.cellOf(pos)
	if !ok {
		return
	}
	i := cy*f.cols + cx
	v := f.cells[ch][i] + amount
	if v > f.maxIntensity {
		v = f.maxIntensity
	}
	f.cells[ch][i] = v
}

// Intensity returns the channel value at the cell containing pos, or 0
// outside the plane.
func (f *PheromoneField) Intensity(pos geometry.Vector2D, ch Channel) float64 {
	cx, cy, ok := f.cellOf(pos)
	if !ok {
		return 0
	}
	return f.cells[ch][cy*f.cols+cx]
}

// SampleGradient returns a direction biased toward higher intensity within
// radius of pos: the intensity-weighted average of the cell offsets in the
// surrounding ring. Returns the zero vector when there is no signal above
// the epsilon, or when pos lies off the plane.
func (f *PheromoneField) SampleGradient(pos geometry.Vector2D, ch Channel, radius float64) geometry.Vector2D {
	cx, cy, ok := f.cellOf(pos)
	if !ok {
		return geometry.Vector2D{}
	}

	r := int(radius / f.cellSize)
	if r < 1 {
		r = 1
	}

	layer := f.cells[ch]
	var sumX, sumY, total float64
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := cx+dx, cy+dy
			if nx < 0 || nx >= f.cols || ny < 0 || ny >= f.rows {
				continue
			}
			v := layer[ny*f.cols+nx]
			sumX += float64(dx) * v
			sumY += float64(dy) * v
			total += v
		}
	}

	if total < intensityEpsilon {
		return geometry.Vector2D{}
	}
	return geometry.Vector2D{X: sumX / total, Y: sumY / total}
}

// View returns a deep copy of the grid for rendering.
func (f *PheromoneField) View() FieldView {
	view := FieldView{
		Cols:     f.cols,
		Rows:     f.rows,
		CellSize: f.cellSize,
		Home:     make([]float64, len(f.cells[ChannelHome])),
		Food:     make([]float64, len(f.cells[ChannelFood])),
	}
	copy(view.Home, f.cells[ChannelHome])
	copy(view.Food, f.cells[ChannelFood])
	return view
}
