package simulation

import "github.com/lao-tseu-is-alive/go-ant-colony/pkg/geometry"

// Mode is the behavioral state of an ant. The two modes share one movement
// policy and differ only in which channel they read, which they lay, and
// what ends the mode — a tagged enum, not a type hierarchy.
type Mode int

const (
	// ModeSearching: no food carried, reading the food trail, laying the home trail.
	ModeSearching Mode = iota
	// ModeReturning: carrying one unit home, reading the home trail, laying the food trail.
	ModeReturning
)

func (m Mode) String() string {
	if m == ModeReturning {
		return "returning"
	}
	return "searching"
}

// Ant is the per-agent kinematic and behavioral state. Ants are created at
// initialization and live until teardown; only the World mutates them.
type Ant struct {
	ID      int
	Pos     geometry.Vector2D
	Heading float64 // radians, wrapped to [0, 2π)
	Mode    Mode
	Target  FoodID // weak reference, NoFood when unset

	// Deposit reserves: each trail starts strong and fades with every cell
	// laid, so trail intensity encodes distance from the reserve's origin.
	// Reset on pickup (food reserve) and drop-off (home reserve).
	homeReserve float64
	foodReserve float64

	// Last field cell a deposit happened in; a new deposit only fires when
	// the ant crosses into another cell.
	lastCellX, lastCellY int
}

// Carrying reports whether the ant holds a food unit.
func (a *Ant) Carrying() bool {
	return a.Mode == ModeReturning
}

// readChannel is the trail the ant follows in its current mode.
func (a *Ant) readChannel() Channel {
	if a.Mode == ModeReturning {
		return ChannelHome
	}
	return ChannelFood
}

// layChannel is the trail the ant deposits in its current mode.
func (a *Ant) layChannel() Channel {
	if a.Mode == ModeReturning {
		return ChannelFood
	}
	return ChannelHome
}

// propose computes the ant's next position and heading from the pre-step
// state. It must stay pure with respect to shared state: field, index and
// registry are read-only here, and all randomness arrives pre-drawn in
// noise. That is what makes the proposal phase safe to fan out across
// workers.
func (a *Ant) propose(w *World, dt, noise float64, buf *[]int) (geometry.Vector2D, float64) {
	cfg := w.cfg

	// (a) current heading + (b) Gaussian exploratory jitter
	theta := geometry.WrapAngle(a.Heading + noise)
	dir := geometry.FromAngle(theta)

	// (c) pheromone gradient on the mode's read channel
	grad := w.field.SampleGradient(a.Pos, a.readChannel(), cfg.SampleRadius)
	dir = dir.Add(grad.Mul(cfg.GradientWeight))

	// Goal attraction: home when returning, the targeted source when one is
	// set. A target that vanished mid-trip simply contributes nothing; the
	// commit phase clears it.
	if a.Mode == ModeReturning {
		dir = dir.Add(w.home.Sub(a.Pos).Normalize().Mul(cfg.TargetWeight))
	} else if a.Target != NoFood {
		if src, ok := w.food.Get(a.Target); ok {
			dir = dir.Add(src.Pos.Sub(a.Pos).Normalize().Mul(cfg.TargetWeight))
		}
	}

	// (d) repulsion from neighbors inside the minimum separation
	*buf = w.index.NeighborsWithin(a.ID, a.Pos, cfg.MinSeparation, (*buf)[:0])
	if len(*buf) > 0 {
		var rep geometry.Vector2D
		for _, id := range *buf {
			away := a.Pos.Sub(w.index.Position(id))
			d := away.Len()
			if d < geometry.Epsilon {
				continue // coincident, collision resolution will split them
			}
			// Weight grows as the gap closes
			rep = rep.Add(away.Mul((cfg.MinSeparation - d) / (cfg.MinSeparation * d)))
		}
		dir = dir.Add(rep.Mul(cfg.AvoidWeight))
	}

	unit := dir.Normalize()
	if unit.IsZero() {
		unit = geometry.FromAngle(theta)
	}

	next := a.Pos.Add(unit.Mul(cfg.AntSpeed * dt))
	return reflectAtBounds(next, unit.Angle(), cfg.WorldWidth, cfg.WorldHeight)
}

// reflectAtBounds mirrors a position that crossed a plane boundary back
// inside and flips the corresponding heading component. Reflection instead
// of clamping keeps ants from sticking to walls.
func reflectAtBounds(pos geometry.Vector2D, heading float64, width, height float64) (geometry.Vector2D, float64) {
	if pos.X < 0 {
		pos.X = -pos.X
		heading = geometry.ReflectX(heading)
	} else if pos.X > width {
		pos.X = 2*width - pos.X
		heading = geometry.ReflectX(heading)
	}
	if pos.Y < 0 {
		pos.Y = -pos.Y
		heading = geometry.ReflectY(heading)
	} else if pos.Y > height {
		pos.Y = 2*height - pos.Y
		heading = geometry.ReflectY(heading)
	}

	// A single mirror is exact for any displacement below the plane size;
	// clamp anyway so the containment invariant survives absurd dt values.
	if pos.X < 0 {
		pos.X = 0
	} else if pos.X > width {
		pos.X = width
	}
	if pos.Y < 0 {
		pos.Y = 0
	} else if pos.Y > height {
		pos.Y = height
	}
	return pos, heading
}
