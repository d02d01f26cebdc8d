package simulation

import (
	"math"
	"runtime"
	"sync"

	"github.com/lao-tseu-is-alive/go-ant-colony/pkg/geometry"
)

// collisionDamping pulls a colliding ant's displacement back toward its
// pre-step position: halved, not halted, so forward progress survives.
const collisionDamping = 0.5

// proposal is one ant's write-once slot for a step: the pre-drawn heading
// noise going in, the proposed pose coming out. Each worker writes exactly
// one slot per ant, so the buffer needs no locking.
type proposal struct {
	noise   float64
	pos     geometry.Vector2D
	heading float64
}

// World owns the colony: every ant, the pheromone field, the spatial index
// and the food registry. It is the sole mutator of all of them. A front end
// interacts through exactly three calls: Advance, PlaceFood and Snapshot.
type World struct {
	cfg  *Config
	rng  *Rng
	home geometry.Vector2D

	ants  []*Ant
	field *PheromoneField
	index *SpatialIndex
	food  *FoodRegistry

	proposals []proposal
	positions []geometry.Vector2D // scratch for index rebuilds
	workers   int

	step      uint64
	delivered int
}

// New validates the configuration and spawns the fixed population at the
// colony home with seeded random headings. Configuration errors are fatal
// here; nothing is clamped.
func New(cfg *Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := cfg.NumWorkers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	w := &World{
		cfg:       cfg,
		rng:       NewRng(cfg.Seed),
		home:      geometry.Vector2D{X: cfg.HomeX, Y: cfg.HomeY},
		field:     NewPheromoneField(cfg.WorldWidth, cfg.WorldHeight, cfg.FieldCellSize, cfg.DecayFactor, cfg.MaxIntensity),
		index:     NewSpatialIndex(cfg.MinSeparation),
		food:      NewFoodRegistry(cfg.WorldWidth, cfg.WorldHeight),
		proposals: make([]proposal, cfg.Population),
		positions: make([]geometry.Vector2D, cfg.Population),
		workers:   workers,
	}

	w.ants = make([]*Ant, cfg.Population)
	for i := range w.ants {
		a := &Ant{
			ID:          i,
			Pos:         w.home,
			Heading:     w.rng.Uniform(0, 2*math.Pi),
			Mode:        ModeSearching,
			Target:      NoFood,
			homeReserve: cfg.DepositAmount,
			foodReserve: cfg.DepositAmount,
		}
		a.lastCellX, a.lastCellY, _ = w.field.cellOf(a.Pos)
		w.ants[i] = a
	}
	return w, nil
}

// Home returns the colony's drop-off location.
func (w *World) Home() geometry.Vector2D {
	return w.home
}

// PlaceFood registers a new food source. The only externally triggered
// mutation besides Advance.
func (w *World) PlaceFood(pos geometry.Vector2D, quantity float64) (FoodID, error) {
	return w.food.Place(pos, quantity)
}

// Advance runs exactly one discrete simulation step of size dt. A
// non-positive dt is a no-op. Given the same seed and the same sequence of
// PlaceFood/Advance calls, the resulting snapshots are identical.
func (w *World) Advance(dt float64) {
	if dt <= 0 {
		return
	}

	// 1. Fade all trails
	w.field.DecayStep(dt)

	// 2. Index the committed positions for neighbor queries
	for i, a := range w.ants {
		w.positions[i] = a.Pos
	}
	w.index.Rebuild(w.positions)

	// 3. Pre-draw every random number sequentially in id order, so the
	// parallel phase below is deterministic regardless of worker count.
	for i := range w.proposals {
		w.proposals[i].noise = w.rng.Normal(0, w.cfg.HeadingNoise)
	}

	// 4. Propose moves from the shared pre-step view (parallel, read-only)
	w.proposePhase(dt)

	// 5. Resolve collisions between proposed positions (sequential)
	w.resolveCollisions()

	// 6/7. Commit poses, then transitions, deposits and food bookkeeping,
	// in id order.
	for i, a := range w.ants {
		a.Pos = w.proposals[i].pos
		a.Heading = w.proposals[i].heading
	}
	for _, a := range w.ants {
		w.interact(a)
	}

	w.step++
}

// proposePhase fans the per-ant proposal computation out over the worker
// pool. Field, index and registry are read-only during this phase and each
// goroutine writes only its own chunk of the proposal buffer.
func (w *World) proposePhase(dt float64) {
	n := len(w.ants)
	workers := w.workers
	if workers > n {
		workers = n
	}

	if workers <= 1 {
		buf := make([]int, 0, 16)
		for i, a := range w.ants {
			w.proposals[i].pos, w.proposals[i].heading = a.propose(w, dt, w.proposals[i].noise, &buf)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			buf := make([]int, 0, 16)
			for i := lo; i < hi; i++ {
				a := w.ants[i]
				w.proposals[i].pos, w.proposals[i].heading = a.propose(w, dt, w.proposals[i].noise, &buf)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// resolveCollisions detects proposed positions closer than the minimum
// separation and corrects them pairwise, in ascending id order for
// reproducibility. Each collision damps both displacements toward the
// pre-step positions, then pushes the pair apart along the contact normal
// by half the remaining penetration each. This is a cheap steering
// correction, not rigid-body physics.
func (w *World) resolveCollisions() {
	minSep := w.cfg.MinSeparation
	if minSep <= 0 {
		return
	}

	for i := range w.proposals {
		w.positions[i] = w.proposals[i].pos
	}
	w.index.Rebuild(w.positions)

	buf := make([]int, 0, 16)
	for i := range w.ants {
		buf = w.index.NeighborsWithin(i, w.proposals[i].pos, minSep, buf[:0])
		for _, j := range buf {
			if j <= i {
				continue // each pair once, low id first
			}
			pi, pj := &w.proposals[i], &w.proposals[j]
			if pi.pos.DistanceSquaredTo(pj.pos) >= minSep*minSep {
				continue // already separated by an earlier correction
			}

			// Damp both displacements
			pi.pos = w.ants[i].Pos.Add(pi.pos.Sub(w.ants[i].Pos).Mul(collisionDamping))
			pj.pos = w.ants[j].Pos.Add(pj.pos.Sub(w.ants[j].Pos).Mul(collisionDamping))

			// Positional correction along the contact normal
			delta := pi.pos.Sub(pj.pos)
			dist := delta.Len()
			var normal geometry.Vector2D
			if dist < geometry.Epsilon {
				// Coincident: split along a seeded random direction
				normal = geometry.FromAngle(w.rng.Uniform(0, 2*math.Pi))
				dist = 0
			} else {
				normal = delta.Mul(1 / dist)
			}
			if pen := minSep - dist; pen > 0 {
				corr := normal.Mul(0.5 * pen)
				pi.pos = pi.pos.Add(corr)
				pj.pos = pj.pos.Sub(corr)
			}

			pi.pos, pi.heading = reflectAtBounds(pi.pos, pi.heading, w.cfg.WorldWidth, w.cfg.WorldHeight)
			pj.pos, pj.heading = reflectAtBounds(pj.pos, pj.heading, w.cfg.WorldWidth, w.cfg.WorldHeight)
		}
	}
}

// interact applies the committed position's side effects for one ant:
// mode transitions, food bookkeeping, target upkeep and trail deposit.
func (w *World) interact(a *Ant) {
	cfg := w.cfg

	switch a.Mode {
	case ModeReturning:
		if a.Pos.DistanceTo(w.home) <= cfg.DropoffRadius {
			// Delivered: drop the unit, start a fresh home trail
			a.Mode = ModeSearching
			a.Target = NoFood
			a.homeReserve = cfg.DepositAmount
			w.delivered++
		}

	case ModeSearching:
		// Weak reference upkeep: a depleted target silently reverts the ant
		// to targetless searching.
		if a.Target != NoFood {
			if _, ok := w.food.Get(a.Target); !ok {
				a.Target = NoFood
			}
		}

		if id, ok := w.food.NearestWithin(a.Pos, cfg.PickupRadius); ok {
			// Picked up one unit: turn around, start a fresh food trail
			w.food.Consume(id, 1)
			a.Mode = ModeReturning
			a.Target = NoFood
			a.foodReserve = cfg.DepositAmount
		} else if a.Target == NoFood {
			if id, ok := w.food.NearestWithin(a.Pos, cfg.SenseRadius); ok {
				a.Target = id
			}
		}
	}

	// Deposit at the committed position, once per field cell entered. The
	// reserve shrinks with each deposit so trails fade with distance from
	// their origin.
	cx, cy, ok := w.field.cellOf(a.Pos)
	if !ok || (cx == a.lastCellX && cy == a.lastCellY) {
		return
	}
	if a.Mode == ModeReturning {
		a.foodReserve *= cfg.DepositUseRate
		w.field.Deposit(a.Pos, ChannelFood, a.foodReserve)
	} else {
		a.homeReserve *= cfg.DepositUseRate
		w.field.Deposit(a.Pos, ChannelHome, a.homeReserve)
	}
	a.lastCellX, a.lastCellY = cx, cy
}

// Snapshot builds the immutable view a front end renders from. Agents come
// out in id order, food in placement order.
func (w *World) Snapshot() *Snapshot {
	snap := &Snapshot{
		Step:      w.step,
		Delivered: w.delivered,
		Agents:    make([]AgentView, len(w.ants)),
		Food:      w.food.view(),
		Field:     w.field.View(),
	}
	for i, a := range w.ants {
		snap.Agents[i] = AgentView{
			ID:      a.ID,
			Pos:     a.Pos,
			Heading: a.Heading,
			Mode:    a.Mode,
		}
	}
	return snap
}
