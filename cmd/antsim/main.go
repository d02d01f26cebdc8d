package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-ant-colony/internal/simulation"
	"github.com/lao-tseu-is-alive/go-ant-colony/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-ant-colony/pkg/ui"
)

// clickFoodQuantity is how much food one mouse click drops on the plane,
// matching the 5x5 block of the classic simulator.
const clickFoodQuantity = 25

var (
	dirtColor     = color.RGBA{R: 160, G: 82, B: 45, A: 255}
	searcherColor = color.RGBA{R: 50, G: 30, B: 20, A: 255}
	carrierColor  = color.RGBA{R: 218, G: 165, B: 32, A: 255}
	foodColor     = color.RGBA{R: 218, G: 165, B: 32, A: 255}
	homeRingColor = color.RGBA{R: 240, G: 230, B: 200, A: 255}
)

// Game is the thin ebiten wrapper around the simulation core. It only ever
// calls Advance, PlaceFood and Snapshot.
type Game struct {
	world *simulation.World
	cfg   *simulation.Config
	snap  *simulation.Snapshot

	fieldImg *ebiten.Image
	fieldPix []byte

	sliderDt   *ui.Slider
	showTrails *ui.Checkbox
	clickHeld  bool
}

func (g *Game) Update() error {
	// 1. Widgets first, so clicks on them don't drop food underneath
	g.sliderDt.Update()
	g.showTrails.Update()

	// 2. Food placement on left click (debounced)
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if !g.clickHeld && !g.sliderDt.Contains(mx, my) && !g.showTrails.Contains(mx, my) {
			pos := geometry.Vector2D{X: float64(mx), Y: float64(my)}
			if _, err := g.world.PlaceFood(pos, clickFoodQuantity); err != nil {
				log.Printf("food placement rejected: %v", err)
			}
		}
		g.clickHeld = true
	} else {
		g.clickHeld = false
	}

	// 3. One simulation step at the slider's dt
	g.world.Advance(g.sliderDt.Value)
	g.snap = g.world.Snapshot()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.showTrails.Value {
		g.drawField(screen)
	} else {
		screen.Fill(dirtColor)
	}

	// Colony home: the drop-off ring
	home := g.world.Home()
	vector.StrokeCircle(screen, float32(home.X), float32(home.Y),
		float32(g.cfg.DropoffRadius), 1.5, homeRingColor, true)

	// Food sources, sized by what's left
	for _, f := range g.snap.Food {
		r := 2 + math.Sqrt(f.Quantity)
		vector.FillCircle(screen, float32(f.Pos.X), float32(f.Pos.Y), float32(r), foodColor, true)
	}

	// Ants, colored by mode
	for _, a := range g.snap.Agents {
		clr := color.Color(searcherColor)
		if a.Mode == simulation.ModeReturning {
			clr = carrierColor
		}
		vector.FillCircle(screen, float32(a.Pos.X), float32(a.Pos.Y), 2.5, clr, true)
	}

	g.sliderDt.Draw(screen)
	g.showTrails.Draw(screen)

	msg := fmt.Sprintf("dt: %.2f\n\nFood Delivered: %d\nStep: %d",
		g.sliderDt.Value, g.snap.Delivered, g.snap.Step)
	ebitenutil.DebugPrint(screen, msg)
}

// drawField renders both pheromone layers into a cols x rows image and
// scales it up to the window: home trail darkens the dirt toward earth
// tones, food trail lightens it toward white, as in the classic renderer.
func (g *Game) drawField(screen *ebiten.Image) {
	fv := g.snap.Field
	if g.fieldImg == nil {
		g.fieldImg = ebiten.NewImage(fv.Cols, fv.Rows)
		g.fieldPix = make([]byte, fv.Cols*fv.Rows*4)
	}

	maxI := g.cfg.MaxIntensity
	for cy := 0; cy < fv.Rows; cy++ {
		for cx := 0; cx < fv.Cols; cx++ {
			home, food := fv.At(cx, cy)
			homeA := home / maxI
			foodA := food / maxI

			r := 160*(1-homeA) + 80*homeA
			gr := 82*(1-homeA) + 70*homeA
			b := 45*(1-homeA) + 60*homeA
			r = r*(1-foodA) + 255*foodA
			gr = gr*(1-foodA) + 255*foodA
			b = b*(1-foodA) + 255*foodA

			i := (cy*fv.Cols + cx) * 4
			g.fieldPix[i] = byte(r)
			g.fieldPix[i+1] = byte(gr)
			g.fieldPix[i+2] = byte(b)
			g.fieldPix[i+3] = 0xff
		}
	}
	g.fieldImg.WritePixels(g.fieldPix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(fv.CellSize, fv.CellSize)
	screen.DrawImage(g.fieldImg, op)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}

func main() {
	configFile := flag.String("config", "", "path to a JSON config file")
	schemaFile := flag.String("schema", "config.schema.json", "path to the config JSON schema")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		loaded, err := simulation.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	world, err := simulation.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	g := &Game{
		world: world,
		cfg:   cfg,
		snap:  world.Snapshot(),
		sliderDt: &ui.Slider{
			Label: "dt",
			Value: 0.45,
			Min:   0.05, Max: 1.5,
			X: 10, Y: 60, W: 150, H: 14,
		},
		showTrails: ui.NewCheckbox(10, 84, "Trails", true),
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Ant Colony Simulator")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
