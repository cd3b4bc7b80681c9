// Package gui renders a running gas simulation in a raylib window.
// It is a pure read-side adapter: the window loop feeds wall-clock
// frame deltas into the accumulator and draws bodies at
// lag-extrapolated positions.
package gui

import (
	"fmt"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/gassim/internal/config"
	"github.com/san-kum/gassim/internal/gas"
)

const scale = 2

var (
	colBg   = rl.NewColor(50, 50, 50, 255)
	colBody = rl.NewColor(200, 200, 200, 255)
	colText = rl.NewColor(140, 140, 140, 255)
)

// Run opens the window and blocks until it is closed. The window owns
// no simulation state beyond the Sim it constructs; closing the window
// is the only shutdown path and releases the platform resources via
// the deferred CloseWindow.
func Run(cfg *config.Config) error {
	sim, err := gas.New(cfg.World(), cfg.Bodies, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}
	loop := gas.NewLoop(sim)
	w := sim.World()

	rl.InitWindow(int32(w.Width*scale), int32(w.Height*scale), "gassim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	paused := false
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if !paused {
			// GetFrameTime is seconds; the loop runs on milliseconds
			loop.Frame(float64(rl.GetFrameTime()) * 1000)
		}

		rl.BeginDrawing()
		rl.ClearBackground(colBg)

		lag := loop.Lag()
		for i := 0; i < sim.Len(); i++ {
			p := sim.Extrapolate(i, lag)
			rl.DrawCircleV(
				rl.NewVector2(float32(p.X*scale), float32(p.Y*scale)),
				float32(w.Radius*scale),
				colBody,
			)
		}

		st := sim.Stats()
		rl.DrawText(fmt.Sprintf("ticks %d  collisions %d", st.Ticks, st.Collisions), 10, 10, 16, colText)
		if paused {
			rl.DrawText("PAUSED", 10, 30, 16, colText)
		}
		rl.EndDrawing()
	}
	return nil
}
