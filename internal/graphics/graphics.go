package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the simulation window. The world is drawn 1:1, so Width and Height
// are the world size in pixels.
type Window struct {
	Width, Height int32
	Title         string
	FPS           int32
}

// Run opens the window and drives the main loop at w.FPS. Each frame it calls update (input and
// stepping), then clears the screen and calls draw. The loop ends when the window is closed or
// update returns false.
// ESC is not the raylib exit key; scenes decide what it does.
func Run(w Window, update func() bool, draw func()) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(w.FPS)

	for !rl.WindowShouldClose() {
		if !update() {
			return
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
