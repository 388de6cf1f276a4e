package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Title is the window title.
const Title = "Coaster Studio"

// Run opens the window and runs the main loop. Each frame it calls update with the
// frame time in seconds, then clears the screen and calls draw. The window is
// fullscreen; ESC toggles the terminal, so closing is via the window button.
func Run(update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
