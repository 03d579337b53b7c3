package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// Run opens a resizable window and runs the main loop. Each frame it calls update (input, scene
// sync), then clears the screen and calls draw. ESC or the window button closes it; unload, if
// set, runs while the GL context still exists.
func Run(title string, update, draw, unload func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 800, title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 30, 255))
		draw()
		rl.EndDrawing()
	}
	if unload != nil {
		unload()
	}
}

// Overlay draws the status lines in the top left corner.
func Overlay(lines ...string) {
	rl.DrawFPS(10, 10)
	for i, l := range lines {
		rl.DrawText(l, 10, int32(36+i*20), 18, rl.RayWhite)
	}
}
