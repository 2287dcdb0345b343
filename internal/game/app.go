package game

import (
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"township/internal/input"
	"township/internal/profiling"
)

// slowFrame is the processing time above which a frame is logged.
const slowFrame = 16 * time.Millisecond

// App drives the window loop for a single session.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	session      *Session

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

// NewApp wires the input manager callbacks into window.
func NewApp(window *glfw.Window, im *input.InputManager, session *Session) *App {
	im.SetCallbacks(window)
	return &App{
		window:       window,
		inputManager: im,
		session:      session,
		fpsLimiter:   NewFPSLimiter(),
		lastTime:     time.Now(),
	}
}

// Run loops until the window closes or a frame fails.
func (a *App) Run() error {
	defer a.session.Cleanup()
	for !a.window.ShouldClose() {
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() error {
	profiling.ResetFrame()
	start := time.Now()
	dt := start.Sub(a.lastTime).Seconds()
	a.lastTime = start

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	quit, err := a.session.Update(a.inputManager)
	if err != nil {
		return err
	}
	if quit {
		a.window.SetShouldClose(true)
	}
	if err := a.session.Render(dt); err != nil {
		return err
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	if d := time.Since(start); d > slowFrame {
		slog.Debug("slow frame", "took", d, "top", profiling.TopN(5), "overruns", a.fpsLimiter.Overruns())
	}

	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait()
	return nil
}
