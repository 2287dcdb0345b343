package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/draw"

	"township/internal/config"
	"township/internal/construction"
	"township/internal/graphics"
	"township/internal/graphics/text"
	"township/internal/input"
	"township/internal/world"
)

const overlayMargin = 8

var (
	textColour   = color.RGBA{255, 255, 255, 255}
	minimapFrame = image.NewUniform(color.RGBA{200, 200, 200, 255})
)

// Session binds a Controller to a window: it turns input actions into
// controller calls and presents each frame.
type Session struct {
	Window     *glfw.Window
	Presenter  *graphics.Presenter
	Controller *Controller

	frame   *image.RGBA
	minimap *image.RGBA

	ShowMinimap bool
	ShowInfo    bool

	frames    int
	fps       int
	lastCheck time.Time
}

// NewSession builds the map for the configured seed and the GL presenter
// sized to the configured view.
func NewSession(ctx context.Context, window *glfw.Window, imgs world.ImageSource) (*Session, error) {
	w, h := config.GetViewSize()
	ctrl, err := NewController(ctx, config.GetSeed(), imgs)
	if err != nil {
		return nil, err
	}
	p, err := graphics.NewPresenter(w, h)
	if err != nil {
		return nil, fmt.Errorf("presenter: %w", err)
	}
	fbw, fbh := window.GetFramebufferSize()
	p.SetViewport(fbw, fbh)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		p.SetViewport(width, height)
	})

	mm := config.GetMinimapSize()
	return &Session{
		Window:      window,
		Presenter:   p,
		Controller:  ctrl,
		frame:       image.NewRGBA(image.Rect(0, 0, w, h)),
		minimap:     image.NewRGBA(image.Rect(0, 0, mm, mm)),
		ShowMinimap: true,
		ShowInfo:    true,
		lastCheck:   time.Now(),
	}, nil
}

// Cleanup releases GL resources.
func (s *Session) Cleanup() {
	s.Presenter.Dispose()
}

// Update applies this frame's input and reports whether the player asked
// to quit.
func (s *Session) Update(im *input.InputManager) (quit bool, err error) {
	c := s.Controller

	speed := config.GetScrollSpeed()
	dx, dy := 0, 0
	if im.IsActive(input.ActionScrollRight) {
		dx -= speed
	}
	if im.IsActive(input.ActionScrollLeft) {
		dx += speed
	}
	if im.IsActive(input.ActionScrollDown) {
		dy -= speed
	}
	if im.IsActive(input.ActionScrollUp) {
		dy += speed
	}
	c.Scroll(dx, dy)

	if im.JustPressed(input.ActionResetOffset) {
		c.ResetOffset()
	}
	if im.JustPressed(input.ActionToggleMinimap) {
		s.ShowMinimap = !s.ShowMinimap
	}
	if im.JustPressed(input.ActionToggleInfo) {
		s.ShowInfo = !s.ShowInfo
	}
	if im.JustPressed(input.ActionStockpile) {
		if _, err := c.MakeStockpile(); err != nil {
			if !errors.Is(err, construction.ErrNoTiles) {
				return false, err
			}
			slog.Debug("stockpile skipped", "reason", err)
		}
	}

	cx, cy, moved := im.Cursor()
	mx, my := c.ScreenToMap(cx, cy)

	if im.JustPressed(input.ActionMoveSelected) {
		if n := c.MoveSelected(mx, my); n > 0 {
			slog.Debug("villagers moving", "count", n, "x", mx, "y", my)
		}
	}
	if im.JustPressed(input.ActionMouseLeft) {
		if err := c.Press(mx, my); err != nil {
			return false, err
		}
	}
	if moved || c.DX != 0 || c.DY != 0 {
		if err := c.Motion(mx, my); err != nil {
			return false, err
		}
	}
	if im.JustReleased(input.ActionMouseLeft) {
		c.Release(false)
	}
	if im.JustReleased(input.ActionMouseRight) {
		c.Release(true)
	}

	return im.JustPressed(input.ActionQuit), nil
}

// Render draws the map, villagers and overlays into the frame and presents it.
func (s *Session) Render(dt float64) error {
	var minimap draw.Image
	if s.ShowMinimap {
		minimap = s.minimap
	}
	if err := s.Controller.Frame(dt, s.frame, minimap); err != nil {
		return err
	}
	if s.ShowMinimap {
		s.composeMinimap()
	}
	if err := s.drawOverlay(); err != nil {
		return err
	}
	s.Presenter.Present(s.frame)

	s.frames++
	if time.Since(s.lastCheck) >= time.Second {
		s.fps = s.frames
		s.frames = 0
		s.lastCheck = time.Now()
	}
	return nil
}

// composeMinimap copies the minimap into the top-right corner with a
// one-pixel border.
func (s *Session) composeMinimap() {
	fb := s.frame.Bounds()
	size := s.minimap.Bounds().Size()
	at := image.Pt(fb.Max.X-size.X-overlayMargin, fb.Min.Y+overlayMargin)
	r := image.Rectangle{Min: at, Max: at.Add(size)}
	draw.Draw(s.frame, r.Inset(-1), minimapFrame, image.Point{}, draw.Src)
	draw.Draw(s.frame, r, s.minimap, s.minimap.Bounds().Min, draw.Src)
}

func (s *Session) drawOverlay() error {
	text.Draw(s.frame, overlayMargin, overlayMargin, "FPS: "+strconv.Itoa(s.fps), textColour)
	if !s.ShowInfo {
		return nil
	}
	info, err := s.Controller.TileInfo()
	if err != nil {
		return err
	}
	if actors := s.Controller.SelectedActorInfo(); actors != "" {
		if info != "" {
			info += "\n"
		}
		info += actors
	}
	if info == "" {
		return nil
	}
	size := text.Bounds(info)
	fb := s.frame.Bounds()
	text.Draw(s.frame, overlayMargin, fb.Max.Y-size.Y-overlayMargin, info, textColour)
	return nil
}
