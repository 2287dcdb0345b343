package game

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"golang.org/x/image/draw"

	"township/internal/actor"
	"township/internal/config"
	"township/internal/construction"
	"township/internal/profiling"
	"township/internal/world"
)

// State is the controller's mouse interaction mode.
type State int

const (
	StateIdle State = iota
	StateSelecting
)

func (s State) String() string {
	if s == StateSelecting {
		return "selecting"
	}
	return "idle"
}

const (
	chieftainName = "Riofaal the Magnificent"
	spawnX        = 500
	spawnY        = 500
)

// Controller owns the map, its villagers and the player's selection.
// All coordinates passed in are map pixels unless a method says otherwise.
type Controller struct {
	Map    *world.Map
	Actors *actor.Manager
	Ledger *construction.Ledger

	State           State
	Selected        []*world.Tile
	SelectionOrigin image.Point // tile coordinate where the drag started
	CurrentTile     *world.Tile

	XOff, YOff int // scroll offset; screen = map + offset
	DX, DY     int // scroll velocity in pixels per frame
}

// NewController builds a map for seed using the configured initial block
// and eviction radius, then spawns the chieftain.
func NewController(ctx context.Context, seed int64, imgs world.ImageSource) (*Controller, error) {
	cols, rows, pregen := config.GetInitialBlock()
	opts := world.Options{
		Width:       cols,
		Height:      rows,
		Generate:    pregen,
		EvictRadius: config.GetChunkEvictRadius(),
	}
	m, err := world.NewMap(ctx, seed, imgs, opts)
	if err != nil {
		return nil, fmt.Errorf("new map: %w", err)
	}

	actors := actor.NewManager()
	actors.Add(actor.NewVillager(chieftainName, actor.RoleChieftain, spawnX, spawnY))

	return &Controller{
		Map:    m,
		Actors: actors,
		Ledger: construction.NewLedger(),
	}, nil
}

// ScreenToMap converts a window position into map pixels.
func (c *Controller) ScreenToMap(sx, sy int) (int, int) {
	return sx - c.XOff, sy - c.YOff
}

// Scroll sets the scroll velocity.
func (c *Controller) Scroll(dx, dy int) {
	c.DX, c.DY = dx, dy
}

// ResetOffset returns the view to the origin.
func (c *Controller) ResetOffset() {
	c.XOff, c.YOff = 0, 0
}

// ClearSelection deselects every tile and villager.
func (c *Controller) ClearSelection() {
	for _, t := range c.Selected {
		t.Selected = false
		c.Map.MarkDirty(t)
	}
	c.Selected = nil
	for _, v := range c.Actors.All() {
		v.Selected = false
	}
}

// SelectTile starts a new tile selection at map pixel (px, py).
func (c *Controller) SelectTile(px, py int) error {
	c.ClearSelection()
	t, err := c.Map.Tile(px, py)
	if err != nil {
		return err
	}
	c.SelectionOrigin = image.Pt(t.X, t.Y)
	c.setSelected(t, true)
	c.Selected = []*world.Tile{t}
	return nil
}

// SelectToTile extends the selection to the rectangle between the origin
// and the tile under map pixel (px, py), deselecting tiles that fell out.
func (c *Controller) SelectToTile(px, py int) error {
	end, err := c.Map.Tile(px, py)
	if err != nil {
		return err
	}
	rect := image.Rectangle{Min: c.SelectionOrigin, Max: image.Pt(end.X, end.Y)}.Canon()
	rect.Max = rect.Max.Add(image.Pt(1, 1))

	keep := make(map[*world.Tile]struct{}, rect.Dx()*rect.Dy())
	var selected []*world.Tile
	for ty := rect.Min.Y; ty < rect.Max.Y; ty++ {
		for tx := rect.Min.X; tx < rect.Max.X; tx++ {
			t, err := c.Map.TileAt(tx, ty)
			if err != nil {
				return err
			}
			c.setSelected(t, true)
			keep[t] = struct{}{}
			selected = append(selected, t)
		}
	}
	for _, t := range c.Selected {
		if _, ok := keep[t]; !ok {
			c.setSelected(t, false)
		}
	}
	c.Selected = selected
	return nil
}

func (c *Controller) setSelected(t *world.Tile, on bool) {
	if t.Selected == on {
		return
	}
	t.Selected = on
	c.Map.MarkDirty(t)
}

// SelectActor toggles the villagers under map pixel (x, y) and reports
// whether any were hit.
func (c *Controller) SelectActor(x, y int) bool {
	hit := c.Actors.At(x, y)
	for _, v := range hit {
		v.Select()
	}
	return len(hit) > 0
}

// MoveSelected sends every selected villager toward map pixel (x, y).
func (c *Controller) MoveSelected(x, y int) int {
	n := 0
	for _, v := range c.Actors.All() {
		if v.Selected {
			v.MoveTo(float64(x-actor.Size/2), float64(y-actor.Size/2))
			n++
		}
	}
	return n
}

// MakeStockpile turns the selected tiles into a stockpile.
func (c *Controller) MakeStockpile() (*construction.Stockpile, error) {
	s, err := construction.NewStockpile(c.Map, c.Selected)
	if err != nil {
		return nil, err
	}
	c.Ledger.AddStockpile(s)
	slog.Info("stockpile built", "id", s.ID, "tiles", len(s.Tiles))
	c.ClearSelection()
	return s, nil
}

// Hover records the tile under map pixel (px, py) while idle.
func (c *Controller) Hover(px, py int) error {
	if c.State != StateIdle {
		return nil
	}
	t, err := c.Map.Tile(px, py)
	if err != nil {
		return err
	}
	c.CurrentTile = t
	return nil
}

// Press handles a left click at map pixel (x, y). Any previous selection is
// dropped; villagers under the cursor take priority, otherwise a tile
// selection starts.
func (c *Controller) Press(x, y int) error {
	c.ClearSelection()
	if c.SelectActor(x, y) {
		return nil
	}
	c.State = StateSelecting
	return c.SelectTile(x, y)
}

// Motion handles cursor movement to map pixel (x, y).
func (c *Controller) Motion(x, y int) error {
	if c.State == StateSelecting {
		return c.SelectToTile(x, y)
	}
	return c.Hover(x, y)
}

// Release ends a drag; a right button release also clears the selection.
func (c *Controller) Release(right bool) {
	c.State = StateIdle
	if right {
		c.ClearSelection()
	}
}

// TileInfo describes the hovered tile, or returns "" when nothing is hovered.
func (c *Controller) TileInfo() (string, error) {
	if c.CurrentTile == nil {
		return "", nil
	}
	return c.Map.TileInfo(c.CurrentTile.X*world.TileSize, c.CurrentTile.Y*world.TileSize)
}

// SelectedActorInfo lists the selected villagers, one per line.
func (c *Controller) SelectedActorInfo() string {
	var lines []string
	for _, v := range c.Actors.All() {
		if v.Selected {
			lines = append(lines, v.String())
		}
	}
	return strings.Join(lines, "\n")
}

// Frame advances one frame: apply the scroll velocity, refresh the render
// set, draw the map, then move and draw the villagers.
func (c *Controller) Frame(dt float64, view, minimap draw.Image) error {
	defer profiling.Track("game.Frame")()

	c.XOff += c.DX
	c.YOff += c.DY

	b := view.Bounds()
	if err := c.Map.Update(b.Dx(), b.Dy(), c.XOff, c.YOff); err != nil {
		return fmt.Errorf("update map: %w", err)
	}
	if err := c.Map.Draw(view, c.XOff, c.YOff, minimap); err != nil {
		return fmt.Errorf("draw map: %w", err)
	}

	err := c.Actors.Update(dt)
	for _, v := range c.Actors.All() {
		v.Draw(view, c.XOff, c.YOff)
	}
	if err != nil {
		return fmt.Errorf("update actors: %w", err)
	}
	return nil
}
