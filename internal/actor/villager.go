// Package actor holds the villagers that live on the map.
package actor

import (
	"fmt"
	"image"
	"image/color"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// Size is the edge length of a villager sprite in pixels.
const Size = 16

// StatNames lists the stats every villager carries.
var StatNames = []string{"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma", "speed"}

// Role is a villager's place in the township hierarchy.
type Role string

const (
	RoleChieftain Role = "chieftain"
	RoleVillager  Role = "villager"
)

// pixelsPerSpeed converts the speed stat into pixels per second.
const pixelsPerSpeed = 6.0

// Villager is a member of the township.
type Villager struct {
	ID            uuid.UUID
	Name          string
	Stats         map[string]int
	Role          Role
	Relationships map[uuid.UUID]string

	Position Vec2 // top-left corner, map pixels
	Target   *Vec2
	Selected bool
}

// NewVillager creates a villager with every stat at 10.
func NewVillager(name string, role Role, x, y float64) *Villager {
	stats := make(map[string]int, len(StatNames))
	for _, s := range StatNames {
		stats[s] = 10
	}
	return &Villager{
		ID:            uuid.New(),
		Name:          name,
		Stats:         stats,
		Role:          role,
		Relationships: make(map[uuid.UUID]string),
		Position:      V(x, y),
	}
}

// Select toggles the selection flag.
func (v *Villager) Select() {
	v.Selected = !v.Selected
}

// MoveTo sets the point the villager walks toward.
func (v *Villager) MoveTo(x, y float64) {
	t := V(x, y)
	v.Target = &t
}

// Speed returns the walking speed in pixels per second.
func (v *Villager) Speed() float64 {
	return float64(v.Stats["speed"]) * pixelsPerSpeed
}

// Update advances the villager toward its target by dt seconds of walking.
func (v *Villager) Update(dt float64) error {
	if v.Target == nil {
		return nil
	}
	step := v.Speed() * dt
	delta := FromPoints(v.Position, *v.Target)
	if delta.Magnitude() <= step {
		v.Position = *v.Target
		v.Target = nil
		return nil
	}
	dir, err := delta.Normalised()
	if err != nil {
		return fmt.Errorf("villager %s: %w", v.Name, err)
	}
	v.Position = v.Position.Plus(dir.Scaled(step))
	return nil
}

// Bounds returns the villager's rectangle in map pixels.
func (v *Villager) Bounds() image.Rectangle {
	p := image.Pt(int(v.Position.X()), int(v.Position.Y()))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(Size, Size))}
}

// Contains reports whether map pixel (x, y) lies on the villager.
func (v *Villager) Contains(x, y int) bool {
	return image.Pt(x, y).In(v.Bounds())
}

var (
	bodyColour      = color.RGBA{0, 0, 0, 255}
	selectionColour = color.RGBA{255, 255, 255, 255}
)

// Draw paints the villager onto dst shifted by the view offset.
func (v *Villager) Draw(dst draw.Image, xOff, yOff int) {
	b := v.Bounds().Add(image.Pt(xOff, yOff))
	cx, cy := b.Min.X+Size/2, b.Min.Y+Size/2
	if v.Selected {
		circle(dst, cx, cy, 7, selectionColour)
	}
	circle(dst, cx, cy, 6, bodyColour)
}

func circle(dst draw.Image, cx, cy, r int, c color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				dst.Set(cx+x, cy+y, c)
			}
		}
	}
}

func (v *Villager) String() string {
	return fmt.Sprintf("%s the %s (%.0f, %.0f)", v.Name, v.Role, v.Position.X(), v.Position.Y())
}
