package actor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrZeroVector is returned when normalising a vector of length zero.
var ErrZeroVector = errors.New("cannot normalise a zero-length vector")

// Vec2 is a 2D vector in map pixel space.
type Vec2 struct {
	mgl64.Vec2
}

// V builds a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{mgl64.Vec2{x, y}}
}

// FromPoints returns the vector from start to end.
func FromPoints(start, end Vec2) Vec2 {
	return Vec2{end.Sub(start.Vec2)}
}

// Magnitude returns the vector length.
func (v Vec2) Magnitude() float64 {
	return v.Len()
}

// Normalised returns the unit vector with v's direction.
func (v Vec2) Normalised() (Vec2, error) {
	if v.Len() == 0 {
		return Vec2{}, ErrZeroVector
	}
	return Vec2{v.Normalize()}, nil
}

// Scaled returns v multiplied by s.
func (v Vec2) Scaled(s float64) Vec2 {
	return Vec2{v.Mul(s)}
}

// Plus returns v + o.
func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{v.Add(o.Vec2)}
}
