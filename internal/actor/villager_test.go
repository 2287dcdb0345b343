package actor

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalisedZero(t *testing.T) {
	_, err := V(0, 0).Normalised()
	assert.True(t, errors.Is(err, ErrZeroVector))

	n, err := V(3, 4).Normalised()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Magnitude(), 1e-9)
	assert.InDelta(t, 0.6, n.X(), 1e-9)
}

func TestVectorOps(t *testing.T) {
	d := FromPoints(V(1, 1), V(4, 5))
	assert.Equal(t, 5.0, d.Magnitude())
	p := V(1, 2).Plus(V(1, 1).Scaled(2))
	assert.Equal(t, V(3, 4), p)
}

func TestNewVillagerDefaults(t *testing.T) {
	v := NewVillager("Riofaal the Magnificent", RoleChieftain, 500, 500)
	for _, s := range StatNames {
		assert.Equal(t, 10, v.Stats[s], s)
	}
	assert.Equal(t, RoleChieftain, v.Role)
	assert.Equal(t, image.Rect(500, 500, 516, 516), v.Bounds())
	assert.True(t, v.Contains(508, 508))
	assert.False(t, v.Contains(516, 508))
	assert.Contains(t, v.String(), "chieftain")
}

func TestVillagerWalksToTarget(t *testing.T) {
	v := NewVillager("a", RoleVillager, 0, 0)
	v.MoveTo(120, 0)

	require.NoError(t, v.Update(1))
	assert.InDelta(t, v.Speed(), v.Position.X(), 1e-9)
	assert.NotNil(t, v.Target)

	require.NoError(t, v.Update(10))
	assert.Equal(t, V(120, 0), v.Position)
	assert.Nil(t, v.Target, "arrival clears the target")

	require.NoError(t, v.Update(1), "idle villager")
}

func TestVillagerDraw(t *testing.T) {
	v := NewVillager("a", RoleVillager, 10, 10)
	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	v.Draw(dst, 5, 0)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, dst.RGBAAt(10+5+8, 18))

	v.Select()
	v.Draw(dst, 5, 0)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(10+5+8+7, 18))
}

func TestManager(t *testing.T) {
	m := NewManager()
	a := NewVillager("a", RoleVillager, 0, 0)
	b := NewVillager("b", RoleVillager, 100, 100)
	m.Add(a)
	m.Add(b)

	assert.Len(t, m.All(), 2)
	assert.Equal(t, []*Villager{b}, m.At(105, 110))
	assert.Empty(t, m.At(50, 50))

	b.MoveTo(200, 100)
	require.NoError(t, m.Update(1))
	assert.Greater(t, b.Position.X(), 100.0)
}
