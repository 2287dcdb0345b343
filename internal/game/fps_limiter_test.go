package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"township/internal/config"
)

func TestFPSLimiterUnlimited(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(0)

	f := NewFPSLimiter()
	start := time.Now()
	for i := 0; i < 100; i++ {
		assert.Zero(t, f.Wait())
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.Zero(t, f.Overruns())
}

func TestFPSLimiterPaces(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(100)

	f := NewFPSLimiter()
	start := time.Now()
	for i := 0; i < 5; i++ {
		f.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestFPSLimiterCountsOverruns(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(100)

	f := NewFPSLimiter()
	f.Wait()
	time.Sleep(35 * time.Millisecond)
	late := f.Wait()
	assert.Greater(t, late, 10*time.Millisecond)
	assert.Equal(t, 1, f.Overruns())

	// After a resync the next frame is on schedule again.
	assert.Zero(t, f.Wait())
	assert.Equal(t, 1, f.Overruns())
}
