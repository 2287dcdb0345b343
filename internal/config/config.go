package config

import "sync"

// RenderSettings holds view and frame configuration
type RenderSettings struct {
	mu             sync.RWMutex
	viewWidth      int // in pixels
	viewHeight     int
	minimapSize    int // in pixels, square
	renderDistance int // in chunks
	fpsLimit       int // 0 = unlimited
	scrollSpeed    int // pixels per frame
}

var globalRenderSettings = &RenderSettings{
	viewWidth:      1280,
	viewHeight:     800,
	minimapSize:    200,
	renderDistance: 16,
	fpsLimit:       60,
	scrollSpeed:    4,
}

// GetViewSize returns the viewport size in pixels
func GetViewSize() (int, int) {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.viewWidth, globalRenderSettings.viewHeight
}

// SetViewSize sets the viewport size in pixels
func SetViewSize(width, height int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	globalRenderSettings.viewWidth = clamp(width, 64, 8192)
	globalRenderSettings.viewHeight = clamp(height, 64, 8192)
}

// GetMinimapSize returns the edge length of the minimap in pixels
func GetMinimapSize() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.minimapSize
}

// SetMinimapSize sets the edge length of the minimap; 0 disables it
func SetMinimapSize(size int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.minimapSize = clamp(size, 0, 1024)
}

// GetRenderDistance returns the retention distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the retention distance in chunks
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	globalRenderSettings.renderDistance = clamp(distance, 4, 128)
}

// GetChunkEvictRadius returns radius for chunk eviction (larger than render distance)
func GetChunkEvictRadius() int {
	return GetRenderDistance() * 2
}

// GetFPSLimit returns the frame cap, 0 meaning uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.fpsLimit = clamp(limit, 0, 1000)
}

// GetScrollSpeed returns the keyboard scroll speed in pixels per frame
func GetScrollSpeed() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.scrollSpeed
}

// SetScrollSpeed sets the keyboard scroll speed
func SetScrollSpeed(speed int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.scrollSpeed = clamp(speed, 1, 64)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
