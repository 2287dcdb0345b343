package config

import "sync"

// WorldGenSettings holds world generation configuration
type WorldGenSettings struct {
	mu           sync.RWMutex
	seed         int64
	initialCols  int // chunks pre-generated around the origin
	initialRows  int
	pregenerate  bool
	imageDirPath string // empty = placeholder sprites
}

var globalWorldGenSettings = &WorldGenSettings{
	seed:        123123456574,
	initialCols: 10,
	initialRows: 10,
	pregenerate: true,
}

// GetSeed returns the world seed
func GetSeed() int64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seed
}

// SetSeed sets the world seed
func SetSeed(seed int64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seed = seed
}

// GetInitialBlock returns the size of the chunk block generated at startup
// and whether it is generated at all
func GetInitialBlock() (cols, rows int, enabled bool) {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.initialCols, globalWorldGenSettings.initialRows, globalWorldGenSettings.pregenerate
}

// SetInitialBlock sets the startup chunk block
func SetInitialBlock(cols, rows int, enabled bool) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.initialCols = clamp(cols, 0, 64)
	globalWorldGenSettings.initialRows = clamp(rows, 0, 64)
	globalWorldGenSettings.pregenerate = enabled
}

// GetImageDir returns the sprite directory, empty for placeholders
func GetImageDir() string {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.imageDirPath
}

// SetImageDir sets the sprite directory
func SetImageDir(dir string) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.imageDirPath = dir
}
