// Package images owns the named sprites tiles and resources are drawn with.
package images

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Repository maps sprite names to decoded images. Lookups are safe for
// concurrent use; chunk generation resolves sprites from worker goroutines.
type Repository struct {
	mu     sync.RWMutex
	images map[string]image.Image
	names  []string // sorted
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{images: make(map[string]image.Image)}
}

// Set stores img under name, replacing any previous image.
func (r *Repository) Set(name string, img image.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.images[name]; !ok {
		r.names = append(r.names, name)
		sort.Strings(r.names)
	}
	r.images[name] = img
}

// Image returns the image stored under name. Failing an exact match it
// falls back to the first name, in sorted order, that contains name.
func (r *Repository) Image(name string) (image.Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if img, ok := r.images[name]; ok {
		return img, true
	}
	for _, n := range r.names {
		if strings.Contains(n, name) {
			return r.images[n], true
		}
	}
	return nil, false
}

// Names returns the stored names in sorted order.
func (r *Repository) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Len returns the number of stored images.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.images)
}

// LoadDir loads every .png and .bmp file in dir and, recursively, in its
// subdirectories. A sprite's name is its file name without the extension.
func LoadDir(dir string) (*Repository, error) {
	r := NewRepository()
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".png" && ext != ".bmp" {
			return nil
		}
		img, err := loadImage(path)
		if err != nil {
			return err
		}
		r.Set(strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())), img)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load images from %s: %w", dir, err)
	}
	return r, nil
}

func loadImage(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Scale resizes img to w x h with nearest-neighbour sampling, keeping
// pixel-art sprites crisp.
func Scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// FitTo rescales every sprite that is not size x size, except those named in
// keep, so loaded artwork lines up with the tile grid. Returns the number of
// sprites rescaled.
func (r *Repository) FitTo(size int, keep ...string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for name, img := range r.images {
		b := img.Bounds()
		if (b.Dx() == size && b.Dy() == size) || slices.Contains(keep, name) {
			continue
		}
		r.images[name] = Scale(img, size, size)
		n++
	}
	return n
}
