// Package mapserver exposes a generated map over HTTP for inspection:
// rendered chunks, the minimap and per-tile readouts.
package mapserver

import (
	"encoding/json"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"township/internal/world"
)

// maxMinimap bounds the minimap edge a client may request.
const maxMinimap = 2048

// Server serialises access to a Map; the map itself is not safe for
// concurrent use. When the map has an eviction radius, chunks far from the
// most recently requested one are dropped after each request, so clients
// cannot grow the map without bound.
type Server struct {
	mu sync.Mutex
	m  *world.Map
}

// New wraps m.
func New(m *world.Map) *Server {
	return &Server{m: m}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/map", s.getMap)
		r.Get("/chunks/{x}/{y}.png", s.getChunk)
		r.Get("/tiles/{x}/{y}", s.getTile)
		r.Get("/minimap.png", s.getMinimap)
	})
	return r
}

// MapResponse describes the served map.
type MapResponse struct {
	Seed         int64              `json:"seed"`
	ChunkSize    int                `json:"chunkSize"`
	TileSize     int                `json:"tileSize"`
	LoadedChunks int                `json:"loadedChunks"`
	RenderSet    []world.ChunkCoord `json:"renderSet"`
}

// TileResponse is the readout for one tile.
type TileResponse struct {
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Terrain   string   `json:"terrain"`
	Height    float64  `json:"height"`
	Metres    int      `json:"metres"`
	Image     string   `json:"image"`
	Resources []string `json:"resources"`
	Info      string   `json:"info"`
}

func (s *Server) getMap(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := MapResponse{
		Seed:         s.m.Seed(),
		ChunkSize:    world.ChunkSize,
		TileSize:     world.TileSize,
		LoadedChunks: s.m.LoadedChunks(),
		RenderSet:    s.m.RenderSet(),
	}
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, resp)
}

// getChunk handles GET /api/chunks/{x}/{y}.png?mode=tiles|pixels,
// generating the chunk if needed.
func (s *Server) getChunk(w http.ResponseWriter, r *http.Request) {
	x, y, ok := coordParams(w, r)
	if !ok {
		return
	}
	mode := world.ModeTiles
	if v := r.URL.Query().Get("mode"); v != "" {
		var err error
		if mode, err = world.ParseRenderMode(v); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	edge := world.ChunkPixels
	if mode == world.ModePixels {
		edge = world.ChunkSize
	}

	img := image.NewRGBA(image.Rect(0, 0, edge, edge))
	s.mu.Lock()
	c, err := s.m.LocateChunk(x*world.ChunkPixels, y*world.ChunkPixels)
	if err == nil {
		// Draw at the chunk's own origin so it lands at 0,0.
		err = c.Draw(img, -x*edge, -y*edge, mode)
		s.retain(c.Coord)
	}
	s.mu.Unlock()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondPNG(w, img)
}

// retain evicts chunks far from center. Callers hold s.mu.
func (s *Server) retain(center world.ChunkCoord) {
	if radius := s.m.EvictRadius(); radius > 0 {
		s.m.EvictAround(center, radius)
	}
}

// getTile handles GET /api/tiles/{x}/{y} for world tile coordinates.
func (s *Server) getTile(w http.ResponseWriter, r *http.Request) {
	x, y, ok := coordParams(w, r)
	if !ok {
		return
	}
	px, py := x*world.TileSize, y*world.TileSize

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.retain(world.ChunkCoordForTile(x, y))
	t, err := s.m.TileAt(x, y)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	res, err := s.m.ResourcesAt(px, py)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	info, err := s.m.TileInfo(px, py)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	names := make([]string, 0, len(res))
	for _, rs := range res {
		names = append(names, rs.String())
	}
	respondJSON(w, http.StatusOK, TileResponse{
		X:         t.X,
		Y:         t.Y,
		Terrain:   t.Terrain.String(),
		Height:    t.Height,
		Metres:    t.HeightMetres(),
		Image:     t.ImageName,
		Resources: names,
		Info:      info,
	})
}

// getMinimap handles GET /api/minimap.png?size=N&x=&y= rendering every
// loaded chunk one pixel per tile.
func (s *Server) getMinimap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size, err := intParam(q.Get("size"), 200)
	if err != nil || size <= 0 || size > maxMinimap {
		respondError(w, http.StatusBadRequest, "invalid size")
		return
	}
	xOff, err1 := intParam(q.Get("x"), 0)
	yOff, err2 := intParam(q.Get("y"), 0)
	if err1 != nil || err2 != nil {
		respondError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	// The view itself is discarded; only the minimap is served.
	view := image.NewRGBA(image.Rect(0, 0, 1, 1))
	mm := image.NewRGBA(image.Rect(0, 0, size, size))
	s.mu.Lock()
	err = s.m.Draw(view, xOff, yOff, mm)
	s.mu.Unlock()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondPNG(w, mm)
}

func coordParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid x coordinate")
		return 0, 0, false
	}
	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid y coordinate")
		return 0, 0, false
	}
	return x, y, true
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func respondPNG(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		slog.Error("encode png", "error", err)
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode json", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
		)
	})
}
