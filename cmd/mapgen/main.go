// Command mapgen renders a view of a seeded map, with its minimap in the
// corner, to a PNG file and can then serve the map over HTTP. It needs no
// display or GL driver.
package main

import (
	"context"
	"flag"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/image/draw"

	"township/internal/config"
	"township/internal/graphics/text"
	"township/internal/images"
	"township/internal/mapserver"
	"township/internal/world"
)

func main() {
	seed := flag.Int64("seed", config.GetSeed(), "map seed")
	width := flag.Int("width", 1280, "image width in pixels")
	height := flag.Int("height", 800, "image height in pixels")
	xOff := flag.Int("x", 0, "horizontal scroll offset in pixels")
	yOff := flag.Int("y", 0, "vertical scroll offset in pixels")
	imageDir := flag.String("images", config.GetImageDir(), "directory of tile sprites; empty uses built-in placeholders")
	out := flag.String("o", "map.png", "output file")
	info := flag.Bool("info", false, "print tile info for the view centre")
	serve := flag.String("serve", "", "after writing, serve the map over HTTP on this address (e.g. :8080)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config.SetSeed(*seed)
	config.SetViewSize(*width, *height)

	m, err := run(*imageDir, *out, *xOff, *yOff, *info)
	if err != nil {
		slog.Error("mapgen failed", "error", err)
		os.Exit(1)
	}
	if *serve == "" {
		return
	}
	if err := listen(*serve, m); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// listen serves m until interrupted.
func listen(addr string, m *world.Map) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           mapserver.New(m).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		slog.Info("serving map", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func run(imageDir, out string, xOff, yOff int, info bool) (*world.Map, error) {
	var imgs world.ImageSource = images.NewPlaceholder(world.TileSize)
	if imageDir != "" {
		repo, err := images.LoadDir(imageDir)
		if err != nil {
			return nil, err
		}
		if n := repo.FitTo(world.TileSize, world.ResourceTree.String()); n > 0 {
			slog.Debug("sprites rescaled", "count", n, "size", world.TileSize)
		}
		imgs = repo
	}

	start := time.Now()
	cols, rows, pregen := config.GetInitialBlock()
	m, err := world.NewMap(context.Background(), config.GetSeed(), imgs, world.Options{
		Width:       cols,
		Height:      rows,
		Generate:    pregen,
		EvictRadius: config.GetChunkEvictRadius(),
	})
	if err != nil {
		return nil, err
	}

	w, h := config.GetViewSize()
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	mm := config.GetMinimapSize()
	minimap := image.NewRGBA(image.Rect(0, 0, mm, mm))
	if err := m.Update(w, h, xOff, yOff); err != nil {
		return nil, err
	}
	if err := m.Draw(frame, xOff, yOff, minimap); err != nil {
		return nil, err
	}
	at := image.Pt(w-mm, 0)
	draw.Draw(frame, image.Rectangle{Min: at, Max: at.Add(minimap.Bounds().Size())}, minimap, image.Point{}, draw.Src)

	if info {
		desc, err := m.TileInfo(w/2-xOff, h/2-yOff)
		if err != nil {
			return nil, err
		}
		os.Stdout.WriteString(desc + "\n")
		text.Draw(frame, 8, 8, desc, color.White)
	}

	f, err := os.Create(out)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	slog.Info("map written",
		"path", out,
		"size", humanize.Bytes(uint64(st.Size())),
		"chunks", m.LoadedChunks(),
		"took", time.Since(start).Round(time.Millisecond),
	)
	return m, nil
}
