// Command township opens a scrollable window onto an endless generated map.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"township/internal/config"
	"township/internal/game"
	"township/internal/images"
	"township/internal/input"
	"township/internal/world"
)

func init() { runtime.LockOSThread() }

func main() {
	seed := flag.Int64("seed", config.GetSeed(), "map seed")
	width := flag.Int("width", 1280, "view width in pixels")
	height := flag.Int("height", 800, "view height in pixels")
	imageDir := flag.String("images", config.GetImageDir(), "directory of tile sprites; empty uses built-in placeholders")
	renderDistance := flag.Int("render-distance", config.GetRenderDistance(), "chunk radius kept in memory is twice this")
	fps := flag.Int("fps", config.GetFPSLimit(), "frame cap, 0 for uncapped")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	config.SetSeed(*seed)
	config.SetViewSize(*width, *height)
	config.SetImageDir(*imageDir)
	config.SetRenderDistance(*renderDistance)
	config.SetFPSLimit(*fps)

	imgs, err := loadImages(config.GetImageDir())
	if err != nil {
		slog.Error("failed to load images", "dir", config.GetImageDir(), "error", err)
		os.Exit(1)
	}

	if err := glfw.Init(); err != nil {
		slog.Error("failed to initialise glfw", "error", err)
		os.Exit(1)
	}
	defer glfw.Terminate()

	w, h := config.GetViewSize()
	window, err := game.SetupWindow(w, h)
	if err != nil {
		slog.Error("failed to open window", "error", err)
		os.Exit(1)
	}

	slog.Info("generating map", "seed", config.GetSeed())
	session, err := game.NewSession(context.Background(), window, imgs)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}

	app := game.NewApp(window, input.NewInputManager(), session)
	if err := app.Run(); err != nil {
		slog.Error("frame failed", "error", err)
		os.Exit(1)
	}
}

func loadImages(dir string) (world.ImageSource, error) {
	if dir == "" {
		return images.NewPlaceholder(world.TileSize), nil
	}
	repo, err := images.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	scaled := repo.FitTo(world.TileSize, world.ResourceTree.String())
	slog.Info("images loaded", "dir", dir, "count", repo.Len(), "rescaled", scaled)
	return repo, nil
}
