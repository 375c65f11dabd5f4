// Package app runs the window, the render loop and the selection tour.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/window"
	"github.com/Faultbox/orrery/internal/logger"
)

// Title is the window title.
const Title = "Orrery"

// App is the running application.
type App struct {
	cfg     *config.Config
	window  *window.Window
	device  *gfx.GL
	input   *input.Input
	assets  *assets.Manager
	scene   *scene.Scene
	shaders *shader.Library
	watcher *shader.Watcher
	tour    *Tour
}

// New opens the window and prepares the scene. Shader compile failures
// are returned here.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, input: input.New()}

	a.assets = assets.NewManager()
	for _, dir := range cfg.Assets.Paths {
		if err := a.assets.AddDir(dir); err != nil {
			logger.Warn("skipping asset root", zap.String("dir", dir), zap.Error(err))
		}
	}
	logger.Info("asset roots", zap.Strings("search_order", a.assets.Roots()))

	a.shaders = shader.NewLibrary(cfg.Assets.ShaderDir)
	sc, err := scene.New(cfg, a.assets, a.shaders)
	if err != nil {
		return nil, err
	}
	a.scene = sc

	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The device needs the context the window just made current.
	a.device, err = gfx.NewGL()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	a.scene.OnSurfaceResized(a.window.DrawableSize())
	if err := a.scene.OnSurfaceReady(a.device); err != nil {
		a.device.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to prepare scene: %w", err)
	}

	a.tour = NewTour(cfg.Scene.Tour.Interval, a.scene.System().Len(), a.scene)
	return a, nil
}

// Run drives frames until the window closes or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cfg.Assets.WatchShaders && a.cfg.Assets.ShaderDir != "" {
		w, err := a.shaders.Watch(ctx)
		if err != nil {
			logger.Warn("shader hot reload disabled", zap.Error(err))
		} else {
			a.watcher = w
			a.scene.WatchShaders(w.Changes())
		}
	}

	if a.cfg.Scene.Tour.Interval > 0 {
		a.tour.Start(ctx)
	}

	var frameTime time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		frameTime = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	frames := 0
	failed := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop", zap.Int("fps_limit", a.cfg.Graphics.FPSLimit))

	for {
		start := time.Now()

		if ctx.Err() != nil {
			return nil
		}
		if a.input.Update() {
			return nil
		}
		if a.handleEvents(ctx) {
			return nil
		}

		if err := a.scene.OnFrame(); err != nil {
			failed++
		}
		a.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("frames", frames), zap.Int("failed", failed))
			frames, failed = 0, 0
			fpsTimer = time.Now()
		}

		if frameTime > 0 {
			if elapsed := time.Since(start); elapsed < frameTime {
				time.Sleep(frameTime - elapsed)
			}
		}
	}
}

// handleEvents applies this frame's events. Returns true to quit.
func (a *App) handleEvents(ctx context.Context) bool {
	n := a.scene.System().Len()
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventResize:
			a.scene.OnSurfaceResized(a.window.DrawableSize())
		case input.EventAction:
			switch ev.Action {
			case input.ActionPrevious:
				a.scene.SetSelectedIndex(Cycle(a.scene.SelectedIndex(), -1, n))
			case input.ActionNext:
				a.scene.SetSelectedIndex(Cycle(a.scene.SelectedIndex(), 1, n))
			case input.ActionSelectStar:
				a.scene.SetSelectedIndex(a.scene.System().StarIndex())
			case input.ActionToggleTour:
				a.tour.Toggle(ctx)
			case input.ActionQuit:
				return true
			}
		}
	}
	return false
}

// Close releases everything in reverse order of creation.
func (a *App) Close() {
	logger.Info("closing")

	if a.tour != nil {
		a.tour.Stop()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("closing shader watcher", zap.Error(err))
		}
	}
	if a.scene != nil {
		a.scene.Release()
	}
	if a.device != nil {
		a.device.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	if a.assets != nil {
		hits, misses := a.assets.Stats()
		logger.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		a.assets.Close()
	}
}

// Cycle moves selection i by delta within [0, n).
func Cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
