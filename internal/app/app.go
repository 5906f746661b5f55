// Package app implements the interactive mockup viewer loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/mgen/internal/background"
	"github.com/Faultbox/mgen/internal/config"
	"github.com/Faultbox/mgen/internal/engine/camera"
	"github.com/Faultbox/mgen/internal/engine/input"
	"github.com/Faultbox/mgen/internal/engine/material"
	"github.com/Faultbox/mgen/internal/engine/renderer"
	"github.com/Faultbox/mgen/internal/engine/scene"
	"github.com/Faultbox/mgen/internal/engine/window"
	"github.com/Faultbox/mgen/internal/export"
	"github.com/Faultbox/mgen/internal/logger"
	"github.com/Faultbox/mgen/internal/upload"
)

const title = "mgen"

// App is the viewer instance. All methods run on the main thread.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	binder   *material.Binder
	loader   *upload.Loader
	exporter *export.Writer

	ctx    context.Context
	cancel context.CancelFunc

	gradient background.Preset
}

// New creates the window, GL context and scene.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")

	policy, err := cfg.UploadPolicy()
	if err != nil {
		return nil, err
	}
	matCfg, err := cfg.MaterialConfig()
	if err != nil {
		return nil, err
	}
	exporter, err := cfg.ExportWriter()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		input:    input.New(),
		loader:   upload.NewLoader(policy, 4, logger.Named("upload")),
		exporter: exporter,
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		MSAA:       cfg.Window.MSAA,
	}, logger.Named("window"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window: it needs the GL context.
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:  dw,
		Height: dh,
		Scene: scene.Config{
			Region: cfg.Screen.UV,
			Screen: cfg.Screen.Physical,
		},
	}, logger.Named("renderer"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.binder, err = material.NewBinder(cfg.Screen.UV, cfg.CompositorOptions(logger.Named("compositor")),
		a.renderer.Uploader(), matCfg, logger.Named("material"))
	if err != nil {
		a.Close()
		return nil, err
	}

	a.camera = camera.NewOrbitCamera(float32(dw) / float32(dh))

	a.gradient, _ = background.Lookup(cfg.Background.Gradient)
	a.renderer.Scene().ShowBackground = cfg.Background.Enabled
	if err := a.applyGradient(); err != nil {
		a.Close()
		return nil, err
	}

	log.Info("viewer initialized",
		zap.Int("tex_size", cfg.Screen.TextureSize),
		zap.String("gradient", a.gradient.ID),
	)
	return a, nil
}

// Open starts loading an image onto the screen. Any earlier load still in
// flight is superseded.
func (a *App) Open(path string) {
	t := a.binder.Begin()
	a.log.Info("loading image", zap.String("path", path), zap.Uint64("ticket", uint64(t)))
	a.loader.LoadFile(a.ctx, t, path)
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		if a.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handle(event)
		}

		a.drainUploads()

		a.renderer.Draw(a.camera.ViewProjection(), a.binder.Screen())
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handle(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		dw, dh := a.window.DrawableSize()
		a.renderer.Resize(dw, dh)
		if dh > 0 {
			a.camera.SetAspect(float32(dw) / float32(dh))
		}
	case input.EventMouseMove:
		if e.Held {
			a.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
		}
	case input.EventMouseWheel:
		a.camera.HandleZoom(float32(e.DeltaY))
	case input.EventDropFile:
		a.Open(e.Path)
	case input.EventKeyDown:
		a.handleKey(e.Key)
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_BACKSPACE, sdl.SCANCODE_DELETE:
		a.binder.Clear()
	case sdl.SCANCODE_B:
		sc := a.renderer.Scene()
		sc.ShowBackground = !sc.ShowBackground
		a.log.Info("background toggled", zap.Bool("visible", sc.ShowBackground))
	case sdl.SCANCODE_G:
		a.gradient = background.Next(a.gradient.ID)
		if err := a.applyGradient(); err != nil {
			a.log.Error("gradient change failed", zap.Error(err))
		}
	case sdl.SCANCODE_R:
		a.camera.Reset()
	case sdl.SCANCODE_E:
		if path, err := a.Export(); err != nil {
			a.log.Error("export failed", zap.Error(err))
		} else {
			a.log.Info("exported", zap.String("path", path))
		}
	}
}

// drainUploads applies finished loads without blocking the frame.
func (a *App) drainUploads() {
	for {
		select {
		case res := <-a.loader.Results():
			if res.Err != nil {
				if a.binder.Current(res.Ticket) {
					a.log.Warn("image rejected", zap.String("name", res.Name), zap.Error(res.Err))
				}
				continue
			}
			ok, err := a.binder.SetImage(res.Ticket, res.Image)
			if err != nil {
				a.log.Error("screen update failed", zap.String("name", res.Name), zap.Error(err))
			} else if ok {
				a.window.SetTitle(fmt.Sprintf("%s - %s", title, res.Name))
				if p, placed := a.binder.Placement(); placed {
					a.log.Info("screen updated",
						zap.String("name", res.Name),
						zap.Float64("scale", p.Scale),
						zap.Float64("draw_w", p.DrawW),
						zap.Float64("draw_h", p.DrawH),
					)
				}
			}
		default:
			return
		}
	}
}

func (a *App) applyGradient() error {
	img, err := background.Render(a.gradient)
	if err != nil {
		return err
	}
	return a.renderer.Scene().SetGradient(img)
}

// Export renders the current view offscreen at export.scale times the
// drawable size and writes it.
func (a *App) Export() (string, error) {
	w, h := a.renderer.Size()
	scale := a.cfg.Export.Scale
	if w <= 0 || h <= 0 {
		return "", errors.New("no drawable surface")
	}
	pixels, err := a.renderer.Capture(w*scale, h*scale, a.camera.ViewProjection(), a.binder.Screen())
	if err != nil {
		return "", fmt.Errorf("capturing frame: %w", err)
	}
	return a.exporter.WritePixels(pixels, w*scale, h*scale)
}

// Close cleans up all resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	a.cancel()
	a.loader.Wait()

	if a.binder != nil {
		a.binder.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
