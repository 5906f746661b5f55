// Package renderer sets up OpenGL and draws the mockup scene on screen and
// offscreen.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mgen/internal/engine/framebuffer"
	"github.com/Faultbox/mgen/internal/engine/gpu"
	"github.com/Faultbox/mgen/internal/engine/material"
	"github.com/Faultbox/mgen/internal/engine/scene"
	"github.com/Faultbox/mgen/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int // Drawable size in pixels
	Height int
	Scene  scene.Config
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config   Config
	log      *zap.Logger
	uploader *gpu.Uploader
	scene    *scene.Scene
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config: cfg,
		log:    log,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	var maxAniso float32
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &maxAniso)
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Float32("max_anisotropy", maxAniso),
	)

	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	r.uploader = gpu.NewUploader(log.Named("gpu"))

	var err error
	r.scene, err = scene.New(cfg.Scene, r.uploader, log.Named("scene"))
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	return r, nil
}

// Uploader returns the texture uploader bound to this context.
func (r *Renderer) Uploader() *gpu.Uploader {
	return r.uploader
}

// Scene returns the scene for toggling background and lights.
func (r *Renderer) Scene() *scene.Scene {
	return r.scene
}

// Size returns the drawable size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw renders a frame to the default framebuffer.
func (r *Renderer) Draw(viewProj math.Mat4, scr material.Screen) {
	r.scene.Render(viewProj, scr)
}

// Capture renders one frame offscreen at the given size and returns the
// bottom-up RGBA pixels.
func (r *Renderer) Capture(width, height int, viewProj math.Mat4, scr material.Screen) ([]byte, error) {
	fb, err := framebuffer.New(int32(width), int32(height))
	if err != nil {
		return nil, err
	}
	defer fb.Destroy()

	restore := fb.BindWithViewport()
	r.scene.Render(viewProj, scr)
	pixels := fb.ReadPixels()
	restore()

	fw, fh := fb.Size()
	r.log.Debug("frame captured", zap.Int("width", fw), zap.Int("height", fh))
	return pixels, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.scene != nil {
		r.scene.Destroy()
	}
	if n := r.uploader.Live(); n != 0 {
		r.log.Warn("textures still alive at shutdown", zap.Int("count", n))
	}
}
