// Package config handles mockup generator configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/mgen/internal/mesh"
)

// Config holds all settings.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Material   MaterialConfig   `yaml:"material"`
	Upload     UploadConfig     `yaml:"upload"`
	Background BackgroundConfig `yaml:"background"`
	Export     ExportConfig     `yaml:"export"`
	Window     WindowConfig     `yaml:"window"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ScreenConfig describes where the screen lives in the phone's atlas.
type ScreenConfig struct {
	UV            mesh.UVRegion `yaml:"uv"`
	TextureSize   int           `yaml:"texture_size"` // Atlas side, power of two
	Physical      mesh.Screen   `yaml:"physical"`     // Screen slab size in model units
	Anisotropy    float32       `yaml:"anisotropy"`
	Interpolation string        `yaml:"interpolation"` // nearest, bilinear, catmull-rom
}

// MaterialConfig holds the lit screen look.
type MaterialConfig struct {
	Emissive          string  `yaml:"emissive"`
	EmissiveIntensity float32 `yaml:"emissive_intensity"`
}

// UploadConfig limits user images.
type UploadConfig struct {
	MaxBytes  int64    `yaml:"max_bytes"`
	MaxPixels int64    `yaml:"max_pixels"`
	Accepted  []string `yaml:"accepted"`
}

// BackgroundConfig selects the gradient backdrop.
type BackgroundConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Gradient string `yaml:"gradient"`
}

// ExportConfig controls rendered output.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // png or webp
	Scale  int    `yaml:"scale"`  // Offscreen size relative to the window
}

// WindowConfig holds display settings for the viewer.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Screen: ScreenConfig{
			UV:            mesh.Reference(),
			TextureSize:   8192,
			Physical:      mesh.ReferenceScreen(),
			Anisotropy:    16,
			Interpolation: "bilinear",
		},
		Material: MaterialConfig{
			Emissive:          "#ffffff",
			EmissiveIntensity: 0.85,
		},
		Upload: UploadConfig{
			MaxBytes:  10 << 20,
			MaxPixels: 8192 * 8192,
			Accepted:  []string{"png", "jpeg", "webp"},
		},
		Background: BackgroundConfig{
			Enabled:  true,
			Gradient: "sakura",
		},
		Export: ExportConfig{
			Dir:    "",
			Prefix: "mockup",
			Format: "png",
			Scale:  2,
		},
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks values that would otherwise fail deep inside the
// renderer.
func (c *Config) Validate() error {
	if err := c.Screen.UV.Validate(); err != nil {
		return fmt.Errorf("%w: screen.uv: %w", ErrInvalid, err)
	}
	if n := c.Screen.TextureSize; n <= 0 || n&(n-1) != 0 {
		return fmt.Errorf("%w: screen.texture_size %d is not a power of two", ErrInvalid, n)
	}
	if c.Screen.Physical.Width <= 0 || c.Screen.Physical.Height <= 0 {
		return fmt.Errorf("%w: screen.physical must be positive", ErrInvalid)
	}
	if c.Material.EmissiveIntensity < 0 {
		return fmt.Errorf("%w: material.emissive_intensity %v < 0", ErrInvalid, c.Material.EmissiveIntensity)
	}
	if c.Export.Scale < 1 {
		return fmt.Errorf("%w: export.scale %d < 1", ErrInvalid, c.Export.Scale)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}
