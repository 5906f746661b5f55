package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/mgen/internal/compositor"
	"github.com/Faultbox/mgen/internal/engine/material"
	"github.com/Faultbox/mgen/internal/engine/raster"
	"github.com/Faultbox/mgen/internal/engine/texture"
	"github.com/Faultbox/mgen/internal/export"
	"github.com/Faultbox/mgen/internal/upload"
)

// CompositorOptions builds compositor options from the screen section.
func (c *Config) CompositorOptions(log *zap.Logger) compositor.Options {
	return compositor.Options{
		TexSize:  c.Screen.TextureSize,
		Surfaces: raster.NewFactory(raster.WithInterpolator(raster.Interpolator(c.Screen.Interpolation))),
		Sampling: texture.ScreenSampling(c.Screen.Anisotropy),
		Logger:   log,
	}
}

// MaterialConfig converts the material section.
func (c *Config) MaterialConfig() (material.Config, error) {
	col, err := material.ParseColor(c.Material.Emissive)
	if err != nil {
		return material.Config{}, fmt.Errorf("material.emissive: %w", err)
	}
	return material.Config{Emissive: col, EmissiveIntensity: c.Material.EmissiveIntensity}, nil
}

// UploadPolicy converts the upload section.
func (c *Config) UploadPolicy() (upload.Policy, error) {
	formats, err := upload.ParseFormats(c.Upload.Accepted)
	if err != nil {
		return upload.Policy{}, fmt.Errorf("upload.accepted: %w", err)
	}
	return upload.Policy{
		MaxBytes:  c.Upload.MaxBytes,
		MaxPixels: c.Upload.MaxPixels,
		Accepted:  formats,
	}, nil
}

// ExportWriter builds the writer for the export section.
func (c *Config) ExportWriter() (*export.Writer, error) {
	f, err := export.ParseFormat(c.Export.Format)
	if err != nil {
		return nil, fmt.Errorf("export.format: %w", err)
	}
	return export.NewWriter(c.Export.Dir, c.Export.Prefix, f), nil
}
