// Package background provides the gradient backdrops shown behind the
// phone.
package background

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/Faultbox/mgen/internal/engine/texture"
)

// Texture dimensions. Gradients are vertical so two columns are enough;
// the sampler stretches them across the viewport.
const (
	Width  = 2
	Height = 512
)

// Preset is a named two-stop vertical gradient.
type Preset struct {
	ID     string
	Name   string
	Top    string
	Bottom string
}

var presets = []Preset{
	{ID: "sakura", Name: "Sakura", Top: "#F9C5D1", Bottom: "#FFFFFF"},
	{ID: "aizome", Name: "Aizome", Top: "#1B1464", Bottom: "#0D47A1"},
	{ID: "matcha", Name: "Matcha", Top: "#8DB48E", Bottom: "#F5F0E1"},
	{ID: "yuuhi", Name: "Yuuhi", Top: "#FF6B35", Bottom: "#F7C948"},
	{ID: "fuji", Name: "Fuji", Top: "#7B6BA8", Bottom: "#E8DFF5"},
	{ID: "sumi", Name: "Sumi", Top: "#2C2C2C", Bottom: "#5A5A5A"},
	{ID: "umi", Name: "Umi", Top: "#0077B6", Bottom: "#CAF0F8"},
	{ID: "momiji", Name: "Momiji", Top: "#C0392B", Bottom: "#F5B041"},
}

// Presets returns a copy of the built-in gradients in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Default returns the first preset.
func Default() Preset {
	return presets[0]
}

// Lookup finds a preset by ID. Unknown IDs fall back to Default and
// report false.
func Lookup(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Default(), false
}

// Next returns the preset after id, wrapping around.
func Next(id string) Preset {
	for i, p := range presets {
		if p.ID == id {
			return presets[(i+1)%len(presets)]
		}
	}
	return Default()
}

// Render rasterises p into a Width x Height texture, Top at row 0.
func Render(p Preset) (*image.RGBA, error) {
	dc := gg.NewContext(Width, Height)
	defer dc.Close()

	grad := gg.NewLinearGradientBrush(0, 0, 0, Height).
		AddColorStop(0, gg.Hex(p.Top)).
		AddColorStop(1, gg.Hex(p.Bottom))
	dc.SetFillBrush(grad)
	dc.DrawRectangle(0, 0, Width, Height)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("background: fill %s: %w", p.ID, err)
	}
	return texture.ToRGBA(dc.Image()), nil
}
