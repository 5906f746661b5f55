// Package texture describes how raster images are decoded, normalised and
// sampled once they become GPU textures.
package texture

import (
	"fmt"
	"image"
)

// ColorSpace tells the renderer how stored texel values are encoded.
type ColorSpace int

const (
	// ColorSpaceLinear stores linear values.
	ColorSpaceLinear ColorSpace = iota
	// ColorSpaceSRGB stores display-referred, gamma encoded values.
	ColorSpaceSRGB
)

func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceLinear:
		return "linear"
	case ColorSpaceSRGB:
		return "srgb"
	default:
		return fmt.Sprintf("ColorSpace(%d)", int(c))
	}
}

// Filter is a texture filtering mode.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
	// FilterLinearMipmapLinear is trilinear filtering; minification only.
	FilterLinearMipmapLinear
)

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	case FilterLinearMipmapLinear:
		return "linear-mipmap-linear"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// Sampling is the upload and sampling state of a texture.
type Sampling struct {
	ColorSpace ColorSpace
	MinFilter  Filter
	MagFilter  Filter
	Mipmaps    bool
	Anisotropy float32
	// FlipY flips rows on upload. Atlases are authored with Y already
	// matching the mesh V axis, so it stays false for them.
	FlipY bool
}

// ScreenSampling is the sampling state of the phone screen texture: sRGB,
// trilinear minification, bilinear magnification and high anisotropy for
// the steep default viewing angle.
func ScreenSampling(anisotropy float32) Sampling {
	if anisotropy < 1 {
		anisotropy = 1
	}
	return Sampling{
		ColorSpace: ColorSpaceSRGB,
		MinFilter:  FilterLinearMipmapLinear,
		MagFilter:  FilterLinear,
		Mipmaps:    true,
		Anisotropy: anisotropy,
	}
}

// BackgroundSampling is used for the gradient backdrop: sRGB, bilinear,
// no mipmaps.
func BackgroundSampling() Sampling {
	return Sampling{
		ColorSpace: ColorSpaceSRGB,
		MinFilter:  FilterLinear,
		MagFilter:  FilterLinear,
		Anisotropy: 1,
	}
}

// Handle is a GPU-side texture. Release frees the GPU memory and is safe
// to call more than once.
type Handle interface {
	ID() uint32
	Size() (width, height int)
	Release()
}

// Uploader turns a CPU image into a GPU texture.
type Uploader interface {
	Upload(img *image.RGBA, s Sampling) (Handle, error)
}
