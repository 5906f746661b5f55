// Package gpu uploads CPU textures to OpenGL.
package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mgen/internal/engine/texture"
)

// Uploader implements texture.Uploader on the current GL context. It must
// be used from the thread that owns the context.
type Uploader struct {
	log  *zap.Logger
	live int
}

// NewUploader creates an uploader.
func NewUploader(log *zap.Logger) *Uploader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Uploader{log: log}
}

// Live returns the number of textures uploaded and not yet released.
func (u *Uploader) Live() int {
	return u.live
}

// Upload creates a 2D texture from img with the given sampling state.
func (u *Uploader) Upload(img *image.RGBA, s texture.Sampling) (texture.Handle, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("gpu: empty texture %dx%d", w, h)
	}
	if s.FlipY {
		img = texture.FlipRows(img.Pix, w, h)
	}

	internal := int32(gl.RGBA8)
	if s.ColorSpace == texture.ColorSpaceSRGB {
		internal = gl.SRGB8_ALPHA8
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	minFilter := glFilter(s.MinFilter)
	if !s.Mipmaps && s.MinFilter == texture.FilterLinearMipmapLinear {
		minFilter = gl.LINEAR
	}
	if s.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(s.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	if s.Anisotropy > 1 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, s.Anisotropy)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return nil, fmt.Errorf("gpu: texture upload failed: GL error 0x%x", e)
	}

	u.live++
	u.log.Debug("texture uploaded",
		zap.Uint32("id", id),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Stringer("color_space", s.ColorSpace),
		zap.Int("live", u.live),
	)
	return &Texture{id: id, w: w, h: h, owner: u}, nil
}

// glFilter maps a filter to its GL enum. Magnification ignores the
// mipmap part.
func glFilter(f texture.Filter) int32 {
	switch f {
	case texture.FilterNearest:
		return gl.NEAREST
	case texture.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}

// Texture is an uploaded GL texture.
type Texture struct {
	id    uint32
	w, h  int
	owner *Uploader
}

// ID returns the GL texture name.
func (t *Texture) ID() uint32 { return t.id }

// Size returns the texture dimensions.
func (t *Texture) Size() (int, int) { return t.w, t.h }

// Release deletes the GL texture. Subsequent calls do nothing.
func (t *Texture) Release() {
	if t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
	t.owner.live--
}
