// Package upload validates and decodes user-supplied screen images.
package upload

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/mgen/internal/engine/texture"
)

const (
	// DefaultMaxBytes is the largest accepted upload.
	DefaultMaxBytes = 10 << 20
	// DefaultMaxPixels caps the decoded size at one full atlas.
	DefaultMaxPixels = 8192 * 8192
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image file too large")
	ErrTooManyPixels   = errors.New("image dimensions too large")
	ErrEmpty           = errors.New("image file is empty")
	ErrDecode          = errors.New("image decode failed")
)

// Policy decides which files are accepted.
type Policy struct {
	MaxBytes int64
	// MaxPixels limits width*height, checked from the header before the
	// full decode. Zero disables the check.
	MaxPixels int64
	Accepted  []texture.Format
}

// DefaultPolicy accepts PNG, JPEG and WebP up to 10 MiB and 8192x8192.
func DefaultPolicy() Policy {
	return Policy{
		MaxBytes:  DefaultMaxBytes,
		MaxPixels: DefaultMaxPixels,
		Accepted:  []texture.Format{texture.FormatPNG, texture.FormatJPEG, texture.FormatWebP},
	}
}

// ParseFormats converts config names ("png", "jpeg", ...) to formats.
// "jpg" is accepted as an alias.
func ParseFormats(names []string) ([]texture.Format, error) {
	out := make([]texture.Format, 0, len(names))
	for _, n := range names {
		switch n {
		case "png":
			out = append(out, texture.FormatPNG)
		case "jpeg", "jpg":
			out = append(out, texture.FormatJPEG)
		case "webp":
			out = append(out, texture.FormatWebP)
		case "tga":
			out = append(out, texture.FormatTGA)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, n)
		}
	}
	return out, nil
}

func (p Policy) accepts(f texture.Format) bool {
	for _, a := range p.Accepted {
		if a == f {
			return true
		}
	}
	return false
}

// Check validates size and type without decoding.
func (p Policy) Check(name string, data []byte) (texture.Format, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	if p.MaxBytes > 0 && int64(len(data)) > p.MaxBytes {
		return "", fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, name, len(data), p.MaxBytes)
	}
	f, err := texture.Sniff(name, data)
	if err != nil || !p.accepts(f) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, name)
	}
	return f, nil
}

// Decode checks data and decodes it.
func (p Policy) Decode(name string, data []byte) (image.Image, error) {
	f, err := p.Check(name, data)
	if err != nil {
		return nil, err
	}
	if p.MaxPixels > 0 {
		cfg, err := texture.DecodeConfig(data, f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
		}
		if n := int64(cfg.Width) * int64(cfg.Height); n > p.MaxPixels {
			return nil, fmt.Errorf("%w: %s is %dx%d, limit %d pixels",
				ErrTooManyPixels, name, cfg.Width, cfg.Height, p.MaxPixels)
		}
	}
	img, err := texture.Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s has no pixels", ErrDecode, name)
	}
	return img, nil
}

// ReadFile reads and decodes path, refusing files over the size limit
// before reading them fully.
func (p Policy) ReadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if p.MaxBytes > 0 {
		r = io.LimitReader(f, p.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Decode(filepath.Base(path), data)
}
