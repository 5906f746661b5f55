package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// Format is a supported source image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// MIME returns the media type of the format.
func (f Format) MIME() string {
	switch f {
	case FormatTGA:
		return "image/x-tga"
	default:
		return "image/" + string(f)
	}
}

// ErrUnknownFormat is returned when no decoder matches the data.
var ErrUnknownFormat = errors.New("unknown image format")

// Sniff detects the format from the content, falling back to the file
// extension for formats without a signature (TGA).
func Sniff(name string, data []byte) (Format, error) {
	switch http.DetectContentType(data) {
	case "image/png":
		return FormatPNG, nil
	case "image/jpeg":
		return FormatJPEG, nil
	case "image/webp":
		return FormatWebP, nil
	}
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return FormatTGA, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Decode decodes data in the given format.
// Formats are dispatched explicitly: TGA has no magic number, so the
// generic image.Decode registry cannot tell it apart.
func Decode(data []byte, format Format) (image.Image, error) {
	r := bytes.NewReader(data)
	var (
		img image.Image
		err error
	)
	switch format {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	case FormatTGA:
		img, err = tga.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", format, err)
	}
	return img, nil
}

// DecodeConfig reads only the header of data and returns its dimensions.
func DecodeConfig(data []byte, format Format) (image.Config, error) {
	r := bytes.NewReader(data)
	var (
		cfg image.Config
		err error
	)
	switch format {
	case FormatPNG:
		cfg, err = png.DecodeConfig(r)
	case FormatJPEG:
		cfg, err = jpeg.DecodeConfig(r)
	case FormatWebP:
		cfg, err = webp.DecodeConfig(r)
	case FormatTGA:
		cfg, err = tga.DecodeConfig(r)
	default:
		return image.Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return image.Config{}, fmt.Errorf("texture: decode %s header: %w", format, err)
	}
	return cfg, nil
}
