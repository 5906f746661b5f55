// Package export writes rendered mockups to disk.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"github.com/Faultbox/mgen/internal/engine/texture"
)

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png", "":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from a file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatPNG
	}
	return f
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode writes img to w. PNG and WebP are both lossless and keep alpha.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encoding WebP: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return nil
}

// WriteFile encodes img to path, choosing the format from the extension.
func WriteFile(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, FormatFromPath(path)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Writer saves images under timestamped names: <prefix>_<timestamp>.<ext>.
type Writer struct {
	dir    string
	prefix string
	format Format
	now    func() time.Time
}

// NewWriter creates a writer for dir. An empty dir writes to the working
// directory.
func NewWriter(dir, prefix string, format Format) *Writer {
	if prefix == "" {
		prefix = "mockup"
	}
	return &Writer{
		dir:    dir,
		prefix: prefix,
		format: format,
		now:    time.Now,
	}
}

// Filename returns the path the next export would be written to.
func (w *Writer) Filename() string {
	timestamp := w.now().Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s_%s%s", w.prefix, timestamp, w.format.Ext())
	if w.dir != "" {
		name = filepath.Join(w.dir, name)
	}
	return name
}

// WriteImage saves img and returns the written path.
func (w *Writer) WriteImage(img image.Image) (string, error) {
	name := w.Filename()
	file, err := w.create(name)
	if err != nil {
		return "", err
	}
	if err := Encode(file, img, w.format); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	return name, nil
}

// WritePixels saves a bottom-up RGBA read-back, as returned by
// glReadPixels, flipping it upright first.
func (w *Writer) WritePixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	return w.WriteImage(texture.FlipRows(pixels, width, height))
}

func (w *Writer) create(name string) (*os.File, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	file, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	return file, nil
}
