package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/ftrvxmtrx/tga"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func encodeTGA(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := tga.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode TGA: %v", err)
	}
	return buf.Bytes()
}

func TestScreenSampling(t *testing.T) {
	s := ScreenSampling(16)
	if s.ColorSpace != ColorSpaceSRGB {
		t.Errorf("expected sRGB, got %v", s.ColorSpace)
	}
	if s.MinFilter != FilterLinearMipmapLinear || s.MagFilter != FilterLinear {
		t.Errorf("expected trilinear/bilinear, got %v/%v", s.MinFilter, s.MagFilter)
	}
	if !s.Mipmaps {
		t.Error("expected mipmaps enabled")
	}
	if s.Anisotropy != 16 {
		t.Errorf("expected anisotropy 16, got %v", s.Anisotropy)
	}
	if s.FlipY {
		t.Error("expected FlipY false")
	}

	if got := ScreenSampling(0).Anisotropy; got != 1 {
		t.Errorf("expected anisotropy clamped to 1, got %v", got)
	}
}

func TestEnumStrings(t *testing.T) {
	if ColorSpaceSRGB.String() != "srgb" {
		t.Errorf("unexpected %q", ColorSpaceSRGB.String())
	}
	if FilterLinearMipmapLinear.String() != "linear-mipmap-linear" {
		t.Errorf("unexpected %q", FilterLinearMipmapLinear.String())
	}
	if Filter(42).String() != "Filter(42)" {
		t.Errorf("unexpected %q", Filter(42).String())
	}
}

func TestToRGBA(t *testing.T) {
	src := solid(4, 4, color.RGBA{10, 20, 30, 255})
	if ToRGBA(src) != src {
		t.Error("expected zero-origin RGBA to be returned unchanged")
	}

	sub := src.SubImage(image.Rect(1, 1, 3, 4))
	out := ToRGBA(sub)
	if out.Rect != image.Rect(0, 0, 2, 3) {
		t.Fatalf("expected rect (0,0)-(2,3), got %v", out.Rect)
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("unexpected pixel %v", got)
	}

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 128})
	if got := ToRGBA(gray).RGBAAt(0, 0); got != (color.RGBA{128, 128, 128, 255}) {
		t.Errorf("expected opaque gray, got %v", got)
	}
}

func TestFlipRows(t *testing.T) {
	// Two rows: bottom row first, as glReadPixels returns them.
	pixels := []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
		9, 9, 9, 9, 8, 8, 8, 8,
	}
	img := FlipRows(pixels, 2, 2)
	if img.Pix[0] != 9 || img.Pix[4] != 8 {
		t.Errorf("expected top row from last source row, got %v", img.Pix[:8])
	}
	if img.Pix[8] != 1 || img.Pix[12] != 2 {
		t.Errorf("expected bottom row from first source row, got %v", img.Pix[8:])
	}
}

func TestSniff(t *testing.T) {
	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, solid(2, 2, color.RGBA{255, 0, 0, 255}), nil); err != nil {
		t.Fatalf("failed to encode JPEG: %v", err)
	}

	tests := []struct {
		name string
		file string
		data []byte
		want Format
		err  bool
	}{
		{"png", "shot.bin", encodePNG(t, solid(1, 1, color.RGBA{A: 255})), FormatPNG, false},
		{"jpeg", "shot", jpg.Bytes(), FormatJPEG, false},
		{"webp", "shot.webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), FormatWebP, false},
		{"tga by extension", "shot.TGA", encodeTGA(t, solid(1, 1, color.RGBA{0, 0, 0, 255})), FormatTGA, false},
		{"unknown", "notes.txt", []byte("hello"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sniff(tt.file, tt.data)
			if tt.err {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDecodePNG(t *testing.T) {
	data := encodePNG(t, solid(3, 2, color.RGBA{0, 255, 0, 255}))
	img, err := Decode(data, FormatPNG)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("expected 3x2, got %v", img.Bounds())
	}
}

func TestDecodeTGA(t *testing.T) {
	img, err := Decode(encodeTGA(t, solid(2, 1, color.RGBA{255, 0, 0, 255})), FormatTGA)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("expected 2x1, got %v", img.Bounds())
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("expected red pixel, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode([]byte("\x89PNG\r\n\x1a\ngarbage"), FormatPNG); err == nil {
		t.Error("expected error for corrupt PNG")
	}
	if _, err := Decode(nil, Format("bmp")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFormatMIME(t *testing.T) {
	if FormatWebP.MIME() != "image/webp" {
		t.Errorf("unexpected %q", FormatWebP.MIME())
	}
	if FormatTGA.MIME() != "image/x-tga" {
		t.Errorf("unexpected %q", FormatTGA.MIME())
	}
}

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format Format
	}{
		{"png", encodePNG(t, solid(5, 3, color.RGBA{A: 255})), FormatPNG},
		{"tga", encodeTGA(t, solid(5, 3, color.RGBA{A: 255})), FormatTGA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := DecodeConfig(tt.data, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Width != 5 || cfg.Height != 3 {
				t.Errorf("expected 5x3, got %dx%d", cfg.Width, cfg.Height)
			}
		})
	}
	if _, err := DecodeConfig(nil, Format("bmp")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
