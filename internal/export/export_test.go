package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/webp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(3, 1, color.RGBA{0, 0, 255, 128})
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{".webp", FormatWebP, false},
		{"", FormatPNG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.err {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("expected %q, got %q (err %v)", tt.want, got, err)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	w := NewWriter("out", "shot", FormatWebP)
	w.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	want := filepath.Join("out", "shot_2026-03-04_05-06-07.webp")
	if got := w.Filename(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	if got := NewWriter("", "", FormatPNG).prefix; got != "mockup" {
		t.Errorf("expected default prefix mockup, got %s", got)
	}
}

func TestWriteImagePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	w := NewWriter(dir, "test", FormatPNG)

	name, err := w.WriteImage(testImage())
	if err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if r, _, _, a := img.At(0, 0).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Errorf("expected opaque red at origin, got %v", img.At(0, 0))
	}
	if _, _, _, a := img.At(3, 1).RGBA(); a>>8 != 128 {
		t.Errorf("expected alpha 128 preserved, got %d", a>>8)
	}
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), FormatWebP); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := webp.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding WebP: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("expected 4x2, got %dx%d", b.Dx(), b.Dy())
	}
	if r, g, _, _ := img.At(0, 0).RGBA(); r>>8 != 255 || g>>8 != 0 {
		t.Errorf("expected red at origin, got %v", img.At(0, 0))
	}
}

func TestEncodeUnknown(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, testImage(), "bmp"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWritePixelsFlips(t *testing.T) {
	// Bottom-up buffer: first row is the bottom of the image.
	pixels := []byte{
		0, 255, 0, 255, // bottom
		255, 0, 0, 255, // top
	}
	w := NewWriter(t.TempDir(), "flip", FormatPNG)
	name, err := w.WritePixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("WritePixels: %v", err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 255 {
		t.Errorf("expected red on top after flip, got %v", img.At(0, 0))
	}
	if _, g, _, _ := img.At(0, 1).RGBA(); g>>8 != 255 {
		t.Errorf("expected green at bottom after flip, got %v", img.At(0, 1))
	}

	if _, err := w.WritePixels(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "atlas.webp")
	if err := WriteFile(path, testImage()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) {
		t.Error("expected RIFF container for .webp path")
	}
}
