package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"github.com/Faultbox/mgen/internal/engine/material"
	"github.com/Faultbox/mgen/internal/engine/texture"
)

func sample(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 100, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPolicyDecode(t *testing.T) {
	var jpg, wbp bytes.Buffer
	if err := jpeg.Encode(&jpg, sample(8, 6), nil); err != nil {
		t.Fatal(err)
	}
	if err := nativewebp.Encode(&wbp, sample(8, 6), nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"a.png", encodePNG(t, sample(8, 6))},
		{"b.jpg", jpg.Bytes()},
		{"c.webp", wbp.Bytes()},
	}

	p := DefaultPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := p.Decode(tt.name, tt.data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("expected 8x6, got %dx%d", b.Dx(), b.Dy())
			}
		})
	}
}

func TestPolicyRejects(t *testing.T) {
	small := Policy{MaxBytes: 16, Accepted: DefaultPolicy().Accepted}
	tinyRaster := DefaultPolicy()
	tinyRaster.MaxPixels = 15
	pngData := encodePNG(t, sample(4, 4))

	tests := []struct {
		name   string
		policy Policy
		file   string
		data   []byte
		want   error
	}{
		{"empty", DefaultPolicy(), "x.png", nil, ErrEmpty},
		{"too large", small, "x.png", pngData, ErrTooLarge},
		{"text", DefaultPolicy(), "notes.txt", []byte("hello world"), ErrUnsupportedType},
		{"gif", DefaultPolicy(), "a.gif", []byte("GIF89a\x01\x00\x01\x00"), ErrUnsupportedType},
		{"tga not enabled", DefaultPolicy(), "a.tga", []byte{0, 0, 2, 0}, ErrUnsupportedType},
		{"truncated png", DefaultPolicy(), "x.png", pngData[:40], ErrDecode},
		{"too many pixels", tinyRaster, "x.png", pngData, ErrTooManyPixels},
		{"header only", DefaultPolicy(), "x.png", pngData[:12], ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.policy.Decode(tt.file, tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"png", "jpg", "webp", "tga"})
	if err != nil {
		t.Fatalf("ParseFormats: %v", err)
	}
	want := []texture.Format{texture.FormatPNG, texture.FormatJPEG, texture.FormatWebP, texture.FormatTGA}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if _, err := ParseFormats([]string{"bmp"}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, encodePNG(t, sample(3, 5)), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := DefaultPolicy().ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 5 {
		t.Errorf("expected 3x5, got %dx%d", b.Dx(), b.Dy())
	}

	small := Policy{MaxBytes: 10, Accepted: DefaultPolicy().Accepted}
	if _, err := small.ReadFile(path); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	if _, err := DefaultPolicy().ReadFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoader(t *testing.T) {
	l := NewLoader(DefaultPolicy(), 4, nil)
	ctx := context.Background()

	l.LoadBytes(ctx, material.Ticket(1), "good.png", encodePNG(t, sample(2, 2)))
	l.LoadBytes(ctx, material.Ticket(2), "bad.png", []byte("nope"))
	l.Wait()

	got := make(map[material.Ticket]Result)
	for i := 0; i < 2; i++ {
		select {
		case r := <-l.Results():
			got[r.Ticket] = r
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for results")
		}
	}

	if r := got[1]; r.Err != nil || r.Image == nil || r.Name != "good.png" {
		t.Errorf("expected decoded image for ticket 1, got %+v", r)
	}
	if r := got[2]; !errors.Is(r.Err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType for ticket 2, got %v", r.Err)
	}
}

func TestLoaderCancel(t *testing.T) {
	l := NewLoader(DefaultPolicy(), 1, nil)
	ctx, cancel := context.WithCancel(context.Background())

	data := encodePNG(t, sample(2, 2))
	l.LoadBytes(ctx, 1, "a.png", data)
	l.LoadBytes(ctx, 2, "b.png", data)
	l.LoadBytes(ctx, 3, "c.png", data)
	cancel()

	done := make(chan struct{})
	go func() {
		l.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected cancelled loads to return")
	}
}

func TestPolicyPixelLimitBeforeDecode(t *testing.T) {
	// A flat 4000x4000 PNG compresses to a few KiB but decodes to 64 MB.
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 4000, 4000)))
	p := DefaultPolicy()
	if int64(len(data)) > p.MaxBytes {
		t.Fatalf("expected a small file, got %d bytes", len(data))
	}
	p.MaxPixels = 2000 * 2000

	_, err := p.Decode("flat.png", data)
	if !errors.Is(err, ErrTooManyPixels) {
		t.Fatalf("expected ErrTooManyPixels, got %v", err)
	}

	p.MaxPixels = 0
	img, err := p.Decode("flat.png", data)
	if err != nil {
		t.Fatalf("expected unlimited policy to decode, got %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4000 || b.Dy() != 4000 {
		t.Errorf("expected 4000x4000, got %v", b)
	}
}
