package inspect

import (
	"bytes"
	"context"
	"image"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestProbePNG(t *testing.T) {
	path := writeFixture(t, "photo.png", func(w *bytes.Buffer) error {
		return png.Encode(w, image.NewNRGBA(image.Rect(0, 0, 64, 48)))
	})

	probe, err := New().Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}

	if probe.Width != 64 || probe.Height != 48 {
		t.Fatalf("unexpected dimensions: %dx%d", probe.Width, probe.Height)
	}
	if probe.Format != "PNG" {
		t.Fatalf("format must be upper-cased: %s", probe.Format)
	}
	if probe.Mode != "NRGBA" {
		t.Fatalf("unexpected mode: %s", probe.Mode)
	}
}

func TestProbeGrayPNG(t *testing.T) {
	path := writeFixture(t, "scan.png", func(w *bytes.Buffer) error {
		return png.Encode(w, image.NewGray(image.Rect(0, 0, 10, 20)))
	})

	probe, err := New().Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}

	if probe.Mode != "Gray" {
		t.Fatalf("unexpected mode: %s", probe.Mode)
	}
}

func TestProbeJPEG(t *testing.T) {
	path := writeFixture(t, "photo.jpg", func(w *bytes.Buffer) error {
		return jpeg.Encode(w, image.NewNRGBA(image.Rect(0, 0, 32, 16)), nil)
	})

	probe, err := New().Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}

	if probe.Width != 32 || probe.Height != 16 {
		t.Fatalf("unexpected dimensions: %dx%d", probe.Width, probe.Height)
	}
	if probe.Format != "JPEG" {
		t.Fatalf("unexpected format: %s", probe.Format)
	}
	if probe.Mode != "YCbCr" {
		t.Fatalf("unexpected mode: %s", probe.Mode)
	}
}

func TestProbeGIF(t *testing.T) {
	path := writeFixture(t, "anim.gif", func(w *bytes.Buffer) error {
		return gif.Encode(w, image.NewPaletted(image.Rect(0, 0, 5, 7), palette.Plan9), nil)
	})

	probe, err := New().Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}

	if probe.Format != "GIF" {
		t.Fatalf("unexpected format: %s", probe.Format)
	}
	if probe.Mode != "P" {
		t.Fatalf("paletted images must report P, got %s", probe.Mode)
	}
}

func TestProbeBMP(t *testing.T) {
	path := writeFixture(t, "scan.bmp", func(w *bytes.Buffer) error {
		img := image.NewNRGBA(image.Rect(0, 0, 7, 5))
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 0xFF
		}

		return bmp.Encode(w, img)
	})

	probe, err := New().Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}

	if probe.Width != 7 || probe.Height != 5 {
		t.Fatalf("unexpected dimensions: %dx%d", probe.Width, probe.Height)
	}
	if probe.Format != "BMP" {
		t.Fatalf("unexpected format: %s", probe.Format)
	}
	if probe.Mode == "" {
		t.Fatalf("mode must be reported")
	}
}

func TestProbeCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not an image at all"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := New().Probe(context.Background(), path)
	if err == nil {
		t.Fatalf("expected a decode error")
	}
}

func TestProbeMissingFile(t *testing.T) {
	_, err := New().Probe(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatalf("expected an open error")
	}
}

func TestThumbnail(t *testing.T) {
	path := writeFixture(t, "banner.png", func(w *bytes.Buffer) error {
		return png.Encode(w, image.NewNRGBA(image.Rect(0, 0, 300, 200)))
	})

	thumb, err := New().Thumbnail(context.Background(), path)
	if err != nil {
		t.Fatalf("Thumbnail returned error: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail does not decode: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("thumbnails are rendered as JPEG, got %s", format)
	}
	if b := img.Bounds(); b.Dx() != thumbWidth || b.Dy() != thumbHeight {
		t.Fatalf("unexpected thumbnail size: %dx%d", b.Dx(), b.Dy())
	}
}

func TestThumbnailMissingFile(t *testing.T) {
	_, err := New().Thumbnail(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatalf("expected an open error")
	}
}

func writeFixture(t *testing.T, name string, encode func(*bytes.Buffer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	return path
}
