package inspect

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/avmetrik/Metadata-Extractor/internal/dto"
	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	thumbWidth  = 150
	thumbHeight = 150
)

type Inspector struct {
}

func New() *Inspector {
	return &Inspector{}
}

// Probe reads the image header at path and reports dimensions, format and
// color mode without decoding pixel data.
func (i *Inspector) Probe(ctx context.Context, path string) (dto.ProbeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return dto.ProbeResult{}, fmt.Errorf("Inspector - Probe - os.Open: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return dto.ProbeResult{}, fmt.Errorf("Inspector - Probe - image.DecodeConfig: %w", err)
	}

	return dto.ProbeResult{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: strings.ToUpper(format),
		Mode:   colorMode(cfg.ColorModel),
	}, nil
}

// Thumbnail decodes the image at path and renders a JPEG thumbnail cropped
// to fill thumbWidth x thumbHeight.
func (i *Inspector) Thumbnail(ctx context.Context, path string) ([]byte, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Inspector - Thumbnail - imaging.Open: %w", err)
	}

	thumb := imaging.Thumbnail(img, thumbWidth, thumbHeight, imaging.Lanczos)

	var buf bytes.Buffer
	err = imaging.Encode(&buf, thumb, imaging.JPEG)
	if err != nil {
		return nil, fmt.Errorf("Inspector - Thumbnail - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}

func colorMode(m color.Model) string {
	switch m {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.AlphaModel:
		return "Alpha"
	case color.Alpha16Model:
		return "Alpha16"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.CMYKModel:
		return "CMYK"
	case color.YCbCrModel:
		return "YCbCr"
	case color.NYCbCrAModel:
		return "NYCbCrA"
	}

	if _, ok := m.(color.Palette); ok {
		return "P"
	}

	return "unknown"
}
