package md2docx

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/preset"
)

// displayWidthCm computes the on-page width for an embedded image: a
// configured fraction of the printable page width, capped at an
// absolute maximum.
func displayWidthCm(page preset.Page, img preset.Image) float64 {
	width := page.PrintableWidthCm() * img.DisplayRatio
	if img.MaxWidthCm > 0 && width > img.MaxWidthCm {
		width = img.MaxWidthCm
	}
	return width
}

// downsamplePNG re-encodes PNG data so its pixel width matches the
// target display width at the target DPI. Images already at or below
// the target width are returned unchanged. Downsampling uses
// Catmull-Rom interpolation, which keeps diagram line work crisp.
func downsamplePNG(data []byte, displayCm float64, targetDPI int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	targetWidth := int(math.Round(displayCm / 2.54 * float64(targetDPI)))
	if targetWidth < 1 {
		targetWidth = 1
	}
	bounds := src.Bounds()
	if bounds.Dx() <= targetWidth {
		return data, nil
	}

	targetHeight := int(math.Round(float64(bounds.Dy()) * float64(targetWidth) / float64(bounds.Dx())))
	if targetHeight < 1 {
		targetHeight = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageEncode, err)
	}
	return buf.Bytes(), nil
}

// imageExtentEMU converts a display width and the image's aspect ratio
// to drawing extents in English Metric Units.
func imageExtentEMU(data []byte, displayCm float64) (width, height int64, err error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	width = docx.EMUFromCm(displayCm)
	height = docx.EMUFromCm(displayCm * float64(cfg.Height) / float64(cfg.Width))
	return width, height, nil
}
