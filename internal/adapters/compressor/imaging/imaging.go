package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/Rankshow/GetBackFiles/internal/config"
	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/Rankshow/GetBackFiles/internal/core/port"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	contentTypeJPEG = "image/jpeg"

	// DefaultMaxPixels applies when the config leaves the pixel limit unset
	DefaultMaxPixels = 50_000_000
)

var _ port.ImageCompressor = (*Compressor)(nil)

// Compressor bounds images to a maximum size and re-encodes them as JPEG
type Compressor struct {
	maxWidth  int
	maxHeight int
	quality   int
	maxPixels int64
	scaler    draw.Scaler
}

// NewCompressor returns Compressor
func NewCompressor(cfg config.ImageConfig) *Compressor {
	maxPixels := cfg.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Compressor{
		maxWidth:  cfg.MaxWidth,
		maxHeight: cfg.MaxHeight,
		quality:   cfg.JPEGQuality,
		maxPixels: maxPixels,
		scaler:    draw.CatmullRom,
	}
}

// Compress decodes r, shrinks it to fit the configured bounds and encodes it as JPEG.
// Images already inside the bounds keep their dimensions.
func (c *Compressor) Compress(ctx context.Context, r io.Reader) (domain.CompressedImage, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompressedImage{}, err
	}

	// the header is read first so a small file declaring huge dimensions is
	// rejected before the pixel buffer is allocated
	var header bytes.Buffer
	imgCfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return domain.CompressedImage{}, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	if pixels := int64(imgCfg.Width) * int64(imgCfg.Height); pixels > c.maxPixels {
		return domain.CompressedImage{}, fmt.Errorf("%w: %dx%d exceeds %d pixels",
			domain.ErrInvalidImage, imgCfg.Width, imgCfg.Height, c.maxPixels)
	}

	src, format, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return domain.CompressedImage{}, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	srcBounds := src.Bounds()
	width, height := FitWithin(srcBounds.Dx(), srcBounds.Dy(), c.maxWidth, c.maxHeight)

	// JPEG has no alpha channel, transparent pixels are flattened onto white
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	if width == srcBounds.Dx() && height == srcBounds.Dy() {
		draw.Draw(dst, dst.Bounds(), src, srcBounds.Min, draw.Over)
	} else {
		c.scaler.Scale(dst, dst.Bounds(), src, srcBounds, draw.Over, nil)
	}

	if err := ctx.Err(); err != nil {
		return domain.CompressedImage{}, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.quality}); err != nil {
		return domain.CompressedImage{}, fmt.Errorf("failed to encode %s image as jpeg: %w", format, err)
	}

	return domain.CompressedImage{
		Data:        buf.Bytes(),
		ContentType: contentTypeJPEG,
		Width:       width,
		Height:      height,
	}, nil
}

// FitWithin returns the largest dimensions with the aspect ratio of width x height
// that fit inside maxWidth x maxHeight. It never upscales.
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	scale := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))

	newWidth := clamp(int(math.Round(float64(width)*scale)), 1, maxWidth)
	newHeight := clamp(int(math.Round(float64(height)*scale)), 1, maxHeight)

	return newWidth, newHeight
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
