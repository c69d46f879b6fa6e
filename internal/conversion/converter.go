// Package conversion implements the rasterize-and-encode pipeline: decode
// the source image, honour its EXIF orientation, resample it into a new
// surface and encode the surface as WebP.
package conversion

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var errEmptySurface = errors.New("target surface has no pixels")

// WebPConverter is the production Converter.
type WebPConverter struct {
	logger *slog.Logger
}

// NewWebPConverter creates a converter that logs through logger
func NewWebPConverter(logger *slog.Logger) *WebPConverter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebPConverter{logger: logger}
}

// Convert decodes req.Data, scales it to req.Scale percent and encodes it as
// WebP at req.Quality.
func (c *WebPConverter) Convert(req Request) (*Result, error) {
	src, format, err := image.Decode(bytes.NewReader(req.Data))
	if err != nil {
		return nil, newDecodeError(req.Name, err)
	}

	if format == "jpeg" {
		src = applyOrientation(src, readOrientation(req.Data))
	}

	bounds := src.Bounds()
	width, height := TargetSize(bounds.Dx(), bounds.Dy(), req.Scale)
	if width <= 0 || height <= 0 {
		return nil, newEncodeError(req.Name, errEmptySurface)
	}

	var surface *image.NRGBA
	if width == bounds.Dx() && height == bounds.Dy() {
		surface = imaging.Clone(src)
	} else {
		surface = imaging.Resize(src, width, height, imaging.CatmullRom)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, surface, webp.Options{Quality: req.Quality}); err != nil {
		return nil, newEncodeError(req.Name, err)
	}
	if buf.Len() == 0 {
		return nil, newEncodeError(req.Name, errors.New("encoder produced no data"))
	}

	c.logger.Debug("Image converted",
		"file", req.Name,
		"source_width", bounds.Dx(),
		"source_height", bounds.Dy(),
		"width", width,
		"height", height,
		"quality", req.Quality,
		"bytes", buf.Len())

	return &Result{
		Data:         buf.Bytes(),
		Width:        width,
		Height:       height,
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
	}, nil
}

// TargetSize scales width and height by scale percent, truncating to whole
// pixels.
func TargetSize(width, height, scale int) (int, int) {
	factor := float64(scale) / 100
	return int(float64(width) * factor), int(float64(height) * factor)
}

// Probe reads the upright pixel dimensions of data without decoding it
// fully.
func Probe(data []byte) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", err
	}
	if format == "jpeg" && swapsAxes(readOrientation(data)) {
		return cfg.Height, cfg.Width, format, nil
	}
	return cfg.Width, cfg.Height, format, nil
}
