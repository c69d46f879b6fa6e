package session

import (
	"webpconv/internal/archive"
	"webpconv/internal/common"
	"webpconv/internal/preview"
)

// Upload is one file offered for import.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// Item is one imported image and its conversion state. Converted, its size
// and Result are set if and only if Status is StatusDone.
type Item struct {
	ID           string
	Name         string
	ContentType  string
	Original     []byte
	OriginalSize int64
	Width        int
	Height       int
	Preview      preview.Handle

	Status Status

	Converted       []byte
	ConvertedSize   int64
	ConvertedWidth  int
	ConvertedHeight int
	Result          preview.Handle

	// Err holds the last conversion failure. It is logged, not displayed.
	Err error
}

// DisplayURL returns the reference the UI should render: the converted
// result when there is one, otherwise the original preview.
func (it Item) DisplayURL() string {
	if !it.Result.IsZero() {
		return it.Result.URL()
	}
	return it.Preview.URL()
}

// ExportName is the file name used when saving the converted image.
func (it Item) ExportName() string {
	return archive.WebPName(it.Name)
}

// SizeDelta reports the formatted size change for a converted item.
func (it Item) SizeDelta() (string, bool) {
	switch it.Status {
	case StatusDone:
		return common.SizeDelta(it.OriginalSize, it.ConvertedSize), true
	case StatusPending, StatusConverting, StatusError:
		return "", false
	}
	return "", false
}

// Settings is the shared conversion configuration read at batch start.
type Settings struct {
	Quality int `json:"quality"` // 1-100
	Scale   int `json:"scale"`   // 10-100, percent of source dimensions
}

// DefaultSettings converts at full quality and original size.
func DefaultSettings() Settings {
	return Settings{Quality: common.DefaultQuality, Scale: common.DefaultScale}
}

// Normalize clamps both values into their valid ranges.
func (s Settings) Normalize() Settings {
	return Settings{
		Quality: common.ClampInt(s.Quality, common.MinQuality, common.MaxQuality),
		Scale:   common.ClampInt(s.Scale, common.MinScale, common.MaxScale),
	}
}
