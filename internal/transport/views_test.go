package transport

import (
	"testing"
	"time"

	"webpconv/internal/preview"
	"webpconv/internal/session"
)

func TestNewImageView(t *testing.T) {
	store := preview.NewStore(nil)
	original := store.Create([]byte("orig"), "image/png")
	result := store.Create([]byte("webp"), "image/webp")

	tests := []struct {
		name     string
		item     session.Item
		label    string
		url      string
		delta    string
		download bool
	}{
		{
			name:  "pending",
			item:  session.Item{Status: session.StatusPending, Preview: original, OriginalSize: 2048},
			label: "Pending",
			url:   original.URL(),
		},
		{
			name:  "converting",
			item:  session.Item{Status: session.StatusConverting, Preview: original, OriginalSize: 2048},
			label: "Converting...",
			url:   original.URL(),
		},
		{
			name: "done",
			item: session.Item{
				Status: session.StatusDone, Preview: original, Result: result,
				OriginalSize: 1000, ConvertedSize: 400,
			},
			label:    "Done",
			url:      result.URL(),
			delta:    "-60%",
			download: true,
		},
		{
			name:  "error",
			item:  session.Item{Status: session.StatusError, Preview: original, OriginalSize: 2048},
			label: "Error",
			url:   original.URL(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewImageView(tt.item)
			if view.StatusLabel != tt.label {
				t.Errorf("Expected label %q, got %q", tt.label, view.StatusLabel)
			}
			if view.URL != tt.url {
				t.Errorf("Expected URL %q, got %q", tt.url, view.URL)
			}
			if view.SizeDelta != tt.delta {
				t.Errorf("Expected delta %q, got %q", tt.delta, view.SizeDelta)
			}
			if view.Downloadable != tt.download {
				t.Errorf("Expected downloadable %v, got %v", tt.download, view.Downloadable)
			}
		})
	}
}

func TestNewImageView_FormatsSizes(t *testing.T) {
	view := NewImageView(session.Item{Status: session.StatusDone, OriginalSize: 5_242_880, ConvertedSize: 2048})

	if view.OriginalSize != "5.00 MB" {
		t.Errorf("Expected 5.00 MB, got %s", view.OriginalSize)
	}
	if view.ConvertedSize != "2.0 KB" {
		t.Errorf("Expected 2.0 KB, got %s", view.ConvertedSize)
	}
}

func TestNewConversionResult(t *testing.T) {
	result := NewConversionResult(session.BatchSummary{
		Converted:      2,
		Failed:         1,
		OriginalBytes:  2048,
		ConvertedBytes: 500,
		Duration:       1500 * time.Millisecond,
	})

	if result.Converted != 2 || result.Failed != 1 {
		t.Errorf("Unexpected counts %+v", result)
	}
	if result.OriginalSize != "2.0 KB" || result.ConvertedSize != "500 B" {
		t.Errorf("Unexpected sizes %+v", result)
	}
	if result.DurationMs != 1500 {
		t.Errorf("Expected 1500ms, got %d", result.DurationMs)
	}
}
