package transport

import (
	"webpconv/internal/common"
	"webpconv/internal/session"
)

// NewImageView maps a session item to its display row.
func NewImageView(it session.Item) ImageView {
	view := ImageView{
		ID:            it.ID,
		Name:          it.Name,
		Status:        it.Status.String(),
		StatusLabel:   it.Status.Label(),
		URL:           it.DisplayURL(),
		Width:         it.Width,
		Height:        it.Height,
		OriginalBytes: it.OriginalSize,
		OriginalSize:  common.FormatSize(it.OriginalSize),
	}

	switch it.Status {
	case session.StatusDone:
		view.ConvertedWidth = it.ConvertedWidth
		view.ConvertedHeight = it.ConvertedHeight
		view.ConvertedBytes = it.ConvertedSize
		view.ConvertedSize = common.FormatSize(it.ConvertedSize)
		view.SizeDelta, _ = it.SizeDelta()
		view.Downloadable = true
	case session.StatusPending, session.StatusConverting, session.StatusError:
	}

	return view
}

// NewImageViews maps every item in order.
func NewImageViews(items []session.Item) []ImageView {
	views := make([]ImageView, len(items))
	for i, it := range items {
		views[i] = NewImageView(it)
	}
	return views
}

// NewSessionView captures the whole session for the frontend.
func NewSessionView(m *session.Manager) SessionView {
	return SessionView{
		Images:       NewImageViews(m.Items()),
		Converting:   m.Converting(),
		HasPending:   m.HasPending(),
		HasConverted: m.HasConverted(),
	}
}

// NewConversionResult maps a batch summary.
func NewConversionResult(summary session.BatchSummary) ConversionResult {
	return ConversionResult{
		Converted:      summary.Converted,
		Failed:         summary.Failed,
		OriginalBytes:  summary.OriginalBytes,
		ConvertedBytes: summary.ConvertedBytes,
		OriginalSize:   common.FormatSize(summary.OriginalBytes),
		ConvertedSize:  common.FormatSize(summary.ConvertedBytes),
		DurationMs:     summary.Duration.Milliseconds(),
	}
}

// NewUploads converts frontend uploads to session uploads.
func NewUploads(files []FileUpload) []session.Upload {
	uploads := make([]session.Upload, len(files))
	for i, f := range files {
		uploads[i] = session.Upload{Name: f.Name, ContentType: f.Type, Data: f.Data}
	}
	return uploads
}
