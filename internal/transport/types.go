package transport

// Transport layer types for Wails API

// FileUpload is a file handed over by the frontend (file input or web drop).
type FileUpload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data []byte `json:"data"`
}

type ImportResult struct {
	Accepted int `json:"accepted"`
	Skipped  int `json:"skipped"`
}

// ImageView is one row of the image list as the frontend renders it.
type ImageView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	StatusLabel     string `json:"status_label"`
	URL             string `json:"url"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	OriginalBytes   int64  `json:"original_bytes"`
	OriginalSize    string `json:"original_size"`
	ConvertedWidth  int    `json:"converted_width,omitempty"`
	ConvertedHeight int    `json:"converted_height,omitempty"`
	ConvertedBytes  int64  `json:"converted_bytes,omitempty"`
	ConvertedSize   string `json:"converted_size,omitempty"`
	SizeDelta       string `json:"size_delta,omitempty"`
	Downloadable    bool   `json:"downloadable"`
}

// SessionView is the payload of session:updated.
type SessionView struct {
	Images       []ImageView `json:"images"`
	Converting   bool        `json:"converting"`
	HasPending   bool        `json:"has_pending"`
	HasConverted bool        `json:"has_converted"`
}

type SettingsView struct {
	Quality int `json:"quality"`
	Scale   int `json:"scale"`
}

type ConversionResult struct {
	Converted      int    `json:"converted"`
	Failed         int    `json:"failed"`
	OriginalBytes  int64  `json:"original_bytes"`
	ConvertedBytes int64  `json:"converted_bytes"`
	OriginalSize   string `json:"original_size"`
	ConvertedSize  string `json:"converted_size"`
	DurationMs     int64  `json:"duration_ms"`
}

// ExportResult reports where an export was written. Saved is false when the
// user cancelled the save dialog or there was nothing to export.
type ExportResult struct {
	Saved    bool   `json:"saved"`
	Path     string `json:"path,omitempty"`
	Filename string `json:"filename"`
	Items    int    `json:"items"`
}

type AppStats struct {
	TotalFilesConverted   int64 `json:"total_files_converted"`
	TotalDataSaved        int64 `json:"total_data_saved"`
	SessionFilesConverted int   `json:"session_files_converted"`
	SessionDataSaved      int64 `json:"session_data_saved"`
}

// Dialog interface for system dialogs
type DialogHandler interface {
	OpenFileDialog() ([]string, error)
	ShowSaveDialog(filename, directory string) (string, error)
}

// EventEmitter sends events to the frontend.
type EventEmitter interface {
	Emit(event string, data ...any)
}
