package statistics

// AppStats represents application usage statistics
type AppStats struct {
	TotalFilesConverted   int64 `json:"total_files_converted"`
	TotalDataSaved        int64 `json:"total_data_saved"`
	SessionFilesConverted int   `json:"session_files_converted"`
	SessionDataSaved      int64 `json:"session_data_saved"`
}

// Service defines the interface for statistics operations
type Service interface {
	UpdateStats(filesConverted int, originalBytes, convertedBytes int64) *AppStats
	GetStats() *AppStats
	GetAppStatus() map[string]any
}
