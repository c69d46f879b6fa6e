package common

const (
	// Conversion constants
	DefaultQuality      = 100
	DefaultScale        = 100
	MinQuality          = 1
	MaxQuality          = 100
	MinScale            = 10
	MaxScale            = 100
	MaxConcurrencyLimit = 8

	// Export constants
	WebPExtension   = ".webp"
	WebPContentType = "image/webp"
	ArchiveFilename = "converted-images.zip"

	// File operation constants
	DefaultFilePermissions = 0755
	DefaultFileMode        = 0644
)
