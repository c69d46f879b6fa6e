package common

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	kilobyte = 1024
	megabyte = 1024 * 1024
)

// GenerateUUID generates a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// FormatSize renders a byte count the way the converter list shows it:
// bytes below 1 KB, kilobytes with one decimal below 1 MB, megabytes with two.
func FormatSize(bytes int64) string {
	switch {
	case bytes < kilobyte:
		return fmt.Sprintf("%d B", bytes)
	case bytes < megabyte:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kilobyte)
	default:
		return fmt.Sprintf("%.2f MB", float64(bytes)/megabyte)
	}
}

// SizeChangePercent returns round(100 * (1 - converted/original)), rounding
// halves up. Positive values are reductions.
func SizeChangePercent(originalSize, convertedSize int64) int {
	if originalSize <= 0 {
		return 0
	}
	ratio := 1 - float64(convertedSize)/float64(originalSize)
	return int(math.Floor(ratio*100 + 0.5))
}

// SizeDelta formats the size change of a converted file, "-60%" for a
// reduction and "+150%" for growth.
func SizeDelta(originalSize, convertedSize int64) string {
	percent := SizeChangePercent(originalSize, convertedSize)
	if percent < 0 {
		percent = -percent
	}
	sign := "+"
	if convertedSize < originalSize {
		sign = "-"
	}
	return fmt.Sprintf("%s%d%%", sign, percent)
}

// ClampInt limits value to the inclusive range [lo, hi].
func ClampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// WriteFile writes data to dst, creating parent directories as needed.
func WriteFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), DefaultFilePermissions); err != nil {
		return err
	}
	return os.WriteFile(dst, data, DefaultFileMode)
}
