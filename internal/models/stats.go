package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ConversionStats holds lifetime counters. There is a single row with ID 1.
type ConversionStats struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FilesConverted int64     `json:"files_converted"`
	OriginalBytes  int64     `json:"original_bytes"`
	ConvertedBytes int64     `json:"converted_bytes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BytesSaved is the lifetime size reduction. It can be negative.
func (s *ConversionStats) BytesSaved() int64 {
	return s.OriginalBytes - s.ConvertedBytes
}

// GetOrCreateStats loads the counters row, creating it when missing.
func GetOrCreateStats(db *gorm.DB) (*ConversionStats, error) {
	var stats ConversionStats

	result := db.First(&stats, 1)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}

		stats = ConversionStats{ID: 1}
		if err := db.Create(&stats).Error; err != nil {
			return nil, err
		}
	}

	return &stats, nil
}

// All lists every model that must be migrated.
func All() []any {
	return []any{&UserPreferences{}, &ConversionStats{}}
}
