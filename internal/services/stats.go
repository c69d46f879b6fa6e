package services

import (
	"webpconv/internal/models"

	"gorm.io/gorm"
)

// StatsService persists lifetime conversion counters.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// GetStats returns the lifetime counters.
func (s *StatsService) GetStats() (*models.ConversionStats, error) {
	return models.GetOrCreateStats(s.db)
}

// RecordBatch adds the outcome of one batch to the lifetime counters and
// returns the updated totals.
func (s *StatsService) RecordBatch(files int, originalBytes, convertedBytes int64) (*models.ConversionStats, error) {
	var stats *models.ConversionStats

	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := models.GetOrCreateStats(tx)
		if err != nil {
			return err
		}

		current.FilesConverted += int64(files)
		current.OriginalBytes += originalBytes
		current.ConvertedBytes += convertedBytes

		if err := tx.Save(current).Error; err != nil {
			return err
		}
		stats = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
