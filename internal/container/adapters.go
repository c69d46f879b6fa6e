package container

import (
	"log/slog"
	"runtime"
	"sync"

	"webpconv/internal/config"
	preferencesDomain "webpconv/internal/domain/preferences"
	statisticsDomain "webpconv/internal/domain/statistics"
	"webpconv/internal/services"
)

// PreferencesRepositoryAdapter adapts services.PreferencesService to preferencesDomain.Repository
type PreferencesRepositoryAdapter struct {
	service *services.PreferencesService
}

func (a *PreferencesRepositoryAdapter) GetPreferences() (*preferencesDomain.UserPreferencesData, error) {
	prefs, err := a.service.GetPreferences()
	if err != nil {
		return nil, err
	}

	// Convert service model to domain model
	return &preferencesDomain.UserPreferencesData{
		DefaultQuality: prefs.DefaultQuality,
		DefaultScale:   prefs.DefaultScale,
		LastSaveFolder: prefs.LastSaveFolder,
	}, nil
}

func (a *PreferencesRepositoryAdapter) UpdatePreferences(data map[string]any) error {
	return a.service.UpdatePreferences(data)
}

// StatisticsServiceImpl implements the statistics domain service. Session
// counters live in memory; lifetime counters are persisted.
type StatisticsServiceImpl struct {
	mu      sync.Mutex
	store   *services.StatsService
	config  *config.Config
	workers int
	logger  *slog.Logger
	stats   statisticsDomain.AppStats
}

func newStatisticsService(store *services.StatsService, cfg *config.Config, workers int) *StatisticsServiceImpl {
	s := &StatisticsServiceImpl{
		store:   store,
		config:  cfg,
		workers: workers,
		logger:  cfg.Logger,
	}

	if lifetime, err := store.GetStats(); err != nil {
		s.logger.Warn("Failed to load lifetime statistics", "error", err)
	} else {
		s.stats.TotalFilesConverted = lifetime.FilesConverted
		s.stats.TotalDataSaved = lifetime.BytesSaved()
	}

	return s
}

func (s *StatisticsServiceImpl) UpdateStats(filesConverted int, originalBytes, convertedBytes int64) *statisticsDomain.AppStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := originalBytes - convertedBytes
	s.stats.SessionFilesConverted += filesConverted
	s.stats.SessionDataSaved += saved

	lifetime, err := s.store.RecordBatch(filesConverted, originalBytes, convertedBytes)
	if err != nil {
		s.logger.Error("Failed to persist statistics", "error", err)
		s.stats.TotalFilesConverted += int64(filesConverted)
		s.stats.TotalDataSaved += saved
	} else {
		s.stats.TotalFilesConverted = lifetime.FilesConverted
		s.stats.TotalDataSaved = lifetime.BytesSaved()
	}

	stats := s.stats
	return &stats
}

func (s *StatisticsServiceImpl) GetStats() *statisticsDomain.AppStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.stats
	return &stats
}

func (s *StatisticsServiceImpl) GetAppStatus() map[string]any {
	return map[string]any{
		"status":        "running",
		"framework":     "Wails",
		"app_name":      "WebP Converter",
		"encoder":       "libwebp (wasm)",
		"workers":       s.workers,
		"cpus":          runtime.NumCPU(),
		"app_data_dir":  s.config.AppDataDir,
		"database_path": s.config.DatabasePath,
	}
}
