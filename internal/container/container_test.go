package container

import (
	"io"
	"testing"

	"webpconv/internal/config"
	"webpconv/internal/database"
	"webpconv/internal/preview"
)

func setupContainer(t *testing.T) *Container {
	t.Helper()
	return setupContainerWith(t, func(*config.Config) {})
}

func setupContainerWith(t *testing.T, configure func(*config.Config)) *Container {
	t.Helper()

	db, err := database.Initialize(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	cfg := config.Default()
	cfg.Logger = config.NewLogger("error", io.Discard)
	cfg.Conversion.Workers = 2
	configure(&cfg)

	return New(&cfg, db, preview.NewStore(cfg.Logger))
}

func TestNew_WiresServices(t *testing.T) {
	c := setupContainer(t)

	if c.GetSession() == nil {
		t.Fatal("Expected session manager, got nil")
	}
	if c.GetPreferencesRepository() == nil {
		t.Fatal("Expected preferences repository, got nil")
	}
	if c.GetStatisticsService() == nil {
		t.Fatal("Expected statistics service, got nil")
	}
	if c.GetConfig() == nil {
		t.Fatal("Expected config, got nil")
	}

	settings := c.GetSession().Settings()
	if settings.Quality != 100 || settings.Scale != 100 {
		t.Errorf("Expected default settings, got %+v", settings)
	}
}

func TestInitialSettings_UsesStoredPreferences(t *testing.T) {
	c := setupContainer(t)

	err := c.GetPreferencesRepository().UpdatePreferences(map[string]any{
		"default_quality": float64(70),
		"default_scale":   float64(40),
	})
	if err != nil {
		t.Fatalf("Failed to update preferences: %v", err)
	}

	settings := c.initialSettings()
	if settings.Quality != 70 || settings.Scale != 40 {
		t.Errorf("Expected stored settings, got %+v", settings)
	}
}

func TestInitialSettings_UsesConfigOnFreshDatabase(t *testing.T) {
	c := setupContainerWith(t, func(cfg *config.Config) {
		cfg.Conversion.DefaultQuality = 80
		cfg.Conversion.DefaultScale = 40
	})

	settings := c.GetSession().Settings()
	if settings.Quality != 80 || settings.Scale != 40 {
		t.Errorf("Expected configured settings 80/40, got %+v", settings)
	}

	prefs, err := c.GetPreferencesRepository().GetPreferences()
	if err != nil {
		t.Fatalf("Failed to read preferences: %v", err)
	}
	if prefs.DefaultQuality != 80 || prefs.DefaultScale != 40 {
		t.Errorf("Expected preferences to report config defaults, got %+v", prefs)
	}
}

func TestStatisticsService_UpdateStats(t *testing.T) {
	c := setupContainer(t)
	stats := c.GetStatisticsService()

	stats.UpdateStats(2, 5000, 2000)
	got := stats.UpdateStats(1, 1000, 1500)

	if got.SessionFilesConverted != 3 || got.TotalFilesConverted != 3 {
		t.Errorf("Expected 3 files in session and total, got %+v", got)
	}
	if got.SessionDataSaved != 2500 || got.TotalDataSaved != 2500 {
		t.Errorf("Expected 2500 bytes saved, got %+v", got)
	}

	status := stats.GetAppStatus()
	if status["workers"] != 2 {
		t.Errorf("Expected 2 workers in status, got %v", status["workers"])
	}
}
