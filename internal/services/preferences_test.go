package services

import (
	"testing"

	"webpconv/internal/database"
	"webpconv/internal/models"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Initialize(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	return db
}

func TestNewPreferencesService(t *testing.T) {
	db := setupTestDB(t)
	service := NewPreferencesService(db)

	if service == nil {
		t.Fatal("Expected PreferencesService instance, got nil")
	}

	if service.db != db {
		t.Error("Expected database to be set correctly")
	}
}

func TestGetPreferences_CreatesDefault(t *testing.T) {
	db := setupTestDB(t)
	service := NewPreferencesService(db)

	prefs, err := service.GetPreferences()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if prefs == nil {
		t.Fatal("Expected preferences, got nil")
	}

	// Should have default values
	if prefs.DefaultQuality != 100 {
		t.Errorf("Expected default quality 100, got %d", prefs.DefaultQuality)
	}

	if prefs.DefaultScale != 100 {
		t.Errorf("Expected default scale 100, got %d", prefs.DefaultScale)
	}

	if prefs.LastSaveFolder != "" {
		t.Errorf("Expected empty save folder, got %s", prefs.LastSaveFolder)
	}
}

func TestUpdatePreferences(t *testing.T) {
	db := setupTestDB(t)
	service := NewPreferencesService(db)

	// First get initial preferences to create the record
	_, err := service.GetPreferences()
	if err != nil {
		t.Fatalf("Failed to initialize preferences: %v", err)
	}

	// Update some preferences
	updateData := map[string]any{
		"default_quality":  float64(80),
		"default_scale":    50,
		"last_save_folder": "/tmp/exports",
	}

	err = service.UpdatePreferences(updateData)
	if err != nil {
		t.Fatalf("Expected no error updating preferences, got %v", err)
	}

	// Verify the updates
	prefs, err := service.GetPreferences()
	if err != nil {
		t.Fatalf("Failed to get updated preferences: %v", err)
	}

	if prefs.DefaultQuality != 80 {
		t.Errorf("Expected quality to be updated to 80, got %d", prefs.DefaultQuality)
	}

	if prefs.DefaultScale != 50 {
		t.Errorf("Expected scale to be updated to 50, got %d", prefs.DefaultScale)
	}

	if prefs.LastSaveFolder != "/tmp/exports" {
		t.Errorf("Expected save folder /tmp/exports, got %s", prefs.LastSaveFolder)
	}
}

func TestUpdatePreferences_ClampsAndIgnoresBadTypes(t *testing.T) {
	db := setupTestDB(t)
	service := NewPreferencesService(db)

	err := service.UpdatePreferences(map[string]any{
		"default_quality":  float64(500),
		"default_scale":    float64(1),
		"last_save_folder": 42,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	prefs, err := service.GetPreferences()
	if err != nil {
		t.Fatalf("Failed to get preferences: %v", err)
	}

	if prefs.DefaultQuality != 100 {
		t.Errorf("Expected quality clamped to 100, got %d", prefs.DefaultQuality)
	}
	if prefs.DefaultScale != 10 {
		t.Errorf("Expected scale clamped to 10, got %d", prefs.DefaultScale)
	}
	if prefs.LastSaveFolder != "" {
		t.Errorf("Expected save folder to stay empty, got %s", prefs.LastSaveFolder)
	}
}

func TestGetPreferences_CorruptJSONFallsBack(t *testing.T) {
	db := setupTestDB(t)
	service := NewPreferencesService(db)

	row := models.UserPreferences{ID: 1, PreferencesJSON: "{not json"}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("Failed to seed preferences: %v", err)
	}

	prefs, err := service.GetPreferences()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if *prefs != models.DefaultPreferences() {
		t.Errorf("Expected defaults, got %+v", prefs)
	}
}

func TestGetPreferences_ConfiguredDefaults(t *testing.T) {
	db := setupTestDB(t)
	service := NewPreferencesService(db).WithDefaults(80, 60)

	prefs, err := service.GetPreferences()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prefs.DefaultQuality != 80 || prefs.DefaultScale != 60 {
		t.Errorf("Expected configured defaults 80/60, got %d/%d", prefs.DefaultQuality, prefs.DefaultScale)
	}

	// A folder update alone keeps following the configured defaults
	if err := service.UpdatePreferences(map[string]any{"last_save_folder": "/tmp/out"}); err != nil {
		t.Fatalf("Failed to update preferences: %v", err)
	}
	reconfigured := NewPreferencesService(db).WithDefaults(70, 50)
	prefs, err = reconfigured.GetPreferences()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prefs.DefaultQuality != 70 || prefs.DefaultScale != 50 {
		t.Errorf("Expected new configured defaults 70/50, got %d/%d", prefs.DefaultQuality, prefs.DefaultScale)
	}

	// Saving quality fixes both values, scale keeps the configured default
	if err := reconfigured.UpdatePreferences(map[string]any{"default_quality": 90}); err != nil {
		t.Fatalf("Failed to update preferences: %v", err)
	}
	prefs, err = NewPreferencesService(db).WithDefaults(10, 10).GetPreferences()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prefs.DefaultQuality != 90 || prefs.DefaultScale != 50 {
		t.Errorf("Expected saved settings 90/50, got %d/%d", prefs.DefaultQuality, prefs.DefaultScale)
	}
}
