package services

import (
	"webpconv/internal/common"
	"webpconv/internal/models"

	"gorm.io/gorm"
)

// PreferencesService handles user preferences operations
type PreferencesService struct {
	db       *gorm.DB
	defaults models.UserPreferencesData
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{db: db, defaults: models.DefaultPreferences()}
}

// WithDefaults sets the quality and scale reported until the user saves
// their own.
func (s *PreferencesService) WithDefaults(quality, scale int) *PreferencesService {
	s.defaults.DefaultQuality = common.ClampInt(quality, common.MinQuality, common.MaxQuality)
	s.defaults.DefaultScale = common.ClampInt(scale, common.MinScale, common.MaxScale)
	return s
}

func (s *PreferencesService) current(prefs *models.UserPreferences) models.UserPreferencesData {
	data := prefs.GetPreferences()
	if !data.SettingsSaved {
		data.DefaultQuality = s.defaults.DefaultQuality
		data.DefaultScale = s.defaults.DefaultScale
	}
	return data
}

// GetPreferences gets the current user preferences
func (s *PreferencesService) GetPreferences() (*models.UserPreferencesData, error) {
	prefs, err := models.GetOrCreatePreferences(s.db)
	if err != nil {
		return nil, err
	}

	prefsData := s.current(prefs)
	return &prefsData, nil
}

// UpdatePreferences updates user preferences. Numbers arrive as float64
// when the map was decoded from JSON; plain ints are accepted as well.
// Quality and scale are clamped into their valid ranges.
func (s *PreferencesService) UpdatePreferences(data map[string]any) error {
	prefs, err := models.GetOrCreatePreferences(s.db)
	if err != nil {
		return err
	}

	currentPrefs := s.current(prefs)

	// Update fields from request data
	if val, ok := intValue(data["default_quality"]); ok {
		currentPrefs.DefaultQuality = common.ClampInt(val, common.MinQuality, common.MaxQuality)
		currentPrefs.SettingsSaved = true
	}

	if val, ok := intValue(data["default_scale"]); ok {
		currentPrefs.DefaultScale = common.ClampInt(val, common.MinScale, common.MaxScale)
		currentPrefs.SettingsSaved = true
	}

	if val, ok := data["last_save_folder"]; ok {
		if folder, ok := val.(string); ok {
			currentPrefs.LastSaveFolder = folder
		}
	}

	// Save updated preferences
	if err := prefs.SetPreferences(currentPrefs); err != nil {
		return err
	}

	return s.db.Save(prefs).Error
}

func intValue(val any) (int, bool) {
	switch v := val.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
