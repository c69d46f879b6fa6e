package models

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"webpconv/internal/common"
)

// UserPreferences represents user preferences in the database
type UserPreferences struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PreferencesJSON string    `gorm:"type:text" json:"preferences_json"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserPreferencesData represents the structured preferences data
type UserPreferencesData struct {
	DefaultQuality int    `json:"default_quality"`
	DefaultScale   int    `json:"default_scale"`
	LastSaveFolder string `json:"last_save_folder"`
	// SettingsSaved is set once the user has stored quality or scale.
	// Until then the configured defaults apply.
	SettingsSaved  bool   `json:"settings_saved"`
}

// DefaultPreferences returns default preference values
func DefaultPreferences() UserPreferencesData {
	return UserPreferencesData{
		DefaultQuality: common.DefaultQuality,
		DefaultScale:   common.DefaultScale,
		LastSaveFolder: "",
	}
}

// GetPreferences parses and returns the preferences data
func (up *UserPreferences) GetPreferences() UserPreferencesData {
	if up.PreferencesJSON == "" {
		return DefaultPreferences()
	}

	prefs := DefaultPreferences()
	if err := json.Unmarshal([]byte(up.PreferencesJSON), &prefs); err != nil {
		return DefaultPreferences()
	}

	return prefs
}

// SetPreferences sets the preferences data
func (up *UserPreferences) SetPreferences(prefs UserPreferencesData) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	up.PreferencesJSON = string(data)
	return nil
}

// GetOrCreatePreferences gets or creates the global preferences instance
func GetOrCreatePreferences(db *gorm.DB) (*UserPreferences, error) {
	var prefs UserPreferences

	// Try to get existing preferences with ID = 1
	result := db.First(&prefs, 1)

	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}

		prefs = UserPreferences{ID: 1}
		if err := prefs.SetPreferences(DefaultPreferences()); err != nil {
			return nil, err
		}
		if err := db.Create(&prefs).Error; err != nil {
			return nil, err
		}
	}

	return &prefs, nil
}
