package preferences

type Repository interface {
	GetPreferences() (*UserPreferencesData, error)
	UpdatePreferences(data map[string]any) error
}

type UserPreferencesData struct {
	DefaultQuality int    `json:"default_quality"`
	DefaultScale   int    `json:"default_scale"`
	LastSaveFolder string `json:"last_save_folder"`
}
