package container

import (
	"log/slog"

	"webpconv/internal/concurrency"
	"webpconv/internal/config"
	"webpconv/internal/conversion"
	preferencesDomain "webpconv/internal/domain/preferences"
	statisticsDomain "webpconv/internal/domain/statistics"
	"webpconv/internal/preview"
	"webpconv/internal/services"
	"webpconv/internal/session"

	"gorm.io/gorm"
)

// Container holds all dependencies for the application
type Container struct {
	config *config.Config
	db     *gorm.DB
	logger *slog.Logger

	// Services
	previews          *preview.Store
	session           *session.Manager
	preferencesRepo   preferencesDomain.Repository
	statisticsService statisticsDomain.Service
}

// New creates a new dependency injection container. Display references are
// registered in previews, which the caller serves to the frontend.
func New(cfg *config.Config, db *gorm.DB, previews *preview.Store) *Container {
	c := &Container{
		config:   cfg,
		db:       db,
		logger:   cfg.Logger,
		previews: previews,
	}

	c.initServices()
	return c
}

// initServices initializes all services with their dependencies
func (c *Container) initServices() {
	pool := concurrency.NewWorkerPool(c.config.Conversion.Workers)

	prefsService := services.NewPreferencesService(c.db).
		WithDefaults(c.config.Conversion.DefaultQuality, c.config.Conversion.DefaultScale)
	c.preferencesRepo = &PreferencesRepositoryAdapter{service: prefsService}
	c.statisticsService = newStatisticsService(services.NewStatsService(c.db), c.config, pool.MaxWorkers())

	c.session = session.NewManager(
		conversion.NewWebPConverter(c.logger),
		c.previews,
		pool,
		c.logger,
	)
	c.session.SetSettings(c.initialSettings())
}

// initialSettings uses the preferences, which report the config defaults
// until the user saves settings. The config defaults also apply when the
// preferences cannot be read.
func (c *Container) initialSettings() session.Settings {
	settings := session.Settings{
		Quality: c.config.Conversion.DefaultQuality,
		Scale:   c.config.Conversion.DefaultScale,
	}

	prefs, err := c.preferencesRepo.GetPreferences()
	if err != nil {
		c.logger.Warn("Failed to load preferences, using configured defaults", "error", err)
		return settings
	}

	settings.Quality = prefs.DefaultQuality
	settings.Scale = prefs.DefaultScale
	return settings
}

// GetSession returns the conversion session
func (c *Container) GetSession() *session.Manager {
	return c.session
}

// GetStatisticsService returns the statistics service
func (c *Container) GetStatisticsService() statisticsDomain.Service {
	return c.statisticsService
}

// GetPreferencesRepository returns the preferences repository
func (c *Container) GetPreferencesRepository() preferencesDomain.Repository {
	return c.preferencesRepo
}

// GetConfig returns the application configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}
