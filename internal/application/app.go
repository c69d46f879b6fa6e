package application

import (
	"context"
	"net/http"
	"os"

	"webpconv/internal/config"
	"webpconv/internal/container"
	"webpconv/internal/database"
	"webpconv/internal/preview"
	"webpconv/internal/transport"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"gorm.io/gorm"
)

type App struct {
	ctx       context.Context
	config    *config.Config
	db        *gorm.DB
	previews  *preview.Store
	container *container.Container
	wailsApp  *transport.WailsApp
	emitter   transport.EventEmitter
}

// NewApp loads the configuration and prepares the display reference store.
// Everything else is wired in OnStartup.
func NewApp() *App {
	cfg, path, exists, err := config.Load("")
	if err != nil {
		defaults := config.Default()
		cfg = &defaults
		cfg.Logger = config.NewLogger(cfg.Logging.Level, os.Stderr)
		cfg.Logger.Error("Failed to load configuration, using defaults", "path", path, "error", err)
	} else {
		cfg.Logger.Debug("Configuration loaded", "path", path, "exists", exists)
	}

	return &App{
		config:   cfg,
		previews: preview.NewStore(cfg.Logger),
	}
}

// AssetHandler serves display references to the frontend.
func (a *App) AssetHandler() http.Handler {
	return a.previews
}

func (a *App) OnStartup(ctx context.Context) {
	a.startup(ctx, transport.NewDialogsHandler(ctx), transport.NewEventEmitter(ctx))

	// Native drops carry file paths
	wailsruntime.OnFileDrop(ctx, func(x, y int, paths []string) {
		a.config.Logger.Debug("Files dropped", "count", len(paths), "x", x, "y", y)
		a.importDropped(paths)
	})
}

func (a *App) startup(ctx context.Context, dialogs transport.DialogHandler, emitter transport.EventEmitter) {
	a.ctx = ctx
	a.emitter = emitter
	cfg := a.config

	if err := cfg.EnsureDirectories(); err != nil {
		cfg.Logger.Error("Failed to create app directories", "error", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		cfg.Logger.Error("Failed to initialize database, preferences will not persist",
			"error", NewStartupError("database", err))
		db, err = database.Initialize(fallbackDatabasePath)
		if err != nil {
			cfg.Logger.Error("Failed to initialize in-memory database", "error", err)
			return
		}
	}
	a.db = db

	// Initialize dependency container
	a.container = container.New(cfg, db, a.previews)
	manager := a.container.GetSession()

	// Initialize transport layer
	a.wailsApp = transport.NewWailsApp(
		manager,
		a.container.GetPreferencesRepository(),
		a.container.GetStatisticsService(),
		dialogs,
		cfg.Logger,
	)

	manager.SetListener(NewStatsManager(emitter, a.container.GetStatisticsService(), manager, cfg.Logger))

	cfg.Logger.Info("Wails app initialized successfully")
	cfg.Logger.Info("Application configuration",
		"app_data_dir", cfg.AppDataDir,
		"database_path", cfg.DatabasePath,
		"workers", cfg.Conversion.Workers)
}

// OnShutdown releases every display reference and closes the database.
func (a *App) OnShutdown(ctx context.Context) {
	if a.container != nil {
		a.container.GetSession().Clear()
	}
	if err := database.Close(a.db); err != nil {
		a.config.Logger.Warn("Failed to close database", "error", err)
	}
}

func (a *App) importDropped(paths []string) {
	if a.wailsApp == nil {
		return
	}
	result := a.wailsApp.ImportPaths(paths)
	a.emitter.Emit(EventImportFinished, result)
}

func (a *App) ImportFiles(files []transport.FileUpload) (transport.ImportResult, error) {
	if a.wailsApp == nil {
		return transport.ImportResult{}, ErrNotReady
	}
	return a.wailsApp.ImportFiles(files), nil
}

func (a *App) OpenFileDialog() (transport.ImportResult, error) {
	if a.wailsApp == nil {
		return transport.ImportResult{}, ErrNotReady
	}
	return a.wailsApp.OpenFileDialog()
}

func (a *App) ConvertAll() (transport.ConversionResult, error) {
	if a.wailsApp == nil {
		return transport.ConversionResult{}, ErrNotReady
	}
	return a.wailsApp.ConvertAll()
}

func (a *App) DownloadImage(id string) (transport.ExportResult, error) {
	if a.wailsApp == nil {
		return transport.ExportResult{}, ErrNotReady
	}
	return a.wailsApp.DownloadImage(id)
}

func (a *App) DownloadAll() (transport.ExportResult, error) {
	if a.wailsApp == nil {
		return transport.ExportResult{}, ErrNotReady
	}
	return a.wailsApp.DownloadAll()
}

func (a *App) RemoveImage(id string) error {
	if a.wailsApp == nil {
		return ErrNotReady
	}
	return a.wailsApp.RemoveImage(id)
}

func (a *App) ClearAll() {
	if a.wailsApp == nil {
		return
	}
	a.wailsApp.ClearAll()
}

func (a *App) GetImages() []transport.ImageView {
	if a.wailsApp == nil {
		return []transport.ImageView{}
	}
	return a.wailsApp.GetImages()
}

func (a *App) GetSession() transport.SessionView {
	if a.wailsApp == nil {
		return transport.SessionView{Images: []transport.ImageView{}}
	}
	return a.wailsApp.GetSession()
}

func (a *App) GetSettings() transport.SettingsView {
	if a.wailsApp == nil {
		return transport.SettingsView{
			Quality: a.config.Conversion.DefaultQuality,
			Scale:   a.config.Conversion.DefaultScale,
		}
	}
	return a.wailsApp.GetSettings()
}

func (a *App) UpdateSettings(quality, scale int) (transport.SettingsView, error) {
	if a.wailsApp == nil {
		return transport.SettingsView{}, ErrNotReady
	}
	return a.wailsApp.UpdateSettings(quality, scale)
}

func (a *App) GetStats() *transport.AppStats {
	if a.wailsApp == nil {
		return &transport.AppStats{}
	}
	return a.wailsApp.GetStats()
}

func (a *App) GetAppStatus() map[string]any {
	if a.wailsApp == nil {
		return map[string]any{"status": "starting"}
	}
	return a.wailsApp.GetAppStatus()
}
