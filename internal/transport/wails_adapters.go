package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"webpconv/internal/common"
	preferencesDomain "webpconv/internal/domain/preferences"
	statisticsDomain "webpconv/internal/domain/statistics"
	"webpconv/internal/session"
)

type WailsApp struct {
	session           *session.Manager
	preferencesRepo   preferencesDomain.Repository
	statisticsService statisticsDomain.Service
	dialogsHandler    DialogHandler
	logger            *slog.Logger
}

func NewWailsApp(
	manager *session.Manager,
	preferencesRepo preferencesDomain.Repository,
	statisticsService statisticsDomain.Service,
	dialogsHandler DialogHandler,
	logger *slog.Logger,
) *WailsApp {
	if logger == nil {
		logger = slog.Default()
	}
	return &WailsApp{
		session:           manager,
		preferencesRepo:   preferencesRepo,
		statisticsService: statisticsService,
		dialogsHandler:    dialogsHandler,
		logger:            logger,
	}
}

func (a *WailsApp) ImportFiles(files []FileUpload) ImportResult {
	summary := a.session.Import(NewUploads(files))
	return ImportResult{Accepted: summary.Accepted, Skipped: summary.Skipped}
}

func (a *WailsApp) ImportPaths(paths []string) ImportResult {
	if len(paths) == 0 {
		return ImportResult{}
	}
	summary := a.session.ImportPaths(paths)
	return ImportResult{Accepted: summary.Accepted, Skipped: summary.Skipped}
}

// OpenFileDialog lets the user pick images and imports them. A cancelled
// dialog imports nothing.
func (a *WailsApp) OpenFileDialog() (ImportResult, error) {
	paths, err := a.dialogsHandler.OpenFileDialog()
	if err != nil {
		return ImportResult{}, err
	}
	return a.ImportPaths(paths), nil
}

// ConvertAll converts every pending image. Calling it while a batch runs is
// a no-op.
func (a *WailsApp) ConvertAll() (ConversionResult, error) {
	summary, err := a.session.ConvertAll()
	if err != nil {
		if errors.Is(err, session.ErrBatchRunning) {
			a.logger.Debug("Conversion already running")
			return ConversionResult{}, nil
		}
		return ConversionResult{}, err
	}
	return NewConversionResult(summary), nil
}

func (a *WailsApp) DownloadImage(id string) (ExportResult, error) {
	export, err := a.session.Download(id)
	if err != nil {
		return ExportResult{}, err
	}
	return a.save(export)
}

// DownloadAll saves every converted image. With nothing converted it returns
// an unsaved result and no error.
func (a *WailsApp) DownloadAll() (ExportResult, error) {
	export, err := a.session.DownloadAll()
	if err != nil {
		if errors.Is(err, session.ErrNothingToExport) {
			return ExportResult{}, nil
		}
		return ExportResult{}, err
	}
	return a.save(export)
}

func (a *WailsApp) save(export *session.Export) (ExportResult, error) {
	result := ExportResult{Filename: export.Filename, Items: export.Items}

	path, err := a.dialogsHandler.ShowSaveDialog(export.Filename, a.lastSaveFolder())
	if err != nil {
		return result, err
	}
	if path == "" {
		a.logger.Debug("Save dialog cancelled", "file", export.Filename)
		return result, nil
	}

	if err := common.WriteFile(path, export.Data); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := a.preferencesRepo.UpdatePreferences(map[string]any{"last_save_folder": filepath.Dir(path)}); err != nil {
		a.logger.Warn("Failed to remember save folder", "error", err)
	}

	a.logger.Info("Export saved", "path", path, "items", export.Items, "size", common.FormatSize(int64(len(export.Data))))
	result.Saved = true
	result.Path = path
	return result, nil
}

func (a *WailsApp) lastSaveFolder() string {
	prefs, err := a.preferencesRepo.GetPreferences()
	if err != nil || prefs == nil {
		return ""
	}
	return prefs.LastSaveFolder
}

func (a *WailsApp) RemoveImage(id string) error {
	return a.session.Remove(id)
}

func (a *WailsApp) ClearAll() {
	a.session.Clear()
}

func (a *WailsApp) GetImages() []ImageView {
	return NewImageViews(a.session.Items())
}

func (a *WailsApp) GetSession() SessionView {
	return NewSessionView(a.session)
}

func (a *WailsApp) GetSettings() SettingsView {
	s := a.session.Settings()
	return SettingsView{Quality: s.Quality, Scale: s.Scale}
}

// UpdateSettings applies new settings to the session and stores them as the
// defaults for the next launch. Values are clamped into range.
func (a *WailsApp) UpdateSettings(quality, scale int) (SettingsView, error) {
	s := a.session.SetSettings(session.Settings{Quality: quality, Scale: scale})
	view := SettingsView{Quality: s.Quality, Scale: s.Scale}

	err := a.preferencesRepo.UpdatePreferences(map[string]any{
		"default_quality": s.Quality,
		"default_scale":   s.Scale,
	})
	if err != nil {
		return view, fmt.Errorf("failed to save settings: %w", err)
	}
	return view, nil
}

func (a *WailsApp) GetAppStatus() map[string]any {
	return a.statisticsService.GetAppStatus()
}

func (a *WailsApp) GetStats() *AppStats {
	return NewAppStats(a.statisticsService.GetStats())
}

// NewAppStats maps domain statistics.
func NewAppStats(stats *statisticsDomain.AppStats) *AppStats {
	if stats == nil {
		return &AppStats{}
	}
	return &AppStats{
		TotalFilesConverted:   stats.TotalFilesConverted,
		TotalDataSaved:        stats.TotalDataSaved,
		SessionFilesConverted: stats.SessionFilesConverted,
		SessionDataSaved:      stats.SessionDataSaved,
	}
}
