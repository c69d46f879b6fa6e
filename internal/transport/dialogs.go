package transport

import (
	"context"
	"path/filepath"
	"strings"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

var imageFilters = []wailsruntime.FileFilter{
	{
		DisplayName: "Images (*.jpg, *.jpeg, *.png, *.gif, *.webp, *.bmp, *.tif, *.tiff)",
		Pattern:     "*.jpg;*.jpeg;*.png;*.gif;*.webp;*.bmp;*.tif;*.tiff",
	},
}

type dialogsHandler struct {
	ctx context.Context
}

func NewDialogsHandler(ctx context.Context) DialogHandler {
	return &dialogsHandler{
		ctx: ctx,
	}
}

func (h *dialogsHandler) OpenFileDialog() ([]string, error) {
	selection, err := wailsruntime.OpenMultipleFilesDialog(h.ctx, wailsruntime.OpenDialogOptions{
		Title:   "Select images to convert",
		Filters: imageFilters,
	})

	if err != nil {
		return nil, err
	}

	return selection, nil
}

func (h *dialogsHandler) ShowSaveDialog(filename, directory string) (string, error) {
	selection, err := wailsruntime.SaveFileDialog(h.ctx, wailsruntime.SaveDialogOptions{
		Title:            "Save converted images",
		DefaultDirectory: directory,
		DefaultFilename:  filename,
		Filters:          []wailsruntime.FileFilter{saveFilter(filename)},
	})

	if err != nil {
		return "", err
	}

	return selection, nil
}

// saveFilter picks the file type filter matching the export name.
func saveFilter(filename string) wailsruntime.FileFilter {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip":
		return wailsruntime.FileFilter{DisplayName: "Zip Archives (*.zip)", Pattern: "*.zip"}
	default:
		return wailsruntime.FileFilter{DisplayName: "WebP Images (*.webp)", Pattern: "*.webp"}
	}
}

type wailsEmitter struct {
	ctx context.Context
}

// NewEventEmitter emits events through the Wails runtime bound to ctx.
func NewEventEmitter(ctx context.Context) EventEmitter {
	return &wailsEmitter{ctx: ctx}
}

func (e *wailsEmitter) Emit(event string, data ...any) {
	wailsruntime.EventsEmit(e.ctx, event, data...)
}
