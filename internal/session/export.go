package session

import (
	"time"

	"webpconv/internal/archive"
	"webpconv/internal/common"
)

const zipContentType = "application/zip"

// Export is a file ready to be saved by the caller.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
	Items       int
}

// Download returns the converted bytes of one done item as <base>.webp.
func (m *Manager) Download(id string) (*Export, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	return exportItem(m.items[idx])
}

func exportItem(it Item) (*Export, error) {
	switch it.Status {
	case StatusDone:
		return &Export{
			Filename:    it.ExportName(),
			ContentType: common.WebPContentType,
			Data:        it.Converted,
			Items:       1,
		}, nil
	case StatusPending, StatusConverting, StatusError:
		return nil, ErrNotConverted
	default:
		return nil, ErrNotConverted
	}
}

// DownloadAll exports every done item. A single item is exported as-is, more
// than one are bundled into converted-images.zip. With nothing converted it
// returns ErrNothingToExport.
func (m *Manager) DownloadAll() (*Export, error) {
	m.mu.Lock()
	var done []Item
	for _, it := range m.items {
		if it.Status == StatusDone {
			done = append(done, it)
		}
	}
	m.mu.Unlock()

	switch len(done) {
	case 0:
		return nil, ErrNothingToExport
	case 1:
		return exportItem(done[0])
	}

	entries := make([]archive.Entry, 0, len(done))
	for _, it := range done {
		entries = append(entries, archive.Entry{Name: it.ExportName(), Data: it.Converted})
	}

	data, err := archive.Bundle(entries, time.Now())
	if err != nil {
		return nil, err
	}

	m.logger.Info("Archive created", "entries", len(entries), "size", common.FormatSize(int64(len(data))))
	return &Export{
		Filename:    common.ArchiveFilename,
		ContentType: zipContentType,
		Data:        data,
		Items:       len(entries),
	}, nil
}
