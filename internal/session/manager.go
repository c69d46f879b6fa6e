package session

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wailsapp/mimetype"

	"webpconv/internal/common"
	"webpconv/internal/concurrency"
	"webpconv/internal/conversion"
	"webpconv/internal/preview"
)

const imageTypePrefix = "image/"

// DisplayStore creates and releases display references.
type DisplayStore interface {
	Create(data []byte, contentType string) preview.Handle
	Release(h preview.Handle) error
}

// Listener is told about changes to the session. Calls happen outside the
// manager lock and may come from any goroutine.
type Listener interface {
	SessionChanged()
	BatchStarted(count int)
	BatchFinished(summary BatchSummary)
}

// ImportSummary counts the files of one import call.
type ImportSummary struct {
	Accepted int `json:"accepted"`
	Skipped  int `json:"skipped"`
}

// BatchSummary describes one resolved ConvertAll call.
type BatchSummary struct {
	Converted      int           `json:"converted"`
	Failed         int           `json:"failed"`
	OriginalBytes  int64         `json:"original_bytes"`
	ConvertedBytes int64         `json:"converted_bytes"`
	Duration       time.Duration `json:"duration"`
}

// Total is the number of items the batch processed.
func (b BatchSummary) Total() int {
	return b.Converted + b.Failed
}

// BytesSaved is the size reduction over the converted items. It is negative
// when the batch grew.
func (b BatchSummary) BytesSaved() int64 {
	return b.OriginalBytes - b.ConvertedBytes
}

// Manager is the conversion session.
type Manager struct {
	mu         sync.Mutex
	items      []Item
	settings   Settings
	converting bool

	converter conversion.Converter
	displays  DisplayStore
	pool      *concurrency.WorkerPool
	logger    *slog.Logger
	listener  Listener
}

// NewManager creates an empty session using default settings.
func NewManager(converter conversion.Converter, displays DisplayStore, pool *concurrency.WorkerPool, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if pool == nil {
		pool = concurrency.NewWorkerPool(0)
	}
	return &Manager{
		settings:  DefaultSettings(),
		converter: converter,
		displays:  displays,
		pool:      pool,
		logger:    logger,
	}
}

// SetListener registers the change listener. Passing nil removes it.
func (m *Manager) SetListener(listener Listener) {
	m.mu.Lock()
	m.listener = listener
	m.mu.Unlock()
}

// Settings returns the current conversion settings.
func (m *Manager) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// SetSettings replaces the settings after clamping them into range. Items
// that are already converted keep their results.
func (m *Manager) SetSettings(s Settings) Settings {
	s = s.Normalize()

	m.mu.Lock()
	m.settings = s
	m.mu.Unlock()

	return s
}

// Converting reports whether a batch is running.
func (m *Manager) Converting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.converting
}

// Items returns a snapshot of the collection in import order.
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Get returns a snapshot of one item.
func (m *Manager) Get(id string) (Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idx := m.indexOf(id); idx >= 0 {
		return m.items[idx], true
	}
	return Item{}, false
}

// HasPending reports whether any item waits for conversion.
func (m *Manager) HasPending() bool {
	return m.countStatus(StatusPending) > 0
}

// HasConverted reports whether any item can be exported.
func (m *Manager) HasConverted() bool {
	return m.countStatus(StatusDone) > 0
}

func (m *Manager) countStatus(status Status) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, it := range m.items {
		if it.Status == status {
			n++
		}
	}
	return n
}

// Import appends one pending item per upload whose content type is an
// image. Other uploads are skipped without error.
func (m *Manager) Import(uploads []Upload) ImportSummary {
	var summary ImportSummary
	var accepted []Item

	for _, upload := range uploads {
		contentType := resolveContentType(upload)
		if !strings.HasPrefix(contentType, imageTypePrefix) {
			summary.Skipped++
			m.logger.Debug("Skipping non-image file", "file", upload.Name, "content_type", contentType)
			continue
		}

		item := Item{
			ID:           common.GenerateUUID(),
			Name:         upload.Name,
			ContentType:  contentType,
			Original:     upload.Data,
			OriginalSize: int64(len(upload.Data)),
			Status:       StatusPending,
		}
		if w, h, _, err := conversion.Probe(upload.Data); err == nil {
			item.Width, item.Height = w, h
		}
		item.Preview = m.displays.Create(upload.Data, contentType)

		accepted = append(accepted, item)
		summary.Accepted++
	}

	if len(accepted) > 0 {
		m.mu.Lock()
		m.items = append(m.items, accepted...)
		m.mu.Unlock()
	}

	m.logger.Info("Images imported", "accepted", summary.Accepted, "skipped", summary.Skipped)
	if summary.Accepted > 0 {
		m.notifyChanged()
	}
	return summary
}

// ImportPaths reads files from disk and imports them. Unreadable paths and
// directories are skipped.
func (m *Manager) ImportPaths(paths []string) ImportSummary {
	uploads := make([]Upload, 0, len(paths))
	skipped := 0

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			m.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			skipped++
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			m.logger.Warn("Failed to read file", "path", path, "error", err)
			skipped++
			continue
		}

		uploads = append(uploads, Upload{
			Name:        filepath.Base(path),
			ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
			Data:        data,
		})
	}

	summary := m.Import(uploads)
	summary.Skipped += skipped
	return summary
}

// resolveContentType prefers the declared type and sniffs the bytes when
// none was given.
func resolveContentType(upload Upload) string {
	contentType := strings.TrimSpace(upload.ContentType)
	if contentType == "" && len(upload.Data) > 0 {
		contentType = mimetype.Detect(upload.Data).String()
	}
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return strings.ToLower(contentType)
}

type job struct {
	id   string
	name string
	data []byte
}

type outcome struct {
	result *conversion.Result
	handle preview.Handle
	err    error
}

// ConvertAll converts every pending item with the current settings and
// returns once each of them has resolved. Done and error items are left
// alone. The collection is updated in one step when the batch resolves.
func (m *Manager) ConvertAll() (BatchSummary, error) {
	m.mu.Lock()
	if m.converting {
		m.mu.Unlock()
		return BatchSummary{}, ErrBatchRunning
	}
	if m.converter == nil {
		m.mu.Unlock()
		return BatchSummary{}, ErrConverterMissing
	}

	settings := m.settings
	var jobs []job
	for i := range m.items {
		if m.items[i].Status != StatusPending {
			continue
		}
		m.items[i].Status = StatusConverting
		jobs = append(jobs, job{id: m.items[i].ID, name: m.items[i].Name, data: m.items[i].Original})
	}
	if len(jobs) == 0 {
		m.mu.Unlock()
		return BatchSummary{}, nil
	}
	m.converting = true
	listener := m.listener
	m.mu.Unlock()

	if listener != nil {
		listener.BatchStarted(len(jobs))
		listener.SessionChanged()
	}

	m.logger.Info("Conversion batch started",
		"items", len(jobs),
		"quality", settings.Quality,
		"scale", settings.Scale,
		"workers", m.pool.MaxWorkers())

	started := time.Now()
	outcomes := make([]outcome, len(jobs))

	unscheduled, err := m.pool.Run(len(jobs), func(index int) {
		outcomes[index] = m.convertOne(jobs[index], settings)
	})
	if err != nil {
		for i := range outcomes {
			outcomes[i] = outcome{err: fmt.Errorf("%w: %v", ErrNotScheduled, err)}
		}
	}
	for _, index := range unscheduled {
		outcomes[index] = outcome{err: ErrNotScheduled}
	}

	summary := m.resolveBatch(jobs, outcomes)
	summary.Duration = time.Since(started)

	m.logger.Info("Conversion batch finished",
		"converted", summary.Converted,
		"failed", summary.Failed,
		"original", humanize.Bytes(uint64(summary.OriginalBytes)),
		"result", humanize.Bytes(uint64(summary.ConvertedBytes)),
		"duration", summary.Duration)

	if listener != nil {
		listener.SessionChanged()
		listener.BatchFinished(summary)
	}
	return summary, nil
}

// convertOne runs the pipeline for one item. Panics inside the converter are
// turned into errors so a single item can never abort the batch.
func (m *Manager) convertOne(j job, settings Settings) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("converter panic: %v", r)}
		}
	}()

	result, err := m.converter.Convert(conversion.Request{
		Name:    j.name,
		Data:    j.data,
		Quality: settings.Quality,
		Scale:   settings.Scale,
	})
	if err != nil {
		return outcome{err: err}
	}
	if result == nil || len(result.Data) == 0 {
		return outcome{err: conversion.ErrEncode}
	}
	return outcome{result: result, handle: m.displays.Create(result.Data, common.WebPContentType)}
}

// resolveBatch applies every outcome under one lock. Results for items that
// were removed while converting are dropped and their handles released.
func (m *Manager) resolveBatch(jobs []job, outcomes []outcome) BatchSummary {
	var summary BatchSummary
	var orphaned []preview.Handle

	m.mu.Lock()
	next := make([]Item, len(m.items))
	copy(next, m.items)

	for i, j := range jobs {
		o := outcomes[i]
		idx := indexOf(next, j.id)
		if idx < 0 {
			if !o.handle.IsZero() {
				orphaned = append(orphaned, o.handle)
			}
			continue
		}

		it := &next[idx]
		if o.err != nil {
			it.Status = StatusError
			it.Err = o.err
			summary.Failed++
			m.logger.Error("Image conversion failed", "file", it.Name, "id", it.ID, "error", o.err)
			continue
		}

		it.Status = StatusDone
		it.Err = nil
		it.Converted = o.result.Data
		it.ConvertedSize = int64(len(o.result.Data))
		it.ConvertedWidth = o.result.Width
		it.ConvertedHeight = o.result.Height
		it.Result = o.handle

		summary.Converted++
		summary.OriginalBytes += it.OriginalSize
		summary.ConvertedBytes += it.ConvertedSize
	}

	m.items = next
	m.converting = false
	m.mu.Unlock()

	for _, h := range orphaned {
		m.release(h)
	}
	return summary
}

// Remove drops one item and releases its display references.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	idx := m.indexOf(id)
	if idx < 0 {
		m.mu.Unlock()
		return ErrItemNotFound
	}

	removed := m.items[idx]
	next := make([]Item, 0, len(m.items)-1)
	next = append(next, m.items[:idx]...)
	next = append(next, m.items[idx+1:]...)
	m.items = next
	m.mu.Unlock()

	m.releaseItem(removed)
	m.logger.Debug("Image removed", "file", removed.Name, "id", removed.ID)
	m.notifyChanged()
	return nil
}

// Clear empties the collection and releases every display reference.
func (m *Manager) Clear() {
	m.mu.Lock()
	removed := m.items
	m.items = nil
	m.mu.Unlock()

	for _, it := range removed {
		m.releaseItem(it)
	}

	m.logger.Info("Session cleared", "items", len(removed))
	m.notifyChanged()
}

func (m *Manager) releaseItem(it Item) {
	m.release(it.Preview)
	m.release(it.Result)
}

func (m *Manager) release(h preview.Handle) {
	if h.IsZero() {
		return
	}
	if err := m.displays.Release(h); err != nil {
		m.logger.Warn("Failed to release display reference", "handle", h.ID(), "error", err)
	}
}

func (m *Manager) notifyChanged() {
	m.mu.Lock()
	listener := m.listener
	m.mu.Unlock()

	if listener != nil {
		listener.SessionChanged()
	}
}

// indexOf must be called with m.mu held.
func (m *Manager) indexOf(id string) int {
	return indexOf(m.items, id)
}

func indexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
