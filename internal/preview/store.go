// Package preview manages display references: short-lived handles that let
// the frontend render image bytes held by the backend. Every handle must be
// released exactly once when the owning item goes away.
package preview

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"webpconv/internal/common"
)

// PathPrefix is the URL prefix under which handles are served.
const PathPrefix = "/preview/"

var (
	ErrAlreadyReleased = errors.New("display reference already released")
	ErrUnknownHandle   = errors.New("unknown display reference")
)

// Handle identifies one registered blob. The zero Handle is "no reference".
type Handle struct {
	id string
}

// IsZero reports whether h refers to nothing.
func (h Handle) IsZero() bool {
	return h.id == ""
}

// ID returns the opaque handle identifier.
func (h Handle) ID() string {
	return h.id
}

// URL returns the path the frontend uses to display the blob.
func (h Handle) URL() string {
	if h.IsZero() {
		return ""
	}
	return PathPrefix + h.id
}

type blob struct {
	data        []byte
	contentType string
}

// Store holds live display references and serves them over HTTP.
type Store struct {
	mu       sync.RWMutex
	blobs    map[string]blob
	released map[string]struct{}
	logger   *slog.Logger
}

// NewStore creates an empty store
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		blobs:    make(map[string]blob),
		released: make(map[string]struct{}),
		logger:   logger,
	}
}

// Create registers data and returns a handle for it. The store keeps a
// reference to data; callers must not mutate it afterwards.
func (s *Store) Create(data []byte, contentType string) Handle {
	id := common.GenerateUUID()

	s.mu.Lock()
	s.blobs[id] = blob{data: data, contentType: contentType}
	s.mu.Unlock()

	return Handle{id: id}
}

// Release frees the blob behind h. Releasing the zero handle is a no-op.
func (s *Store) Release(h Handle) error {
	if h.IsZero() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[h.id]; ok {
		delete(s.blobs, h.id)
		s.released[h.id] = struct{}{}
		return nil
	}

	if _, ok := s.released[h.id]; ok {
		s.logger.Warn("Display reference released twice", "handle", h.id)
		return ErrAlreadyReleased
	}
	return ErrUnknownHandle
}

// Len returns the number of live handles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// ServeHTTP serves live handles under PathPrefix.
func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !strings.HasPrefix(r.URL.Path, PathPrefix) {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, PathPrefix)

	s.mu.RLock()
	b, ok := s.blobs[id]
	s.mu.RUnlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", b.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		w.Write(b.data)
	}
}
