// Package archive derives export file names and bundles converted images
// into a single zip.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"webpconv/internal/common"
)

// ErrEmpty is returned when Bundle is called without entries.
var ErrEmpty = errors.New("archive has no entries")

// Entry is one file written into the archive.
type Entry struct {
	Name string
	Data []byte
}

// BaseName strips one trailing extension from name. Only a dot followed by
// at least one character that is neither '.' nor '/' counts as an extension,
// so "photo.jpg" becomes "photo" while "photo." is left alone.
func BaseName(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return name
	}
	if strings.ContainsRune(name[idx+1:], '/') {
		return name
	}
	return name[:idx]
}

// WebPName returns the export name for an original file name.
func WebPName(name string) string {
	return BaseName(name) + common.WebPExtension
}

// Bundle writes entries into a zip archive. Entries that share a name are
// kept apart by suffixing "-2", "-3", ... before the extension.
func Bundle(entries []Entry, modified time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	used := make(map[string]int, len(entries))
	for _, entry := range entries {
		name := uniqueName(entry.Name, used)

		header := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: modified,
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func uniqueName(name string, used map[string]int) string {
	count := used[name]
	used[name] = count + 1
	if count == 0 {
		return name
	}

	base := BaseName(name)
	ext := strings.TrimPrefix(name, base)
	for n := count + 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", base, n, ext)
		if used[candidate] == 0 {
			used[candidate] = 1
			return candidate
		}
	}
}
