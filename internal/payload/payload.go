package payload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the name of the OTA payload file.
const FileName = "ota.json"

// ErrNotFound reports that the payload file does not exist.
var ErrNotFound = errors.New(FileName + " not found")

// Source reads the OTA payload file from local disk. Every Read opens the
// file again, so callers always see the current on-disk bytes.
type Source struct {
	dir string
}

// NewSource returns a source rooted at dir. An empty dir resolves against the
// process working directory at read time.
func NewSource(dir string) *Source {
	return &Source{dir: strings.TrimSpace(dir)}
}

// Path returns the path Read opens.
func (s *Source) Path() string {
	if s == nil || s.dir == "" {
		return FileName
	}
	return filepath.Join(s.dir, FileName)
}

// Read opens the payload file read-only and returns its full contents.
func (s *Source) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
