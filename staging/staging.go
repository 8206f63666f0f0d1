// Package staging writes uploaded documents to private scratch directories
// for conversion.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"inkwell-cms/converter"
	"inkwell-cms/models"
)

const dirPrefix = "inkwell-upload-"

// Stager stages each upload in its own directory under root, so concurrent
// uploads with the same file name never share a path.
type Stager struct {
	root     string
	maxBytes int64
	logger   *slog.Logger
}

// File is a staged upload. The caller owns it and must call Release.
type File struct {
	ID     string
	Name   string
	Path   string
	Format converter.Format
	Size   int64
	dir    string
}

// New returns a Stager writing under root. maxBytes <= 0 disables the size cap.
func New(root string, maxBytes int64, logger *slog.Logger) *Stager {
	return &Stager{root: root, maxBytes: maxBytes, logger: logger}
}

// Stage validates filename, then copies r into a fresh scratch directory.
// Nothing is left on disk when it returns an error.
func (s *Stager) Stage(ctx context.Context, r io.Reader, filename string) (*File, error) {
	if !converter.Allowed(filename) {
		return nil, models.ValidationError("file type not allowed")
	}
	if err := ctx.Err(); err != nil {
		return nil, models.IOError("upload cancelled", err)
	}

	format := converter.DetectFormat(filename)
	name := SanitizeFilename(filename)
	if converter.DetectFormat(name) != format {
		name = "upload." + string(format)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, models.IOError("could not stage upload", fmt.Errorf("generate staging id: %w", err))
	}

	dir := filepath.Join(s.root, dirPrefix+id)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, models.IOError("could not stage upload", err)
	}

	staged := &File{ID: id, Name: name, Path: filepath.Join(dir, name), Format: format, dir: dir}
	size, err := s.write(staged.Path, r)
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.logger.Warn("failed to remove staging directory", "dir", dir, "error", rmErr)
		}
		return nil, err
	}
	staged.Size = size

	s.logger.Debug("staged upload", "id", id, "name", name, "bytes", size)
	return staged, nil
}

func (s *Stager) write(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return 0, models.IOError("could not stage upload", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}

	n, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, models.IOError("could not stage upload", err)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		return 0, models.ValidationError(fmt.Sprintf("file too large (limit %d bytes)", s.maxBytes))
	}
	if n == 0 {
		return 0, models.ValidationError("file is empty")
	}
	return n, nil
}

// Release deletes the staged file and its directory. Calling it more than
// once is harmless.
func (f *File) Release() error {
	if f == nil || f.dir == "" {
		return nil
	}
	return os.RemoveAll(f.dir)
}

// Sweep removes staging directories older than maxAge, left behind by a
// process that died mid-conversion. It returns how many were removed.
func (s *Stager) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), dirPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			s.logger.Warn("failed to sweep staging directory", "dir", e.Name(), "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
