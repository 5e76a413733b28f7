// Package uploads stores images on local disk and serves them back.
// Filenames are always generated here (a nanoid plus the extension of the sniffed
// content type); client-supplied names and Content-Type headers are never trusted.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// URLPrefix is the public path stored files are served under.
const URLPrefix = "/uploads/"

// Errors returned by LocalStore.
var (
	ErrTooLarge       = errors.New("file exceeds the maximum upload size")
	ErrNotImage       = errors.New("file is not an image")
	ErrInvalidName    = errors.New("invalid file name")
	ErrFileNotFound   = errors.New("file not found")
	ErrEmptyFile      = errors.New("file is empty")
	validFilenameExpr = regexp.MustCompile(`^[A-Za-z0-9_-]+\.[a-z0-9]+$`)
)

// StoredFile describes a file written by Save.
type StoredFile struct {
	Filename string
	MIME     string
	Size     int64
}

// URL returns the public path of the file.
func (f StoredFile) URL() string {
	return URLPrefix + f.Filename
}

// LocalStore writes uploads into a single directory.
type LocalStore struct {
	dir     string
	maxSize int64
}

// NewLocalStore creates dir if needed and returns a store limited to maxSize bytes per file.
func NewLocalStore(dir string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, maxSize: maxSize}, nil
}

// MaxSize returns the per-file size limit in bytes.
func (s *LocalStore) MaxSize() int64 { return s.maxSize }

// Save reads r fully (up to the size limit), checks that it is an image and writes it
// under a generated name.
func (s *LocalStore) Save(ctx context.Context, r io.Reader) (*StoredFile, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") || mtype.Extension() == "" {
		return nil, ErrNotImage
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate file name: %w", err)
	}
	name := id + mtype.Extension()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Write to a temp file first so a half-written upload is never served.
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &StoredFile{Filename: name, MIME: mtype.String(), Size: int64(len(data))}, nil
}

// Open returns a stored file. Names that could escape the upload directory are rejected.
func (s *LocalStore) Open(name string) (*os.File, error) {
	if !validFilenameExpr.MatchString(name) {
		return nil, ErrInvalidName
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}
