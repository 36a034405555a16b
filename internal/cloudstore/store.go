// Package cloudstore lists, downloads, links and renames the PDF files that
// back the portfolio. Dropbox is the primary backend; S3-compatible buckets
// and a local folder are alternatives.
package cloudstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_file_store.go -package=mocks research-portfolio/internal/cloudstore FileStore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

var (
	// ErrConflict is returned when a move target already exists.
	ErrConflict = errors.New("destination already exists")

	// ErrNotFound is returned when a path does not exist.
	ErrNotFound = errors.New("file not found")
)

// File is a stored document.
type File struct {
	ID        string
	Name      string
	Path      string
	PathLower string
	Size      int64
	Modified  time.Time
}

// FileStore is the storage backend used by sync and the PDF endpoints.
type FileStore interface {
	// Name identifies the backend in logs and health output.
	Name() string
	// ListPDFs returns every PDF under the configured root, recursively.
	ListPDFs(ctx context.Context) ([]File, error)
	// Download returns the file content.
	Download(ctx context.Context, path string) ([]byte, error)
	// TemporaryLink returns a short-lived download URL.
	TemporaryLink(ctx context.Context, path string) (string, error)
	// Move renames a file and returns its new metadata.
	Move(ctx context.Context, from, to string) (File, error)
}

// Config selects and configures a backend.
type Config struct {
	Kind string // dropbox, s3 or local

	DropboxToken string
	DropboxRoot  string

	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
	S3Prefix    string

	LocalDir string
}

// Configured reports whether the selected backend has its credentials.
func (c Config) Configured() bool {
	switch c.Kind {
	case "", "dropbox":
		return c.DropboxToken != ""
	case "s3":
		return c.S3Endpoint != "" && c.S3Bucket != ""
	case "local":
		return c.LocalDir != ""
	}
	return false
}

// Open builds the configured backend. It returns nil, nil when the backend
// is not configured so callers can report the missing configuration per request.
func Open(cfg Config) (FileStore, error) {
	if !cfg.Configured() {
		return nil, nil
	}
	switch cfg.Kind {
	case "", "dropbox":
		return NewDropbox(cfg.DropboxToken, WithRoot(cfg.DropboxRoot)), nil
	case "s3":
		s, err := NewS3(cfg.S3Endpoint, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3UseSSL, cfg.S3Prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "local":
		l, err := NewLocal(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, fmt.Errorf("unknown file store %q", cfg.Kind)
}

// RenameTarget returns the path for renaming from to newName in the same folder.
// The .pdf extension is appended when missing.
func RenameTarget(from, newName string) string {
	name := strings.TrimSpace(newName)
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	dir := path.Dir("/" + strings.TrimPrefix(from, "/"))
	return path.Join(dir, name)
}

func isPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
