package cloudstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local is a FileStore over a directory on disk.
type Local struct {
	root string
}

// NewLocal creates a store rooted at dir, which must exist.
func NewLocal(dir string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}
	return &Local{root: abs}, nil
}

// Name implements FileStore.
func (l *Local) Name() string { return "local" }

// abs resolves a store path below the root, rejecting escapes.
func (l *Local) abs(p string) (string, error) {
	clean := path.Clean("/" + strings.TrimPrefix(p, "/"))
	full := filepath.Join(l.root, filepath.FromSlash(clean))
	if full != l.root && !strings.HasPrefix(full, l.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s escapes store root", p)
	}
	return full, nil
}

func (l *Local) file(full string, info fs.FileInfo) File {
	rel, _ := filepath.Rel(l.root, full)
	p := "/" + filepath.ToSlash(rel)
	return File{
		ID:        "local:" + strings.ToLower(p),
		Name:      info.Name(),
		Path:      p,
		PathLower: strings.ToLower(p),
		Size:      info.Size(),
		Modified:  info.ModTime(),
	}
}

// ListPDFs implements FileStore. Hidden directories are skipped.
func (l *Local) ListPDFs(ctx context.Context) ([]File, error) {
	var files []File
	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", p, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != l.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPDF(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		files = append(files, l.file(p, info))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Download implements FileStore.
func (l *Local) Download(_ context.Context, p string) ([]byte, error) {
	full, err := l.abs(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

// TemporaryLink implements FileStore with a file:// URL.
func (l *Local) TemporaryLink(_ context.Context, p string) (string, error) {
	full, err := l.abs(p)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(full); err != nil {
		return "", fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(full)}).String(), nil
}

// Move implements FileStore.
func (l *Local) Move(_ context.Context, from, to string) (File, error) {
	src, err := l.abs(from)
	if err != nil {
		return File{}, err
	}
	dst, err := l.abs(to)
	if err != nil {
		return File{}, err
	}
	if _, err := os.Stat(dst); err == nil {
		return File{}, ErrConflict
	}
	if err := os.Rename(src, dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, fmt.Errorf("%s: %w", from, ErrNotFound)
		}
		return File{}, fmt.Errorf("failed to rename %s: %w", from, err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		return File{}, fmt.Errorf("failed to stat %s: %w", to, err)
	}
	return l.file(dst, info), nil
}
