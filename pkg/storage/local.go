package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Local is a file-system backend on top of an afero.Fs
type Local struct {
	fs       afero.Fs
	rootPath string
}

// NewLocal creates a backend over the operating system file system
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	return NewWithFs(afero.NewOsFs(), absPath)
}

// NewWithFs creates a backend over any afero file system. rootPath must
// already be absolute for the given file system.
func NewWithFs(fsys afero.Fs, rootPath string) (*Local, error) {
	rootPath = filepath.Clean(rootPath)

	info, err := fsys.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", rootPath)
	}

	return &Local{fs: fsys, rootPath: rootPath}, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// ReadDir returns the immediate entries of dir sorted by name
func (l *Local) ReadDir(ctx context.Context, dir string) ([]FileInfo, error) {
	if err := l.checkPath(dir); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, toFileInfo(filepath.Join(dir, e.Name()), e))
	}

	return infos, nil
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	if err := l.checkPath(path); err != nil {
		return nil, err
	}

	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	fi := toFileInfo(path, info)
	return &fi, nil
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	if err := l.checkPath(path); err != nil {
		return false, err
	}

	ok, err := afero.Exists(l.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return ok, nil
}

// Remove deletes a single file; directories are refused
func (l *Local) Remove(ctx context.Context, path string) error {
	if err := l.checkPath(path); err != nil {
		return err
	}

	isDir, err := afero.IsDir(l.fs, path)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	if isDir {
		return fmt.Errorf("failed to delete: %s is a directory", path)
	}

	if err := l.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	return nil
}

// Move renames src to dst without overwriting an existing dst
func (l *Local) Move(ctx context.Context, src, dst string) error {
	if err := l.checkPath(src); err != nil {
		return err
	}
	if err := l.checkPath(dst); err != nil {
		return err
	}

	exists, err := afero.Exists(l.fs, dst)
	if err != nil {
		return fmt.Errorf("failed to move: %w", err)
	}
	if exists {
		return fmt.Errorf("failed to move: %w", &fs.PathError{Op: "move", Path: dst, Err: fs.ErrExist})
	}

	if err := l.fs.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move: %w", err)
	}

	return nil
}

// Close releases resources (no-op for local file systems)
func (l *Local) Close() error {
	return nil
}

// checkPath rejects paths that are not below the root
func (l *Local) checkPath(path string) error {
	rel, err := filepath.Rel(l.rootPath, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return nil
}

func toFileInfo(path string, info os.FileInfo) FileInfo {
	return FileInfo{
		Path:        path,
		Name:        info.Name(),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		IsDir:       info.IsDir(),
		Permissions: uint32(info.Mode().Perm()),
	}
}
