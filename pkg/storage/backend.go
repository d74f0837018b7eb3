package storage

import (
	"context"
	"errors"
	"time"
)

// ErrOutsideRoot is returned for paths that escape the backend root
var ErrOutsideRoot = errors.New("path is outside the backend root")

// FileInfo represents metadata about a file or directory
type FileInfo struct {
	Path        string
	Name        string
	Size        int64
	ModTime     time.Time
	IsDir       bool
	Permissions uint32
}

// Backend defines the file-system operations a sweep needs.
// All paths are full paths below the backend root.
type Backend interface {
	// Root returns the absolute root path
	Root() string

	// ReadDir returns the immediate entries of a directory, sorted by name
	ReadDir(ctx context.Context, dir string) ([]FileInfo, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Remove deletes a single file
	Remove(ctx context.Context, path string) error

	// Move renames src to dst, failing if dst already exists
	Move(ctx context.Context, src, dst string) error

	// Close releases any resources held by the backend
	Close() error
}
