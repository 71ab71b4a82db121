package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir stores objects as files below a root directory.
type Dir struct {
	root string
}

var _ Store = (*Dir)(nil)

func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Put writes body to the file for key, creating parent directories. The
// content type is not persisted.
func (d *Dir) Put(ctx context.Context, key string, body []byte, _ string) error {
	name, err := d.path(ctx, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return classifyFSError(err, "put")
	}
	return classifyFSError(os.WriteFile(name, body, 0o644), "put")
}

func (d *Dir) Get(ctx context.Context, key string) ([]byte, error) {
	name, err := d.path(ctx, key)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(name)
	if err != nil {
		return nil, classifyFSError(err, "get")
	}
	return body, nil
}

func (d *Dir) path(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", classifyFSError(err, "open")
	}
	clean, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}

func classifyFSError(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrFileNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
	}
	return fmt.Errorf("%s operation failed: %w", operation, err)
}
