package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"cargoreg/internal/fileutil"
)

// ErrLocked is returned when another process holds the config lock.
var ErrLocked = errors.New("config is locked by another process")

// File is an open, exclusively locked config file.
type File struct {
	path     string
	file     *os.File
	lock     *flock.Flock
	contents string
}

// Open creates the config file and its directory if needed, locks it for
// writing and reads its contents.
func Open(ctx context.Context, path string) (*File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory %q: %w", dir, err)
	}

	lock := flock.New(path)
	if err := acquire(ctx, lock); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open config: %w", err)
	}
	contents, err := fileutil.ReadAll(file)
	if err != nil {
		_ = file.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return &File{path: path, file: file, lock: lock, contents: contents}, nil
}

// Read returns the contents of the config at path. A missing file reads as
// empty text. Read takes no lock and creates nothing; Write rewrites the file
// in place, so a concurrent edit may be observed half-written.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read config %s: %w", path, err)
	}
	return string(data), nil
}

func acquire(ctx context.Context, lock *flock.Flock) error {
	ctx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()

	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire config lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return fmt.Errorf("acquire config lock %s: %w", lock.Path(), ErrLocked)
	}
	return nil
}

// Path returns the config file location.
func (f *File) Path() string {
	return f.path
}

// Contents returns the text read by Open, or the last text written.
func (f *File) Contents() string {
	return f.contents
}

// Write replaces the file contents with text. Trailing whitespace is
// trimmed and non-empty text ends with a single newline.
func (f *File) Write(text string) error {
	content := strings.TrimRight(text, " \t\r\n")
	if content != "" {
		if strings.Contains(content, "\r\n") {
			content += "\r\n"
		} else {
			content += "\n"
		}
	}
	if err := fileutil.Rewrite(f.file, []byte(content)); err != nil {
		return fmt.Errorf("write config %s: %w", f.path, err)
	}
	f.contents = content
	return nil
}

// Close releases the file handle and the lock. The config file itself is the
// lock target, so nothing is left behind.
func (f *File) Close() error {
	return errors.Join(f.file.Close(), f.lock.Unlock())
}
