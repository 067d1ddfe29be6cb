package fileutil

import (
	"fmt"
	"io"
	"os"
)

// ReadAll reads f from its beginning.
func ReadAll(f *os.File) (string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek: %w", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Rewrite replaces the contents of an open file in place: it seeks to the
// start, truncates to the new length and writes data.
func Rewrite(f *os.File, data []byte) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	if err := f.Truncate(int64(len(data))); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
