package output

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrIO wraps every failure to deliver the formatted verse.
var ErrIO = errors.New("i/o error")

// Write sends text to stdout when path is empty, otherwise to the file at
// path, replacing its contents. When writing the file fails after it was
// opened, a regular file at path is removed so no partial verse is left
// behind. Symlinks and device files are never removed.
// stdout is never written when path is set.
func Write(stdout io.Writer, path, text string) error {
	if path == "" {
		if _, err := io.WriteString(stdout, text); err != nil {
			return fmt.Errorf("%w: failed to write to stdout: %w", ErrIO, err)
		}
		return nil
	}

	return writeFile(path, text)
}

func writeFile(path, text string) (err error) {
	removable, err := removableOnFailure(path)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %w", ErrIO, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close %s: %w", ErrIO, path, closeErr)
		}
		if err != nil && removable {
			if removeErr := os.Remove(path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
				slog.Warn("failed to remove partial output", "path", path, "error", removeErr)
			}
		}
	}()

	if _, err := io.WriteString(f, text); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrIO, path, err)
	}

	return nil
}

// removableOnFailure reports whether path may be deleted if writing fails:
// it does not exist yet, or it is a regular file.
func removableOnFailure(path string) (bool, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: failed to stat %s: %w", ErrIO, path, err)
	}
	return info.Mode().IsRegular(), nil
}
