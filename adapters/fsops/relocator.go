// Package fsops is the file-relocation collaborator: single-file move,
// copy, and sequential-rename primitives used by the collection services.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"classeur/internal/errors"
)

// CopyFile copies src to dst, creating parent directories as needed and
// preserving the source file mode.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", src)
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", src)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", dst)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", dst)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "failed to copy %s to %s", src, dst)
	}
	return out.Close()
}

// MoveFile renames src to dst, falling back to copy-and-remove across
// filesystem boundaries.
func MoveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", dst)
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return errors.Wrapf(err, "failed to remove %s after copy", src)
	}
	return nil
}

// NumberedName inserts a sequence number before the extension:
// resultats.xlsx, 3 -> resultats(3).xlsx.
func NumberedName(filename string, n int) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s(%d)%s", base, n, ext)
}
