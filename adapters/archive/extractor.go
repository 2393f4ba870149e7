// Package archive is the compressed-archive collaborator: it unpacks ZIP
// and RAR files into folder structures, reporting per-entry outcomes
// instead of failing the whole archive on one bad member.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nwaples/rardecode/v2"

	"classeur/internal/errors"
)

// Report summarizes one extraction: how many entries landed and which
// ones were skipped.
type Report struct {
	Extracted int
	Skipped   []string
}

// ExtractZip unpacks every entry of the zip at path into dest, creating
// dest if needed. Entries that escape dest or fail to copy are skipped
// and recorded in the report.
func ExtractZip(path, dest string) (*Report, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open zip %s", path)
	}
	defer zr.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dest)
	}

	report := &Report{}
	for _, entry := range zr.File {
		target, err := safeJoin(dest, entry.Name)
		if err != nil {
			report.Skipped = append(report.Skipped, entry.Name)
			continue
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				report.Skipped = append(report.Skipped, entry.Name)
			}
			continue
		}
		if err := writeZipEntry(entry, target); err != nil {
			report.Skipped = append(report.Skipped, entry.Name)
			continue
		}
		report.Extracted++
	}
	return report, nil
}

// ExtractRar unpacks every entry of the rar at path into dest. Bad
// entries are skipped, mirroring the report semantics of ExtractZip.
func ExtractRar(path, dest string) (*Report, error) {
	rr, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open rar %s", path)
	}
	defer rr.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dest)
	}

	report := &Report{}
	for {
		header, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Corrupt trailing data; keep what we got.
			break
		}
		target, err := safeJoin(dest, header.Name)
		if err != nil {
			report.Skipped = append(report.Skipped, header.Name)
			continue
		}
		if header.IsDir {
			if err := os.MkdirAll(target, 0o755); err != nil {
				report.Skipped = append(report.Skipped, header.Name)
			}
			continue
		}
		if err := writeStream(rr, target); err != nil {
			report.Skipped = append(report.Skipped, header.Name)
			continue
		}
		report.Extracted++
	}
	return report, nil
}

func writeZipEntry(entry *zip.File, target string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return writeStream(rc, target)
}

func writeStream(src io.Reader, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		return err
	}
	return out.Close()
}

// safeJoin resolves an archive entry name under dest and rejects names
// that would escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	cleanDest := filepath.Clean(dest) + string(os.PathSeparator)
	if !strings.HasPrefix(target, cleanDest) {
		return "", fmt.Errorf("entry %q escapes destination", name)
	}
	return target, nil
}
