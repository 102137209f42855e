package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/modkeep/pkg/errors"
)

// zipReader extracts zip containers directly: the stdlib reader gives
// random access to entries, so no staging directory is needed.
type zipReader struct {
	path string
	rc   *zip.ReadCloser
}

func openZip(path string) (Reader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveCorrupt, "failed to open zip archive: %s", path)
	}
	return &zipReader{path: path, rc: rc}, nil
}

func (z *zipReader) List() ([]string, error) {
	var entries []string
	for _, f := range z.rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, normalizeEntry(f.Name))
	}
	return entries, nil
}

func (z *zipReader) ExtractTo(target string) (int, error) {
	entries, _ := z.List()
	root, _ := CommonRoot(entries)

	logger := log.With().Str("archive", filepath.Base(z.path)).Logger()
	written := 0
	for _, f := range z.rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rel, ok := stripRoot(normalizeEntry(f.Name), root)
		if !ok || rel == "" {
			continue
		}

		dest, err := resolveDest(target, rel)
		if err != nil {
			logger.Warn().Str("entry", f.Name).Msg("Skipping entry that escapes target directory")
			continue
		}

		if err := writeZipEntry(f, dest); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writeZipEntry(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to create directory for %s", f.Name)
	}
	src, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to read entry %s", f.Name)
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to create %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to write %s", dest)
	}
	return nil
}

func (z *zipReader) Close() error {
	return z.rc.Close()
}
