package archive

import (
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/modkeep/pkg/errors"
)

type sevenZipReader struct {
	path string
	rc   *sevenzip.ReadCloser
}

func openSevenZip(path string) (Reader, error) {
	rc, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveCorrupt, "failed to open 7z archive: %s", path)
	}
	return &sevenZipReader{path: path, rc: rc}, nil
}

func (s *sevenZipReader) List() ([]string, error) {
	var entries []string
	for _, f := range s.rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, normalizeEntry(f.Name))
	}
	return entries, nil
}

func (s *sevenZipReader) ExtractTo(target string) (int, error) {
	staging, err := newStagingDir(target)
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(staging)

	logger := log.With().Str("archive", filepath.Base(s.path)).Logger()
	var staged []string
	for _, f := range s.rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		src, err := f.Open()
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrExtractionFailed, "failed to read entry %s", f.Name)
		}
		ok, err := stageEntry(staging, f.Name, src)
		src.Close()
		if err != nil {
			return 0, err
		}
		if ok {
			staged = append(staged, normalizeEntry(f.Name))
		} else {
			logger.Warn().Str("entry", f.Name).Msg("Skipping entry that escapes target directory")
		}
	}

	return promoteStaged(staging, target, staged, logger)
}

func (s *sevenZipReader) Close() error {
	return s.rc.Close()
}
