package archive

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
	"github.com/rs/zerolog/log"

	merrors "github.com/arthur-debert/modkeep/pkg/errors"
)

// rarReader holds only the path: the rar decoder is a forward-only stream,
// so each operation opens a fresh pass over the archive.
type rarReader struct {
	path string
}

func openRar(path string) (Reader, error) {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, merrors.Wrapf(err, merrors.ErrArchiveCorrupt, "failed to open rar archive: %s", path)
	}
	rc.Close()
	return &rarReader{path: path}, nil
}

func (r *rarReader) List() ([]string, error) {
	rc, err := rardecode.OpenReader(r.path)
	if err != nil {
		return nil, merrors.Wrapf(err, merrors.ErrArchiveCorrupt, "failed to open rar archive: %s", r.path)
	}
	defer rc.Close()

	var entries []string
	for {
		header, err := rc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, merrors.Wrap(err, merrors.ErrArchiveCorrupt, "failed to read rar header")
		}
		if header.IsDir {
			continue
		}
		entries = append(entries, normalizeEntry(header.Name))
	}
	return entries, nil
}

func (r *rarReader) ExtractTo(target string) (int, error) {
	rc, err := rardecode.OpenReader(r.path)
	if err != nil {
		return 0, merrors.Wrapf(err, merrors.ErrArchiveCorrupt, "failed to open rar archive: %s", r.path)
	}
	defer rc.Close()

	staging, err := newStagingDir(target)
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(staging)

	logger := log.With().Str("archive", filepath.Base(r.path)).Logger()
	var staged []string
	for {
		header, err := rc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, merrors.Wrap(err, merrors.ErrArchiveCorrupt, "failed to read rar header")
		}
		if header.IsDir {
			continue
		}
		ok, err := stageEntry(staging, header.Name, rc)
		if err != nil {
			return 0, err
		}
		if ok {
			staged = append(staged, normalizeEntry(header.Name))
		} else {
			logger.Warn().Str("entry", header.Name).Msg("Skipping entry that escapes target directory")
		}
	}

	return promoteStaged(staging, target, staged, logger)
}

func (r *rarReader) Close() error {
	return nil
}
