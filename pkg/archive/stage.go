package archive

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/modkeep/pkg/errors"
)

// The 7z and rar backends are streaming decoders, so both extract into a
// temporary staging directory mirroring the archive layout, then promote
// the staged files into the target. Promotion re-applies the containment
// check against the final target, so a hostile entry path is rejected even
// after surviving the staging write.

// newStagingDir creates the staging directory as a sibling of the target
// so the promotion renames stay on one filesystem.
func newStagingDir(target string) (string, error) {
	parent := filepath.Dir(filepath.Clean(target))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", errors.Wrap(err, errors.ErrExtractionFailed, "failed to create staging parent")
	}
	dir, err := os.MkdirTemp(parent, ".modkeep-stage-")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrExtractionFailed, "failed to create staging directory")
	}
	return dir, nil
}

// stageEntry writes one archive entry into the staging directory. Entries
// that would escape staging are dropped and reported via the returned flag.
func stageEntry(staging, entry string, src io.Reader) (bool, error) {
	dest, err := resolveDest(staging, normalizeEntry(entry))
	if err != nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, errors.Wrapf(err, errors.ErrExtractionFailed, "failed to create directory for %s", entry)
	}
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrExtractionFailed, "failed to create %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return false, errors.Wrapf(err, errors.ErrExtractionFailed, "failed to write %s", dest)
	}
	return true, nil
}

// promoteStaged moves staged entries into the target, stripping the common
// root detected across the staged entry names. Returns files promoted.
func promoteStaged(staging, target string, entries []string, logger zerolog.Logger) (int, error) {
	root, _ := CommonRoot(entries)

	written := 0
	for _, entry := range entries {
		rel, ok := stripRoot(normalizeEntry(entry), root)
		if !ok || rel == "" {
			continue
		}

		staged, err := resolveDest(staging, normalizeEntry(entry))
		if err != nil {
			continue
		}
		dest, err := resolveDest(target, rel)
		if err != nil {
			logger.Warn().Str("entry", entry).Msg("Skipping entry that escapes target directory")
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return written, errors.Wrapf(err, errors.ErrExtractionFailed, "failed to create directory for %s", rel)
		}
		if err := os.Rename(staged, dest); err != nil {
			if err := copyFile(staged, dest); err != nil {
				return written, err
			}
		}
		written++
	}
	return written, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to read staged file %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to create %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to write %s", dest)
	}
	return nil
}
