package installer

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/arthur-debert/modkeep/pkg/archive"
	"github.com/arthur-debert/modkeep/pkg/errors"
)

// Candidate is an archive found in the user's downloads folder.
type Candidate struct {
	Path    string
	ModTime time.Time
}

// FindArchives scans dir for archives whose base name matches the
// pattern, newest first. The pattern is an unanchored case-insensitive
// regular expression; only files in a supported container format are
// returned. A missing directory yields an empty list.
func FindArchives(dir, pattern string) ([]Candidate, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "bad archive pattern: %s", pattern)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var found []Candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !re.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if archive.DetectFormat(path) == archive.FormatUnknown {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, Candidate{Path: path, ModTime: info.ModTime()})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].ModTime.After(found[j].ModTime)
	})
	return found, nil
}
