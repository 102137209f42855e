// Package archive abstracts the containers mods ship in. Every backend
// honors the same contract: list file entries, strip a detected common root
// folder on extraction, and refuse to write any entry that would resolve
// outside the target directory. Rejected entries are skipped, never fatal;
// the count returned by ExtractTo only includes files actually written.
package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modkeep/pkg/errors"
)

// Format identifies a supported container format.
type Format string

const (
	FormatZip      Format = "zip"
	FormatSevenZip Format = "7z"
	FormatRar      Format = "rar"
	FormatUnknown  Format = "unknown"
)

// Reader is the capability contract implemented per container format.
type Reader interface {
	// List returns the relative paths of file entries (directories
	// excluded) in archive order.
	List() ([]string, error)

	// ExtractTo extracts every file entry under target, stripping the
	// detected common root and rejecting entries that escape the target.
	// Returns the count of files written.
	ExtractTo(target string) (int, error)

	// Close releases the underlying container.
	Close() error
}

// Container signatures, checked before falling back to the extension.
var (
	magicZip      = []byte("PK\x03\x04")
	magicZipEmpty = []byte("PK\x05\x06")
	magicSevenZip = []byte("7z\xbc\xaf\x27\x1c")
	magicRar      = []byte("Rar!\x1a\x07")
)

// DetectFormat sniffs the container signature of the file at path, falling
// back to the filename extension when the signature is unrecognized.
func DetectFormat(path string) Format {
	f, err := os.Open(path)
	if err == nil {
		header := make([]byte, 8)
		n, _ := f.Read(header)
		f.Close()
		header = header[:n]

		switch {
		case bytes.HasPrefix(header, magicZip), bytes.HasPrefix(header, magicZipEmpty):
			return FormatZip
		case bytes.HasPrefix(header, magicSevenZip):
			return FormatSevenZip
		case bytes.HasPrefix(header, magicRar):
			return FormatRar
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return FormatZip
	case ".7z":
		return FormatSevenZip
	case ".rar":
		return FormatRar
	}
	return FormatUnknown
}

// Open dispatches to the backend for the file's container format.
func Open(path string) (Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveNotFound, "archive not found: %s", path)
	}

	switch DetectFormat(path) {
	case FormatZip:
		return openZip(path)
	case FormatSevenZip:
		return openSevenZip(path)
	case FormatRar:
		return openRar(path)
	default:
		return nil, errors.Newf(errors.ErrArchiveUnsupported, "unsupported archive format: %s", filepath.Ext(path))
	}
}

// CommonRoot returns the first path segment iff every file entry nests
// under it, the single wrapping folder archive authors commonly include.
// Entries are files only, so a top-level file (including one equal to the
// candidate segment) means there is no wrapping folder.
func CommonRoot(entries []string) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}

	first := normalizeEntry(entries[0])
	root, _, found := strings.Cut(first, "/")
	if !found || root == "" {
		return "", false
	}
	for _, entry := range entries {
		if !strings.HasPrefix(normalizeEntry(entry), root+"/") {
			return "", false
		}
	}
	return root, true
}

// stripRoot removes the common root segment from an entry path. The second
// return is false when the entry is the root itself and yields no path.
func stripRoot(entry, root string) (string, bool) {
	if root == "" {
		return entry, true
	}
	if entry == root {
		return "", false
	}
	return strings.TrimPrefix(entry, root+"/"), true
}

// normalizeEntry converts archive entry separators to forward slashes.
// Windows-built archives occasionally carry backslashes.
func normalizeEntry(entry string) string {
	return strings.ReplaceAll(entry, "\\", "/")
}

// resolveDest joins an entry's relative path onto the target directory and
// enforces containment: the resolved destination must remain inside the
// target. This is the zip-slip guard, applied identically by every backend.
func resolveDest(target, rel string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrExtractionFailed, "failed to resolve target")
	}

	dest := filepath.Clean(filepath.Join(absTarget, filepath.FromSlash(rel)))
	if dest != absTarget && !strings.HasPrefix(dest, absTarget+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrPathTraversal, "entry escapes target directory").WithDetail("entry", rel)
	}
	return dest, nil
}
