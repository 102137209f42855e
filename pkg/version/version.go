// Package version extracts and compares mod version strings. Versions come
// from three places, in decreasing order of trust: the archive filename, a
// dedicated version file inside the mod directory, and a version pattern
// embedded in a native library binary. Compare is the single source of
// truth for "has update" decisions everywhere in the system.
package version

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	filenameRe = regexp.MustCompile(`(?i)v?(\d+\.\d+(?:\.\d+){0,2})`)
	lineRe     = regexp.MustCompile(`^\d+\.\d+`)
	binaryRe   = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)(?:\.(\d+))?`)
)

// Version file names recognized inside a mod directory.
var versionFileNames = []string{"VERSION", "version.txt"}

// FromFilename extracts a version token from an archive filename. The last
// match wins — names like "mod-2.0-for-game-1.10.zip" carry the mod version
// at the end.
func FromFilename(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	matches := filenameRe.FindAllStringSubmatch(name, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// FromVersionFile reads a version from a VERSION or version.txt file in the
// mod directory: the first line that starts with a dotted number. Empty
// string when no version file yields one.
func FromVersionFile(modDir string) string {
	for _, name := range versionFileNames {
		data, err := os.ReadFile(filepath.Join(modDir, name))
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" && lineRe.MatchString(line) {
				return line
			}
		}
	}
	return ""
}

// FromBinary scans the first 4KB of a native library file for an embedded
// dotted version and returns (major, minor, patch, build). Build defaults
// to 0 when the pattern has only three components. ok is false when the
// file is unreadable or carries no version pattern.
func FromBinary(libPath string) (parts [4]int, ok bool) {
	f, err := os.Open(libPath)
	if err != nil {
		return parts, false
	}
	defer f.Close()

	buf := make([]byte, 4096)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return parts, false
	}

	m := binaryRe.FindSubmatch(buf[:n])
	if m == nil {
		return parts, false
	}
	for i := 0; i < 3; i++ {
		parts[i], _ = strconv.Atoi(string(m[i+1]))
	}
	if len(m[4]) > 0 {
		parts[3], _ = strconv.Atoi(string(m[4]))
	}
	return parts, true
}

// FormatBinary renders a binary version tuple, omitting a zero build.
func FormatBinary(parts [4]int) string {
	if parts[3] > 0 {
		return strconv.Itoa(parts[0]) + "." + strconv.Itoa(parts[1]) + "." + strconv.Itoa(parts[2]) + "." + strconv.Itoa(parts[3])
	}
	return strconv.Itoa(parts[0]) + "." + strconv.Itoa(parts[1]) + "." + strconv.Itoa(parts[2])
}

// GuessInstalled resolves the installed version of a mod directory: a
// version file wins, then the first native library with an embedded
// version. Empty string when nothing yields one — absence of a version is
// a valid state, not an error.
func GuessInstalled(modDir string, nativeLibExt string) string {
	if v := FromVersionFile(modDir); v != "" {
		return v
	}

	entries, err := os.ReadDir(modDir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), nativeLibExt) {
			continue
		}
		if parts, ok := FromBinary(filepath.Join(modDir, entry.Name())); ok {
			return FormatBinary(parts)
		}
	}
	return ""
}

// Compare compares two dotted version strings. Each is split on ".", parsed
// as integers up to the first non-numeric segment (which truncates
// pre-release suffixes), zero-padded to equal length, and compared
// lexicographically. Returns -1, 0, or 1.
func Compare(v1, v2 string) int {
	p1 := normalize(v1)
	p2 := normalize(v2)

	for len(p1) < len(p2) {
		p1 = append(p1, 0)
	}
	for len(p2) < len(p1) {
		p2 = append(p2, 0)
	}

	for i := range p1 {
		switch {
		case p1[i] < p2[i]:
			return -1
		case p1[i] > p2[i]:
			return 1
		}
	}
	return 0
}

func normalize(v string) []int {
	var parts []int
	for _, part := range strings.Split(v, ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			break
		}
		parts = append(parts, n)
	}
	return parts
}

// HasUpdate decides whether an update should be offered. An unknown
// installed version always offers the update — the user can accept it once
// and start tracking. An unknown latest version never does.
func HasUpdate(installed, latest string) bool {
	if latest == "" {
		return false
	}
	if installed == "" {
		return true
	}
	return Compare(installed, latest) < 0
}
