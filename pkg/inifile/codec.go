// Package inifile parses and partially rewrites the line-oriented key=value
// configuration files mods ship with. Parsing is lossy (a structured view
// with inferred field types); writing is surgical — only the value of a
// matched key line changes, every other byte round-trips untouched. That
// property is what lets user settings survive arbitrarily many
// install/update cycles.
package inifile

import (
	"bytes"
	"os"
	"strings"

	"github.com/arthur-debert/modkeep/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Field is one key=value entry of a parsed configuration file.
type Field struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	Type        FieldType `json:"type"`
	Options     []Option  `json:"options,omitempty"`
	Min         *int      `json:"min,omitempty"`
	Max         *int      `json:"max,omitempty"`
	Default     string    `json:"default,omitempty"`
	HasDefault  bool      `json:"-"`
	Secret      bool      `json:"secret,omitempty"`
}

// Section is a named group of fields under a [Section] header.
type Section struct {
	Name   string  `json:"name"`
	Fields []Field `json:"settings"`
}

// Parse builds the structured view of configuration file content. An
// optional UTF-8 byte-order mark is stripped. Comment lines (";") attach to
// the next key line unless a blank line intervenes; key lines outside any
// section are ignored.
func Parse(data []byte, defaults map[string]string) []Section {
	data = bytes.TrimPrefix(data, utf8BOM)

	var sections []Section
	current := -1
	var commentBuffer []string

	for _, rawLine := range splitLines(string(data)) {
		stripped := strings.TrimSpace(strings.TrimRight(rawLine, "\r\n"))

		if stripped == "" {
			commentBuffer = nil
			continue
		}

		if strings.HasPrefix(stripped, "[") && strings.HasSuffix(stripped, "]") {
			sections = append(sections, Section{Name: stripped[1 : len(stripped)-1]})
			current = len(sections) - 1
			commentBuffer = nil
			continue
		}

		if strings.HasPrefix(stripped, ";") {
			commentBuffer = append(commentBuffer, strings.TrimSpace(strings.TrimLeft(stripped, "; ")))
			continue
		}

		if strings.Contains(stripped, "=") && current >= 0 {
			key, val, _ := strings.Cut(stripped, "=")
			key = strings.TrimSpace(key)
			val = strings.TrimSpace(val)
			description := strings.TrimSpace(strings.Join(commentBuffer, " "))
			commentBuffer = nil

			fieldType, options, low, high := InferFieldMeta(key, val, description)

			field := Field{
				Key:         key,
				Value:       val,
				Description: description,
				Type:        fieldType,
				Options:     options,
				Min:         low,
				Max:         high,
				Secret:      IsSecretKey(key),
			}
			if def, ok := ResolveDefault(key, description, defaults); ok {
				field.Default = def
				field.HasDefault = true
			}

			sections[current].Fields = append(sections[current].Fields, field)
		}
	}

	return sections
}

// ParseFile reads and parses a configuration file.
func ParseFile(path string, defaults map[string]string) ([]Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}
	return Parse(data, defaults), nil
}

// WriteValues rewrites the file at path, replacing only the values of key
// lines whose key appears in updates (matched case-insensitively). The
// original indentation of each replaced line and every other byte of the
// file — comments, blank lines, section headers, the BOM, each line's own
// terminator — are preserved. Keys absent from the file are silently
// ignored; the codec never appends. Returns the number of lines replaced.
func WriteValues(path string, updates map[string]string) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrConfigWrite, "failed to read %s", path)
	}

	normalized := make(map[string]string, len(updates))
	for k, v := range updates {
		normalized[strings.ToLower(k)] = v
	}

	bom := []byte{}
	if bytes.HasPrefix(data, utf8BOM) {
		bom = utf8BOM
		data = data[len(utf8BOM):]
	}

	var out bytes.Buffer
	out.Write(bom)

	replaced := 0
	for _, rawLine := range splitLines(string(data)) {
		line, eol := splitEOL(rawLine)
		stripped := strings.TrimSpace(line)

		if stripped != "" && !strings.HasPrefix(stripped, ";") && !strings.HasPrefix(stripped, "[") && strings.Contains(stripped, "=") {
			key := strings.TrimSpace(strings.SplitN(stripped, "=", 2)[0])
			if newVal, ok := normalized[strings.ToLower(key)]; ok {
				indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
				out.WriteString(indent + key + " = " + newVal + eol)
				replaced++
				continue
			}
		}
		out.WriteString(rawLine)
	}

	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return 0, errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", path)
	}
	return replaced, nil
}

// ReadValue scans a configuration file for a single key, case-insensitively,
// skipping comments and section headers. The second return is false when the
// key is absent or the file is unreadable — a missing file is never an
// error here.
func ReadValue(path, key string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	want := strings.ToLower(key)
	for _, line := range splitLines(string(data)) {
		stripped := strings.TrimSpace(strings.TrimRight(line, "\r\n"))
		if strings.HasPrefix(stripped, ";") || strings.HasPrefix(stripped, "[") || !strings.Contains(stripped, "=") {
			continue
		}
		k, v, _ := strings.Cut(stripped, "=")
		if strings.ToLower(strings.TrimSpace(k)) == want {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// ExtractValues pulls every key=value pair out of raw configuration bytes,
// keyed by lowercased key. Both ";" and "#" comment styles are skipped —
// snapshot content may predate the mod switching comment markers.
func ExtractValues(data []byte) map[string]string {
	data = bytes.TrimPrefix(data, utf8BOM)

	values := make(map[string]string)
	for _, line := range splitLines(string(data)) {
		stripped := strings.TrimSpace(strings.TrimRight(line, "\r\n"))
		if stripped == "" || strings.HasPrefix(stripped, "#") || strings.HasPrefix(stripped, ";") {
			continue
		}
		if !strings.Contains(stripped, "=") || strings.HasPrefix(stripped, "[") {
			continue
		}
		k, v, _ := strings.Cut(stripped, "=")
		values[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return values
}

// splitLines splits content into lines, each retaining its own terminator.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, content[start:i+1])
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

// splitEOL separates a line from its terminator.
func splitEOL(line string) (string, string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
