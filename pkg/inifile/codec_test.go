// Test Type: Unit Test
// Description: Tests for the configuration file codec - parse, partial write, value read

package inifile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleINI = "[GAMEPLAY]\n" +
	"; Scales enemy health, value between 0 and 100\n" +
	"; default: 35\n" +
	"enemy_health_scaling = 35\n" +
	"\n" +
	"; Allows invasions if enabled\n" +
	"allow_invaders = 1\n" +
	"\n" +
	"[PASSWORD]\n" +
	"; Session password shared with friends\n" +
	"cooppassword =\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSections(t *testing.T) {
	sections := Parse([]byte(sampleINI), nil)
	require.Len(t, sections, 2)

	assert.Equal(t, "GAMEPLAY", sections[0].Name)
	require.Len(t, sections[0].Fields, 2)

	health := sections[0].Fields[0]
	assert.Equal(t, "enemy_health_scaling", health.Key)
	assert.Equal(t, "35", health.Value)
	assert.Equal(t, "Scales enemy health, value between 0 and 100 default: 35", health.Description)
	assert.Equal(t, FieldNumber, health.Type)
	require.NotNil(t, health.Min)
	assert.Equal(t, 0, *health.Min)
	assert.Equal(t, 100, *health.Max)
	assert.True(t, health.HasDefault)
	assert.Equal(t, "35", health.Default)

	invaders := sections[0].Fields[1]
	assert.Equal(t, FieldSelect, invaders.Type)
	require.Len(t, invaders.Options, 2)

	password := sections[1].Fields[0]
	assert.True(t, password.Secret)
	assert.Equal(t, FieldText, password.Type)
}

func TestParseGameDefaultsWin(t *testing.T) {
	defaults := map[string]string{"enemy_health_scaling": "50"}
	sections := Parse([]byte(sampleINI), defaults)

	health := sections[0].Fields[0]
	assert.Equal(t, "50", health.Default)
}

func TestParseBlankLineClearsComment(t *testing.T) {
	content := "[S]\n; orphaned comment\n\nkey = 1\n"
	sections := Parse([]byte(content), nil)
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Fields, 1)
	assert.Empty(t, sections[0].Fields[0].Description)
}

func TestParseKeysOutsideSectionIgnored(t *testing.T) {
	content := "stray = 1\n[S]\nkept = 2\n"
	sections := Parse([]byte(content), nil)
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Fields, 1)
	assert.Equal(t, "kept", sections[0].Fields[0].Key)
}

func TestParseStripsBOM(t *testing.T) {
	content := "\xEF\xBB\xBF[S]\nkey = 1\n"
	sections := Parse([]byte(content), nil)
	require.Len(t, sections, 1)
	assert.Equal(t, "S", sections[0].Name)
}

func TestParseFirstEqualsSplit(t *testing.T) {
	content := "[S]\nformula = a=b+c\n"
	sections := Parse([]byte(content), nil)
	assert.Equal(t, "a=b+c", sections[0].Fields[0].Value)
}

func TestWriteValuesPreservesLayout(t *testing.T) {
	path := writeTemp(t, "settings.ini", sampleINI)

	n, err := WriteValues(path, map[string]string{"enemy_health_scaling": "70"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "[GAMEPLAY]\n" +
		"; Scales enemy health, value between 0 and 100\n" +
		"; default: 35\n" +
		"enemy_health_scaling = 70\n" +
		"\n" +
		"; Allows invasions if enabled\n" +
		"allow_invaders = 1\n" +
		"\n" +
		"[PASSWORD]\n" +
		"; Session password shared with friends\n" +
		"cooppassword =\n"
	assert.Equal(t, want, string(got))
}

func TestWriteValuesCaseInsensitive(t *testing.T) {
	path := writeTemp(t, "settings.ini", "[S]\nCoopPassword = old\n")

	n, err := WriteValues(path, map[string]string{"cooppassword": "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := os.ReadFile(path)
	// Original key casing is kept
	assert.Equal(t, "[S]\nCoopPassword = hunter2\n", string(got))
}

func TestWriteValuesIgnoresMissingKeys(t *testing.T) {
	content := "[S]\nkey = 1\n"
	path := writeTemp(t, "settings.ini", content)

	n, err := WriteValues(path, map[string]string{"absent": "x"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, _ := os.ReadFile(path)
	assert.Equal(t, content, string(got))
}

func TestWriteValuesPreservesBOMAndCRLF(t *testing.T) {
	content := "\xEF\xBB\xBF[S]\r\n; note\r\nkey = 1\r\nother = 2\r\n"
	path := writeTemp(t, "settings.ini", content)

	n, err := WriteValues(path, map[string]string{"key": "9"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := os.ReadFile(path)
	assert.Equal(t, "\xEF\xBB\xBF[S]\r\n; note\r\nkey = 9\r\nother = 2\r\n", string(got))
}

func TestWriteValuesPreservesIndent(t *testing.T) {
	path := writeTemp(t, "settings.ini", "[S]\n    key = 1\n")

	_, err := WriteValues(path, map[string]string{"key": "2"})
	require.NoError(t, err)

	got, _ := os.ReadFile(path)
	assert.Equal(t, "[S]\n    key = 2\n", string(got))
}

func TestReadValue(t *testing.T) {
	path := writeTemp(t, "settings.ini", sampleINI)

	v, ok := ReadValue(path, "ALLOW_INVADERS")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = ReadValue(path, "missing")
	assert.False(t, ok)

	// Unreadable file is absence, not an error
	_, ok = ReadValue(filepath.Join(t.TempDir(), "nope.ini"), "key")
	assert.False(t, ok)
}

func TestExtractValues(t *testing.T) {
	data := []byte("# hash comment\n; semi comment\n[Section]\nVolume = 7\nname = Ash\n")
	values := ExtractValues(data)

	assert.Equal(t, map[string]string{"volume": "7", "name": "Ash"}, values)
}
