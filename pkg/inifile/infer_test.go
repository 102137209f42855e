// Test Type: Unit Test
// Description: Tests for configuration field type inference from comment text

package inifile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferEnumFromPipeDelimitedComment(t *testing.T) {
	desc := "Display style (0 = None | 1 = Names | 2 = Names and bars)"
	fieldType, opts, low, high := InferFieldMeta("overhead_player_display", "2", desc)

	assert.Equal(t, FieldSelect, fieldType)
	require.Len(t, opts, 3)
	assert.Equal(t, Option{Value: "0", Label: "None"}, opts[0])
	assert.Equal(t, Option{Value: "2", Label: "Names and bars"}, opts[2])
	assert.Nil(t, low)
	assert.Nil(t, high)
}

func TestInferTwoOptionEnumCloseValues(t *testing.T) {
	desc := "Save mode (1 = Normal | 2 = Hardcore)"
	fieldType, opts, _, _ := InferFieldMeta("save_mode", "1", desc)

	assert.Equal(t, FieldSelect, fieldType)
	assert.Len(t, opts, 2)
}

func TestTwoOptionWideSpanIsNotEnum(t *testing.T) {
	// A (0 = off | 100 = max) annotation is a range, not a two-value enum
	desc := "Scaling (0 = off | 100 = max)"
	fieldType, opts, low, high := InferFieldMeta("enemy_health_scaling", "35", desc)

	assert.Equal(t, FieldNumber, fieldType)
	assert.Nil(t, opts)
	require.NotNil(t, low)
	require.NotNil(t, high)
	assert.Equal(t, 0, *low)
	assert.Equal(t, 100, *high)
}

func TestInferBooleanFromPhrasing(t *testing.T) {
	tests := []struct {
		name  string
		value string
		desc  string
	}{
		{"if enabled", "1", "Shows invaders on the map if enabled"},
		{"if set to 1", "0", "Skips the intro movies if set to 1"},
		{"zero equals false", "0", "0 = false, 1 = true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fieldType, opts, _, _ := InferFieldMeta("some_toggle", tt.value, tt.desc)
			assert.Equal(t, FieldSelect, fieldType)
			require.Len(t, opts, 2)
			assert.Equal(t, "Disabled", opts[0].Label)
			assert.Equal(t, "Enabled", opts[1].Label)
		})
	}
}

func TestBooleanPhrasingNeedsBinaryValue(t *testing.T) {
	fieldType, opts, _, _ := InferFieldMeta("scaling", "35", "active if enabled")
	assert.Equal(t, FieldNumber, fieldType)
	assert.Nil(t, opts)
}

func TestInferRangeFromWords(t *testing.T) {
	fieldType, _, low, high := InferFieldMeta("volume", "7", "Value between 0 and 10")
	assert.Equal(t, FieldNumber, fieldType)
	require.NotNil(t, low)
	require.NotNil(t, high)
	assert.Equal(t, 0, *low)
	assert.Equal(t, 10, *high)
}

func TestInferPlainNumber(t *testing.T) {
	tests := []struct {
		value string
	}{
		{"0"}, {"42"}, {"-3"},
	}

	for _, tt := range tests {
		fieldType, opts, low, high := InferFieldMeta("count", tt.value, "")
		assert.Equal(t, FieldNumber, fieldType, "value %q", tt.value)
		assert.Nil(t, opts)
		assert.Nil(t, low)
		assert.Nil(t, high)
	}
}

func TestInferFreeText(t *testing.T) {
	fieldType, opts, low, high := InferFieldMeta("mod_language_override", "en-US", "")
	assert.Equal(t, FieldText, fieldType)
	assert.Nil(t, opts)
	assert.Nil(t, low)
	assert.Nil(t, high)
}

func TestSecretKey(t *testing.T) {
	assert.True(t, IsSecretKey("cooppassword"))
	assert.True(t, IsSecretKey("CoopPassword"))
	assert.False(t, IsSecretKey("volume"))
}

func TestResolveDefault(t *testing.T) {
	defaults := map[string]string{"enemy_health_scaling": "35"}

	// Game default table wins
	v, ok := ResolveDefault("enemy_health_scaling", "default: 50", defaults)
	assert.True(t, ok)
	assert.Equal(t, "35", v)

	// Comment pattern as fallback
	v, ok = ResolveDefault("boss_health_scaling", "Scaling percent, default: 100", defaults)
	assert.True(t, ok)
	assert.Equal(t, "100", v)

	// Nothing known
	_, ok = ResolveDefault("cooppassword", "Session password", nil)
	assert.False(t, ok)
}

func TestOptionLabelParenTrimming(t *testing.T) {
	desc := "(0 = Disabled | 1 = Enabled (recommended) | 2 = Forced)"
	opts := extractOptionsFromComment(desc)
	require.Len(t, opts, 3)
	// Balanced parens in a label survive; a stray closing paren is trimmed
	assert.Equal(t, "Enabled (recommended)", opts[1].Label)
	assert.Equal(t, "Forced", opts[2].Label)
}
