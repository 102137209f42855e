package inifile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FieldType is the UI/semantic type inferred for a configuration field.
type FieldType string

const (
	// FieldSelect is an enumerated option set (including boolean toggles)
	FieldSelect FieldType = "select"
	// FieldNumber is a numeric value, optionally bounded
	FieldNumber FieldType = "number"
	// FieldText is free text
	FieldText FieldType = "text"
)

// Option is one value/label pair of an enumerated field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	optsStartRe   = regexp.MustCompile(`(\d+)\s*=\s*`)
	pipeSplitRe   = regexp.MustCompile(`\s*\|\s*`)
	optPartRe     = regexp.MustCompile(`^(\d+)\s*=\s*(.+)`)
	spacedOptsRe  = regexp.MustCompile(`(\d+)\s*=\s*([A-Za-z][A-Za-z_ ()\-]*?)(?:\s{2,}|\s*$)`)
	boolHintRe    = regexp.MustCompile(`(?i)(if enabled|if set to 1|0\s*=\s*false)`)
	rangeWordsRe  = regexp.MustCompile(`(?i)(?:between|from)\s+(\d+)\s+(?:and|to)\s+(\d+)`)
	rangePipeRe   = regexp.MustCompile(`\((\d+)\s*=\s*\w+\s*\|\s*(\d+)\s*=\s*\w+`)
	defaultHintRe = regexp.MustCompile(`(?i)\bdefault[:\s]+(\d+)`)
	intLiteralRe  = regexp.MustCompile(`^-?\d+$`)
)

// extractOptionsFromComment parses an enumerated option set out of comment
// text. Pipe-delimited "N = Label | M = Label" runs are preferred; a run of
// space-delimited "N = Label" tokens is a fallback. Two-option sets are only
// accepted when the numeric values are close together, so a "(0 = off |
// 100 = max)" range annotation is not misread as an enum.
func extractOptionsFromComment(text string) []Option {
	if loc := optsStartRe.FindStringIndex(text); loc != nil {
		optsText := text[loc[0]:]
		parts := pipeSplitRe.Split(optsText, -1)
		if len(parts) >= 2 {
			var opts []Option
			for _, part := range parts {
				m := optPartRe.FindStringSubmatch(strings.TrimSpace(part))
				if m == nil {
					continue
				}
				label := strings.TrimSpace(m[2])
				if strings.HasSuffix(label, ")") && !strings.Contains(label, "(") {
					label = strings.TrimRight(label, ")")
				}
				opts = append(opts, Option{Value: m[1], Label: label})
			}
			if len(opts) >= 3 {
				return opts
			}
			if len(opts) == 2 {
				vals := optionValues(opts)
				if vals[len(vals)-1]-vals[0] <= 2 {
					return opts
				}
			}
		}
	}

	matches := spacedOptsRe.FindAllStringSubmatch(text, -1)
	if len(matches) >= 2 {
		var opts []Option
		for _, m := range matches {
			opts = append(opts, Option{Value: strings.TrimSpace(m[1]), Label: strings.TrimSpace(m[2])})
		}
		vals := optionValues(opts)
		if vals[len(vals)-1]-vals[0] <= len(matches) {
			return opts
		}
	}

	return nil
}

func optionValues(opts []Option) []int {
	vals := make([]int, 0, len(opts))
	for _, o := range opts {
		n, err := strconv.Atoi(o.Value)
		if err != nil {
			continue
		}
		vals = append(vals, n)
	}
	sort.Ints(vals)
	return vals
}

// extractRangeFromComment finds a numeric range in comment text, either
// spelled out ("between 0 and 100") or as the end points of a pipe
// annotation whose span is too wide to be an enum.
func extractRangeFromComment(text string) (*int, *int) {
	if m := rangeWordsRe.FindStringSubmatch(text); m != nil {
		low, _ := strconv.Atoi(m[1])
		high, _ := strconv.Atoi(m[2])
		return &low, &high
	}
	if m := rangePipeRe.FindStringSubmatch(text); m != nil {
		low, _ := strconv.Atoi(m[1])
		high, _ := strconv.Atoi(m[2])
		if high-low > 2 {
			return &low, &high
		}
	}
	return nil, nil
}

// InferFieldMeta infers the semantic type of a single key=value field from
// its raw value and the comment block preceding it. Pure function of its
// inputs.
func InferFieldMeta(key, value, description string) (FieldType, []Option, *int, *int) {
	if description != "" {
		if opts := extractOptionsFromComment(description); opts != nil {
			return FieldSelect, opts, nil, nil
		}
	}

	trimmed := strings.TrimSpace(value)
	if description != "" && (trimmed == "0" || trimmed == "1") {
		if boolHintRe.MatchString(description) {
			boolOpts := []Option{
				{Value: "0", Label: "Disabled"},
				{Value: "1", Label: "Enabled"},
			}
			return FieldSelect, boolOpts, nil, nil
		}
	}

	var low, high *int
	if description != "" {
		low, high = extractRangeFromComment(description)
	}

	if intLiteralRe.MatchString(trimmed) {
		return FieldNumber, nil, low, high
	}

	return FieldText, nil, nil, nil
}

// IsSecretKey reports whether a key should be presented masked. This affects
// presentation only, never storage.
func IsSecretKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "password")
}

// ResolveDefault resolves a field's default value: an explicit per-game
// default table wins, then a "default: N" pattern in the comment text.
// The second return is false when no default is known.
func ResolveDefault(key, description string, defaults map[string]string) (string, bool) {
	if defaults != nil {
		if v, ok := defaults[key]; ok {
			return v, true
		}
	}
	if description != "" {
		if m := defaultHintRe.FindStringSubmatch(description); m != nil {
			return m[1], true
		}
	}
	return "", false
}
