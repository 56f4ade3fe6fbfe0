// Package directive reads the build directive from the first line of a
// source document.
package directive

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/sassline/internal/core/domain"
)

var (
	directiveLine = regexp.MustCompile(`^\s*//\s*(.+)`)
	digits        = regexp.MustCompile(`^[0-9]+$`)
)

// Parse extracts the options declared on the first line of content.
//
// The directive has the form "// key: value, key: value". Items without a
// colon are skipped. Content whose first line is not a directive yields an
// empty set of options.
func Parse(content []byte) domain.Options {
	opts := make(domain.Options)

	line := FirstLine(content)
	m := directiveLine.FindStringSubmatch(line)
	if m == nil {
		return opts
	}

	for item := range strings.SplitSeq(m[1], ",") {
		key, value, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		opts[key] = Coerce(strings.TrimSpace(value))
	}

	return opts
}

// FirstLine returns content up to the first line feed, without a trailing
// carriage return. Content without a line feed is a single line.
func FirstLine(content []byte) string {
	line := string(content)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSuffix(line, "\r")
}

// Coerce maps the literal spellings of booleans, null, undefined and
// non-negative integers to typed values. Everything else stays a string.
func Coerce(raw string) domain.Value {
	switch raw {
	case "true":
		return domain.BoolValue(true)
	case "false":
		return domain.BoolValue(false)
	case "null":
		return domain.NullValue()
	case "undefined":
		return domain.UndefinedValue()
	}

	if digits.MatchString(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return domain.IntValue(n)
		}
	}

	return domain.StringValue(raw)
}
