package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// messager matches errors that can report their own message without the
// rest of the chain, such as *zerr.Error.
type messager interface {
	Message() string
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain of err. Levels with an empty message
// only carry metadata, which moves to the next level.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		meta := metadataOf(current)
		if m.Message() == "" {
			pending = mergeMetadata(pending, meta)
			current = errors.Unwrap(current)
			continue
		}

		entries = append(entries, ErrorEntry{
			Message:  m.Message(),
			Metadata: mergeMetadata(pending, meta),
		})
		pending = nil
		current = errors.Unwrap(current)
	}

	return entries
}

// metadataOf reads the key/value pairs a zerr error exposes through its
// slog.LogValuer implementation.
func metadataOf(err error) map[string]any {
	lv, ok := err.(slog.LogValuer)
	if !ok {
		return nil
	}

	v := lv.LogValue()
	if v.Kind() != slog.KindGroup {
		return nil
	}

	meta := map[string]any{}
	for _, attr := range v.Group() {
		switch attr.Key {
		case "msg", "stacktrace", "cause":
			continue
		}
		meta[attr.Key] = attr.Value.Any()
	}
	return meta
}

func mergeMetadata(a, b map[string]any) map[string]any {
	if len(a) == 0 {
		return b
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// formatErrorEntries renders the chain as a headline followed by an
// indented list of causes.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			lines = append(lines, metadataLines("       ", entry.Metadata)...)
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		lines = append(lines, metadataLines("      ", entry.Metadata)...)
	}

	return strings.Join(lines, "\n")
}

func metadataLines(indent string, meta map[string]any) []string {
	if len(meta) == 0 {
		return nil
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, meta[k]))
	}
	return lines
}
