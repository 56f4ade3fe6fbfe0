package domain

import (
	"path"
	"strings"
)

// ArtifactExtension is the extension of a compiled style sheet, without the dot.
const ArtifactExtension = "css"

// SourceExtensions lists the precompiled style-sheet extensions, without the dot.
var SourceExtensions = []string{"scss", "sass"}

// IsSourceExtension reports whether ext (with or without a leading dot) names a source language.
func IsSourceExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	for _, s := range SourceExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// IsSourcePath reports whether p ends in a source-language extension.
func IsSourcePath(p string) bool {
	for _, s := range SourceExtensions {
		if strings.HasSuffix(p, "."+s) {
			return true
		}
	}
	return false
}

// Extension returns the extension of the last path element without the dot.
func Extension(p string) string {
	return strings.TrimPrefix(path.Ext(p), ".")
}

// ArtifactPath swaps a trailing source extension for the artifact extension.
// Paths without a source extension are returned unchanged.
func ArtifactPath(p string) string {
	for _, s := range SourceExtensions {
		if strings.HasSuffix(p, s) {
			return strings.TrimSuffix(p, s) + ArtifactExtension
		}
	}
	return p
}
