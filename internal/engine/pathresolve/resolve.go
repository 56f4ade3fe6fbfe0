// Package pathresolve computes destination paths for compile directives.
//
// Paths are slash separated workspace paths. Nothing here touches the
// filesystem.
package pathresolve

import (
	"strings"

	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/zerr"
)

// SameAsSource is the target that asks for the source path with its
// extension swapped for the artifact extension.
const SameAsSource = "."

// Resolve computes the destination for target relative to sourcePath.
//
// It returns domain.ErrPathDegenerate when the normalized destination is
// sourcePath itself, and domain.ErrPathOutOfBounds when a ".." segment has
// no preceding segment to consume.
func Resolve(sourcePath, target string, allowSamePath bool) (string, error) {
	var destination string
	switch {
	case target == SameAsSource && allowSamePath:
		destination = domain.ArtifactPath(sourcePath)
	case strings.HasPrefix(target, "/"):
		destination = target
	default:
		destination = join(sourcePath, target)
	}

	normalized, err := Normalize(destination)
	if err != nil {
		return "", zerr.With(zerr.With(err, "source", sourcePath), "target", target)
	}

	if normalized == sourcePath {
		return "", zerr.With(zerr.Wrap(domain.ErrPathDegenerate, "resolve destination"), "path", sourcePath)
	}

	return normalized, nil
}

// join places target in the directory of sourcePath. A source without any
// slash has no directory and target stays relative.
func join(sourcePath, target string) string {
	idx := strings.LastIndex(sourcePath, "/")
	if idx < 0 {
		return target
	}
	return sourcePath[:idx] + "/" + target
}

// Normalize drops "." segments, lets every ".." consume the nearest
// preceding segment and collapses runs of slashes.
func Normalize(p string) (string, error) {
	segments := strings.Split(p, "/")

	for i, seg := range segments {
		switch seg {
		case ".":
			segments[i] = ""
		case "..":
			segments[i] = ""
			j := i - 1
			for j >= 0 && segments[j] == "" {
				j--
			}
			if j < 0 {
				return "", zerr.With(zerr.Wrap(domain.ErrPathOutOfBounds, "normalize path"), "path", p)
			}
			segments[j] = ""
		}
	}

	return collapseSlashes(strings.Join(segments, "/")), nil
}

func collapseSlashes(p string) string {
	var b strings.Builder
	b.Grow(len(p))

	prevSlash := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}

	return b.String()
}
