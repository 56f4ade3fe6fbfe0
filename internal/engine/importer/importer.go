// Package importer resolves import specifiers met by the compiler against
// the remote content cache.
package importer

import (
	"context"
	"errors"
	"path"
	"strings"

	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/sassline/internal/engine/pathresolve"
	"go.trai.ch/zerr"
)

var _ ports.ImportResolver = (*Resolver)(nil)

// Resolver creates importers scoped to a single compiler invocation.
type Resolver struct {
	cache  ports.ContentCache
	logger ports.Logger
}

// New creates a Resolver reading documents through cache.
func New(cache ports.ContentCache, logger ports.Logger) *Resolver {
	return &Resolver{cache: cache, logger: logger}
}

// For returns an importer bound to ictx.
func (r *Resolver) For(ictx domain.ImportContext) ports.Importer {
	return &scoped{resolver: r, ictx: ictx}
}

type scoped struct {
	resolver *Resolver
	ictx     domain.ImportContext
}

// Import resolves req.Current relative to the document being compiled.
// A specifier without extension gets the extension of the top-level
// document. When the resolved document does not exist, the partial form
// with a leading underscore is tried.
func (s *scoped) Import(ctx context.Context, req ports.ImportRequest) (*ports.ImportResult, error) {
	spec := req.Current
	if path.Ext(spec) == "" && s.ictx.TopLevelExtension != "" {
		spec += "." + s.ictx.TopLevelExtension
	}

	resolved, err := pathresolve.Resolve(s.ictx.CurrentSourcePath, spec, false)
	if err != nil {
		return nil, s.fail(err, req.Current)
	}

	content, err := s.resolver.cache.GetOrFetch(ctx, s.ictx.WorkspaceID, resolved)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		if partial, ok := partialPath(resolved); ok {
			s.resolver.logger.Debug("trying partial import", "path", partial)
			if content, perr := s.resolver.cache.GetOrFetch(ctx, s.ictx.WorkspaceID, partial); perr == nil {
				return &ports.ImportResult{Path: partial, Content: content}, nil
			}
		}
	}
	if err != nil {
		return nil, s.fail(err, req.Current)
	}

	return &ports.ImportResult{Path: resolved, Content: content}, nil
}

func (s *scoped) fail(err error, spec string) error {
	err = zerr.Wrap(err, domain.ErrImportFailed.Error())
	err = zerr.With(err, "import", spec)
	return zerr.With(err, "from", s.ictx.CurrentSourcePath)
}

// partialPath prefixes the last path element with an underscore.
func partialPath(p string) (string, bool) {
	dir, base := path.Split(p)
	if base == "" || strings.HasPrefix(base, "_") {
		return "", false
	}
	return dir + "_" + base, true
}
