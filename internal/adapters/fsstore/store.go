// Package fsstore implements a workspace store backed by local directories.
//
// Each workspace identifier maps to a root directory. Workspace paths are
// slash separated and rooted at that directory; a path that climbs above the
// root is rejected.
package fsstore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/sassline/internal/engine/pathresolve"
	"go.trai.ch/zerr"
)

// DefaultChunkSize is the size above which documents are streamed in chunks.
const DefaultChunkSize = 32 * 1024

const revisionTimeFormat = "20060102T150405.000000000Z"

var _ ports.Store = (*Store)(nil)

// Store is a ports.Store over local directories.
type Store struct {
	roots     map[string]string
	chunkSize int
	clock     clockwork.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithChunkSize sets the size above which Get streams chunks.
func WithChunkSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithClock sets the clock used to name revisions.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// New creates a store for the given workspace roots.
func New(roots map[string]string, opts ...Option) *Store {
	s := &Store{
		roots:     make(map[string]string, len(roots)),
		chunkSize: DefaultChunkSize,
		clock:     clockwork.NewRealClock(),
	}
	for id, root := range roots {
		s.roots[id] = filepath.Clean(root)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get reads a document. Documents larger than the chunk size are returned
// as a chunk sequence that reads the file lazily.
func (s *Store) Get(ctx context.Context, workspaceID, path string, _ ports.GetOptions) (*ports.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := s.locate(workspaceID, path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, zerr.With(zerr.Wrap(domain.ErrDocumentNotFound, "stat document"), "path", path)
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "failed to stat document"), "path", path)
	case info.IsDir():
		return nil, zerr.With(zerr.Wrap(domain.ErrDocumentNotFound, "path is a directory"), "path", path)
	}

	if info.Size() <= int64(s.chunkSize) {
		//nolint:gosec // file is contained in a configured workspace root
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read document"), "path", path)
		}
		return &ports.Payload{Content: data}, nil
	}

	return &ports.Payload{Chunks: s.chunks(file)}, nil
}

func (s *Store) chunks(file string) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		//nolint:gosec // file is contained in a configured workspace root
		f, err := os.Open(file)
		if err != nil {
			yield(nil, zerr.Wrap(err, "failed to open document"))
			return
		}
		defer func() { _ = f.Close() }()

		buf := make([]byte, s.chunkSize)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				if !yield(chunk, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, zerr.Wrap(err, "failed to read document chunk"))
				return
			}
		}
	}
}

// Save writes a document through a temporary file and a rename. With
// revisioning the previous content is copied below the revisions directory.
func (s *Store) Save(ctx context.Context, workspaceID, path string, data []byte, opts ports.SaveOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := s.locate(workspaceID, path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create document directory"), "path", path)
	}

	if opts.Revisioned {
		if err := s.keepRevision(workspaceID, file); err != nil {
			return zerr.With(err, "path", path)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temporary file"), "path", path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write document"), "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to set document permissions"), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close document"), "path", path)
	}
	if err := os.Rename(tmpName, file); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace document"), "path", path)
	}

	return nil
}

func (s *Store) keepRevision(workspaceID, file string) error {
	//nolint:gosec // file is contained in a configured workspace root
	prev, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.Wrap(err, "failed to read previous revision")
	}

	root := s.roots[workspaceID]
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return zerr.Wrap(err, "failed to compute revision path")
	}

	target := filepath.Join(domain.RevisionsPath(root), rel+"."+s.clock.Now().UTC().Format(revisionTimeFormat))
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create revisions directory")
	}
	if err := os.WriteFile(target, prev, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write revision")
	}
	return nil
}

// locate maps a workspace path onto the local filesystem.
func (s *Store) locate(workspaceID, path string) (string, error) {
	root, ok := s.roots[workspaceID]
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownWorkspace, "locate document"), "workspace", workspaceID)
	}

	normalized, err := pathresolve.Normalize("/" + path)
	if err != nil {
		return "", err
	}

	rel := filepath.FromSlash(strings.TrimPrefix(normalized, "/"))
	if rel == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrDocumentNotFound, "empty document path"), "path", path)
	}
	if rel == domain.StateDirName || strings.HasPrefix(rel, domain.StateDirName+string(filepath.Separator)) {
		return "", zerr.With(zerr.Wrap(domain.ErrPathOutOfBounds, "state directory is not addressable"), "path", path)
	}

	return filepath.Join(root, rel), nil
}
