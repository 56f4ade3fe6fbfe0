// Package sasscompiler runs an external Sass binary.
//
// The binary never sees the workspace. Before each run the source and every
// document it imports are fetched through the invocation's importer and
// written to a private staging directory; import specifiers are rewritten
// to the staged files.
package sasscompiler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	statementRe = regexp.MustCompile(`@(?:import|use|forward)\s+((?:"[^"]*"|'[^']*')(?:\s*,\s*(?:"[^"]*"|'[^']*'))*)`)
	quotedRe    = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)
)

// waitDelay bounds how long output pipes are drained after the process is killed.
const waitDelay = 2 * time.Second

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler by executing a Sass binary.
type Compiler struct {
	binary string
	args   []string
	logger ports.Logger
}

// New creates a compiler from cfg.
func New(cfg domain.CompilerConfig, logger ports.Logger) *Compiler {
	return &Compiler{binary: cfg.Binary, args: cfg.Args, logger: logger}
}

// Compile stages req and runs the binary on the staged source. Exit codes
// other than zero and unresolvable imports are reported through the
// result; err is only returned when the binary cannot be run.
func (c *Compiler) Compile(ctx context.Context, req ports.CompileRequest) (*ports.CompileResult, error) {
	dir, err := os.MkdirTemp("", "sassline-*")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create staging directory")
	}
	defer func() { _ = os.RemoveAll(dir) }()

	st := &stager{dir: dir, importer: req.Importer, staged: make(map[string]string)}
	entry, err := st.stage(ctx, req.Path, req.Source)
	if err != nil {
		var ie *importError
		if errors.As(err, &ie) {
			return &ports.CompileResult{Status: 1, Formatted: ie.Error()}, nil
		}
		return nil, err
	}

	args := append(append([]string{}, c.args...), entry)
	//nolint:gosec // binary and arguments come from the configuration file
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("running compiler", "binary", c.binary, "path", req.Path, "imports", len(st.staged)-1)

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err != nil && ctx.Err() != nil:
		return nil, zerr.With(zerr.Wrap(ctx.Err(), "compiler interrupted"), "path", req.Path)
	case errors.As(err, &exitErr):
		return &ports.CompileResult{
			Status:    exitErr.ExitCode(),
			Formatted: formatDiagnostic(stderr.String(), dir),
		}, nil
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "failed to run compiler"), "binary", c.binary)
	}

	return &ports.CompileResult{Text: stdout.Bytes()}, nil
}

// formatDiagnostic trims compiler output and hides the staging directory.
func formatDiagnostic(stderr, dir string) string {
	return strings.TrimSpace(strings.ReplaceAll(stderr, dir, ""))
}

type importError struct {
	spec string
	from string
	err  error
}

func (e *importError) Error() string {
	return "Can't find stylesheet to import: " + e.spec + " (from " + e.from + "): " + e.err.Error()
}

func (e *importError) Unwrap() error { return e.err }

type stager struct {
	dir      string
	importer ports.Importer
	// staged maps workspace paths to staged file paths.
	staged map[string]string
}

// stage writes content for workspacePath and everything it imports, and
// returns the staged file path.
func (s *stager) stage(ctx context.Context, workspacePath string, content []byte) (string, error) {
	if p, ok := s.staged[workspacePath]; ok {
		return p, nil
	}

	target := filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(workspacePath, "/")))
	s.staged[workspacePath] = target

	rewritten, err := s.rewrite(ctx, workspacePath, content)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, "failed to create staging directory")
	}
	if err := os.WriteFile(target, rewritten, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stage document"), "path", workspacePath)
	}
	return target, nil
}

// rewrite replaces every resolvable import specifier in content with the
// staged path of the imported document.
func (s *stager) rewrite(ctx context.Context, from string, content []byte) ([]byte, error) {
	var firstErr error

	out := statementRe.ReplaceAllFunc(content, func(stmt []byte) []byte {
		if firstErr != nil {
			return stmt
		}
		return quotedRe.ReplaceAllFunc(stmt, func(quoted []byte) []byte {
			if firstErr != nil {
				return quoted
			}
			spec := string(quoted[1 : len(quoted)-1])
			if !resolvable(spec) {
				return quoted
			}

			res, err := s.importer.Import(ctx, ports.ImportRequest{Current: spec})
			if err != nil {
				firstErr = &importError{spec: spec, from: from, err: err}
				return quoted
			}
			staged, err := s.stage(ctx, res.Path, res.Content)
			if err != nil {
				firstErr = err
				return quoted
			}
			q := quoted[0]
			return []byte(string(q) + filepath.ToSlash(staged) + string(q))
		})
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// resolvable reports whether spec names a workspace document rather than a
// built-in module, a remote URL or a plain CSS import.
func resolvable(spec string) bool {
	switch {
	case spec == "",
		strings.HasPrefix(spec, "sass:"),
		strings.HasPrefix(spec, "http://"),
		strings.HasPrefix(spec, "https://"),
		strings.HasPrefix(spec, "//"),
		strings.HasSuffix(spec, ".css"):
		return false
	}
	return true
}
