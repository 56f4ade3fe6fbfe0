package sasscompiler_test

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sassline/internal/adapters/logger"
	"go.trai.ch/sassline/internal/adapters/sasscompiler"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/sassline/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func newCompiler(binary string, args ...string) *sasscompiler.Compiler {
	return sasscompiler.New(domain.CompilerConfig{Binary: binary, Args: args}, logger.NewDiscard())
}

func TestCompile_PassesStagedSource(t *testing.T) {
	requireBinary(t, "cat")

	ctrl := gomock.NewController(t)
	importer := mocks.NewMockImporter(ctrl)

	res, err := newCompiler("cat").Compile(context.Background(), ports.CompileRequest{
		Path:     "/styles/site.scss",
		Source:   []byte("body { color: red; }\n"),
		Importer: importer,
	})
	require.NoError(t, err)
	assert.Zero(t, res.Status)
	assert.Equal(t, "body { color: red; }\n", string(res.Text))
}

func TestCompile_StagesImports(t *testing.T) {
	requireBinary(t, "cat")

	ctrl := gomock.NewController(t)
	importer := mocks.NewMockImporter(ctrl)
	importer.EXPECT().
		Import(gomock.Any(), ports.ImportRequest{Current: "vars"}).
		Return(&ports.ImportResult{Path: "/styles/_vars.scss", Content: []byte("@use 'colors';\n")}, nil)
	importer.EXPECT().
		Import(gomock.Any(), ports.ImportRequest{Current: "colors"}).
		Return(&ports.ImportResult{Path: "/styles/colors.scss", Content: []byte("$c: red;\n")}, nil)

	src := "@use \"sass:math\";\n@import \"vars\", \"theme.css\";\n@import url(print.css);\nbody { color: $c; }\n"
	res, err := newCompiler("cat").Compile(context.Background(), ports.CompileRequest{
		Path:     "/styles/site.scss",
		Source:   []byte(src),
		Importer: importer,
	})
	require.NoError(t, err)

	out := string(res.Text)
	assert.Contains(t, out, `@use "sass:math";`)
	assert.Contains(t, out, `"theme.css";`)
	assert.Contains(t, out, `@import url(print.css);`)
	assert.Contains(t, out, `/styles/_vars.scss"`)
	assert.NotContains(t, out, `"vars"`)
}

func TestCompile_UnresolvableImportIsCompileFailure(t *testing.T) {
	requireBinary(t, "cat")

	ctrl := gomock.NewController(t)
	importer := mocks.NewMockImporter(ctrl)
	importer.EXPECT().Import(gomock.Any(), gomock.Any()).Return(nil, errors.New("document not found"))

	res, err := newCompiler("cat").Compile(context.Background(), ports.CompileRequest{
		Path:     "/a.scss",
		Source:   []byte(`@use "missing";`),
		Importer: importer,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Status)
	assert.Contains(t, res.Formatted, "missing")
	assert.Contains(t, res.Formatted, "/a.scss")
}

func TestCompile_ImportCycleIsStagedOnce(t *testing.T) {
	requireBinary(t, "cat")

	ctrl := gomock.NewController(t)
	importer := mocks.NewMockImporter(ctrl)
	importer.EXPECT().
		Import(gomock.Any(), ports.ImportRequest{Current: "b"}).
		Return(&ports.ImportResult{Path: "/b.scss", Content: []byte(`@import "a";`)}, nil)
	importer.EXPECT().
		Import(gomock.Any(), ports.ImportRequest{Current: "a"}).
		Return(&ports.ImportResult{Path: "/a.scss", Content: []byte("ignored")}, nil)

	res, err := newCompiler("cat").Compile(context.Background(), ports.CompileRequest{
		Path:     "/a.scss",
		Source:   []byte(`@import "b";`),
		Importer: importer,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(res.Text), `/b.scss";`))
}

func TestCompile_NonZeroExit(t *testing.T) {
	requireBinary(t, "false")

	res, err := newCompiler("false").Compile(context.Background(), ports.CompileRequest{
		Path:     "/a.scss",
		Source:   []byte("a {}"),
		Importer: mocks.NewMockImporter(gomock.NewController(t)),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Status)
	assert.Empty(t, res.Text)
}

func TestCompile_MissingBinary(t *testing.T) {
	_, err := newCompiler("sassline-no-such-binary").Compile(context.Background(), ports.CompileRequest{
		Path:     "/a.scss",
		Source:   []byte("a {}"),
		Importer: mocks.NewMockImporter(gomock.NewController(t)),
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to run compiler")
}

func TestCompile_Timeout(t *testing.T) {
	requireBinary(t, "sh")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newCompiler("sh", "-c", "exec sleep 5").Compile(ctx, ports.CompileRequest{
		Path:     "/a.scss",
		Source:   []byte("a {}"),
		Importer: mocks.NewMockImporter(gomock.NewController(t)),
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
