package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sassline/cmd/sassline/commands"
	"go.trai.ch/sassline/internal/app"
	"go.trai.ch/sassline/internal/build"
	"go.trai.ch/sassline/internal/core/domain"
)

type mockApp struct {
	compileFunc func(ctx context.Context, opts app.CompileOptions) (domain.Outcome, error)
	serveFunc   func(ctx context.Context, opts app.ServeOptions) error
	json        bool
	verbose     bool
}

func (m *mockApp) Compile(ctx context.Context, opts app.CompileOptions) (domain.Outcome, error) {
	if m.compileFunc != nil {
		return m.compileFunc(ctx, opts)
	}
	return domain.Outcome{}, nil
}

func (m *mockApp) Serve(ctx context.Context, opts app.ServeOptions) error {
	if m.serveFunc != nil {
		return m.serveFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) ConfigureLogging(json, verbose bool) {
	m.json = json
	m.verbose = verbose
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	out := &bytes.Buffer{}
	cli := commands.New(a)
	cli.SetArgs(args)
	cli.SetOutput(out, out)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Compile(t *testing.T) {
	t.Run("wires flags", func(t *testing.T) {
		var got app.CompileOptions
		mock := &mockApp{
			compileFunc: func(_ context.Context, opts app.CompileOptions) (domain.Outcome, error) {
				got = opts
				return domain.Outcome{
					JobID: "j",
					Kind:  domain.OutcomeRendered,
					Chain: []string{"/a.scss", "/a.css"},
				}, nil
			},
		}

		out, err := execute(t, mock, "compile", "a.scss", "-w", "site", "-c", "conf.yaml", "-v")
		require.NoError(t, err)
		assert.Equal(t, app.CompileOptions{ConfigPath: "conf.yaml", Workspace: "site", Path: "a.scss"}, got)
		assert.Equal(t, "✓ /a.scss → /a.css\n", out)
		assert.True(t, mock.verbose)
		assert.False(t, mock.json)
	})

	t.Run("reports silent outcomes", func(t *testing.T) {
		mock := &mockApp{
			compileFunc: func(context.Context, app.CompileOptions) (domain.Outcome, error) {
				return domain.Outcome{JobID: "j", Kind: domain.OutcomeNoDirective, Chain: []string{"/a.scss"}}, nil
			},
		}

		out, err := execute(t, mock, "compile", "a.scss")
		require.NoError(t, err)
		assert.Equal(t, "● a.scss: no out directive, nothing to compile\n", out)
	})

	t.Run("marks reported failures", func(t *testing.T) {
		mock := &mockApp{
			compileFunc: func(context.Context, app.CompileOptions) (domain.Outcome, error) {
				return domain.Outcome{JobID: "j", Kind: domain.OutcomeFailed, Chain: []string{"/a.scss", "/b.scss", "/a.scss"}}, domain.ErrCycleDetected
			},
		}

		out, err := execute(t, mock, "compile", "a.scss")
		require.ErrorIs(t, err, commands.ErrCompileReported)
		assert.Equal(t, "✗ /a.scss → /b.scss → /a.scss\n", out)
	})

	t.Run("passes through setup errors", func(t *testing.T) {
		mock := &mockApp{
			compileFunc: func(context.Context, app.CompileOptions) (domain.Outcome, error) {
				return domain.Outcome{}, errors.New("failed to load configuration")
			},
		}

		_, err := execute(t, mock, "compile", "a.scss")
		require.Error(t, err)
		assert.NotErrorIs(t, err, commands.ErrCompileReported)
	})

	t.Run("requires a path", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "compile")
		require.Error(t, err)
	})
}

func TestCommands_Serve(t *testing.T) {
	var got app.ServeOptions
	mock := &mockApp{
		serveFunc: func(_ context.Context, opts app.ServeOptions) error {
			got = opts
			return nil
		},
	}

	_, err := execute(t, mock, "serve", "--config", "sassline.yaml", "--json")
	require.NoError(t, err)
	assert.Equal(t, app.ServeOptions{ConfigPath: "sassline.yaml"}, got)
	assert.True(t, mock.json)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "sassline version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
