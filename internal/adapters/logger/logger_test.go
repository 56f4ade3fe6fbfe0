package logger_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sassline/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing plain text into a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("cached document", "key", "default:/a.scss", "bytes", 42)

	g := goldie.New(t)
	g.Assert(t, "info_args", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("save event dropped", "path", "/b.scss")

	g := goldie.New(t)
	g.Assert(t, "warn_args", buf.Bytes())
}

func TestLogger_Debug(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	lg.Debug("visible", "n", 1)
	assert.Equal(t, "visible n=1\n", buf.String())

	lg.SetVerbose(false)
	lg.Debug("hidden again")
	assert.Equal(t, "visible n=1\n", buf.String())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "standard error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name: "zerr chain with metadata",
			err: zerr.With(
				zerr.Wrap(
					zerr.Wrap(errors.New("connection refused"), "failed to read chunk"),
					"failed to fetch document from workspace store",
				),
				"key", "default:/a.scss",
			),
			goldenName: "error_chain",
		},
		{
			name:       "multiline cause",
			err:        zerr.Wrap(errors.New("Error: Undefined variable.\n  ╷\n1 │ a { b: $c }"), "style sheet compilation failed"),
			goldenName: "error_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("hello", "path", "/a.scss")
	lg.Error(zerr.With(zerr.New("boom"), "path", "/a.scss"))

	out := buf.String()
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"path":"/a.scss"`)
	assert.Contains(t, out, `"msg":"operation failed"`)
}

func TestLogger_SetOutputKeepsMode(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	require.NotEmpty(t, buf.String())
	assert.Equal(t, byte('{'), buf.String()[0])
}

func TestNewDiscard(t *testing.T) {
	lg := logger.NewDiscard()
	lg.SetVerbose(true)
	lg.Debug("nothing")
	lg.Error(errors.New("nothing"))
}
