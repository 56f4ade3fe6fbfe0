package pathresolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/engine/pathresolve"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		source    string
		target    string
		allowSame bool
		want      string
	}{
		{
			name:   "parent segment collapses",
			source: "/a/b/c.scss",
			target: "../d.css",
			want:   "/a/d.css",
		},
		{
			name:      "dot swaps extension",
			source:    "a.scss",
			target:    ".",
			allowSame: true,
			want:      "a.css",
		},
		{
			name:      "dot swaps sass extension",
			source:    "/styles/main.sass",
			target:    ".",
			allowSame: true,
			want:      "/styles/main.css",
		},
		{
			name:   "absolute target is kept",
			source: "/a/b/c.scss",
			target: "/out/site.css",
			want:   "/out/site.css",
		},
		{
			name:   "relative target joins source directory",
			source: "/a/b/c.scss",
			target: "dist/c.css",
			want:   "/a/b/dist/c.css",
		},
		{
			name:   "dot segments are dropped",
			source: "/a/b/c.scss",
			target: "./x/./y.css",
			want:   "/a/b/x/y.css",
		},
		{
			name:   "slash runs collapse",
			source: "/a/b/c.scss",
			target: "x//y.css",
			want:   "/a/b/x/y.css",
		},
		{
			name:   "several parents",
			source: "/a/b/c/d.scss",
			target: "../../e/f.scss",
			want:   "/a/e/f.scss",
		},
		{
			name:   "root level source",
			source: "/main.scss",
			target: "main.css",
			want:   "/main.css",
		},
		{
			name:   "relative source without directory",
			source: "main.scss",
			target: "out.css",
			want:   "out.css",
		},
		{
			name:   "dot without allow same joins directory",
			source: "/a/b.scss",
			target: ".",
			want:   "/a/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := pathresolve.Resolve(tt.source, tt.target, tt.allowSame)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Degenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		source    string
		target    string
		allowSame bool
	}{
		{name: "same relative name", source: "a.scss", target: "a.scss"},
		{name: "same absolute path", source: "/a/b.scss", target: "/a/b.scss"},
		{name: "normalizes back to source", source: "/a/b.scss", target: "../a/./b.scss"},
		{name: "dot on artifact source", source: "/a/b.css", target: ".", allowSame: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := pathresolve.Resolve(tt.source, tt.target, tt.allowSame)
			require.ErrorIs(t, err, domain.ErrPathDegenerate)
		})
	}
}

func TestResolve_OutOfBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		target string
	}{
		{name: "climbs above root", source: "/a/b.scss", target: "../../c.css"},
		{name: "relative source has no parent", source: "b.scss", target: "../c.css"},
		{name: "absolute target climbs", source: "/a/b.scss", target: "/../c.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := pathresolve.Resolve(tt.source, tt.target, false)
			require.ErrorIs(t, err, domain.ErrPathOutOfBounds)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	got, err := pathresolve.Normalize("/a/./b/../c//d")
	require.NoError(t, err)
	assert.Equal(t, "/a/c/d", got)

	got, err = pathresolve.Normalize("a/b/..")
	require.NoError(t, err)
	assert.Equal(t, "a/", got)
}
