package importer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sassline/internal/adapters/logger"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/sassline/internal/core/ports/mocks"
	"go.trai.ch/sassline/internal/engine/importer"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func notFound(p string) error {
	return zerr.With(zerr.Wrap(domain.ErrDocumentNotFound, "get"), "path", p)
}

func TestImport_AppendsTopLevelExtension(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockContentCache(ctrl)

	cache.EXPECT().GetOrFetch(gomock.Any(), "ws", "/styles/vars.scss").Return([]byte("$c: red;"), nil)

	r := importer.New(cache, logger.NewDiscard())
	imp := r.For(domain.ImportContext{
		WorkspaceID:       "ws",
		CurrentSourcePath: "/styles/main.scss",
		TopLevelExtension: "scss",
	})

	res, err := imp.Import(context.Background(), ports.ImportRequest{Current: "vars"})
	require.NoError(t, err)
	assert.Equal(t, "/styles/vars.scss", res.Path)
	assert.Equal(t, "$c: red;", string(res.Content))
}

func TestImport_KeepsExplicitExtension(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockContentCache(ctrl)

	cache.EXPECT().GetOrFetch(gomock.Any(), "ws", "/shared/mixins.sass").Return([]byte("=m"), nil)

	imp := importer.New(cache, logger.NewDiscard()).For(domain.ImportContext{
		WorkspaceID:       "ws",
		CurrentSourcePath: "/styles/main.scss",
		TopLevelExtension: "scss",
	})

	res, err := imp.Import(context.Background(), ports.ImportRequest{Current: "../shared/mixins.sass"})
	require.NoError(t, err)
	assert.Equal(t, "/shared/mixins.sass", res.Path)
}

func TestImport_ContextsAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockContentCache(ctrl)

	cache.EXPECT().GetOrFetch(gomock.Any(), "ws", "/a/x.scss").Return([]byte("a"), nil)
	cache.EXPECT().GetOrFetch(gomock.Any(), "other", "/b/x.sass").Return([]byte("b"), nil)

	r := importer.New(cache, logger.NewDiscard())
	first := r.For(domain.ImportContext{WorkspaceID: "ws", CurrentSourcePath: "/a/main.scss", TopLevelExtension: "scss"})
	second := r.For(domain.ImportContext{WorkspaceID: "other", CurrentSourcePath: "/b/main.sass", TopLevelExtension: "sass"})

	res, err := second.Import(context.Background(), ports.ImportRequest{Current: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/b/x.sass", res.Path)

	res, err = first.Import(context.Background(), ports.ImportRequest{Current: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/a/x.scss", res.Path)
}

func TestImport_SelfImportFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockContentCache(ctrl)

	imp := importer.New(cache, logger.NewDiscard()).For(domain.ImportContext{
		WorkspaceID:       "ws",
		CurrentSourcePath: "/a/main.scss",
		TopLevelExtension: "scss",
	})

	_, err := imp.Import(context.Background(), ports.ImportRequest{Current: "main"})
	require.ErrorIs(t, err, domain.ErrPathDegenerate)
	assert.ErrorContains(t, err, domain.ErrImportFailed.Error())
}

func TestImport_OutOfBoundsFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockContentCache(ctrl)

	imp := importer.New(cache, logger.NewDiscard()).For(domain.ImportContext{
		WorkspaceID:       "ws",
		CurrentSourcePath: "/main.scss",
		TopLevelExtension: "scss",
	})

	_, err := imp.Import(context.Background(), ports.ImportRequest{Current: "../../etc/passwd"})
	require.ErrorIs(t, err, domain.ErrPathOutOfBounds)
}

func TestImport_FallsBackToPartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockContentCache(ctrl)

	gomock.InOrder(
		cache.EXPECT().GetOrFetch(gomock.Any(), "ws", "/a/base.scss").Return(nil, notFound("/a/base.scss")),
		cache.EXPECT().GetOrFetch(gomock.Any(), "ws", "/a/_base.scss").Return([]byte("p"), nil),
	)

	imp := importer.New(cache, logger.NewDiscard()).For(domain.ImportContext{
		WorkspaceID:       "ws",
		CurrentSourcePath: "/a/main.scss",
		TopLevelExtension: "scss",
	})

	res, err := imp.Import(context.Background(), ports.ImportRequest{Current: "base"})
	require.NoError(t, err)
	assert.Equal(t, "/a/_base.scss", res.Path)
	assert.Equal(t, "p", string(res.Content))
}

func TestImport_MissingDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockContentCache(ctrl)

	cache.EXPECT().GetOrFetch(gomock.Any(), "ws", "/a/_gone.scss").Return(nil, notFound("/a/_gone.scss"))

	imp := importer.New(cache, logger.NewDiscard()).For(domain.ImportContext{
		WorkspaceID:       "ws",
		CurrentSourcePath: "/a/main.scss",
		TopLevelExtension: "scss",
	})

	_, err := imp.Import(context.Background(), ports.ImportRequest{Current: "_gone"})
	require.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.ErrorContains(t, err, domain.ErrImportFailed.Error())
}
