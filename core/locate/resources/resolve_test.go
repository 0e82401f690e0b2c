package resources

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestResolvePackagedFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.resources")
	defer teardown()
	//
	f, err := ResolveFont("Go Regular")
	require.NoError(t, err)
	assert.Equal(t, "Go Regular", f.Fontname)
	assert.Equal(t, "internal", f.Filepath)
	//
	f, err = ResolveFont("gomono")
	require.NoError(t, err)
	assert.Equal(t, "Go Mono", f.Fontname)
	assert.Contains(t, PackagedFonts(), "gosmallcaps")
}

func TestResolveFontFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.resources")
	defer teardown()
	//
	fpath := filepath.Join(t.TempDir(), "Regular.ttf")
	require.NoError(t, os.WriteFile(fpath, goregular.TTF, 0644))
	f, err := ResolveFont(fpath)
	require.NoError(t, err)
	assert.Equal(t, fpath, f.Filepath)
	assert.Equal(t, "Go Regular", f.Fontname)
}

func TestResolveMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.resources")
	defer teardown()
	//
	_, err := ResolveFont(filepath.Join(t.TempDir(), "missing.ttf"))
	require.Error(t, err)
	assert.Equal(t, core.EFONTLOAD, core.Code(err))
	var app core.AppError
	require.True(t, errors.As(errors.Unwrap(err), &app))
	assert.Equal(t, core.EMISSING, app.ErrorCode())
	//
	_, err = ResolveFont("")
	assert.Equal(t, core.EFONTLOAD, core.Code(err))
}

func TestResolveInvalidFontFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.resources")
	defer teardown()
	//
	fpath := filepath.Join(t.TempDir(), "broken.ttf")
	require.NoError(t, os.WriteFile(fpath, []byte("not a font"), 0644))
	_, err := ResolveFont(fpath)
	require.Error(t, err)
	assert.Equal(t, core.EFONTLOAD, core.Code(err))
}

func TestResolveTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.resources")
	defer teardown()
	//
	f1, err := ResolveFont("gomonobold")
	require.NoError(t, err)
	f2, err := ResolveFont("Go-Mono-Bold.ttf")
	require.NoError(t, err)
	assert.Same(t, f1, f2, "resolved fonts should be cached")
	tc, err := ResolveTypeCase("gomonobold", 20, font.TrueType)
	require.NoError(t, err)
	assert.Same(t, f1, tc.ScalableFontParent())
	assert.Equal(t, 20, tc.PixelSize())
	//
	_, err = ResolveTypeCase("gomonobold", font.MaxPixelSize+1, font.OpenType)
	assert.Equal(t, core.EFONTSIZE, core.Code(err))
	_, err = ResolveTypeCase("", 12, font.OpenType)
	assert.Equal(t, core.EFONTLOAD, core.Code(err))
}
