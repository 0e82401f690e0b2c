package font

import (
	"testing"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func TestNormalizeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.fonts")
	defer teardown()
	//
	for _, name := range []string{"Go Regular", "go-regular.ttf", "goregular", " Go_Regular "} {
		assert.Equal(t, "goregular", NormalizeFontname(name), "name = %q", name)
	}
}

func TestFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.fonts")
	defer teardown()
	//
	f := FallbackFont()
	require.NotNil(t, f)
	assert.Equal(t, "Go Regular", f.Fontname)
	assert.Equal(t, "internal", f.Filepath)
	assert.Same(t, f, FallbackFont(), "fallback font should be loaded once")
}

func TestParseInvalidFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.fonts")
	defer teardown()
	//
	_, err := ParseOpenTypeFont([]byte("no font"))
	require.Error(t, err)
	assert.Equal(t, core.EFONTLOAD, core.Code(err))
	//
	_, err = LoadOpenTypeFont("does/not/exist.ttf")
	require.Error(t, err)
	assert.Equal(t, core.EFONTLOAD, core.Code(err))
}

func TestPrepareCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.fonts")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(gomono.TTF)
	require.NoError(t, err)
	for _, r := range []Rasterizer{OpenType, TrueType} {
		tc, err := f.PrepareCase(16, r)
		require.NoError(t, err, "rasterizer %s", r)
		assert.Equal(t, 16, tc.PixelSize())
		assert.Equal(t, r, tc.Rasterizer())
		assert.Same(t, f, tc.ScalableFontParent())
		assert.True(t, tc.HasGlyph('A'), "rasterizer %s", r)
		assert.False(t, tc.HasGlyph('\ue000'), "private use code-point should be missing")
		adv, ok := tc.Face().GlyphAdvance('m')
		assert.True(t, ok)
		assert.Greater(t, adv.Round(), 0)
		assert.Greater(t, tc.Metrics().Ascent.Round(), 0)
		assert.NoError(t, tc.Close())
	}
}

func TestPrepareCaseInvalidSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.fonts")
	defer teardown()
	//
	for _, size := range []int{0, -3, MaxPixelSize + 1} {
		_, err := FallbackFont().PrepareCase(size, OpenType)
		require.Error(t, err)
		assert.Equal(t, core.EFONTSIZE, core.Code(err), "size = %d", size)
	}
}

func TestParseRasterizer(t *testing.T) {
	r, err := ParseRasterizer("TrueType")
	assert.NoError(t, err)
	assert.Equal(t, TrueType, r)
	r, err = ParseRasterizer("")
	assert.NoError(t, err)
	assert.Equal(t, OpenType, r)
	_, err = ParseRasterizer("cairo")
	assert.Equal(t, core.EINVALID, core.Code(err))
}
