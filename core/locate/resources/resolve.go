package resources

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/core/font"
	"github.com/npillmayer/fontatlas/core/font/fontregistry"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// packaged holds the Go fonts, keyed by normalized font name.
var packaged = map[string][]byte{
	"goregular":    goregular.TTF,
	"gobold":       gobold.TTF,
	"goitalic":     goitalic.TTF,
	"gobolditalic": gobolditalic.TTF,
	"gomedium":     gomedium.TTF,
	"gomono":       gomono.TTF,
	"gomonobold":   gomonobold.TTF,
	"gosmallcaps":  gosmallcaps.TTF,
}

// PackagedFonts lists the names of the packaged fonts.
func PackagedFonts() []string {
	names := make([]string, 0, len(packaged))
	for n := range packaged {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NotFound returns an application error for a missing font.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

// ResolveFont locates and loads a font. name is tried as a file path first,
// then as a packaged font and last as a system font. Loaded fonts are stored
// in the global font registry and re-used on subsequent calls.
//
// Failure is reported with code EFONTLOAD.
func ResolveFont(name string) (*font.ScalableFont, error) {
	_, f, err := resolve(name)
	return f, err
}

// ResolveTypeCase resolves a font and prepares a type case for it. Type
// cases are cached by the global font registry and must not be closed.
func ResolveTypeCase(name string, size int, r font.Rasterizer) (*font.TypeCase, error) {
	key, _, err := resolve(name)
	if err != nil {
		return nil, err
	}
	return fontregistry.GlobalRegistry().TypeCase(key, size, r)
}

func resolve(name string) (string, *font.ScalableFont, error) {
	if strings.TrimSpace(name) == "" {
		return "", nil, core.Error(core.EFONTLOAD, "no font given")
	}
	registry := fontregistry.GlobalRegistry()
	key := name
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		if f, ok := registry.Font(key); ok {
			return key, f, nil
		}
		tracer().Debugf("%s is a font file", name)
		f, err := font.LoadOpenTypeFont(name)
		return store(key, f, err)
	}
	key = font.NormalizeFontname(name)
	if f, ok := registry.Font(key); ok {
		return key, f, nil
	}
	if ttf, ok := packaged[key]; ok {
		tracer().Debugf("%s is a packaged font", name)
		f, err := font.ParseOpenTypeFont(ttf)
		if err == nil {
			f.Filepath = "internal"
		}
		return store(key, f, err)
	}
	if !strings.ContainsRune(name, os.PathSeparator) && !strings.ContainsRune(name, '/') {
		fpath, err := findfont.Find(name) // try to find as system font
		if err == nil && fpath != "" {
			tracer().Debugf("%s is a system font at %s", name, fpath)
			f, err := font.LoadOpenTypeFont(fpath)
			return store(key, f, err)
		}
	}
	tracer().Infof("cannot resolve font %s", name)
	return "", nil, core.WrapError(NotFound(name), core.EFONTLOAD, "can't open font: %s", name)
}

func store(key string, f *font.ScalableFont, err error) (string, *font.ScalableFont, error) {
	if err != nil {
		return "", nil, err
	}
	fontregistry.GlobalRegistry().StoreFont(key, f)
	return key, f, nil
}
