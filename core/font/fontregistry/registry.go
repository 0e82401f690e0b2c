package fontregistry

import (
	"fmt"
	"sync"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding information about loaded fonts and the
// type cases prepared from them.
type Registry struct {
	sync.Mutex
	fonts     map[string]*font.ScalableFont
	typecases map[string]*font.TypeCase
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts and typecases.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts:     make(map[string]*font.ScalableFont),
		typecases: make(map[string]*font.TypeCase),
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// If key is already associated with a font, that font will not be overridden.
func (fr *Registry) StoreFont(key string, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[key]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, key)
		fr.fonts[key] = f
	}
}

// Font returns the font stored under key.
func (fr *Registry) Font(key string) (*font.ScalableFont, bool) {
	fr.Lock()
	defer fr.Unlock()
	f, ok := fr.fonts[key]
	return f, ok
}

// TypeCase returns a type case for the font stored under key, at a pixel
// size and for a rasterizer. Type cases are cached by the registry and must
// not be closed by clients.
//
// If no font has been stored under key, TypeCase returns an error with code
// EMISSING.
func (fr *Registry) TypeCase(key string, size int, r font.Rasterizer) (*font.TypeCase, error) {
	tracer().Debugf("registry searches for font %s at %dpx", key, size)
	tname := typecaseKey(key, size, r)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		tracer().Infof("registry found typecase %s", tname)
		return t, nil
	}
	f, ok := fr.fonts[key]
	if !ok {
		tracer().Infof("registry does not contain font %s", key)
		return nil, core.Error(core.EMISSING, "font %s not found in registry", key)
	}
	t, err := f.PrepareCase(size, r)
	if err != nil {
		return nil, err
	}
	tracer().Infof("font registry has font %s, caches %s", key, tname)
	fr.typecases[tname] = t
	return t, nil
}

// LogFontList is a helper function to dump the list of known fonts and typecases
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Infof("typecase [%s] = %v", k, v.ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

func typecaseKey(key string, size int, r font.Rasterizer) string {
	return fmt.Sprintf("%s-%dpx-%s", key, size, r)
}
