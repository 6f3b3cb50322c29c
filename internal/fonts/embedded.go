package fonts

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Built-in font names.
const (
	GoRegular = "goregular"
	GoMono    = "gomono"
	GoBold    = "gobold"
	GoItalic  = "goitalic"
	Basic     = "basic"

	// DefaultFont is used when no font is configured.
	DefaultFont = GoRegular
)

var embeddedTTF = map[string][]byte{
	GoRegular: goregular.TTF,
	GoMono:    gomono.TTF,
	GoBold:    gobold.TTF,
	GoItalic:  goitalic.TTF,
}

// EmbeddedLoader loads the fonts compiled into the binary.
// Parsed sources are cached; parsing happens once per name.
// Implements Loader interface.
type EmbeddedLoader struct {
	mu    sync.Mutex
	cache map[string]*Source
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{cache: make(map[string]*Source)}
}

// Load returns the built-in font called name.
func (e *EmbeddedLoader) Load(name string) (*Source, error) {
	if err := ValidateFontName(name); err != nil {
		return nil, err
	}
	if name == Basic {
		return &Source{name: Basic, bitmap: basicfont.Face7x13}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if src, ok := e.cache[name]; ok {
		return src, nil
	}
	data, ok := embeddedTTF[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	src, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	e.cache[name] = src
	return src, nil
}

// Names returns the built-in font names, sorted.
func Names() []string {
	names := []string{Basic}
	for name := range embeddedTTF {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
