package fonts

import (
	"errors"

	"github.com/alnah/go-text2img/internal/fileutil"
)

// Resolver combines a custom font directory with the built-in fonts.
// When a directory is configured, bare names are looked up there first and
// fall back to the built-in fonts when not found.
type Resolver struct {
	custom   Loader // nil if no font directory configured
	embedded Loader
}

// NewResolver creates a Resolver.
// If fontDir is empty, only built-in fonts and explicit paths are used.
// Returns error if fontDir is set but invalid.
func NewResolver(fontDir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if fontDir != "" {
		fsLoader, err := NewFilesystemLoader(fontDir)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// Resolve loads a font by name or path. An empty string selects DefaultFont.
func (r *Resolver) Resolve(nameOrPath string) (*Source, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultFont
	}
	if fileutil.IsFilePath(nameOrPath) || looksLikeFontFile(nameOrPath) {
		return LoadFile(nameOrPath)
	}
	return r.Load(nameOrPath)
}

// Load loads a font by name, trying the custom directory first if available.
func (r *Resolver) Load(name string) (*Source, error) {
	if r.custom == nil {
		return r.embedded.Load(name)
	}

	src, err := r.custom.Load(name)
	if err == nil {
		return src, nil
	}

	// Only fall back for "not found" errors, not parse or I/O errors
	if !isNotFoundError(err) {
		return nil, err
	}

	return r.embedded.Load(name)
}

// isNotFoundError checks if the error indicates the font was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrFontNotFound)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
