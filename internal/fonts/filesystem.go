package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fontExtensions are tried in order when loading a font by name.
var fontExtensions = []string{".ttf", ".otf"}

// FilesystemLoader loads fonts from a directory on the filesystem.
// Implements Loader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given directory.
// Returns ErrInvalidFontDir if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidFontDir)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFontDir, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidFontDir, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFontDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidFontDir, absPath)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// Load looks for {basePath}/{name}.ttf, then {basePath}/{name}.otf.
func (f *FilesystemLoader) Load(name string) (*Source, error) {
	if err := ValidateFontName(name); err != nil {
		return nil, err
	}

	for _, ext := range fontExtensions {
		src, err := LoadFile(filepath.Join(f.basePath, name+ext))
		if err == nil {
			return src, nil
		}
		if !isNotFoundError(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrFontNotFound, name, f.basePath)
}

// LoadFile reads and parses a font file.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- font path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFontRead, err)
	}
	return Parse(path, data)
}

// looksLikeFontFile returns true for names with a font file extension.
func looksLikeFontFile(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	for _, e := range fontExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)
