package fonts

import (
	"fmt"
	"strings"
)

// ValidateFontName checks that a font name is safe for use as a filename.
// Returns ErrInvalidFontName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateFontName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFontName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidFontName, name)
	}
	return nil
}
