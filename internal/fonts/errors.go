package fonts

import "errors"

// Sentinel errors for font operations.
var (
	// ErrFontNotFound indicates the requested font does not exist.
	ErrFontNotFound = errors.New("font not found")

	// ErrInvalidFontName indicates the name contains path separators,
	// dots or traversal sequences.
	ErrInvalidFontName = errors.New("invalid font name")

	// ErrInvalidFontDir indicates the configured font directory is not a
	// readable directory.
	ErrInvalidFontDir = errors.New("invalid font directory")

	// ErrFontRead indicates an I/O error while reading a font file.
	ErrFontRead = errors.New("failed to read font")

	// ErrFontParse indicates the file is not a usable TrueType/OpenType font.
	ErrFontParse = errors.New("failed to parse font")
)
