package text2img

import "errors"

// Sentinel errors for library operations.
var (
	// Layout validation errors.
	ErrInvalidLayout  = errors.New("invalid layout")
	ErrCanvasTooSmall = errors.New("canvas too small to fit one line")

	// Pagination errors.
	ErrNoProgress = errors.New("pagination made no progress")
	ErrRender     = errors.New("page rendering failed")
	ErrWriteImage = errors.New("failed to write page image")

	// Font errors.
	ErrFontLoad = errors.New("failed to load font")

	// Corpus errors.
	ErrDocumentNotFound = errors.New("document not found")

	// Sharding errors.
	ErrInvalidShard = errors.New("invalid shard parameters")

	// Metadata sink errors.
	ErrSinkOpen   = errors.New("failed to open metadata file")
	ErrSinkWrite  = errors.New("failed to append metadata record")
	ErrSinkClosed = errors.New("metadata sink is closed")
)
