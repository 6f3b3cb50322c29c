package main

import (
	"errors"
	"os"

	text2img "github.com/alnah/go-text2img"
	"github.com/alnah/go-text2img/internal/config"
	"github.com/alnah/go-text2img/internal/corpus"
	"github.com/alnah/go-text2img/internal/fonts"
)

// Exit codes for text2img CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Run completed
	ExitGeneral = 1 // General/unexpected error, interrupted run
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Corpus, image or metadata I/O
	ExitFont    = 4 // Font could not be loaded
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Font errors (exit 4)
	if errors.Is(err, text2img.ErrFontLoad) ||
		errors.Is(err, fonts.ErrFontNotFound) ||
		errors.Is(err, fonts.ErrFontParse) {
		return ExitFont
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoCorpus) ||
		errors.Is(err, ErrMissingShardEnv) ||
		errors.Is(err, ErrInvalidShardEnv) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, corpus.ErrUnknownFormat) ||
		errors.Is(err, text2img.ErrInvalidLayout) ||
		errors.Is(err, text2img.ErrCanvasTooSmall) ||
		errors.Is(err, text2img.ErrInvalidShard) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, corpus.ErrCorpusOpen) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, text2img.ErrSinkOpen) ||
		errors.Is(err, text2img.ErrSinkWrite) ||
		errors.Is(err, text2img.ErrWriteImage) {
		return ExitIO
	}

	return ExitGeneral
}
