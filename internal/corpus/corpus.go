// Package corpus opens on-disk document collections as text2img.Corpus.
//
// Two layouts are supported:
//
//   - jsonl: one JSON object per line; the document text is read from a
//     configurable field (default "text"). Index = line number.
//   - dir: a directory tree of .txt files, sorted by path. Index = position.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"strings"

	text2img "github.com/alnah/go-text2img"
)

// Supported formats.
const (
	FormatAuto  = "auto"
	FormatJSONL = "jsonl"
	FormatDir   = "dir"

	// DefaultTextField is the JSON field holding document text.
	DefaultTextField = "text"
)

// Sentinel errors for corpus operations.
var (
	ErrCorpusOpen    = errors.New("failed to open corpus")
	ErrUnknownFormat = errors.New("unknown corpus format")
)

// Corpus is a text2img.Corpus backed by files that must be closed.
type Corpus interface {
	text2img.Corpus
	Close() error
}

// Open opens the corpus at path. With FormatAuto, directories open as
// FormatDir and files as FormatJSONL.
func Open(path, format, textField string) (Corpus, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrCorpusOpen)
	}

	switch strings.ToLower(format) {
	case "", FormatAuto:
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorpusOpen, err)
		}
		if info.IsDir() {
			return OpenDir(path)
		}
		return OpenJSONL(path, textField)
	case FormatJSONL:
		return OpenJSONL(path, textField)
	case FormatDir:
		return OpenDir(path)
	default:
		return nil, fmt.Errorf("%w: %q (must be auto, jsonl or dir)", ErrUnknownFormat, format)
	}
}

// IsValidFormat reports whether format names a supported layout.
func IsValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", FormatAuto, FormatJSONL, FormatDir:
		return true
	}
	return false
}
