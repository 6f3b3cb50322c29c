package text2img

import "fmt"

// Corpus is a read-only, integer-indexed collection of documents.
// Implementations must be safe for concurrent use.
type Corpus interface {
	// Len returns the number of documents.
	Len() int

	// Text returns the raw text of the document at index.
	// Returns ErrDocumentNotFound if index is out of range.
	Text(index int) (string, error)
}

// SliceCorpus is an in-memory Corpus.
type SliceCorpus []string

// Len returns the number of documents.
func (c SliceCorpus) Len() int {
	return len(c)
}

// Text returns the document at index.
func (c SliceCorpus) Text(index int) (string, error) {
	if index < 0 || index >= len(c) {
		return "", fmt.Errorf("%w: index %d (corpus has %d)", ErrDocumentNotFound, index, len(c))
	}
	return c[index], nil
}

// Compile-time interface check.
var _ Corpus = SliceCorpus(nil)
