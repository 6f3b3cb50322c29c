package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/yargevad/filepathx"

	text2img "github.com/alnah/go-text2img"
)

// textPattern matches text documents at any depth below the root.
const textPattern = "**/*.txt"

// Dir serves every .txt file below a directory, in lexical path order.
type Dir struct {
	root  string
	paths []string
}

// OpenDir discovers the .txt files below root.
func OpenDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpusOpen, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrCorpusOpen, root)
	}

	paths, err := filepathx.Glob(filepath.Join(root, textPattern))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusOpen, err)
	}

	files := paths[:0]
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			files = append(files, p)
		}
	}
	slices.Sort(files)

	return &Dir{root: root, paths: files}, nil
}

// Len returns the number of documents.
func (d *Dir) Len() int {
	return len(d.paths)
}

// Path returns the file backing the document at index.
func (d *Dir) Path(index int) (string, bool) {
	if index < 0 || index >= len(d.paths) {
		return "", false
	}
	return d.paths[index], true
}

// Text reads the document at index.
func (d *Dir) Text(index int) (string, error) {
	path, ok := d.Path(index)
	if !ok {
		return "", fmt.Errorf("%w: index %d (corpus has %d)", text2img.ErrDocumentNotFound, index, len(d.paths))
	}
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return "", fmt.Errorf("reading document %d: %w", index, err)
	}
	return string(data), nil
}

// Close is a no-op; files are opened per read.
func (d *Dir) Close() error {
	return nil
}

// Compile-time interface check.
var _ Corpus = (*Dir)(nil)
