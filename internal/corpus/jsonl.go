package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"

	text2img "github.com/alnah/go-text2img"
)

// JSONL serves documents from a newline-delimited JSON file.
// Line spans are indexed once at open; documents are read on demand
// with ReadAt, so one handle serves concurrent workers.
type JSONL struct {
	file  *os.File
	field string
	spans []span
}

// span is the byte range of one document line, newline excluded.
type span struct {
	start, end int64
}

// OpenJSONL indexes the JSONL file at path.
// Blank lines are skipped and do not consume an index.
func OpenJSONL(path, textField string) (*JSONL, error) {
	if textField == "" {
		textField = DefaultTextField
	}

	f, err := os.Open(path) // #nosec G304 -- corpus path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpusOpen, err)
	}

	spans, err := indexLines(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: indexing %s: %v", ErrCorpusOpen, path, err)
	}

	return &JSONL{file: f, field: textField, spans: spans}, nil
}

// indexLines returns the span of every non-blank line of r.
func indexLines(r io.Reader) ([]span, error) {
	var spans []span
	br := bufio.NewReaderSize(r, 1<<20)

	var pos, lineStart int64
	blank := true
	for {
		chunk, err := br.ReadSlice('\n')
		blank = blank && isBlank(chunk)
		pos += int64(len(chunk))

		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil && err != io.EOF {
			return nil, err
		}

		if !blank {
			end := pos
			if len(chunk) > 0 && chunk[len(chunk)-1] == '\n' {
				end--
			}
			spans = append(spans, span{start: lineStart, end: end})
		}
		if err == io.EOF {
			return spans, nil
		}
		lineStart = pos
		blank = true
	}
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}

// Len returns the number of documents.
func (j *JSONL) Len() int {
	return len(j.spans)
}

// Text returns the text field of the document at index.
// A line without the field yields an empty document.
func (j *JSONL) Text(index int) (string, error) {
	if index < 0 || index >= j.Len() {
		return "", fmt.Errorf("%w: index %d (corpus has %d)", text2img.ErrDocumentNotFound, index, j.Len())
	}

	sp := j.spans[index]
	buf := make([]byte, sp.end-sp.start)
	if _, err := j.file.ReadAt(buf, sp.start); err != nil && err != io.EOF {
		return "", fmt.Errorf("reading document %d: %w", index, err)
	}
	if !gjson.ValidBytes(buf) {
		return "", fmt.Errorf("document %d: invalid JSON", index)
	}
	return gjson.GetBytes(buf, j.field).String(), nil
}

// Close closes the underlying file.
func (j *JSONL) Close() error {
	return j.file.Close()
}

// Compile-time interface check.
var _ Corpus = (*JSONL)(nil)
