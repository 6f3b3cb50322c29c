package text2img

import (
	"context"
	"fmt"
	"path/filepath"
)

// ImageExt is the file extension of rendered pages.
const ImageExt = ".png"

// Paginator lays out documents onto pages and renders them.
type Paginator struct {
	Layout    Layout
	Renderer  Renderer
	OutputDir string
}

// ImagePath returns where the page image for key is written.
func (p *Paginator) ImagePath(key string) string {
	return filepath.Join(p.OutputDir, key+ImageExt)
}

// PaginateDocument splits the sanitized words of text into pages, renders
// each page and calls emit with its record once the image is on disk.
// Pages are produced in order starting at sequence 0. It returns the number
// of pages emitted; on error, pages emitted before the failure remain valid.
func (p *Paginator) PaginateDocument(ctx context.Context, index int, text string, emit func(PageRecord) error) (int, error) {
	words := Words(text)
	lineHeight := p.Renderer.LineHeight()
	if err := p.Layout.CheckFit(lineHeight); err != nil {
		return 0, err
	}

	var carry []string
	cursor := 0
	seq := 0

	for cursor < len(words) || len(carry) > 0 {
		if err := ctx.Err(); err != nil {
			return seq, err
		}

		group := words[cursor:p.groupEnd(cursor, len(words))]
		combined := make([]string, 0, len(carry)+len(group))
		combined = append(combined, carry...)
		combined = append(combined, group...)

		lines := WrapLines(combined, p.Layout.TextWidth(), p.Renderer.Measure)
		drawn, rest := PaginateLines(lines, p.Layout.Height, lineHeight)
		if len(drawn) == 0 {
			return seq, fmt.Errorf("%w: document %d page %d", ErrNoProgress, index, seq)
		}

		page := Page{
			DocumentIndex: index,
			Sequence:      seq,
			Lines:         drawn,
			Carry:         rest,
		}
		page.ImagePath = p.ImagePath(page.Key())

		if err := p.Renderer.Render(lineTexts(drawn), page.ImagePath); err != nil {
			return seq, fmt.Errorf("%w: page %s: %w", ErrRender, page.Key(), err)
		}
		if err := emit(page.Record()); err != nil {
			return seq, err
		}

		carry = carry[:0:0]
		for _, l := range rest {
			carry = append(carry, l.Words...)
		}
		cursor += len(group)
		seq++
	}

	return seq, nil
}

// groupEnd returns the end of the next word group starting at cursor.
func (p *Paginator) groupEnd(cursor, total int) int {
	if p.Layout.WordsPerGroup <= 0 {
		return total
	}
	return min(cursor+p.Layout.WordsPerGroup, total)
}

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return out
}
