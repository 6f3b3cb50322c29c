package text2img

import (
	"fmt"
	"strconv"
)

// Layout defaults.
const (
	DefaultWidth         = 512
	DefaultHeight        = 512
	DefaultFontSize      = 32
	DefaultMargin        = 20
	DefaultLineSpacing   = 5
	DefaultWordsPerGroup = 100
)

// Layout bounds.
const (
	MinCanvasSize = 16
	MaxCanvasSize = 8192
	MaxFontSize   = 512
)

// Layout configures the page canvas and the text placed on it.
type Layout struct {
	Width         int     // canvas width in pixels
	Height        int     // canvas height in pixels
	FontSize      float64 // points (72 DPI, so points equal pixels)
	MarginLeft    int     // pixels left of every line
	MarginRight   int     // pixels reserved on the right
	LineSpacing   int     // pixels added to the glyph height per line
	WordsPerGroup int     // words read per page iteration; 0 = all remaining
}

// DefaultLayout returns a 512x512 layout with 32pt text and 20px margins.
func DefaultLayout() Layout {
	return Layout{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		FontSize:      DefaultFontSize,
		MarginLeft:    DefaultMargin,
		MarginRight:   DefaultMargin,
		LineSpacing:   DefaultLineSpacing,
		WordsPerGroup: DefaultWordsPerGroup,
	}
}

// TextWidth returns the pixel width available to a line.
func (l Layout) TextWidth() int {
	return l.Width - l.MarginLeft - l.MarginRight
}

// Validate checks that the layout describes a usable canvas.
// It cannot check that a line fits vertically; that needs a font
// (see CheckFit).
func (l Layout) Validate() error {
	if l.Width < MinCanvasSize || l.Width > MaxCanvasSize {
		return fmt.Errorf("%w: width must be between %d and %d, got %d", ErrInvalidLayout, MinCanvasSize, MaxCanvasSize, l.Width)
	}
	if l.Height < MinCanvasSize || l.Height > MaxCanvasSize {
		return fmt.Errorf("%w: height must be between %d and %d, got %d", ErrInvalidLayout, MinCanvasSize, MaxCanvasSize, l.Height)
	}
	if l.FontSize <= 0 || l.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font size must be between 0 and %d, got %.1f", ErrInvalidLayout, MaxFontSize, l.FontSize)
	}
	if l.MarginLeft < 0 || l.MarginRight < 0 {
		return fmt.Errorf("%w: margins cannot be negative", ErrInvalidLayout)
	}
	if l.TextWidth() <= 0 {
		return fmt.Errorf("%w: margins (%d+%d) leave no room in width %d", ErrInvalidLayout, l.MarginLeft, l.MarginRight, l.Width)
	}
	if l.LineSpacing < 0 {
		return fmt.Errorf("%w: line spacing cannot be negative, got %d", ErrInvalidLayout, l.LineSpacing)
	}
	if l.WordsPerGroup < 0 {
		return fmt.Errorf("%w: words per group cannot be negative, got %d", ErrInvalidLayout, l.WordsPerGroup)
	}
	return nil
}

// CheckFit reports ErrCanvasTooSmall when not even one line of lineHeight
// fits on the canvas. Such a layout would never finish a document.
func (l Layout) CheckFit(lineHeight int) error {
	if MaxLines(l.Height, lineHeight) < 1 {
		return fmt.Errorf("%w: line height %dpx exceeds canvas height %dpx", ErrCanvasTooSmall, lineHeight, l.Height)
	}
	return nil
}

// Page is one rendered canvas of a document.
type Page struct {
	DocumentIndex int
	Sequence      int
	Lines         []Line // drawn on this page
	Carry         []Line // did not fit, prefix the next page
	ImagePath     string
}

// Key returns the page key "<document_index>_<sequence>".
func (p Page) Key() string {
	return PageKey(p.DocumentIndex, p.Sequence)
}

// Record returns the metadata record for the page.
func (p Page) Record() PageRecord {
	return PageRecord{
		Key:       p.Key(),
		Text:      JoinLines(p.Lines),
		ImagePath: p.ImagePath,
	}
}

// PageRecord is the persisted metadata of one emitted page.
type PageRecord struct {
	Key       string `json:"-"`
	Text      string `json:"text"`
	ImagePath string `json:"image_path"`
}

// PageKey formats the key that identifies a page across the dataset.
func PageKey(documentIndex, sequence int) string {
	return strconv.Itoa(documentIndex) + "_" + strconv.Itoa(sequence)
}
