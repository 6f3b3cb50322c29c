package text2img

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/alnah/go-text2img/internal/fileutil"
)

// Renderer measures and draws text on a fixed-size canvas.
// Implementations are not required to be safe for concurrent use;
// RendererPool hands each worker its own instance.
type Renderer interface {
	// Measure returns the pixel width of text.
	Measure(text string) int

	// LineHeight returns the vertical pixel distance between rows.
	LineHeight() int

	// Render draws one line per row onto a fresh canvas and saves it at path.
	Render(lines []string, path string) error
}

// FaceSource creates font faces at a point size.
type FaceSource interface {
	NewFace(size float64) (font.Face, error)
}

// FontRenderer renders black text on a white RGB canvas and encodes PNG.
type FontRenderer struct {
	face       font.Face
	layout     Layout
	ascent     int
	lineHeight int
}

// NewFontRenderer creates a renderer drawing with face on layout's canvas.
// The line height is the face's ascent plus descent plus layout.LineSpacing.
func NewFontRenderer(face font.Face, layout Layout) *FontRenderer {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	return &FontRenderer{
		face:       face,
		layout:     layout,
		ascent:     ascent,
		lineHeight: ascent + m.Descent.Ceil() + layout.LineSpacing,
	}
}

// NewRendererFactory returns a constructor for RendererPool that opens a
// new face from src for every renderer.
func NewRendererFactory(src FaceSource, layout Layout) func() (Renderer, error) {
	return func() (Renderer, error) {
		face, err := src.NewFace(layout.FontSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
		}
		return NewFontRenderer(face, layout), nil
	}
}

// Measure returns the advance width of text, rounded up to whole pixels.
func (r *FontRenderer) Measure(text string) int {
	return font.MeasureString(r.face, text).Ceil()
}

// LineHeight returns the row pitch in pixels.
func (r *FontRenderer) LineHeight() int {
	return r.lineHeight
}

// Render draws lines top to bottom at the left margin and writes a PNG.
// The file is written to a temporary name and renamed into place, so path
// never holds a partial image.
func (r *FontRenderer) Render(lines []string, path string) error {
	img := r.draw(lines)

	err := fileutil.WriteFileAtomic(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteImage, err)
	}
	return nil
}

func (r *FontRenderer) draw(lines []string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.layout.Width, r.layout.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.Black, Face: r.face}
	for i, line := range lines {
		d.Dot = fixed.P(r.layout.MarginLeft, i*r.lineHeight+r.ascent)
		d.DrawString(line)
	}
	return img
}

// Close releases the font face.
func (r *FontRenderer) Close() error {
	return r.face.Close()
}

// Compile-time interface check.
var _ Renderer = (*FontRenderer)(nil)
