package text2img

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/alnah/go-text2img/internal/fonts"
)

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening image: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding image: %v", err)
	}
	return img
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

// ---------------------------------------------------------------------------
// TestFontRenderer_Bitmap - deterministic metrics with basicfont
// ---------------------------------------------------------------------------

func TestFontRenderer_Bitmap(t *testing.T) {
	t.Parallel()

	r := NewFontRenderer(basicfont.Face7x13, DefaultLayout())

	// 7x13 face: ascent 11, descent 2, plus 5px spacing.
	if got := r.LineHeight(); got != 18 {
		t.Errorf("LineHeight() = %d, want 18", got)
	}
	if got := r.Measure("abc"); got != 21 {
		t.Errorf("Measure(\"abc\") = %d, want 21", got)
	}
	if got := r.Measure(""); got != 0 {
		t.Errorf("Measure(\"\") = %d, want 0", got)
	}
}

func TestFontRenderer_Render(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "0_0.png")
	r := NewFontRenderer(basicfont.Face7x13, DefaultLayout())

	if err := r.Render([]string{"alpha beta", "gamma"}, path); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img := decodePNG(t, path)
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Fatalf("image is %dx%d, want 512x512", b.Dx(), b.Dy())
	}
	if !isWhite(img.At(0, 0)) || !isWhite(img.At(511, 511)) {
		t.Error("background should be white")
	}

	// Ink must appear in the first row band, right of the left margin, and
	// nothing may be drawn left of it.
	inked := false
	for y := 0; y < 18 && !inked; y++ {
		for x := 0; x < 512; x++ {
			if isWhite(img.At(x, y)) {
				continue
			}
			if x < DefaultMargin {
				t.Fatalf("ink at (%d,%d) inside the left margin", x, y)
			}
			inked = true
			break
		}
	}
	if !inked {
		t.Error("expected text in the first line")
	}

	// A third row was not requested.
	for y := 36; y < 54; y++ {
		for x := 0; x < 512; x++ {
			if !isWhite(img.At(x, y)) {
				t.Fatalf("unexpected ink at (%d,%d)", x, y)
			}
		}
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the image", len(entries))
	}
}

func TestFontRenderer_RenderEmptyPage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blank.png")
	r := NewFontRenderer(basicfont.Face7x13, DefaultLayout())
	if err := r.Render(nil, path); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img := decodePNG(t, path)
	if !isWhite(img.At(256, 256)) {
		t.Error("blank page should be white")
	}
}

func TestFontRenderer_RenderWriteError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := NewFontRenderer(basicfont.Face7x13, DefaultLayout())
	err := r.Render([]string{"x"}, filepath.Join(blocker, "0_0.png"))
	if !errors.Is(err, ErrWriteImage) {
		t.Errorf("Render() error = %v, want %v", err, ErrWriteImage)
	}
}

// ---------------------------------------------------------------------------
// TestNewRendererFactory - faces from font sources
// ---------------------------------------------------------------------------

func TestNewRendererFactory(t *testing.T) {
	t.Parallel()

	src, err := fonts.NewEmbeddedLoader().Load(fonts.GoRegular)
	if err != nil {
		t.Fatalf("loading goregular: %v", err)
	}

	newRenderer := NewRendererFactory(src, DefaultLayout())
	a, err := newRenderer()
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	b, err := newRenderer()
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}

	if a == b {
		t.Error("factory should return distinct renderers")
	}
	// A 32pt face with 5px spacing is taller than 32px but fits many times.
	if h := a.LineHeight(); h <= 32 || h > 64 {
		t.Errorf("LineHeight() = %d, want in (32, 64]", h)
	}
	if a.Measure("a b") <= a.Measure("a") {
		t.Error("Measure should grow with text")
	}
	if a.Measure("hello") != b.Measure("hello") {
		t.Error("renderers from one source should agree")
	}
}

type failingFaceSource struct{}

func (failingFaceSource) NewFace(float64) (font.Face, error) {
	return nil, errors.New("bad face")
}

func TestNewRendererFactory_FaceError(t *testing.T) {
	t.Parallel()

	_, err := NewRendererFactory(failingFaceSource{}, DefaultLayout())()
	if !errors.Is(err, ErrFontLoad) {
		t.Errorf("factory error = %v, want %v", err, ErrFontLoad)
	}
}
