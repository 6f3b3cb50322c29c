package fonts

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// DPI used for every face. At 72 DPI one point is one pixel.
const DPI = 72

// Loader defines the contract for loading fonts by name.
type Loader interface {
	// Load returns the font called name.
	// Returns ErrFontNotFound if the font doesn't exist.
	// Returns ErrInvalidFontName if the name contains invalid characters.
	Load(name string) (*Source, error)
}

// Source is a loaded typeface from which sized faces are created.
// A Source is safe for concurrent use; the faces it returns are not.
type Source struct {
	name   string
	font   *opentype.Font
	bitmap font.Face
}

// Parse builds a Source from TrueType or OpenType data.
func Parse(name string, data []byte) (*Source, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontParse, name, err)
	}
	return &Source{name: name, font: f}, nil
}

// Name returns the name or path the source was loaded from.
func (s *Source) Name() string {
	return s.name
}

// IsBitmap reports whether the source is a fixed-size bitmap face.
func (s *Source) IsBitmap() bool {
	return s.bitmap != nil
}

// NewFace returns a face at size points. Bitmap sources ignore size and
// return a shared stateless face.
func (s *Source) NewFace(size float64) (font.Face, error) {
	if s.bitmap != nil {
		return s.bitmap, nil
	}
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s at %.1fpt: %v", ErrFontParse, s.name, size, err)
	}
	return face, nil
}
