package text2img

// Notes:
// - Layout: tests validation bounds and the one-line fit check
// - Page: tests key format and record text

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestLayout_Validate - Layout Validation
// ---------------------------------------------------------------------------

func TestLayout_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(l *Layout)
		wantErr error
	}{
		{"default", func(*Layout) {}, nil},
		{"minimum canvas", func(l *Layout) { l.Width, l.Height, l.MarginLeft, l.MarginRight = MinCanvasSize, MinCanvasSize, 0, 0 }, nil},
		{"width too small", func(l *Layout) { l.Width = MinCanvasSize - 1 }, ErrInvalidLayout},
		{"width too large", func(l *Layout) { l.Width = MaxCanvasSize + 1 }, ErrInvalidLayout},
		{"height too small", func(l *Layout) { l.Height = 0 }, ErrInvalidLayout},
		{"zero font size", func(l *Layout) { l.FontSize = 0 }, ErrInvalidLayout},
		{"huge font size", func(l *Layout) { l.FontSize = MaxFontSize + 1 }, ErrInvalidLayout},
		{"negative margin", func(l *Layout) { l.MarginLeft = -1 }, ErrInvalidLayout},
		{"margins fill width", func(l *Layout) { l.MarginLeft, l.MarginRight = 256, 256 }, ErrInvalidLayout},
		{"zero margins", func(l *Layout) { l.MarginLeft, l.MarginRight = 0, 0 }, nil},
		{"negative line spacing", func(l *Layout) { l.LineSpacing = -1 }, ErrInvalidLayout},
		{"zero line spacing", func(l *Layout) { l.LineSpacing = 0 }, nil},
		{"negative words per group", func(l *Layout) { l.WordsPerGroup = -1 }, ErrInvalidLayout},
		{"whole document per group", func(l *Layout) { l.WordsPerGroup = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := DefaultLayout()
			tt.mutate(&l)
			if err := l.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLayout_TextWidth(t *testing.T) {
	t.Parallel()

	if got := DefaultLayout().TextWidth(); got != 472 {
		t.Errorf("TextWidth() = %d, want 472", got)
	}
}

func TestLayout_CheckFit(t *testing.T) {
	t.Parallel()

	l := DefaultLayout()
	if err := l.CheckFit(37); err != nil {
		t.Errorf("CheckFit(37) = %v, want nil", err)
	}
	if err := l.CheckFit(512); err != nil {
		t.Errorf("CheckFit(512) = %v, want nil", err)
	}
	if err := l.CheckFit(513); !errors.Is(err, ErrCanvasTooSmall) {
		t.Errorf("CheckFit(513) = %v, want %v", err, ErrCanvasTooSmall)
	}
	if err := l.CheckFit(0); !errors.Is(err, ErrCanvasTooSmall) {
		t.Errorf("CheckFit(0) = %v, want %v", err, ErrCanvasTooSmall)
	}
}

// ---------------------------------------------------------------------------
// TestPage - Keys and records
// ---------------------------------------------------------------------------

func TestPageKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		doc, seq int
		want     string
	}{
		{0, 0, "0_0"},
		{4, 1, "4_1"},
		{1234567, 89, "1234567_89"},
	}
	for _, tt := range tests {
		if got := PageKey(tt.doc, tt.seq); got != tt.want {
			t.Errorf("PageKey(%d, %d) = %q, want %q", tt.doc, tt.seq, got, tt.want)
		}
	}
}

func TestPage_Record(t *testing.T) {
	t.Parallel()

	p := Page{
		DocumentIndex: 3,
		Sequence:      2,
		Lines:         []Line{{Words: []string{"alpha", "beta"}}, {Words: []string{"gamma"}}},
		Carry:         []Line{{Words: []string{"delta"}}},
		ImagePath:     "outputimg/3_2.png",
	}

	rec := p.Record()
	want := PageRecord{Key: "3_2", Text: "alpha beta gamma", ImagePath: "outputimg/3_2.png"}
	if rec != want {
		t.Errorf("Record() = %+v, want %+v", rec, want)
	}
}
