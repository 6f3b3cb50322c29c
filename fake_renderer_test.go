package text2img

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
)

// errFakeRender is returned by fakeRenderer for pages it is told to fail.
var errFakeRender = errors.New("fake render failure")

// fakeRenderer measures every byte as charWidth pixels and records the lines
// of each rendered page instead of drawing them.
type fakeRenderer struct {
	charWidth  int
	lineHeight int
	failKeys   func(key string) bool // nil never fails

	mu    sync.Mutex
	pages map[string][]string // page key -> lines
	order []string
}

func newFakeRenderer(charWidth, lineHeight int) *fakeRenderer {
	return &fakeRenderer{
		charWidth:  charWidth,
		lineHeight: lineHeight,
		pages:      make(map[string][]string),
	}
}

func (f *fakeRenderer) Measure(text string) int {
	return len(text) * f.charWidth
}

func (f *fakeRenderer) LineHeight() int {
	return f.lineHeight
}

func (f *fakeRenderer) Render(lines []string, path string) error {
	key := strings.TrimSuffix(filepath.Base(path), ImageExt)
	if f.failKeys != nil && f.failKeys(key) {
		return errFakeRender
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[key] = append([]string(nil), lines...)
	f.order = append(f.order, key)
	return nil
}

// rendered returns the lines drawn for key.
func (f *fakeRenderer) rendered(key string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pages[key]
}

// memSink collects records in memory. failAfter > 0 makes the Nth and later
// appends fail.
type memSink struct {
	mu        sync.Mutex
	records   []PageRecord
	failAfter int
	err       error
}

func (s *memSink) Append(rec PageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAfter > 0 && len(s.records)+1 >= s.failAfter {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *memSink) byKey() map[string]PageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]PageRecord, len(s.records))
	for _, r := range s.records {
		out[r.Key] = r
	}
	return out
}

// Compile-time interface checks.
var (
	_ Renderer   = (*fakeRenderer)(nil)
	_ RecordSink = (*memSink)(nil)
)
