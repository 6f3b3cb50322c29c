package text2img

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSink_AppendAndRead(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "meta", "index_to_text.json")
	s, err := OpenSink(path)
	if err != nil {
		t.Fatalf("OpenSink() error = %v", err)
	}

	recs := []PageRecord{
		{Key: "0_0", Text: "alpha beta", ImagePath: "outputimg/0_0.png"},
		{Key: "0_1", Text: `quotes " and <tags> & stuff`, ImagePath: "outputimg/0_1.png"},
		{Key: "1_0", Text: "", ImagePath: "outputimg/1_0.png"},
	}
	for _, r := range recs {
		if err := s.Append(r); err != nil {
			t.Fatalf("Append(%s) error = %v", r.Key, err)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// One self-contained object per line.
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("file has %d lines, want 3:\n%s", len(lines), data)
	}
	if lines[0] != `{"0_0":{"text":"alpha beta","image_path":"outputimg/0_0.png"}}` {
		t.Errorf("line 0 = %s", lines[0])
	}
	if !strings.Contains(lines[1], "<tags> &") {
		t.Errorf("HTML characters should not be escaped: %s", lines[1])
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := ReadRecords(f)
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if diff := cmp.Diff(recs, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestSink_AppendReachesFileBeforeClose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "meta.json")
	s, err := OpenSink(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Append(PageRecord{Key: "0_0", Text: "alpha", ImagePath: "img/0_0.png"}); err != nil {
		t.Fatal(err)
	}

	// A second reader sees the record while the sink is still open.
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := ReadRecords(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Key != "0_0" {
		t.Errorf("records visible before Close = %+v, want 0_0", got)
	}
}

func TestSink_TruncatesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "meta.json")
	if err := os.WriteFile(path, []byte(`{"9_9":{"text":"stale","image_path":"x"}}`+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := OpenSink(path)
	if err != nil {
		t.Fatalf("OpenSink() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file after reopen, got %q", data)
	}
}

func TestSink_Closed(t *testing.T) {
	t.Parallel()

	s, err := OpenSink(filepath.Join(t.TempDir(), "meta.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if err := s.Append(PageRecord{Key: "0_0"}); !errors.Is(err, ErrSinkClosed) {
		t.Errorf("Append after Close = %v, want %v", err, ErrSinkClosed)
	}
}

func TestOpenSink_Error(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := OpenSink(filepath.Join(blocker, "meta.json"))
	if !errors.Is(err, ErrSinkOpen) {
		t.Errorf("OpenSink() error = %v, want %v", err, ErrSinkOpen)
	}
}

func TestSink_WriteIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := OpenSink(filepath.Join(dir, "meta.json"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for _, r := range []PageRecord{
		{Key: "1_0", Text: "b", ImagePath: "img/1_0.png"},
		{Key: "0_0", Text: "a", ImagePath: "img/0_0.png"},
	} {
		if err := s.Append(r); err != nil {
			t.Fatal(err)
		}
	}

	indexPath := filepath.Join(dir, "index.json")
	if err := s.WriteIndex(indexPath); err != nil {
		t.Fatalf("WriteIndex() error = %v", err)
	}
	data, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatal(err)
	}

	want := `{
    "0_0": {
        "text": "a",
        "image_path": "img/0_0.png"
    },
    "1_0": {
        "text": "b",
        "image_path": "img/1_0.png"
    }
}
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
}

func TestSink_WriteIndexEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := OpenSink(filepath.Join(dir, "meta.json"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	indexPath := filepath.Join(dir, "index.json")
	if err := s.WriteIndex(indexPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}\n" {
		t.Errorf("empty index = %q, want {}", data)
	}
}

func TestReadRecords(t *testing.T) {
	t.Parallel()

	t.Run("skips blank lines", func(t *testing.T) {
		t.Parallel()

		in := "\n" + `{"0_0":{"text":"a","image_path":"p"}}` + "\n\n"
		got, err := ReadRecords(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Key != "0_0" {
			t.Errorf("ReadRecords() = %+v", got)
		}
	})

	t.Run("reports the bad line", func(t *testing.T) {
		t.Parallel()

		in := `{"0_0":{"text":"a","image_path":"p"}}` + "\n" + "{truncated"
		got, err := ReadRecords(strings.NewReader(in))
		if err == nil || !strings.Contains(err.Error(), "line 2") {
			t.Errorf("error = %v, want line 2", err)
		}
		if len(got) != 1 {
			t.Errorf("records before the bad line = %d, want 1", len(got))
		}
	})

	t.Run("long line", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("x", bufio.MaxScanTokenSize*2)
		in := `{"0_0":{"text":"` + long + `","image_path":"p"}}`
		got, err := ReadRecords(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || len(got[0].Text) != len(long) {
			t.Error("long record not read back intact")
		}
	})
}
