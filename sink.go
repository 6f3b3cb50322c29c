package text2img

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/alnah/go-text2img/internal/fileutil"
)

// maxRecordLine bounds a single metadata line when reading it back.
const maxRecordLine = 64 << 20

// Sink is an append-only store of page records.
// Each record is written as one JSON line {"<key>":{"text":...,"image_path":...}}
// straight to the file, and mirrored in memory for end-of-run use.
// Records survive a process crash; only Close guarantees they reach the disk.
type Sink struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	records map[string]PageRecord
	closed  bool
}

// OpenSink creates or truncates the metadata file at path.
func OpenSink(path string) (*Sink, error) {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinkOpen, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileutil.FilePermissions) // #nosec G304 -- user-provided output path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinkOpen, err)
	}
	return &Sink{
		path:    path,
		file:    f,
		records: make(map[string]PageRecord),
	}, nil
}

// Path returns the metadata file path.
func (s *Sink) Path() string {
	return s.path
}

// Append writes rec as a new line and records it in memory.
// A line is never rewritten, so the file stays readable after the process
// dies. Lines are not synced one by one: after a power loss the tail of the
// file may be missing, while Close syncs everything appended so far.
func (s *Sink) Append(rec PageRecord) error {
	line, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSinkWrite, rec.Key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSinkWrite, rec.Key, err)
	}
	s.records[rec.Key] = rec
	return nil
}

// Len returns the number of records appended.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Records returns a copy of the in-memory mirror keyed by page key.
func (s *Sink) Records() map[string]PageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.records)
}

// WriteIndex writes every record as a single indented JSON object sorted by
// key, the layout of a classic index_to_text.json.
func (s *Sink) WriteIndex(path string) error {
	records := s.Records()

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, key := range slices.Sorted(maps.Keys(records)) {
		if i > 0 {
			buf.WriteString(",")
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.MarshalIndent(records[key], "    ", "    ")
		if err != nil {
			return err
		}
		buf.WriteString("\n    ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	if len(records) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return fileutil.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Close syncs and closes the metadata file. Safe to call more than once.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	syncErr := s.file.Sync()
	if err := s.file.Close(); err != nil {
		return err
	}
	return syncErr
}

// ReadRecords parses a metadata file written by Sink, in file order.
func ReadRecords(r io.Reader) ([]PageRecord, error) {
	var out []PageRecord

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry map[string]PageRecord
		if err := json.Unmarshal(line, &entry); err != nil {
			return out, fmt.Errorf("line %d: %w", lineNo, err)
		}
		for key, rec := range entry {
			rec.Key = key
			out = append(out, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// encodeRecord returns rec as one newline-terminated JSON object.
func encodeRecord(rec PageRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]PageRecord{rec.Key: rec}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
