// Package yamlutil decodes YAML configuration files.
// Callers never import the YAML library directly.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxFileSize bounds the bytes read from one YAML source (1MB).
var MaxFileSize int64 = 1 << 20

var (
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrFileTooLarge   = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeFile strictly decodes the YAML file at path into v.
// Errors from opening the file are returned unwrapped so that callers can
// test them with errors.Is(err, os.ErrNotExist).
func DecodeFile(path string, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	f, err := os.Open(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		return err
	}
	defer f.Close()
	return Decode(f, v)
}

// Decode strictly decodes one YAML document from r into v.
// Unknown fields are errors. Fields absent from the document keep the
// values already in v, and an empty document leaves v untouched.
func Decode(r io.Reader, v any) error {
	if v == nil {
		return ErrNilDestination
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return fmt.Errorf("%w: max %d bytes", ErrFileTooLarge, MaxFileSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		// Line and column only: no colors, no source excerpt.
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, false))
	}
	return nil
}
