// Package fs writes leaders datasets to the local filesystem.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/leaders"
	"gopkg.in/yaml.v3"
)

// Format is a dataset file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the Format named by s. An empty name selects the
// format from the extension of path, defaulting to JSON.
func ParseFormat(s, path string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return FormatYAML, nil
		}
		return FormatJSON, nil
	}
	return "", leaders.Errorf(leaders.EINVALID, "unsupported output format %q", s)
}

// Ensure Writer implements leaders.DatasetWriter at compile time.
var _ leaders.DatasetWriter = (*Writer)(nil)

// Writer writes a dataset to a single file.
// The file is written under a temporary name in the same directory and
// renamed into place, so readers never observe a partial dataset.
type Writer struct {
	path   string
	format Format
}

// NewWriter creates a Writer for path in the given format.
func NewWriter(path string, format Format) *Writer {
	return &Writer{path: path, format: format}
}

// WriteDataset encodes dataset and replaces the output file with it.
func (w *Writer) WriteDataset(ctx context.Context, dataset leaders.Dataset) error {
	if w.path == "" {
		return leaders.Errorf(leaders.EINVALID, "output path required")
	}

	data, err := Encode(dataset, w.format)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Encode serializes dataset in the given format. Countries are written in
// sorted order and leaders in dataset order.
func Encode(dataset leaders.Dataset, format Format) ([]byte, error) {
	if dataset == nil {
		dataset = leaders.Dataset{}
	}

	var buf bytes.Buffer
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dataset); err != nil {
			return nil, err
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(dataset); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, leaders.Errorf(leaders.EINVALID, "unsupported output format %q", format)
	}
	return buf.Bytes(), nil
}
