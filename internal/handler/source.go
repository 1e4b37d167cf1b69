package handler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cx-miguel-neiva/bench-report/plugins"
	"github.com/docker/go-units"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// ReadSource loads a report file into memory. Files ending in .gz or .zst are
// decompressed; the returned item carries the decompressed document.
func ReadSource(path string) (*plugins.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, &SourceNotFoundError{Path: path, Err: err}
	}

	content, err := decompress(path, raw)
	if err != nil {
		return nil, &MalformedDocumentError{Source: path, Err: err}
	}
	log.Debug().
		Str("source", path).
		Str("size", units.HumanSize(float64(len(raw)))).
		Str("decoded", units.HumanSize(float64(len(content)))).
		Msg("Read report")

	return &plugins.Item{
		Content: content,
		ID:      strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".gz"), ".zst"),
		Source:  path,
	}, nil
}

func decompress(path string, raw []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer zr.Close()

		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress gzip stream: %w", err)
		}
		return out, nil
	case ".zst":
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()

		out, err := dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress zstd stream: %w", err)
		}
		return out, nil
	default:
		return raw, nil
	}
}
