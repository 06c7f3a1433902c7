// Package writer provides common JSON and compressed-JSON writers for
// layout results.
package writer

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/graphlayout/dagre/pkg/compression"
)

// JSONWriter writes data as JSON.
type JSONWriter[T any] struct {
	// Indent specifies the indentation for pretty printing.
	// Empty string means compact output.
	Indent string
}

// NewJSONWriter creates a new JSON writer with compact output.
func NewJSONWriter[T any]() *JSONWriter[T] {
	return &JSONWriter[T]{Indent: ""}
}

// NewPrettyJSONWriter creates a JSON writer with pretty printing.
func NewPrettyJSONWriter[T any]() *JSONWriter[T] {
	return &JSONWriter[T]{Indent: "  "}
}

// Write writes the data as JSON to the writer.
func (w *JSONWriter[T]) Write(data T, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	if w.Indent != "" {
		encoder.SetIndent("", w.Indent)
	}
	return encoder.Encode(data)
}

// WriteToFile writes the data as JSON to a file.
func (w *JSONWriter[T]) WriteToFile(data T, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.Write(data, file)
}

// GzipWriter writes data as compressed JSON. Compression itself is delegated
// to pkg/compression's codec registry rather than calling compress/gzip
// directly, so switching CompressionType to zstd needs no change here.
type GzipWriter[T any] struct {
	// CompressionLevel is the gzip compression level (1-9, or
	// gzip.DefaultCompression), mapped onto pkg/compression's three-tier
	// Level scale.
	CompressionLevel int

	// CompressionType selects the codec; the zero value is
	// compression.TypeGzip.
	CompressionType compression.Type
}

// NewGzipWriter creates a new gzip writer with default compression.
func NewGzipWriter[T any]() *GzipWriter[T] {
	return &GzipWriter[T]{CompressionLevel: gzip.DefaultCompression, CompressionType: compression.TypeGzip}
}

// NewGzipWriterWithLevel creates a gzip writer with specified compression level.
func NewGzipWriterWithLevel[T any](level int) *GzipWriter[T] {
	return &GzipWriter[T]{CompressionLevel: level, CompressionType: compression.TypeGzip}
}

// compressionLevel maps the gzip-flavoured CompressionLevel field onto
// pkg/compression's coarser Level scale.
func (w *GzipWriter[T]) compressionLevel() compression.Level {
	switch w.CompressionLevel {
	case gzip.BestSpeed:
		return compression.LevelFastest
	case gzip.BestCompression:
		return compression.LevelBest
	default:
		return compression.LevelDefault
	}
}

func (w *GzipWriter[T]) compressor() (compression.Compressor, error) {
	return compression.New(w.CompressionType, w.compressionLevel())
}

// Write writes the data as compressed JSON to the writer.
func (w *GzipWriter[T]) Write(data T, out io.Writer) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	comp, err := w.compressor()
	if err != nil {
		return fmt.Errorf("failed to create compressor: %w", err)
	}
	defer compression.Close(comp)

	compressed, err := comp.Compress(jsonData)
	if err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}

	_, err = out.Write(compressed)
	return err
}

// WriteToFile writes the data as compressed JSON to a file.
func (w *GzipWriter[T]) WriteToFile(data T, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.Write(data, file)
}

// WriteResult contains statistics about the written file.
type WriteResult struct {
	JSONSize       int64
	CompressedSize int64
	CompressionPct float64
}

// WriteToFileWithStats writes and returns statistics about the output.
func (w *GzipWriter[T]) WriteToFileWithStats(data T, filepath string) (*WriteResult, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data: %w", err)
	}
	jsonSize := int64(len(jsonData))

	comp, err := w.compressor()
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	defer compression.Close(comp)

	compressed, err := comp.Compress(jsonData)
	if err != nil {
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}

	if err := os.WriteFile(filepath, compressed, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	compressedSize := int64(len(compressed))

	compressionPct := 0.0
	if jsonSize > 0 {
		compressionPct = float64(compressedSize) / float64(jsonSize) * 100
	}

	return &WriteResult{
		JSONSize:       jsonSize,
		CompressedSize: compressedSize,
		CompressionPct: compressionPct,
	}, nil
}
