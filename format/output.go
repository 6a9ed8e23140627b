package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// CompressedSuffix selects LZ4 frame compression in Create.
const CompressedSuffix = ".lz4"

// Create opens path for writing. A path ending in CompressedSuffix is
// written as an LZ4 frame; closing the result flushes the frame and
// closes the file. An empty path or "-" writes to stdout.
func Create(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	if !strings.HasSuffix(path, CompressedSuffix) {
		return f, nil
	}
	zw, err := NewCompressedWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &compressedFile{Writer: zw, f: f}, nil
}

// NewCompressedWriter wraps w in an LZ4 frame writer with block
// checksums enabled.
func NewCompressedWriter(w io.Writer) (*lz4.Writer, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.BlockChecksumOption(true)); err != nil {
		return nil, fmt.Errorf("configure lz4 writer: %w", err)
	}
	return zw, nil
}

// NewCompressedReader reads an LZ4 frame written by NewCompressedWriter.
func NewCompressedReader(r io.Reader) io.Reader {
	return lz4.NewReader(r)
}

type compressedFile struct {
	*lz4.Writer
	f *os.File
}

func (c *compressedFile) Close() error {
	if err := c.Writer.Close(); err != nil {
		c.f.Close()
		return fmt.Errorf("flush lz4 frame: %w", err)
	}
	return c.f.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
