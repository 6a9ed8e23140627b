package scan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// maxNestedArchives bounds how deep archives inside archives are opened,
// as in a war holding jars.
const maxNestedArchives = 2

// ArchiveSeparator joins an archive path and an entry name in Result.Path.
const ArchiveSeparator = "!/"

type input struct {
	path string
	read func() ([]byte, error)
}

func fileInput(p string) input {
	return input{path: p, read: func() ([]byte, error) {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, readError(p, err)
		}
		return data, nil
	}}
}

func errInput(p string, err error) input {
	return input{path: p, read: func() ([]byte, error) { return nil, err }}
}

// emitFunc hands an input to the workers. It returns false once the scan
// has been cancelled.
type emitFunc func(input) bool

// collect finds the classes under root. Unreadable paths become inputs
// that fail with their error, so one bad entry never ends a scan.
func (s *Scanner) collect(ctx context.Context, root string, emit emitFunc, onClose func(func() error)) error {
	info, err := os.Stat(root)
	if err != nil {
		return s.emitOrStop(ctx, emit, errInput(root, readError(root, err)))
	}
	if !info.IsDir() {
		if s.archive[filepath.Ext(root)] {
			return s.collectArchive(ctx, root, emit, onClose)
		}
		return s.emitOrStop(ctx, emit, fileInput(root))
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return s.emitOrStop(ctx, emit, errInput(p, readError(p, err)))
		}
		if d.IsDir() {
			return nil
		}
		switch ext := filepath.Ext(p); {
		case ext == ".class":
			return s.emitOrStop(ctx, emit, fileInput(p))
		case s.archive[ext]:
			return s.collectArchive(ctx, p, emit, onClose)
		}
		return nil
	})
}

func (s *Scanner) emitOrStop(ctx context.Context, emit emitFunc, in input) error {
	if !emit(in) {
		return ctx.Err()
	}
	return nil
}

// collectArchive keeps the archive open until the scan ends; workers read
// entries from it concurrently.
func (s *Scanner) collectArchive(ctx context.Context, p string, emit emitFunc, onClose func(func() error)) error {
	r, err := zip.OpenReader(p)
	if err != nil {
		return s.emitOrStop(ctx, emit, errInput(p, readError(p, err)))
	}
	onClose(r.Close)
	logger().Debugf("%s: %d entries", p, len(r.File))
	return s.collectZip(ctx, p, &r.Reader, emit, 0)
}

func (s *Scanner) collectZip(ctx context.Context, prefix string, zr *zip.Reader, emit emitFunc, depth int) error {
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := prefix + ArchiveSeparator + f.Name
		ext := path.Ext(f.Name)
		switch {
		case ext == ".class":
			f := f
			err := s.emitOrStop(ctx, emit, input{path: name, read: func() ([]byte, error) {
				return s.readZipFile(name, f)
			}})
			if err != nil {
				return err
			}
		case s.archive[ext] && depth < maxNestedArchives:
			data, err := s.readZipFile(name, f)
			if err != nil {
				if err := s.emitOrStop(ctx, emit, errInput(name, err)); err != nil {
					return err
				}
				continue
			}
			nested, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
			if err != nil {
				if err := s.emitOrStop(ctx, emit, errInput(name, readError(name, err))); err != nil {
					return err
				}
				continue
			}
			if err := s.collectZip(ctx, name, nested, emit, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// readZipFile refuses entries larger than MaxEntrySize, whether the
// header admits it or the stream turns out longer than declared.
func (s *Scanner) readZipFile(name string, f *zip.File) ([]byte, error) {
	limit := s.opts.MaxEntrySize
	if f.UncompressedSize64 > uint64(limit) {
		return nil, readError(name, fmt.Errorf("%w: %d bytes (limit %d)", ErrEntryTooLarge, f.UncompressedSize64, limit))
	}
	rc, err := f.Open()
	if err != nil {
		return nil, readError(name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, readError(name, err)
	}
	if int64(len(data)) > limit {
		return nil, readError(name, fmt.Errorf("%w: more than %d bytes", ErrEntryTooLarge, limit))
	}
	return data, nil
}
