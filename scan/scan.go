// Package scan parses and checks many class files at once. Inputs are
// class files, directories and zip archives such as jars; every class
// found becomes one Result.
package scan

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/zeebo/blake3"

	"github.com/dhamidi/javalyzer/check"
	"github.com/dhamidi/javalyzer/classfile"
	"github.com/dhamidi/javalyzer/format"
)

func logger() commonlog.Logger { return commonlog.GetLogger("javalyzer.scan") }

// DefaultArchives are the extensions opened as zip archives.
var DefaultArchives = []string{".jar", ".zip"}

// DefaultMaxEntrySize is the largest archive entry read into memory.
const DefaultMaxEntrySize = 256 << 20

var ErrEntryTooLarge = errors.New("archive entry too large")

type Options struct {
	// Workers bounds how many classes are processed at once; values
	// below 1 select runtime.GOMAXPROCS(0).
	Workers int
	// Archives lists extensions, with the leading dot, read as zip
	// archives. Nil selects DefaultArchives.
	Archives []string
	// MaxDepth is passed to classfile.WithMaxDepth.
	MaxDepth int
	// MaxEntrySize bounds the uncompressed size of one archive entry;
	// values below 1 select DefaultMaxEntrySize.
	MaxEntrySize int64
	Check        []check.Option
}

// Result is the outcome for one class. Err is nil when the class was
// accepted; otherwise Status tells which stage rejected it.
type Result struct {
	Path        string
	Class       string
	Digest      string
	Status      format.Status
	Err         error
	DuplicateOf string
}

func (r Result) Report() format.Report {
	report := format.Report{
		Path:        r.Path,
		Class:       r.Class,
		Digest:      r.Digest,
		Status:      r.Status,
		DuplicateOf: r.DuplicateOf,
	}
	if r.Err != nil {
		report.Error = r.Err.Error()
	}
	return report
}

// Reports converts results for the format encoders.
func Reports(results []Result) []format.Report {
	reports := make([]format.Report, len(results))
	for i, r := range results {
		reports[i] = r.Report()
	}
	return reports
}

// Failed counts results that were not accepted.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Status != format.StatusOK {
			n++
		}
	}
	return n
}

// outcome is what parsing and checking one distinct byte sequence
// produced; it is shared by every input with the same digest.
type outcome struct {
	class  string
	status format.Status
	err    error
}

// Scanner runs scans. Outcomes are cached by content digest for the
// lifetime of the Scanner, so identical classes are only checked once.
type Scanner struct {
	opts    Options
	checker *check.Checker
	archive map[string]bool

	mu    sync.Mutex
	cache map[[32]byte]outcome
}

func New(opts Options) *Scanner {
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.MaxEntrySize < 1 {
		opts.MaxEntrySize = DefaultMaxEntrySize
	}
	if opts.Archives == nil {
		opts.Archives = DefaultArchives
	}
	s := &Scanner{
		opts:    opts,
		checker: check.New(opts.Check...),
		archive: make(map[string]bool, len(opts.Archives)),
		cache:   make(map[[32]byte]outcome),
	}
	for _, ext := range opts.Archives {
		s.archive[ext] = true
	}
	return s
}

// Scan processes every class reachable from paths. Results are sorted by
// path. When ctx is cancelled Scan stops handing out inputs and returns
// the results gathered so far together with ctx.Err().
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]Result, error) {
	inputs := make(chan input)
	results := make(chan Result)

	var closers []func() error
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	var workers sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for in := range inputs {
				results <- s.process(in)
			}
		}()
	}

	go func() {
		defer close(inputs)
		for _, path := range paths {
			err := s.collect(ctx, path, func(in input) bool {
				select {
				case inputs <- in:
					return true
				case <-ctx.Done():
					return false
				}
			}, func(c func() error) { closers = append(closers, c) })
			if err != nil {
				return
			}
		}
	}()

	go func() {
		workers.Wait()
		close(results)
	}()

	var collected []Result
	for r := range results {
		collected = append(collected, r)
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].Path < collected[j].Path })
	markDuplicates(collected)

	logger().Infof("scanned %d classes, %d failed", len(collected), Failed(collected))
	return collected, ctx.Err()
}

// ScanBytes parses and checks one class held in memory.
func (s *Scanner) ScanBytes(path string, data []byte) Result {
	return s.process(input{path: path, read: func() ([]byte, error) { return data, nil }})
}

func (s *Scanner) process(in input) Result {
	r := Result{Path: in.path}
	data, err := in.read()
	if err != nil {
		r.Status = format.StatusError
		r.Err = err
		logger().Warningf("%s: %s", in.path, err)
		return r
	}

	digest := blake3.Sum256(data)
	r.Digest = hex.EncodeToString(digest[:])

	s.mu.Lock()
	o, ok := s.cache[digest]
	s.mu.Unlock()
	if !ok {
		o = s.evaluate(data)
		s.mu.Lock()
		s.cache[digest] = o
		s.mu.Unlock()
	}

	r.Class, r.Status, r.Err = o.class, o.status, o.err
	if r.Err != nil {
		logger().Debugf("%s: %s", in.path, r.Err)
	}
	return r
}

func (s *Scanner) evaluate(data []byte) outcome {
	cf, err := classfile.Parse(data, classfile.WithMaxDepth(s.opts.MaxDepth))
	if err != nil {
		return outcome{status: format.StatusInvalid, err: err}
	}
	o := outcome{class: cf.ClassName(), status: format.StatusOK}
	if err := s.checker.Check(cf); err != nil {
		o.status, o.err = format.StatusRejected, err
	}
	return o
}

// markDuplicates points every result at the first path, in sorted
// order, that had the same digest.
func markDuplicates(results []Result) {
	first := make(map[string]string)
	for i := range results {
		d := results[i].Digest
		if d == "" {
			continue
		}
		if path, ok := first[d]; ok {
			results[i].DuplicateOf = path
			continue
		}
		first[d] = results[i].Path
	}
}

func readError(path string, err error) error {
	return fmt.Errorf("read %s: %w", path, err)
}
