// Package format renders decoded class files and check reports.
package format

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/javalyzer/classfile"
)

var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the names accepted by NewEncoder.
var Formats = []string{"line", "json", "yaml", "cbor"}

type Encoder interface {
	EncodeClass(cf *classfile.ClassFile) error
	EncodeReports(reports []Report) error
}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line", "":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "cbor":
		return NewCBOREncoder(w), nil
	default:
		return nil, fmt.Errorf("%w: %s (expected line, json, yaml or cbor)", ErrUnknownFormat, name)
	}
}

// Status is the outcome of processing one class.
type Status string

const (
	StatusOK       Status = "ok"
	StatusRejected Status = "rejected"
	StatusInvalid  Status = "invalid"
	StatusError    Status = "error"
)

// Report is one line of check output. Digest is the BLAKE3 hash of the
// class bytes; DuplicateOf names an earlier input with the same digest
// whose result was reused.
type Report struct {
	Path        string `json:"path" yaml:"path"`
	Class       string `json:"class,omitempty" yaml:"class,omitempty"`
	Digest      string `json:"digest,omitempty" yaml:"digest,omitempty"`
	Status      Status `json:"status" yaml:"status"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
	DuplicateOf string `json:"duplicateOf,omitempty" yaml:"duplicateOf,omitempty"`
}

// Failed reports whether the class was not accepted.
func (r Report) Failed() bool {
	return r.Status != StatusOK
}
