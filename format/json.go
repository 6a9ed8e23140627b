package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javalyzer/classfile"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) EncodeClass(cf *classfile.ClassFile) error {
	return e.write(buildClassView(cf))
}

func (e *JSONEncoder) EncodeReports(reports []Report) error {
	if reports == nil {
		reports = []Report{}
	}
	return e.write(reports)
}

func (e *JSONEncoder) write(v any) error {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}
