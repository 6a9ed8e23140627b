package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javalyzer/classfile"
)

type YAMLEncoder struct {
	w io.Writer
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) EncodeClass(cf *classfile.ClassFile) error {
	return e.write(buildClassView(cf))
}

func (e *YAMLEncoder) EncodeReports(reports []Report) error {
	if reports == nil {
		reports = []Report{}
	}
	return e.write(reports)
}

func (e *YAMLEncoder) write(v any) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
