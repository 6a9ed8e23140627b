package format

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/dhamidi/javalyzer/classfile"
)

// cborEncMode uses Core Deterministic Encoding: the same class or report
// set always produces the same bytes.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("format: CBOR encoder initialization failed: " + err.Error())
	}
}

type CBOREncoder struct {
	w io.Writer
}

func NewCBOREncoder(w io.Writer) *CBOREncoder {
	return &CBOREncoder{w: w}
}

func (e *CBOREncoder) EncodeClass(cf *classfile.ClassFile) error {
	return e.write(buildClassView(cf))
}

func (e *CBOREncoder) EncodeReports(reports []Report) error {
	if reports == nil {
		reports = []Report{}
	}
	return e.write(reports)
}

func (e *CBOREncoder) write(v any) error {
	data, err := cborEncMode.Marshal(v)
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}
