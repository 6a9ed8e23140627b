package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javalyzer/classfile"
	cft "github.com/dhamidi/javalyzer/classfile/classfiletest"
)

var testReports = []Report{
	{Path: "a/Hello.class", Class: "Hello", Digest: "af13", Status: StatusOK},
	{Path: "b.jar!/Bad.class", Class: "Bad", Digest: "9bc2", Status: StatusRejected, Error: "check: duplicate field: \"x\""},
	{Path: "c/Broken.class", Status: StatusInvalid, Error: "classfile: invalid magic number"},
	{Path: "d/Hello.class", Class: "Hello", Digest: "af13", Status: StatusOK, DuplicateOf: "a/Hello.class"},
}

func TestLineEncoderClass(t *testing.T) {
	cf := cft.HelloWorld().Parse(t)
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).EncodeClass(cf); err != nil {
		t.Fatalf("EncodeClass() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"class\tHelloWorld\tpublic,super\t52.0\n",
		"super\tjava/lang/Object\n",
		"const\t1\tMethodref\tjava/lang/Object.<init>:()V\n",
		"const\t7\tClass\tHelloWorld\n",
		"method\t<init>\t()V\t-\n",
		"\tattribute\tCode\t29\t-\n",
		"\t\tcode\t1\t1\t5\t0\n",
		"\t\t\tattribute\tLineNumberTable\t6\t-\n",
		"attribute\tSourceFile\t2\tHelloWorld.java\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "interface\t") {
		t.Errorf("output lists interfaces for a class without any\n%s", out)
	}
}

func TestLineEncoderMethodHandles(t *testing.T) {
	b := cft.HelloWorld()
	target := b.Methodref("java/lang/Math", "abs", "(I)I")
	valid := b.Raw(classfile.ConstantMethodHandle, cft.Concat(cft.U1(uint8(classfile.RefInvokeStatic)), cft.U2(target))...)
	pad := b.Integer(0)
	self := b.Raw(classfile.ConstantMethodHandle, cft.Concat(cft.U1(uint8(classfile.RefInvokeStatic)), cft.U2(pad+1))...)
	first := b.Raw(classfile.ConstantMethodHandle, cft.Concat(cft.U1(uint8(classfile.RefInvokeVirtual)), cft.U2(pad+3))...)
	second := b.Raw(classfile.ConstantMethodHandle, cft.Concat(cft.U1(uint8(classfile.RefInvokeVirtual)), cft.U2(pad+2))...)
	if self != pad+1 || first != pad+2 || second != pad+3 {
		t.Fatalf("unexpected pool layout: self=%d first=%d second=%d", self, first, second)
	}
	cf := b.Parse(t)

	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).EncodeClass(cf); err != nil {
		t.Fatalf("EncodeClass() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		fmt.Sprintf("const\t%d\tMethodHandle\tREF_invokeStatic java/lang/Math.abs:(I)I\n", valid),
		fmt.Sprintf("const\t%d\tMethodHandle\t-\n", self),
		fmt.Sprintf("const\t%d\tMethodHandle\t-\n", first),
		fmt.Sprintf("const\t%d\tMethodHandle\t-\n", second),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestLineEncoderControlCharacters(t *testing.T) {
	b := cft.HelloWorld().Field(classfile.AccPrivate, "a\tb", "I")
	text := b.StringConst("line1\nline2")
	cf := b.Parse(t)

	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).EncodeClass(cf); err != nil {
		t.Fatalf("EncodeClass() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"field\t\"a\\tb\"\tI\tprivate\n",
		fmt.Sprintf("const\t%d\tString\t\"line1\\nline2\"\n", text),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	records := []string{"class\t", "super\t", "interface\t", "const\t", "field\t", "method\t", "attribute\t", "\t"}
	for i, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		known := false
		for _, prefix := range records {
			if strings.HasPrefix(line, prefix) {
				known = true
				break
			}
		}
		if !known {
			t.Errorf("line %d %q does not start a record", i+1, line)
		}
	}

	buf.Reset()
	reports := []Report{{Path: "odd\nname.class", Status: StatusInvalid, Error: "bad\tinput"}}
	if err := NewLineEncoder(&buf).EncodeReports(reports); err != nil {
		t.Fatalf("EncodeReports() error = %v", err)
	}
	if want := "invalid\t\"odd\\nname.class\"\t-\t\"bad\\tinput\"\n"; buf.String() != want {
		t.Errorf("EncodeReports() = %q, want %q", buf.String(), want)
	}
}

func TestLineEncoderReports(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).EncodeReports(testReports); err != nil {
		t.Fatalf("EncodeReports() error = %v", err)
	}
	want := "ok\ta/Hello.class\tHello\t-\n" +
		"rejected\tb.jar!/Bad.class\tBad\tcheck: duplicate field: \"x\"\n" +
		"invalid\tc/Broken.class\t-\tclassfile: invalid magic number\n" +
		"ok\td/Hello.class\tHello\t-\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeReports() =\n%s\nwant\n%s", got, want)
	}
}

// TestStructuredEncoders decodes each encoder's output with the matching
// library and compares it to the view it was built from.
func TestStructuredEncoders(t *testing.T) {
	tests := []struct {
		name      string
		newEnc    func(io.Writer) Encoder
		unmarshal func([]byte, any) error
	}{
		{"json", func(w io.Writer) Encoder { return NewJSONEncoder(w) }, json.Unmarshal},
		{"yaml", func(w io.Writer) Encoder { return NewYAMLEncoder(w) }, yaml.Unmarshal},
		{"cbor", func(w io.Writer) Encoder { return NewCBOREncoder(w) }, cbor.Unmarshal},
	}

	b := cft.HelloWorld().Interface("java/io/Serializable")
	b.Field(classfile.AccPrivate|classfile.AccStatic, "count", "I")
	cf := b.Parse(t)
	wantClass := buildClassView(cf)

	for _, tt := range tests {
		t.Run(tt.name+"/class", func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.newEnc(&buf).EncodeClass(cf); err != nil {
				t.Fatalf("EncodeClass() error = %v", err)
			}
			var got classView
			if err := tt.unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, wantClass) {
				t.Errorf("decoded class = %+v\nwant %+v", got, wantClass)
			}
		})
		t.Run(tt.name+"/reports", func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.newEnc(&buf).EncodeReports(testReports); err != nil {
				t.Fatalf("EncodeReports() error = %v", err)
			}
			var got []Report
			if err := tt.unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, testReports) {
				t.Errorf("decoded reports = %+v\nwant %+v", got, testReports)
			}
		})
	}
}

func TestClassView(t *testing.T) {
	b := cft.HelloWorld()
	b.Field(classfile.AccPublic|classfile.AccStatic|classfile.AccFinal, "ANSWER", "I", b.Attr("ConstantValue", cft.U2(b.Integer(42))))
	v := buildClassView(b.Parse(t))

	if v.Name != "HelloWorld" || v.SuperClass != "java/lang/Object" {
		t.Errorf("names = %q, %q", v.Name, v.SuperClass)
	}
	if v.Interfaces != nil {
		t.Errorf("Interfaces = %v, want nil", v.Interfaces)
	}
	if got := v.Fields[0]; got.Name != "ANSWER" || !reflect.DeepEqual(got.Flags, []string{"public", "static", "final"}) {
		t.Errorf("field = %+v", got)
	}
	if got := v.Fields[0].Attributes[0].Value; got != "42" {
		t.Errorf("ConstantValue = %q, want 42", got)
	}
	code := v.Methods[0].Attributes[0].Code
	if code == nil || code.Length != 5 || len(code.Attributes) != 1 {
		t.Fatalf("code = %+v", code)
	}
}

func TestCBORDeterministic(t *testing.T) {
	cf := cft.HelloWorld().Parse(t)
	var first, second bytes.Buffer
	if err := NewCBOREncoder(&first).EncodeClass(cf); err != nil {
		t.Fatal(err)
	}
	if err := NewCBOREncoder(&second).EncodeClass(cf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("CBOR output differs between runs")
	}
}

func TestEmptyReports(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).EncodeReports(nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("EncodeReports(nil) = %q, want []", got)
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Formats {
		enc, err := NewEncoder(name, io.Discard)
		if err != nil || enc == nil {
			t.Errorf("NewEncoder(%q) = %v, %v", name, enc, err)
		}
	}
	if _, err := NewEncoder("xml", io.Discard); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("NewEncoder(xml) error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestReportFailed(t *testing.T) {
	for _, r := range testReports {
		if got, want := r.Failed(), r.Status != StatusOK; got != want {
			t.Errorf("%s: Failed() = %v, want %v", r.Path, got, want)
		}
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name       string
		compressed bool
	}{
		{"report.json", false},
		{"report.json.lz4", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			w, err := Create(path)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if err := NewJSONEncoder(w).EncodeReports(testReports); err != nil {
				t.Fatalf("EncodeReports() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			data := raw
			if tt.compressed {
				data, err = io.ReadAll(NewCompressedReader(bytes.NewReader(raw)))
				if err != nil {
					t.Fatalf("decompress: %v", err)
				}
				if bytes.Equal(raw, data) {
					t.Error("compressed output equals plain output")
				}
			}
			var got []Report
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, testReports) {
				t.Errorf("reports = %+v", got)
			}
		})
	}
}
