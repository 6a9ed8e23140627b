package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/dhamidi/javalyzer/classfile"
)

// LineEncoder writes one tab separated record per line, with "-" for
// empty columns, so output can be filtered with grep and cut. Text
// holding control characters is written as a quoted Go string.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) EncodeClass(cf *classfile.ClassFile) error {
	_, err := io.WriteString(e.w, classLines(buildClassView(cf)))
	return err
}

func (e *LineEncoder) EncodeReports(reports []Report) error {
	var sb strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", r.Status, column(r.Path), column(r.Class), column(r.Error))
	}
	_, err := io.WriteString(e.w, sb.String())
	return err
}

func classLines(v classView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "class\t%s\t%s\t%d.%d\n", column(v.Name), flagsColumn(v.Flags), v.Version.Major, v.Version.Minor)
	if v.SuperClass != "" {
		fmt.Fprintf(&sb, "super\t%s\n", column(v.SuperClass))
	}
	for _, name := range v.Interfaces {
		fmt.Fprintf(&sb, "interface\t%s\n", column(name))
	}
	for _, c := range v.ConstantPool {
		fmt.Fprintf(&sb, "const\t%d\t%s\t%s\n", c.Index, c.Tag, column(c.Value))
	}
	for _, f := range v.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n", column(f.Name), column(f.Descriptor), flagsColumn(f.Flags))
		attributeLines(&sb, "\t", f.Attributes)
	}
	for _, m := range v.Methods {
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\n", column(m.Name), column(m.Descriptor), flagsColumn(m.Flags))
		attributeLines(&sb, "\t", m.Attributes)
	}
	attributeLines(&sb, "", v.Attributes)
	return sb.String()
}

func attributeLines(sb *strings.Builder, indent string, attrs []attributeView) {
	for _, a := range attrs {
		fmt.Fprintf(sb, "%sattribute\t%s\t%d\t%s\n", indent, column(a.Name), a.Length, column(a.Value))
		if c := a.Code; c != nil {
			fmt.Fprintf(sb, "%s\tcode\t%d\t%d\t%d\t%d\n", indent, c.MaxStack, c.MaxLocals, c.Length, c.Handlers)
			attributeLines(sb, indent+"\t\t", c.Attributes)
		}
	}
}

func flagsColumn(flags []string) string {
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func column(s string) string {
	switch {
	case s == "":
		return "-"
	case strings.ContainsFunc(s, unicode.IsControl):
		return strconv.Quote(s)
	}
	return s
}
