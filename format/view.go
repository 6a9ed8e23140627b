package format

import (
	"github.com/dhamidi/javalyzer/classfile"
)

// classView is the tree shared by the structured encoders. The CBOR
// encoder reads the json tags.
type classView struct {
	Name         string          `json:"name" yaml:"name"`
	SuperClass   string          `json:"superClass,omitempty" yaml:"superClass,omitempty"`
	Interfaces   []string        `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Flags        []string        `json:"flags,omitempty" yaml:"flags,omitempty"`
	Version      versionView     `json:"version" yaml:"version"`
	ConstantPool []constantView  `json:"constantPool,omitempty" yaml:"constantPool,omitempty"`
	Fields       []memberView    `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods      []memberView    `json:"methods,omitempty" yaml:"methods,omitempty"`
	Attributes   []attributeView `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type versionView struct {
	Major uint16 `json:"major" yaml:"major"`
	Minor uint16 `json:"minor" yaml:"minor"`
}

type constantView struct {
	Index uint16 `json:"index" yaml:"index"`
	Tag   string `json:"tag" yaml:"tag"`
	Value string `json:"value" yaml:"value"`
}

type memberView struct {
	Name       string          `json:"name" yaml:"name"`
	Descriptor string          `json:"descriptor" yaml:"descriptor"`
	Flags      []string        `json:"flags,omitempty" yaml:"flags,omitempty"`
	Attributes []attributeView `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type attributeView struct {
	Name   string    `json:"name" yaml:"name"`
	Length uint32    `json:"length" yaml:"length"`
	Value  string    `json:"value,omitempty" yaml:"value,omitempty"`
	Code   *codeView `json:"code,omitempty" yaml:"code,omitempty"`
}

type codeView struct {
	MaxStack   uint16          `json:"maxStack" yaml:"maxStack"`
	MaxLocals  uint16          `json:"maxLocals" yaml:"maxLocals"`
	Length     int             `json:"length" yaml:"length"`
	Handlers   int             `json:"handlers,omitempty" yaml:"handlers,omitempty"`
	Attributes []attributeView `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

func buildClassView(cf *classfile.ClassFile) classView {
	cp := cf.ConstantPool
	v := classView{
		Name:       cf.ClassName(),
		SuperClass: cf.SuperClassName(),
		Flags:      cf.AccessFlags.Strings(classfile.ClassFlags),
		Version: versionView{
			Major: cf.MajorVersion,
			Minor: cf.MinorVersion,
		},
		Attributes: buildAttributes(cp, cf.Attributes),
	}
	if len(cf.Interfaces) > 0 {
		v.Interfaces = cf.InterfaceNames()
	}
	for i := range cp {
		index := uint16(i + 1)
		entry := cp.Entry(index)
		if entry == nil {
			continue
		}
		v.ConstantPool = append(v.ConstantPool, constantView{
			Index: index,
			Tag:   entry.Tag().String(),
			Value: cp.Describe(index),
		})
	}
	for i := range cf.Fields {
		f := &cf.Fields[i]
		v.Fields = append(v.Fields, memberView{
			Name:       f.Name(cp),
			Descriptor: f.Descriptor(cp),
			Flags:      f.AccessFlags.Strings(classfile.FieldFlags),
			Attributes: buildAttributes(cp, f.Attributes),
		})
	}
	for i := range cf.Methods {
		m := &cf.Methods[i]
		v.Methods = append(v.Methods, memberView{
			Name:       m.Name(cp),
			Descriptor: m.Descriptor(cp),
			Flags:      m.AccessFlags.Strings(classfile.MethodFlags),
			Attributes: buildAttributes(cp, m.Attributes),
		})
	}
	return v
}

func buildAttributes(cp classfile.ConstantPool, attrs []classfile.AttributeInfo) []attributeView {
	if len(attrs) == 0 {
		return nil
	}
	result := make([]attributeView, len(attrs))
	for i := range attrs {
		a := &attrs[i]
		result[i] = attributeView{
			Name:   a.Name(),
			Length: a.Length,
			Value:  attributeValue(cp, a),
		}
		if code := a.AsCode(); code != nil {
			result[i].Code = &codeView{
				MaxStack:   code.MaxStack,
				MaxLocals:  code.MaxLocals,
				Length:     len(code.Code),
				Handlers:   len(code.ExceptionTable),
				Attributes: buildAttributes(cp, code.Attributes),
			}
		}
	}
	return result
}

// attributeValue summarizes attributes that point at a single constant.
func attributeValue(cp classfile.ConstantPool, a *classfile.AttributeInfo) string {
	switch p := a.Parsed.(type) {
	case *classfile.ConstantValueAttribute:
		return cp.Describe(p.ConstantValueIndex)
	case *classfile.SignatureAttribute:
		return cp.GetUtf8(p.SignatureIndex)
	case *classfile.SourceFileAttribute:
		return cp.GetUtf8(p.SourceFileIndex)
	case *classfile.NestHostAttribute:
		return cp.GetClassName(p.HostClassIndex)
	case *classfile.ModuleMainClassAttribute:
		return cp.GetClassName(p.MainClassIndex)
	}
	return ""
}
