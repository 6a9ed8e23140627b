package classfile

import (
	"fmt"
	"io"
	"os"
)

// memberSize is the smallest field_info or method_info: flags, name,
// descriptor and an attribute count.
const memberSize = 8

type options struct {
	maxDepth int
}

// Option adjusts how Parse decodes its input.
type Option func(*options)

// WithMaxDepth bounds nesting of attributes and annotations. Values
// below 1 select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

func ParseFile(path string, opts ...Option) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w: %w", ErrRead, err)
	}
	return Parse(data, opts...)
}

// ParseReader reads rd to the end and decodes the result.
func ParseReader(rd io.Reader, opts ...Option) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w: %w", ErrRead, err)
	}
	return Parse(data, opts...)
}

// Parse decodes one class file. The result keeps references into data:
// Utf8 constants, code arrays and raw attribute bodies are sub-slices of
// it, so data must not be modified while the result is in use.
//
// Every error wraps one of the package's Err values, usually inside a
// *DecodeError carrying the input offset.
func Parse(data []byte, opts ...Option) (*ClassFile, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	r := newReader(data)
	cf := &ClassFile{Magic: r.readU4()}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if cf.Magic != Magic {
		return nil, fmt.Errorf("%w: 0x%X (expected 0xCAFEBABE)", ErrInvalidMagic, cf.Magic)
	}

	cf.MinorVersion = r.readU2()
	cf.MajorVersion = r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read version: %w", r.err)
	}

	cf.ConstantPool = readConstantPool(r)
	if r.err != nil {
		return nil, fmt.Errorf("failed to read constant pool: %w", r.err)
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()
	cf.Interfaces = r.readU2s(int(r.readU2()))
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}

	d := &decoder{cp: cf.ConstantPool, maxDepth: o.maxDepth}

	fieldsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read fields count: %w", r.err)
	}
	cf.Fields = make([]FieldInfo, 0, r.capacity(int(fieldsCount), memberSize))
	for i := 0; i < int(fieldsCount); i++ {
		cf.Fields = append(cf.Fields, FieldInfo(d.readMember(r)))
		if r.err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, r.err)
		}
	}

	methodsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read methods count: %w", r.err)
	}
	cf.Methods = make([]MethodInfo, 0, r.capacity(int(methodsCount), memberSize))
	for i := 0; i < int(methodsCount); i++ {
		cf.Methods = append(cf.Methods, MethodInfo(d.readMember(r)))
		if r.err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, r.err)
		}
	}

	cf.Attributes = d.readAttributes(r, 1)
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", r.err)
	}

	if n := r.remaining(); n > 0 {
		r.errorf("class file", n, ErrTrailingBytes)
		return nil, r.err
	}
	return cf, nil
}

// member is the layout shared by field_info and method_info.
type member struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (d *decoder) readMember(r *reader) member {
	m := member{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	if r.err != nil {
		return m
	}
	m.Attributes = d.readAttributes(r, 1)
	return m
}
