// Package classfiletest assembles class file bytes for tests.
package classfiletest

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/dhamidi/javalyzer/classfile"
)

func U1(v uint8) []byte { return []byte{v} }

func U2(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }

func U4(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }

// Concat joins byte slices.
func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Builder lays out a class file. Constant pool entries are appended in
// call order and deduplicated where the format allows it.
type Builder struct {
	Magic        uint32
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  classfile.AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	// PoolCount overrides constant_pool_count when non-zero.
	PoolCount uint16
	Trailing  []byte

	pool    [][]byte
	utf8s   map[string]uint16
	classes map[string]uint16
	fields  [][]byte
	methods [][]byte
	attrs   [][]byte
}

// New returns a builder for a public class at major version 52.
func New() *Builder {
	return &Builder{
		Magic:        classfile.Magic,
		MajorVersion: 52,
		AccessFlags:  classfile.AccPublic | classfile.AccSuper,
		utf8s:        map[string]uint16{},
		classes:      map[string]uint16{},
	}
}

// reserve allocates the next pool index; wide entries take two.
func (b *Builder) reserve(wide bool) uint16 {
	index := uint16(len(b.pool) + 1)
	b.pool = append(b.pool, nil)
	if wide {
		b.pool = append(b.pool, []byte{})
	}
	return index
}

// Raw adds an entry with the given tag and payload, unchecked.
func (b *Builder) Raw(tag classfile.ConstantTag, payload ...byte) uint16 {
	index := b.reserve(tag == classfile.ConstantLong || tag == classfile.ConstantDouble)
	entry := Concat(U1(uint8(tag)), payload)
	b.pool[index-1] = entry
	return index
}

func (b *Builder) Utf8(s string) uint16 {
	return b.Utf8Bytes([]byte(s))
}

// Utf8Bytes adds a Utf8 entry holding exactly the given bytes.
func (b *Builder) Utf8Bytes(raw []byte) uint16 {
	if index, ok := b.utf8s[string(raw)]; ok {
		return index
	}
	index := b.Raw(classfile.ConstantUtf8, Concat(U2(uint16(len(raw))), raw)...)
	b.utf8s[string(raw)] = index
	return index
}

func (b *Builder) Class(name string) uint16 {
	if index, ok := b.classes[name]; ok {
		return index
	}
	index := b.reserve(false)
	b.classes[name] = index
	entry := Concat(U1(uint8(classfile.ConstantClass)), U2(b.Utf8(name)))
	b.pool[index-1] = entry
	return index
}

func (b *Builder) StringConst(s string) uint16 {
	index := b.reserve(false)
	entry := Concat(U1(uint8(classfile.ConstantString)), U2(b.Utf8(s)))
	b.pool[index-1] = entry
	return index
}

func (b *Builder) Integer(v int32) uint16 {
	return b.Raw(classfile.ConstantInteger, U4(uint32(v))...)
}

func (b *Builder) Float(v float32) uint16 {
	return b.Raw(classfile.ConstantFloat, U4(math.Float32bits(v))...)
}

func (b *Builder) Long(v int64) uint16 {
	u := uint64(v)
	return b.Raw(classfile.ConstantLong, Concat(U4(uint32(u>>32)), U4(uint32(u)))...)
}

func (b *Builder) Double(v float64) uint16 {
	u := math.Float64bits(v)
	return b.Raw(classfile.ConstantDouble, Concat(U4(uint32(u>>32)), U4(uint32(u)))...)
}

func (b *Builder) NameAndType(name, descriptor string) uint16 {
	index := b.reserve(false)
	entry := Concat(U1(uint8(classfile.ConstantNameAndType)), U2(b.Utf8(name)), U2(b.Utf8(descriptor)))
	b.pool[index-1] = entry
	return index
}

// Methodref takes its own slot before the entries it refers to, the way
// compilers usually lay out the first pool entry.
func (b *Builder) Methodref(class, name, descriptor string) uint16 {
	index := b.reserve(false)
	entry := Concat(U1(uint8(classfile.ConstantMethodref)), U2(b.Class(class)), U2(b.NameAndType(name, descriptor)))
	b.pool[index-1] = entry
	return index
}

func (b *Builder) Fieldref(class, name, descriptor string) uint16 {
	index := b.reserve(false)
	entry := Concat(U1(uint8(classfile.ConstantFieldref)), U2(b.Class(class)), U2(b.NameAndType(name, descriptor)))
	b.pool[index-1] = entry
	return index
}

// Attr encodes an attribute named name whose body is the concatenation
// of body.
func (b *Builder) Attr(name string, body ...[]byte) []byte {
	data := Concat(body...)
	return Concat(U2(b.Utf8(name)), U4(uint32(len(data))), data)
}

// Code encodes a Code attribute body with an empty exception table.
func (b *Builder) Code(maxStack, maxLocals uint16, code []byte, attrs ...[]byte) []byte {
	return b.Attr(classfile.AttrCode,
		U2(maxStack), U2(maxLocals),
		U4(uint32(len(code))), code,
		U2(0),
		U2(uint16(len(attrs))), Concat(attrs...),
	)
}

func (b *Builder) This(name string) *Builder {
	b.ThisClass = b.Class(name)
	return b
}

// Super sets super_class; an empty name stores 0.
func (b *Builder) Super(name string) *Builder {
	if name == "" {
		b.SuperClass = 0
		return b
	}
	b.SuperClass = b.Class(name)
	return b
}

func (b *Builder) Interface(name string) *Builder {
	b.Interfaces = append(b.Interfaces, b.Class(name))
	return b
}

func (b *Builder) Field(flags classfile.AccessFlags, name, descriptor string, attrs ...[]byte) *Builder {
	return b.FieldIndices(flags, b.Utf8(name), b.Utf8(descriptor), attrs...)
}

// FieldIndices adds a field whose name and descriptor indices are given
// directly.
func (b *Builder) FieldIndices(flags classfile.AccessFlags, name, descriptor uint16, attrs ...[]byte) *Builder {
	b.fields = append(b.fields, member(flags, name, descriptor, attrs))
	return b
}

func (b *Builder) Method(flags classfile.AccessFlags, name, descriptor string, attrs ...[]byte) *Builder {
	b.methods = append(b.methods, member(flags, b.Utf8(name), b.Utf8(descriptor), attrs))
	return b
}

// Attribute appends a class level attribute produced by Attr.
func (b *Builder) Attribute(attr []byte) *Builder {
	b.attrs = append(b.attrs, attr)
	return b
}

func member(flags classfile.AccessFlags, name, descriptor uint16, attrs [][]byte) []byte {
	return Concat(U2(uint16(flags)), U2(name), U2(descriptor), U2(uint16(len(attrs))), Concat(attrs...))
}

// Bytes serializes the class file.
func (b *Builder) Bytes() []byte {
	count := b.PoolCount
	if count == 0 {
		count = uint16(len(b.pool) + 1)
	}
	out := Concat(U4(b.Magic), U2(b.MinorVersion), U2(b.MajorVersion), U2(count))
	for _, entry := range b.pool {
		out = append(out, entry...)
	}
	out = Concat(out, U2(uint16(b.AccessFlags)), U2(b.ThisClass), U2(b.SuperClass), U2(uint16(len(b.Interfaces))))
	for _, i := range b.Interfaces {
		out = append(out, U2(i)...)
	}
	out = append(out, U2(uint16(len(b.fields)))...)
	for _, f := range b.fields {
		out = append(out, f...)
	}
	out = append(out, U2(uint16(len(b.methods)))...)
	for _, m := range b.methods {
		out = append(out, m...)
	}
	out = append(out, U2(uint16(len(b.attrs)))...)
	for _, a := range b.attrs {
		out = append(out, a...)
	}
	return append(out, b.Trailing...)
}

// Parse decodes Bytes and fails the test on error.
func (b *Builder) Parse(tb testing.TB) *classfile.ClassFile {
	tb.Helper()
	cf, err := classfile.Parse(b.Bytes())
	if err != nil {
		tb.Fatalf("Parse() error = %v", err)
	}
	return cf
}

// HelloWorld builds the smallest useful class: HelloWorld extends
// java/lang/Object with a default constructor whose body is
// aload_0, invokespecial #1, return and one line number entry.
func HelloWorld() *Builder {
	b := New()
	ref := b.Methodref("java/lang/Object", "<init>", "()V")
	b.This("HelloWorld").Super("java/lang/Object")
	lines := b.Attr(classfile.AttrLineNumberTable, U2(1), U2(0), U2(3))
	code := []byte{0x2a, 0xb7, byte(ref >> 8), byte(ref), 0xb1}
	b.Method(0, "<init>", "()V", b.Code(1, 1, code, lines))
	b.Attribute(b.Attr(classfile.AttrSourceFile, U2(b.Utf8("HelloWorld.java"))))
	return b
}
