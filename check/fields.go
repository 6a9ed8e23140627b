package check

import (
	"fmt"

	"github.com/dhamidi/javalyzer/classfile"
)

const (
	interfaceFieldFlags = classfile.AccPublic | classfile.AccStatic | classfile.AccFinal
	visibilityFlags     = classfile.AccPublic | classfile.AccPrivate | classfile.AccProtected
)

// Each field rule runs over all fields before the next rule starts, so a
// duplicate later in the table is reported ahead of bad flags earlier.
func (c *Checker) checkFields(cf *classfile.ClassFile, ctx context) error {
	for _, rule := range []func(*classfile.ClassFile, context) error{
		checkFieldDuplicates,
		checkFieldFlags,
		checkFieldNames,
		checkFieldDescriptors,
		checkFieldAttributes,
	} {
		if err := rule(cf, ctx); err != nil {
			return err
		}
	}
	return nil
}

// checkFieldDuplicates compares raw name bytes. Names that are not Utf8
// are left to checkFieldNames.
func checkFieldDuplicates(cf *classfile.ClassFile, _ context) error {
	seen := make(map[string]int, len(cf.Fields))
	for i, f := range cf.Fields {
		name, ok := cf.ConstantPool.Utf8Bytes(f.NameIndex)
		if !ok {
			continue
		}
		if prev, dup := seen[string(name)]; dup {
			return fail(ErrDuplicateField, fmt.Sprintf("%q (fields %d and %d)", cf.ConstantPool.GetUtf8(f.NameIndex), prev, i))
		}
		seen[string(name)] = i
	}
	return nil
}

func checkFieldFlags(cf *classfile.ClassFile, ctx context) error {
	for i, f := range cf.Fields {
		flags := f.AccessFlags
		if ctx.isInterface {
			if flags != interfaceFieldFlags && flags != interfaceFieldFlags|classfile.AccSynthetic {
				return fail(ErrInvalidInterfaceFieldFlags, fieldDetail(cf, i, flags))
			}
			continue
		}
		if flags.Count(visibilityFlags) > 1 || flags.Has(classfile.AccFinal|classfile.AccVolatile) {
			return fail(ErrInvalidFieldFlags, fieldDetail(cf, i, flags))
		}
	}
	return nil
}

func checkFieldNames(cf *classfile.ClassFile, _ context) error {
	for i, f := range cf.Fields {
		if _, ok := cf.ConstantPool.Utf8Bytes(f.NameIndex); !ok {
			return fail(ErrFieldNameNotUtf8, fmt.Sprintf("field %d name #%d", i, f.NameIndex))
		}
	}
	return nil
}

func checkFieldDescriptors(cf *classfile.ClassFile, _ context) error {
	for i, f := range cf.Fields {
		if _, ok := cf.ConstantPool.Utf8Bytes(f.DescriptorIndex); !ok {
			return fail(ErrInvalidFieldDescriptor, fmt.Sprintf("field %d descriptor #%d is not Utf8", i, f.DescriptorIndex))
		}
		desc := f.Descriptor(cf.ConstantPool)
		if !classfile.ValidFieldDescriptor(desc) {
			return fail(ErrInvalidFieldDescriptor, fmt.Sprintf("field %s: %q", f.Name(cf.ConstantPool), desc))
		}
	}
	return nil
}

// fieldAttributeSince maps each attribute a field may carry to the first
// major version that allows it.
var fieldAttributeSince = map[string]uint16{
	classfile.AttrConstantValue:                   0,
	classfile.AttrDeprecated:                      0,
	classfile.AttrSynthetic:                       0,
	classfile.AttrSignature:                       49,
	classfile.AttrRuntimeVisibleAnnotations:       49,
	classfile.AttrRuntimeInvisibleAnnotations:     49,
	classfile.AttrRuntimeVisibleTypeAnnotations:   52,
	classfile.AttrRuntimeInvisibleTypeAnnotations: 52,
}

func checkFieldAttributes(cf *classfile.ClassFile, ctx context) error {
	for _, f := range cf.Fields {
		for _, attr := range f.Attributes {
			since, ok := fieldAttributeSince[attr.Name()]
			if !ok || ctx.major < since {
				return fail(ErrInvalidFieldAttribute, fmt.Sprintf("field %s: %s at major version %d", f.Name(cf.ConstantPool), attr.Name(), ctx.major))
			}
		}
	}
	return nil
}

func fieldDetail(cf *classfile.ClassFile, i int, flags classfile.AccessFlags) string {
	return fmt.Sprintf("field %s: %s", memberName(cf.ConstantPool, cf.Fields[i].NameIndex, i), flagString(flags, classfile.FieldFlags))
}

// memberName falls back to the member's position when its name does not
// resolve; flag rules run before names are checked.
func memberName(cp classfile.ConstantPool, nameIndex uint16, i int) string {
	if _, ok := cp.Utf8Bytes(nameIndex); ok {
		return cp.GetUtf8(nameIndex)
	}
	return fmt.Sprintf("#%d", i)
}

func flagString(flags classfile.AccessFlags, kind classfile.FlagKind) string {
	if s := flags.Format(kind); s != "" {
		return fmt.Sprintf("%s (0x%04X)", s, uint16(flags))
	}
	return fmt.Sprintf("0x%04X", uint16(flags))
}
