package classfile

import (
	"math"
	"strconv"
)

// ConstantPoolEntry is one decoded constant pool slot. The set of
// implementations is closed: one *ConstantXxxInfo per ConstantTag.
type ConstantPoolEntry interface {
	Tag() ConstantTag
}

// ConstantUtf8Info holds the raw modified UTF-8 bytes of a string
// constant. Bytes aliases the buffer passed to Parse.
type ConstantUtf8Info struct {
	Bytes []byte
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

// String decodes Bytes as modified UTF-8. Malformed sequences decode to
// U+FFFD.
func (c *ConstantUtf8Info) String() string { return decodeModifiedUTF8(c.Bytes) }

type ConstantIntegerInfo struct {
	Bytes uint32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }
func (c *ConstantIntegerInfo) Value() int32     { return int32(c.Bytes) }

type ConstantFloatInfo struct {
	Bytes uint32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }
func (c *ConstantFloatInfo) Value() float32   { return math.Float32frombits(c.Bytes) }

// ConstantLongInfo occupies two pool slots; the second is nil.
type ConstantLongInfo struct {
	HighBytes uint32
	LowBytes  uint32
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }
func (c *ConstantLongInfo) Value() int64 {
	return int64(uint64(c.HighBytes)<<32 | uint64(c.LowBytes))
}

// ConstantDoubleInfo occupies two pool slots; the second is nil.
type ConstantDoubleInfo struct {
	HighBytes uint32
	LowBytes  uint32
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }
func (c *ConstantDoubleInfo) Value() float64 {
	return math.Float64frombits(uint64(c.HighBytes)<<32 | uint64(c.LowBytes))
}

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

type ConstantModuleInfo struct {
	NameIndex uint16
}

func (c *ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (c *ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }

// ConstantPool holds constant_pool_count-1 slots. Indices are 1-based
// as in the class file; slot 0 of the slice is pool index 1.
type ConstantPool []ConstantPoolEntry

// Entry resolves a 1-based pool index. It returns nil for index 0, for
// indices past the end and for the unusable slot after a long or double.
func (cp ConstantPool) Entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

// Valid reports whether index names a usable slot.
func (cp ConstantPool) Valid(index uint16) bool {
	return cp.Entry(index) != nil
}

func entryAs[T ConstantPoolEntry](cp ConstantPool, index uint16) (T, bool) {
	v, ok := cp.Entry(index).(T)
	return v, ok
}

// Utf8Bytes returns the raw bytes of a Utf8 entry.
func (cp ConstantPool) Utf8Bytes(index uint16) ([]byte, bool) {
	e, ok := entryAs[*ConstantUtf8Info](cp, index)
	if !ok {
		return nil, false
	}
	return e.Bytes, true
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if e, ok := entryAs[*ConstantUtf8Info](cp, index); ok {
		return e.String()
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if e, ok := entryAs[*ConstantClassInfo](cp, index); ok {
		return cp.GetUtf8(e.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if e, ok := entryAs[*ConstantNameAndTypeInfo](cp, index); ok {
		return cp.GetUtf8(e.NameIndex), cp.GetUtf8(e.DescriptorIndex)
	}
	return "", ""
}

func (cp ConstantPool) GetString(index uint16) string {
	if e, ok := entryAs[*ConstantStringInfo](cp, index); ok {
		return cp.GetUtf8(e.StringIndex)
	}
	return ""
}

func (cp ConstantPool) GetModuleName(index uint16) string {
	if e, ok := entryAs[*ConstantModuleInfo](cp, index); ok {
		return cp.GetUtf8(e.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetPackageName(index uint16) string {
	if e, ok := entryAs[*ConstantPackageInfo](cp, index); ok {
		return cp.GetUtf8(e.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetInteger(index uint16) (int32, bool) {
	if e, ok := entryAs[*ConstantIntegerInfo](cp, index); ok {
		return e.Value(), true
	}
	return 0, false
}

func (cp ConstantPool) GetFloat(index uint16) (float32, bool) {
	if e, ok := entryAs[*ConstantFloatInfo](cp, index); ok {
		return e.Value(), true
	}
	return 0, false
}

func (cp ConstantPool) GetLong(index uint16) (int64, bool) {
	if e, ok := entryAs[*ConstantLongInfo](cp, index); ok {
		return e.Value(), true
	}
	return 0, false
}

func (cp ConstantPool) GetDouble(index uint16) (float64, bool) {
	if e, ok := entryAs[*ConstantDoubleInfo](cp, index); ok {
		return e.Value(), true
	}
	return 0, false
}

// GetMemberRef resolves a Fieldref, Methodref or InterfaceMethodref.
func (cp ConstantPool) GetMemberRef(index uint16) (className, name, descriptor string) {
	var classIndex, natIndex uint16
	switch e := cp.Entry(index).(type) {
	case *ConstantFieldrefInfo:
		classIndex, natIndex = e.ClassIndex, e.NameAndTypeIndex
	case *ConstantMethodrefInfo:
		classIndex, natIndex = e.ClassIndex, e.NameAndTypeIndex
	case *ConstantInterfaceMethodrefInfo:
		classIndex, natIndex = e.ClassIndex, e.NameAndTypeIndex
	default:
		return "", "", ""
	}
	name, descriptor = cp.GetNameAndType(natIndex)
	return cp.GetClassName(classIndex), name, descriptor
}

func (cp ConstantPool) GetMethodHandle(index uint16) *ConstantMethodHandleInfo {
	e, _ := entryAs[*ConstantMethodHandleInfo](cp, index)
	return e
}

func (cp ConstantPool) GetMethodType(index uint16) string {
	if e, ok := entryAs[*ConstantMethodTypeInfo](cp, index); ok {
		return cp.GetUtf8(e.DescriptorIndex)
	}
	return ""
}

// Describe renders a short human readable form of a pool entry, used by
// dumps.
func (cp ConstantPool) Describe(index uint16) string {
	switch e := cp.Entry(index).(type) {
	case nil:
		return ""
	case *ConstantUtf8Info:
		return e.String()
	case *ConstantIntegerInfo:
		return strconv.FormatInt(int64(e.Value()), 10)
	case *ConstantFloatInfo:
		return strconv.FormatFloat(float64(e.Value()), 'g', -1, 32)
	case *ConstantLongInfo:
		return strconv.FormatInt(e.Value(), 10)
	case *ConstantDoubleInfo:
		return strconv.FormatFloat(e.Value(), 'g', -1, 64)
	case *ConstantClassInfo:
		return cp.GetUtf8(e.NameIndex)
	case *ConstantStringInfo:
		return cp.GetUtf8(e.StringIndex)
	case *ConstantNameAndTypeInfo:
		return cp.GetUtf8(e.NameIndex) + ":" + cp.GetUtf8(e.DescriptorIndex)
	case *ConstantFieldrefInfo, *ConstantMethodrefInfo, *ConstantInterfaceMethodrefInfo:
		class, name, desc := cp.GetMemberRef(index)
		return class + "." + name + ":" + desc
	case *ConstantMethodHandleInfo:
		return cp.describeHandle(e)
	case *ConstantMethodTypeInfo:
		return cp.GetUtf8(e.DescriptorIndex)
	case *ConstantDynamicInfo:
		name, desc := cp.GetNameAndType(e.NameAndTypeIndex)
		return name + ":" + desc
	case *ConstantInvokeDynamicInfo:
		name, desc := cp.GetNameAndType(e.NameAndTypeIndex)
		return name + ":" + desc
	case *ConstantModuleInfo:
		return cp.GetUtf8(e.NameIndex)
	case *ConstantPackageInfo:
		return cp.GetUtf8(e.NameIndex)
	}
	return ""
}

// describeHandle renders the handle's member reference without following
// other entries, so handles referring to handles cannot recurse.
func (cp ConstantPool) describeHandle(e *ConstantMethodHandleInfo) string {
	switch cp.Entry(e.ReferenceIndex).(type) {
	case *ConstantFieldrefInfo, *ConstantMethodrefInfo, *ConstantInterfaceMethodrefInfo:
		class, name, desc := cp.GetMemberRef(e.ReferenceIndex)
		return e.ReferenceKind.String() + " " + class + "." + name + ":" + desc
	}
	return ""
}
