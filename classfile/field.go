package classfile

type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (f *FieldInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(f.NameIndex)
}

func (f *FieldInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(f.DescriptorIndex)
}

func (f *FieldInfo) GetAttribute(name string) *AttributeInfo {
	return findAttribute(f.Attributes, name)
}

// ConstantValue returns the pool index of the field's initial value, or 0.
func (f *FieldInfo) ConstantValue() uint16 {
	if a := f.GetAttribute(AttrConstantValue); a != nil {
		return a.AsConstantValue().ConstantValueIndex
	}
	return 0
}

func (f *FieldInfo) ParsedDescriptor(cp ConstantPool) *FieldType {
	return ParseFieldDescriptor(f.Descriptor(cp))
}
