package classfile

import "strconv"

// readConstantPool reads constant_pool_count and the count-1 entries
// that follow. A count of zero yields an empty pool.
func readConstantPool(r *reader) ConstantPool {
	count := r.readU2()
	if r.err != nil || count == 0 {
		return ConstantPool{}
	}
	cp := make(ConstantPool, count-1)
	for i := uint16(1); i < count && r.err == nil; i++ {
		entry, wide := readConstantPoolEntry(r, i)
		cp[i-1] = entry
		if wide {
			// The slot after a long or double is unusable and stays nil.
			i++
		}
	}
	return cp
}

// readConstantPoolEntry decodes one entry. wide is true for the two slot
// long and double constants.
func readConstantPoolEntry(r *reader, index uint16) (entry ConstantPoolEntry, wide bool) {
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, false
	}

	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		return &ConstantUtf8Info{Bytes: r.readBytes(int(length))}, false
	case ConstantInteger:
		return &ConstantIntegerInfo{Bytes: r.readU4()}, false
	case ConstantFloat:
		return &ConstantFloatInfo{Bytes: r.readU4()}, false
	case ConstantLong:
		return &ConstantLongInfo{HighBytes: r.readU4(), LowBytes: r.readU4()}, true
	case ConstantDouble:
		return &ConstantDoubleInfo{HighBytes: r.readU4(), LowBytes: r.readU4()}, true
	case ConstantClass:
		return &ConstantClassInfo{NameIndex: r.readU2()}, false
	case ConstantString:
		return &ConstantStringInfo{StringIndex: r.readU2()}, false
	case ConstantFieldref:
		return &ConstantFieldrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}, false
	case ConstantMethodref:
		return &ConstantMethodrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}, false
	case ConstantInterfaceMethodref:
		return &ConstantInterfaceMethodrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}, false
	case ConstantNameAndType:
		return &ConstantNameAndTypeInfo{NameIndex: r.readU2(), DescriptorIndex: r.readU2()}, false
	case ConstantMethodHandle:
		return &ConstantMethodHandleInfo{
			ReferenceKind:  MethodHandleKind(r.readU1()),
			ReferenceIndex: r.readU2(),
		}, false
	case ConstantMethodType:
		return &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}, false
	case ConstantDynamic:
		return &ConstantDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}, false
	case ConstantInvokeDynamic:
		return &ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}, false
	case ConstantModule:
		return &ConstantModuleInfo{NameIndex: r.readU2()}, false
	case ConstantPackage:
		return &ConstantPackageInfo{NameIndex: r.readU2()}, false
	}

	r.errorf("constant pool entry "+strconv.Itoa(int(index)), int(tag), ErrUnknownConstantTag)
	return nil, false
}
