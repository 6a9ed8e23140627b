package classfile

// DefaultMaxDepth bounds nesting of attributes within attributes and of
// annotations within element values.
const DefaultMaxDepth = 64

type decoder struct {
	cp       ConstantPool
	maxDepth int
}

func (d *decoder) enter(r *reader, depth int, context string) bool {
	if depth > d.maxDepth {
		r.errorf(context, depth, ErrTooDeep)
		return false
	}
	return r.err == nil
}

func (d *decoder) readAttributes(r *reader, depth int) []AttributeInfo {
	count := r.readU2()
	if r.err != nil {
		return nil
	}
	attrs := make([]AttributeInfo, 0, r.capacity(int(count), 6))
	for i := uint16(0); i < count && r.err == nil; i++ {
		attrs = append(attrs, d.readAttribute(r, depth))
	}
	return attrs
}

func (d *decoder) readAttribute(r *reader, depth int) AttributeInfo {
	attr := AttributeInfo{
		NameIndex: r.readU2(),
		Length:    r.readU4(),
	}
	if !d.enter(r, depth, "attribute") {
		return attr
	}

	nameBytes, ok := d.cp.Utf8Bytes(attr.NameIndex)
	if !ok {
		r.errorf("attribute name", int(attr.NameIndex), ErrUnknownAttribute)
		return attr
	}
	name := decodeModifiedUTF8(nameBytes)
	decode, ok := attributeDecoders[name]
	if !ok {
		r.errorf("attribute "+name, int(attr.NameIndex), ErrUnknownAttribute)
		return attr
	}

	body := r.sub(int(attr.Length))
	if r.err != nil {
		return attr
	}
	attr.Info = body.data
	attr.Parsed = decode(d, body, depth)
	if body.err == nil && body.remaining() > 0 {
		body.errorf("attribute "+name, body.remaining(), ErrAttributeLength)
	}
	if body.err != nil {
		r.err = body.err
	}
	return attr
}

type attributeDecoder func(d *decoder, r *reader, depth int) Attribute

var attributeDecoders map[string]attributeDecoder

func init() {
	attributeDecoders = map[string]attributeDecoder{
		AttrConstantValue: func(d *decoder, r *reader, depth int) Attribute {
			return &ConstantValueAttribute{ConstantValueIndex: r.readU2()}
		},
		AttrCode:          (*decoder).readCode,
		AttrStackMapTable: (*decoder).readStackMapTable,
		AttrExceptions: func(d *decoder, r *reader, depth int) Attribute {
			return &ExceptionsAttribute{ExceptionIndexTable: r.readU2s(int(r.readU2()))}
		},
		AttrInnerClasses: (*decoder).readInnerClasses,
		AttrEnclosingMethod: func(d *decoder, r *reader, depth int) Attribute {
			return &EnclosingMethodAttribute{ClassIndex: r.readU2(), MethodIndex: r.readU2()}
		},
		AttrSynthetic: func(d *decoder, r *reader, depth int) Attribute {
			return &SyntheticAttribute{}
		},
		AttrSignature: func(d *decoder, r *reader, depth int) Attribute {
			return &SignatureAttribute{SignatureIndex: r.readU2()}
		},
		AttrSourceFile: func(d *decoder, r *reader, depth int) Attribute {
			return &SourceFileAttribute{SourceFileIndex: r.readU2()}
		},
		AttrSourceDebugExtension: func(d *decoder, r *reader, depth int) Attribute {
			return &SourceDebugExtensionAttribute{DebugExtension: r.readBytes(r.remaining())}
		},
		AttrLineNumberTable:        (*decoder).readLineNumberTable,
		AttrLocalVariableTable:     (*decoder).readLocalVariableTable,
		AttrLocalVariableTypeTable: (*decoder).readLocalVariableTypeTable,
		AttrDeprecated: func(d *decoder, r *reader, depth int) Attribute {
			return &DeprecatedAttribute{}
		},
		AttrRuntimeVisibleAnnotations: func(d *decoder, r *reader, depth int) Attribute {
			return &RuntimeVisibleAnnotationsAttribute{Annotations: d.readAnnotations(r, depth)}
		},
		AttrRuntimeInvisibleAnnotations: func(d *decoder, r *reader, depth int) Attribute {
			return &RuntimeInvisibleAnnotationsAttribute{Annotations: d.readAnnotations(r, depth)}
		},
		AttrRuntimeVisibleParameterAnnotations: func(d *decoder, r *reader, depth int) Attribute {
			return &RuntimeVisibleParameterAnnotationsAttribute{ParameterAnnotations: d.readParameterAnnotations(r, depth)}
		},
		AttrRuntimeInvisibleParameterAnnotations: func(d *decoder, r *reader, depth int) Attribute {
			return &RuntimeInvisibleParameterAnnotationsAttribute{ParameterAnnotations: d.readParameterAnnotations(r, depth)}
		},
		AttrRuntimeVisibleTypeAnnotations: func(d *decoder, r *reader, depth int) Attribute {
			return &RuntimeVisibleTypeAnnotationsAttribute{Annotations: d.readTypeAnnotations(r, depth)}
		},
		AttrRuntimeInvisibleTypeAnnotations: func(d *decoder, r *reader, depth int) Attribute {
			return &RuntimeInvisibleTypeAnnotationsAttribute{Annotations: d.readTypeAnnotations(r, depth)}
		},
		AttrAnnotationDefault: func(d *decoder, r *reader, depth int) Attribute {
			return &AnnotationDefaultAttribute{DefaultValue: d.readElementValue(r, depth+1)}
		},
		AttrBootstrapMethods: (*decoder).readBootstrapMethods,
		AttrMethodParameters: (*decoder).readMethodParameters,
		AttrModule:           (*decoder).readModule,
		AttrModulePackages: func(d *decoder, r *reader, depth int) Attribute {
			return &ModulePackagesAttribute{PackageIndex: r.readU2s(int(r.readU2()))}
		},
		AttrModuleMainClass: func(d *decoder, r *reader, depth int) Attribute {
			return &ModuleMainClassAttribute{MainClassIndex: r.readU2()}
		},
		AttrNestHost: func(d *decoder, r *reader, depth int) Attribute {
			return &NestHostAttribute{HostClassIndex: r.readU2()}
		},
		AttrNestMembers: func(d *decoder, r *reader, depth int) Attribute {
			return &NestMembersAttribute{Classes: r.readU2s(int(r.readU2()))}
		},
		AttrRecord: (*decoder).readRecord,
		AttrPermittedSubclasses: func(d *decoder, r *reader, depth int) Attribute {
			return &PermittedSubclassesAttribute{Classes: r.readU2s(int(r.readU2()))}
		},
	}
}

func (d *decoder) readCode(r *reader, depth int) Attribute {
	code := &CodeAttribute{
		MaxStack:  r.readU2(),
		MaxLocals: r.readU2(),
	}
	codeLength := r.readU4()
	if r.err == nil && int64(codeLength) > int64(r.remaining()) {
		r.errorf("code", int(codeLength), ErrUnexpectedEnd)
		return code
	}
	code.Code = r.readBytes(int(codeLength))

	n := r.readU2()
	if r.err != nil {
		return code
	}
	code.ExceptionTable = make([]ExceptionTableEntry, 0, r.capacity(int(n), 8))
	for i := uint16(0); i < n && r.err == nil; i++ {
		code.ExceptionTable = append(code.ExceptionTable, ExceptionTableEntry{
			StartPC:   r.readU2(),
			EndPC:     r.readU2(),
			HandlerPC: r.readU2(),
			CatchType: r.readU2(),
		})
	}
	code.Attributes = d.readAttributes(r, depth+1)
	return code
}

func (d *decoder) readInnerClasses(r *reader, depth int) Attribute {
	n := r.readU2()
	a := &InnerClassesAttribute{}
	for i := uint16(0); i < n && r.err == nil; i++ {
		a.Classes = append(a.Classes, InnerClassEntry{
			InnerClassInfoIndex:   r.readU2(),
			OuterClassInfoIndex:   r.readU2(),
			InnerNameIndex:        r.readU2(),
			InnerClassAccessFlags: AccessFlags(r.readU2()),
		})
	}
	return a
}

func (d *decoder) readLineNumberTable(r *reader, depth int) Attribute {
	n := r.readU2()
	a := &LineNumberTableAttribute{}
	for i := uint16(0); i < n && r.err == nil; i++ {
		a.LineNumberTable = append(a.LineNumberTable, LineNumberEntry{
			StartPC:    r.readU2(),
			LineNumber: r.readU2(),
		})
	}
	return a
}

func (d *decoder) readLocalVariableTable(r *reader, depth int) Attribute {
	n := r.readU2()
	a := &LocalVariableTableAttribute{}
	for i := uint16(0); i < n && r.err == nil; i++ {
		a.LocalVariableTable = append(a.LocalVariableTable, LocalVariableEntry{
			StartPC:         r.readU2(),
			Length:          r.readU2(),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
			Index:           r.readU2(),
		})
	}
	return a
}

func (d *decoder) readLocalVariableTypeTable(r *reader, depth int) Attribute {
	n := r.readU2()
	a := &LocalVariableTypeTableAttribute{}
	for i := uint16(0); i < n && r.err == nil; i++ {
		a.LocalVariableTypeTable = append(a.LocalVariableTypeTable, LocalVariableTypeEntry{
			StartPC:        r.readU2(),
			Length:         r.readU2(),
			NameIndex:      r.readU2(),
			SignatureIndex: r.readU2(),
			Index:          r.readU2(),
		})
	}
	return a
}

func (d *decoder) readBootstrapMethods(r *reader, depth int) Attribute {
	n := r.readU2()
	a := &BootstrapMethodsAttribute{}
	for i := uint16(0); i < n && r.err == nil; i++ {
		ref := r.readU2()
		args := r.readU2s(int(r.readU2()))
		a.BootstrapMethods = append(a.BootstrapMethods, BootstrapMethod{
			BootstrapMethodRef: ref,
			BootstrapArguments: args,
		})
	}
	return a
}

func (d *decoder) readMethodParameters(r *reader, depth int) Attribute {
	n := r.readU1()
	a := &MethodParametersAttribute{}
	for i := uint8(0); i < n && r.err == nil; i++ {
		a.Parameters = append(a.Parameters, MethodParameter{
			NameIndex:   r.readU2(),
			AccessFlags: AccessFlags(r.readU2()),
		})
	}
	return a
}

func (d *decoder) readRecord(r *reader, depth int) Attribute {
	n := r.readU2()
	a := &RecordAttribute{}
	for i := uint16(0); i < n && r.err == nil; i++ {
		c := RecordComponentInfo{
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
		}
		c.Attributes = d.readAttributes(r, depth+1)
		a.Components = append(a.Components, c)
	}
	return a
}
