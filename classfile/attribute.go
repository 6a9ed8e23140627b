package classfile

// Attribute names understood by the decoder.
const (
	AttrConstantValue                        = "ConstantValue"
	AttrCode                                 = "Code"
	AttrStackMapTable                        = "StackMapTable"
	AttrExceptions                           = "Exceptions"
	AttrInnerClasses                         = "InnerClasses"
	AttrEnclosingMethod                      = "EnclosingMethod"
	AttrSynthetic                            = "Synthetic"
	AttrSignature                            = "Signature"
	AttrSourceFile                           = "SourceFile"
	AttrSourceDebugExtension                 = "SourceDebugExtension"
	AttrLineNumberTable                      = "LineNumberTable"
	AttrLocalVariableTable                   = "LocalVariableTable"
	AttrLocalVariableTypeTable               = "LocalVariableTypeTable"
	AttrDeprecated                           = "Deprecated"
	AttrRuntimeVisibleAnnotations            = "RuntimeVisibleAnnotations"
	AttrRuntimeInvisibleAnnotations          = "RuntimeInvisibleAnnotations"
	AttrRuntimeVisibleParameterAnnotations   = "RuntimeVisibleParameterAnnotations"
	AttrRuntimeInvisibleParameterAnnotations = "RuntimeInvisibleParameterAnnotations"
	AttrRuntimeVisibleTypeAnnotations        = "RuntimeVisibleTypeAnnotations"
	AttrRuntimeInvisibleTypeAnnotations      = "RuntimeInvisibleTypeAnnotations"
	AttrAnnotationDefault                    = "AnnotationDefault"
	AttrBootstrapMethods                     = "BootstrapMethods"
	AttrMethodParameters                     = "MethodParameters"
	AttrModule                               = "Module"
	AttrModulePackages                       = "ModulePackages"
	AttrModuleMainClass                      = "ModuleMainClass"
	AttrNestHost                             = "NestHost"
	AttrNestMembers                          = "NestMembers"
	AttrRecord                               = "Record"
	AttrPermittedSubclasses                  = "PermittedSubclasses"
)

// AttributeInfo is one attribute as it appears in the class file. Info
// is the raw body and aliases the input buffer; Parsed is its decoded
// form and is never nil after a successful Parse.
type AttributeInfo struct {
	NameIndex uint16
	Length    uint32
	Info      []byte
	Parsed    Attribute
}

// Name returns the attribute name recorded by the decoder.
func (a *AttributeInfo) Name() string {
	if a.Parsed == nil {
		return ""
	}
	return a.Parsed.AttributeName()
}

// Attribute is implemented by every decoded attribute body.
type Attribute interface {
	AttributeName() string
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// GetAttribute finds a nested attribute of the code body by name.
func (c *CodeAttribute) GetAttribute(name string) *AttributeInfo {
	return findAttribute(c.Attributes, name)
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

type SyntheticAttribute struct{}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type SourceDebugExtensionAttribute struct {
	DebugExtension []byte
}

type LineNumberTableAttribute struct {
	LineNumberTable []LineNumberEntry
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type LocalVariableTypeTableAttribute struct {
	LocalVariableTypeTable []LocalVariableTypeEntry
}

type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

type DeprecatedAttribute struct{}

type BootstrapMethodsAttribute struct {
	BootstrapMethods []BootstrapMethod
}

type BootstrapMethod struct {
	BootstrapMethodRef uint16
	BootstrapArguments []uint16
}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
}

type NestHostAttribute struct {
	HostClassIndex uint16
}

type NestMembersAttribute struct {
	Classes []uint16
}

type RecordAttribute struct {
	Components []RecordComponentInfo
}

type RecordComponentInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

type PermittedSubclassesAttribute struct {
	Classes []uint16
}

func (*ConstantValueAttribute) AttributeName() string   { return AttrConstantValue }
func (*CodeAttribute) AttributeName() string            { return AttrCode }
func (*StackMapTableAttribute) AttributeName() string   { return AttrStackMapTable }
func (*ExceptionsAttribute) AttributeName() string      { return AttrExceptions }
func (*InnerClassesAttribute) AttributeName() string    { return AttrInnerClasses }
func (*EnclosingMethodAttribute) AttributeName() string { return AttrEnclosingMethod }
func (*SyntheticAttribute) AttributeName() string       { return AttrSynthetic }
func (*SignatureAttribute) AttributeName() string       { return AttrSignature }
func (*SourceFileAttribute) AttributeName() string      { return AttrSourceFile }
func (*SourceDebugExtensionAttribute) AttributeName() string {
	return AttrSourceDebugExtension
}
func (*LineNumberTableAttribute) AttributeName() string    { return AttrLineNumberTable }
func (*LocalVariableTableAttribute) AttributeName() string { return AttrLocalVariableTable }
func (*LocalVariableTypeTableAttribute) AttributeName() string {
	return AttrLocalVariableTypeTable
}
func (*DeprecatedAttribute) AttributeName() string { return AttrDeprecated }
func (*RuntimeVisibleAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeVisibleAnnotations
}
func (*RuntimeInvisibleAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeInvisibleAnnotations
}
func (*RuntimeVisibleParameterAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeVisibleParameterAnnotations
}
func (*RuntimeInvisibleParameterAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeInvisibleParameterAnnotations
}
func (*RuntimeVisibleTypeAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeVisibleTypeAnnotations
}
func (*RuntimeInvisibleTypeAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeInvisibleTypeAnnotations
}
func (*AnnotationDefaultAttribute) AttributeName() string   { return AttrAnnotationDefault }
func (*BootstrapMethodsAttribute) AttributeName() string    { return AttrBootstrapMethods }
func (*MethodParametersAttribute) AttributeName() string    { return AttrMethodParameters }
func (*ModuleAttribute) AttributeName() string              { return AttrModule }
func (*ModulePackagesAttribute) AttributeName() string      { return AttrModulePackages }
func (*ModuleMainClassAttribute) AttributeName() string     { return AttrModuleMainClass }
func (*NestHostAttribute) AttributeName() string            { return AttrNestHost }
func (*NestMembersAttribute) AttributeName() string         { return AttrNestMembers }
func (*RecordAttribute) AttributeName() string              { return AttrRecord }
func (*PermittedSubclassesAttribute) AttributeName() string { return AttrPermittedSubclasses }

func findAttribute(attrs []AttributeInfo, name string) *AttributeInfo {
	for i := range attrs {
		if attrs[i].Name() == name {
			return &attrs[i]
		}
	}
	return nil
}

func parsedAs[T Attribute](a *AttributeInfo) T {
	v, _ := a.Parsed.(T)
	return v
}

func (a *AttributeInfo) AsConstantValue() *ConstantValueAttribute {
	return parsedAs[*ConstantValueAttribute](a)
}

func (a *AttributeInfo) AsCode() *CodeAttribute {
	return parsedAs[*CodeAttribute](a)
}

func (a *AttributeInfo) AsStackMapTable() *StackMapTableAttribute {
	return parsedAs[*StackMapTableAttribute](a)
}

func (a *AttributeInfo) AsExceptions() *ExceptionsAttribute {
	return parsedAs[*ExceptionsAttribute](a)
}

func (a *AttributeInfo) AsInnerClasses() *InnerClassesAttribute {
	return parsedAs[*InnerClassesAttribute](a)
}

func (a *AttributeInfo) AsEnclosingMethod() *EnclosingMethodAttribute {
	return parsedAs[*EnclosingMethodAttribute](a)
}

func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	return parsedAs[*SignatureAttribute](a)
}

func (a *AttributeInfo) AsSourceFile() *SourceFileAttribute {
	return parsedAs[*SourceFileAttribute](a)
}

func (a *AttributeInfo) AsSourceDebugExtension() *SourceDebugExtensionAttribute {
	return parsedAs[*SourceDebugExtensionAttribute](a)
}

func (a *AttributeInfo) AsLineNumberTable() *LineNumberTableAttribute {
	return parsedAs[*LineNumberTableAttribute](a)
}

func (a *AttributeInfo) AsLocalVariableTable() *LocalVariableTableAttribute {
	return parsedAs[*LocalVariableTableAttribute](a)
}

func (a *AttributeInfo) AsLocalVariableTypeTable() *LocalVariableTypeTableAttribute {
	return parsedAs[*LocalVariableTypeTableAttribute](a)
}

func (a *AttributeInfo) AsRuntimeVisibleAnnotations() *RuntimeVisibleAnnotationsAttribute {
	return parsedAs[*RuntimeVisibleAnnotationsAttribute](a)
}

func (a *AttributeInfo) AsRuntimeInvisibleAnnotations() *RuntimeInvisibleAnnotationsAttribute {
	return parsedAs[*RuntimeInvisibleAnnotationsAttribute](a)
}

func (a *AttributeInfo) AsRuntimeVisibleParameterAnnotations() *RuntimeVisibleParameterAnnotationsAttribute {
	return parsedAs[*RuntimeVisibleParameterAnnotationsAttribute](a)
}

func (a *AttributeInfo) AsRuntimeInvisibleParameterAnnotations() *RuntimeInvisibleParameterAnnotationsAttribute {
	return parsedAs[*RuntimeInvisibleParameterAnnotationsAttribute](a)
}

func (a *AttributeInfo) AsRuntimeVisibleTypeAnnotations() *RuntimeVisibleTypeAnnotationsAttribute {
	return parsedAs[*RuntimeVisibleTypeAnnotationsAttribute](a)
}

func (a *AttributeInfo) AsRuntimeInvisibleTypeAnnotations() *RuntimeInvisibleTypeAnnotationsAttribute {
	return parsedAs[*RuntimeInvisibleTypeAnnotationsAttribute](a)
}

func (a *AttributeInfo) AsAnnotationDefault() *AnnotationDefaultAttribute {
	return parsedAs[*AnnotationDefaultAttribute](a)
}

func (a *AttributeInfo) AsBootstrapMethods() *BootstrapMethodsAttribute {
	return parsedAs[*BootstrapMethodsAttribute](a)
}

func (a *AttributeInfo) AsMethodParameters() *MethodParametersAttribute {
	return parsedAs[*MethodParametersAttribute](a)
}

func (a *AttributeInfo) AsModule() *ModuleAttribute {
	return parsedAs[*ModuleAttribute](a)
}

func (a *AttributeInfo) AsModulePackages() *ModulePackagesAttribute {
	return parsedAs[*ModulePackagesAttribute](a)
}

func (a *AttributeInfo) AsModuleMainClass() *ModuleMainClassAttribute {
	return parsedAs[*ModuleMainClassAttribute](a)
}

func (a *AttributeInfo) AsNestHost() *NestHostAttribute {
	return parsedAs[*NestHostAttribute](a)
}

func (a *AttributeInfo) AsNestMembers() *NestMembersAttribute {
	return parsedAs[*NestMembersAttribute](a)
}

func (a *AttributeInfo) AsRecord() *RecordAttribute {
	return parsedAs[*RecordAttribute](a)
}

func (a *AttributeInfo) AsPermittedSubclasses() *PermittedSubclassesAttribute {
	return parsedAs[*PermittedSubclassesAttribute](a)
}

func (a *AttributeInfo) AsSynthetic() *SyntheticAttribute {
	return parsedAs[*SyntheticAttribute](a)
}

func (a *AttributeInfo) AsDeprecated() *DeprecatedAttribute {
	return parsedAs[*DeprecatedAttribute](a)
}
