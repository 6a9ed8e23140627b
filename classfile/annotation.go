package classfile

type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type ElementValuePair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

// ElementValue is the value of an annotation element. Tag returns the
// discriminant character from the class file.
type ElementValue interface {
	Tag() byte
}

// ConstValue covers the tags B C D F I J S Z and s.
type ConstValue struct {
	ValueTag        byte
	ConstValueIndex uint16
}

type EnumConstValue struct {
	TypeNameIndex  uint16
	ConstNameIndex uint16
}

type ClassValue struct {
	ClassInfoIndex uint16
}

type AnnotationValue struct {
	Annotation Annotation
}

type ArrayValue struct {
	Values []ElementValue
}

func (v *ConstValue) Tag() byte      { return v.ValueTag }
func (v *EnumConstValue) Tag() byte  { return 'e' }
func (v *ClassValue) Tag() byte      { return 'c' }
func (v *AnnotationValue) Tag() byte { return '@' }
func (v *ArrayValue) Tag() byte      { return '[' }

type RuntimeVisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

type RuntimeInvisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

// ParameterAnnotations holds one annotation list per formal parameter.
type RuntimeVisibleParameterAnnotationsAttribute struct {
	ParameterAnnotations [][]Annotation
}

type RuntimeInvisibleParameterAnnotationsAttribute struct {
	ParameterAnnotations [][]Annotation
}

type TypeAnnotation struct {
	TargetType        uint8
	Target            TargetInfo
	TargetPath        []TypePathEntry
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type TypePathEntry struct {
	TypePathKind      uint8
	TypeArgumentIndex uint8
}

// TargetInfo says which type in a declaration or expression a type
// annotation applies to. Its shape follows the target type byte.
type TargetInfo interface {
	targetInfo()
}

// TypeParameterTarget is used by target types 0x00 and 0x01.
type TypeParameterTarget struct {
	TypeParameterIndex uint8
}

// SupertypeTarget is used by target type 0x10.
type SupertypeTarget struct {
	SupertypeIndex uint16
}

// TypeParameterBoundTarget is used by target types 0x11 and 0x12.
type TypeParameterBoundTarget struct {
	TypeParameterIndex uint8
	BoundIndex         uint8
}

// EmptyTarget is used by target types 0x13 to 0x15.
type EmptyTarget struct{}

// FormalParameterTarget is used by target type 0x16.
type FormalParameterTarget struct {
	FormalParameterIndex uint8
}

// ThrowsTarget is used by target type 0x17.
type ThrowsTarget struct {
	ThrowsTypeIndex uint16
}

// LocalVarTarget is used by target types 0x40 and 0x41.
type LocalVarTarget struct {
	Table []LocalVarTargetEntry
}

type LocalVarTargetEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// CatchTarget is used by target type 0x42.
type CatchTarget struct {
	ExceptionTableIndex uint16
}

// OffsetTarget is used by target types 0x43 to 0x46.
type OffsetTarget struct {
	Offset uint16
}

// TypeArgumentTarget is used by target types 0x47 to 0x4B.
type TypeArgumentTarget struct {
	Offset            uint16
	TypeArgumentIndex uint8
}

func (*TypeParameterTarget) targetInfo()      {}
func (*SupertypeTarget) targetInfo()          {}
func (*TypeParameterBoundTarget) targetInfo() {}
func (*EmptyTarget) targetInfo()              {}
func (*FormalParameterTarget) targetInfo()    {}
func (*ThrowsTarget) targetInfo()             {}
func (*LocalVarTarget) targetInfo()           {}
func (*CatchTarget) targetInfo()              {}
func (*OffsetTarget) targetInfo()             {}
func (*TypeArgumentTarget) targetInfo()       {}

type RuntimeVisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

type RuntimeInvisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

type AnnotationDefaultAttribute struct {
	DefaultValue ElementValue
}

func (d *decoder) readAnnotations(r *reader, depth int) []Annotation {
	n := r.readU2()
	if r.err != nil {
		return nil
	}
	annotations := make([]Annotation, 0, r.capacity(int(n), 4))
	for i := uint16(0); i < n && r.err == nil; i++ {
		annotations = append(annotations, d.readAnnotation(r, depth+1))
	}
	return annotations
}

// readParameterAnnotations reads a u1 parameter count followed by one
// annotation table per parameter.
func (d *decoder) readParameterAnnotations(r *reader, depth int) [][]Annotation {
	n := r.readU1()
	if r.err != nil {
		return nil
	}
	params := make([][]Annotation, 0, r.capacity(int(n), 2))
	for i := uint8(0); i < n && r.err == nil; i++ {
		params = append(params, d.readAnnotations(r, depth))
	}
	return params
}

func (d *decoder) readAnnotation(r *reader, depth int) Annotation {
	a := Annotation{TypeIndex: r.readU2()}
	if !d.enter(r, depth, "annotation") {
		return a
	}
	a.ElementValuePairs = d.readElementValuePairs(r, depth)
	return a
}

func (d *decoder) readElementValuePairs(r *reader, depth int) []ElementValuePair {
	n := r.readU2()
	if r.err != nil {
		return nil
	}
	pairs := make([]ElementValuePair, 0, r.capacity(int(n), 5))
	for i := uint16(0); i < n && r.err == nil; i++ {
		name := r.readU2()
		pairs = append(pairs, ElementValuePair{
			ElementNameIndex: name,
			Value:            d.readElementValue(r, depth+1),
		})
	}
	return pairs
}

func (d *decoder) readElementValue(r *reader, depth int) ElementValue {
	tag := r.readU1()
	if !d.enter(r, depth, "element value") {
		return nil
	}
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		return &ConstValue{ValueTag: tag, ConstValueIndex: r.readU2()}
	case 'e':
		return &EnumConstValue{TypeNameIndex: r.readU2(), ConstNameIndex: r.readU2()}
	case 'c':
		return &ClassValue{ClassInfoIndex: r.readU2()}
	case '@':
		return &AnnotationValue{Annotation: d.readAnnotation(r, depth+1)}
	case '[':
		n := r.readU2()
		v := &ArrayValue{}
		for i := uint16(0); i < n && r.err == nil; i++ {
			v.Values = append(v.Values, d.readElementValue(r, depth+1))
		}
		return v
	}
	r.errorf("element value", int(tag), ErrUnknownElementValueTag)
	return nil
}

func (d *decoder) readTypeAnnotations(r *reader, depth int) []TypeAnnotation {
	n := r.readU2()
	if r.err != nil {
		return nil
	}
	annotations := make([]TypeAnnotation, 0, r.capacity(int(n), 6))
	for i := uint16(0); i < n && r.err == nil; i++ {
		annotations = append(annotations, d.readTypeAnnotation(r, depth+1))
	}
	return annotations
}

func (d *decoder) readTypeAnnotation(r *reader, depth int) TypeAnnotation {
	ta := TypeAnnotation{TargetType: r.readU1()}
	if r.err != nil {
		return ta
	}
	ta.Target = readTargetInfo(r, ta.TargetType)

	pathLength := r.readU1()
	for i := uint8(0); i < pathLength && r.err == nil; i++ {
		ta.TargetPath = append(ta.TargetPath, TypePathEntry{
			TypePathKind:      r.readU1(),
			TypeArgumentIndex: r.readU1(),
		})
	}
	ta.TypeIndex = r.readU2()
	if !d.enter(r, depth, "type annotation") {
		return ta
	}
	ta.ElementValuePairs = d.readElementValuePairs(r, depth)
	return ta
}

func readTargetInfo(r *reader, targetType uint8) TargetInfo {
	switch {
	case targetType <= 0x01:
		return &TypeParameterTarget{TypeParameterIndex: r.readU1()}
	case targetType == 0x10:
		return &SupertypeTarget{SupertypeIndex: r.readU2()}
	case targetType == 0x11 || targetType == 0x12:
		return &TypeParameterBoundTarget{TypeParameterIndex: r.readU1(), BoundIndex: r.readU1()}
	case targetType >= 0x13 && targetType <= 0x15:
		return &EmptyTarget{}
	case targetType == 0x16:
		return &FormalParameterTarget{FormalParameterIndex: r.readU1()}
	case targetType == 0x17:
		return &ThrowsTarget{ThrowsTypeIndex: r.readU2()}
	case targetType == 0x40 || targetType == 0x41:
		n := r.readU2()
		t := &LocalVarTarget{}
		for i := uint16(0); i < n && r.err == nil; i++ {
			t.Table = append(t.Table, LocalVarTargetEntry{
				StartPC: r.readU2(),
				Length:  r.readU2(),
				Index:   r.readU2(),
			})
		}
		return t
	case targetType == 0x42:
		return &CatchTarget{ExceptionTableIndex: r.readU2()}
	case targetType >= 0x43 && targetType <= 0x46:
		return &OffsetTarget{Offset: r.readU2()}
	case targetType >= 0x47 && targetType <= 0x4B:
		return &TypeArgumentTarget{Offset: r.readU2(), TypeArgumentIndex: r.readU1()}
	}
	r.errorf("type annotation target", int(targetType), ErrUnknownTargetType)
	return nil
}
