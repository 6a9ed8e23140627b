package classfile

type StackMapTableAttribute struct {
	Entries []StackMapFrame
}

// StackMapFrame is one entry of a StackMapTable. The concrete type is
// selected by the frame type byte.
type StackMapFrame interface {
	FrameType() uint8
	OffsetDelta() uint16
}

// SameFrame covers frame types 0-63.
type SameFrame struct {
	Type uint8
}

// SameLocals1StackItemFrame covers frame types 64-127.
type SameLocals1StackItemFrame struct {
	Type  uint8
	Stack VerificationTypeInfo
}

// SameLocals1StackItemFrameExtended is frame type 247.
type SameLocals1StackItemFrameExtended struct {
	Delta uint16
	Stack VerificationTypeInfo
}

// ChopFrame covers frame types 248-250.
type ChopFrame struct {
	Type  uint8
	Delta uint16
}

// SameFrameExtended is frame type 251.
type SameFrameExtended struct {
	Delta uint16
}

// AppendFrame covers frame types 252-254.
type AppendFrame struct {
	Type   uint8
	Delta  uint16
	Locals []VerificationTypeInfo
}

// FullFrame is frame type 255.
type FullFrame struct {
	Delta  uint16
	Locals []VerificationTypeInfo
	Stack  []VerificationTypeInfo
}

func (f *SameFrame) FrameType() uint8                         { return f.Type }
func (f *SameFrame) OffsetDelta() uint16                      { return uint16(f.Type) }
func (f *SameLocals1StackItemFrame) FrameType() uint8         { return f.Type }
func (f *SameLocals1StackItemFrame) OffsetDelta() uint16      { return uint16(f.Type - 64) }
func (f *SameLocals1StackItemFrameExtended) FrameType() uint8 { return 247 }
func (f *SameLocals1StackItemFrameExtended) OffsetDelta() uint16 {
	return f.Delta
}
func (f *ChopFrame) FrameType() uint8            { return f.Type }
func (f *ChopFrame) OffsetDelta() uint16         { return f.Delta }
func (f *SameFrameExtended) FrameType() uint8    { return 251 }
func (f *SameFrameExtended) OffsetDelta() uint16 { return f.Delta }
func (f *AppendFrame) FrameType() uint8          { return f.Type }
func (f *AppendFrame) OffsetDelta() uint16       { return f.Delta }
func (f *FullFrame) FrameType() uint8            { return 255 }
func (f *FullFrame) OffsetDelta() uint16         { return f.Delta }

// Chopped reports how many locals the frame removes.
func (f *ChopFrame) Chopped() int { return 251 - int(f.Type) }

// VerificationItem is the tag byte of a verification_type_info.
type VerificationItem uint8

const (
	ItemTop               VerificationItem = 0
	ItemInteger           VerificationItem = 1
	ItemFloat             VerificationItem = 2
	ItemDouble            VerificationItem = 3
	ItemLong              VerificationItem = 4
	ItemNull              VerificationItem = 5
	ItemUninitializedThis VerificationItem = 6
	ItemObject            VerificationItem = 7
	ItemUninitialized     VerificationItem = 8
)

var verificationItemNames = [...]string{
	"top", "int", "float", "double", "long", "null", "uninitializedThis", "object", "uninitialized",
}

func (v VerificationItem) String() string {
	if int(v) < len(verificationItemNames) {
		return verificationItemNames[v]
	}
	return "unknown"
}

// VerificationTypeInfo is a tagged verification type.
type VerificationTypeInfo interface {
	Item() VerificationItem
}

// SimpleVariableInfo carries the tags with no payload: top, int, float,
// double, long, null and uninitializedThis.
type SimpleVariableInfo struct {
	Tag VerificationItem
}

type ObjectVariableInfo struct {
	CPoolIndex uint16
}

type UninitializedVariableInfo struct {
	Offset uint16
}

func (v *SimpleVariableInfo) Item() VerificationItem        { return v.Tag }
func (v *ObjectVariableInfo) Item() VerificationItem        { return ItemObject }
func (v *UninitializedVariableInfo) Item() VerificationItem { return ItemUninitialized }

func (d *decoder) readStackMapTable(r *reader, depth int) Attribute {
	n := r.readU2()
	a := &StackMapTableAttribute{}
	for i := uint16(0); i < n && r.err == nil; i++ {
		if f := readStackMapFrame(r); f != nil {
			a.Entries = append(a.Entries, f)
		}
	}
	return a
}

func readStackMapFrame(r *reader) StackMapFrame {
	t := r.readU1()
	if r.err != nil {
		return nil
	}
	switch {
	case t <= 63:
		return &SameFrame{Type: t}
	case t <= 127:
		return &SameLocals1StackItemFrame{Type: t, Stack: readVerificationType(r)}
	case t == 247:
		delta := r.readU2()
		return &SameLocals1StackItemFrameExtended{Delta: delta, Stack: readVerificationType(r)}
	case t >= 248 && t <= 250:
		return &ChopFrame{Type: t, Delta: r.readU2()}
	case t == 251:
		return &SameFrameExtended{Delta: r.readU2()}
	case t >= 252 && t <= 254:
		f := &AppendFrame{Type: t, Delta: r.readU2()}
		f.Locals = readVerificationTypes(r, int(t)-251)
		return f
	case t == 255:
		f := &FullFrame{Delta: r.readU2()}
		f.Locals = readVerificationTypes(r, int(r.readU2()))
		f.Stack = readVerificationTypes(r, int(r.readU2()))
		return f
	}
	r.errorf("stack map frame", int(t), ErrUnknownFrameType)
	return nil
}

func readVerificationTypes(r *reader, n int) []VerificationTypeInfo {
	if r.err != nil {
		return nil
	}
	types := make([]VerificationTypeInfo, 0, r.capacity(n, 1))
	for i := 0; i < n && r.err == nil; i++ {
		types = append(types, readVerificationType(r))
	}
	return types
}

func readVerificationType(r *reader) VerificationTypeInfo {
	tag := VerificationItem(r.readU1())
	if r.err != nil {
		return nil
	}
	switch tag {
	case ItemTop, ItemInteger, ItemFloat, ItemDouble, ItemLong, ItemNull, ItemUninitializedThis:
		return &SimpleVariableInfo{Tag: tag}
	case ItemObject:
		return &ObjectVariableInfo{CPoolIndex: r.readU2()}
	case ItemUninitialized:
		return &UninitializedVariableInfo{Offset: r.readU2()}
	}
	r.errorf("verification type", int(tag), ErrUnknownVerificationType)
	return nil
}
