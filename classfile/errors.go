package classfile

import (
	"errors"
	"fmt"
)

// Decode failures. Every error returned by Parse wraps exactly one of these.
var (
	ErrInvalidMagic            = errors.New("classfile: invalid magic number")
	ErrRead                    = errors.New("classfile: read failed")
	ErrUnexpectedEnd           = errors.New("classfile: unexpected end of input")
	ErrUnknownConstantTag      = errors.New("classfile: unknown constant pool tag")
	ErrUnknownAttribute        = errors.New("classfile: unknown attribute")
	ErrUnknownFrameType        = errors.New("classfile: unknown stack map frame type")
	ErrUnknownVerificationType = errors.New("classfile: unknown verification type tag")
	ErrUnknownElementValueTag  = errors.New("classfile: unknown element value tag")
	ErrUnknownTargetType       = errors.New("classfile: unknown type annotation target type")
	ErrAttributeLength         = errors.New("classfile: attribute length mismatch")
	ErrTrailingBytes           = errors.New("classfile: trailing bytes after class file")
	ErrTooDeep                 = errors.New("classfile: nesting too deep")
)

// DecodeError locates a decode failure in the input.
type DecodeError struct {
	Offset  int    // byte offset in the input where the failure was detected
	Context string // what was being decoded
	Value   int    // offending discriminant, when there is one
	Err     error
}

func (e *DecodeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnknownConstantTag),
		errors.Is(e.Err, ErrUnknownFrameType),
		errors.Is(e.Err, ErrUnknownVerificationType),
		errors.Is(e.Err, ErrUnknownTargetType):
		return fmt.Sprintf("%v %d in %s at offset 0x%x", e.Err, e.Value, e.Context, e.Offset)
	case errors.Is(e.Err, ErrUnknownElementValueTag):
		return fmt.Sprintf("%v %q in %s at offset 0x%x", e.Err, rune(e.Value), e.Context, e.Offset)
	}
	return fmt.Sprintf("%v in %s at offset 0x%x", e.Err, e.Context, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (r *reader) errorf(context string, value int, err error) {
	if r.err != nil {
		return
	}
	r.err = &DecodeError{Offset: r.offset(), Context: context, Value: value, Err: err}
}
