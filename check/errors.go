package check

import "errors"

// Rule violations. Every error returned by Check is an *Error whose Kind
// is one of these, so errors.Is works against them directly.
var (
	ErrUnsupportedMajor            = errors.New("unsupported major version")
	ErrInvalidMinor                = errors.New("invalid minor version")
	ErrModuleFlagNotAlone          = errors.New("module flag combined with other flags")
	ErrModuleFlagVersion           = errors.New("module flag below major version 53")
	ErrInterfaceWithoutAbstract    = errors.New("interface flag without abstract flag")
	ErrInvalidInterfaceFlags       = errors.New("invalid flag combination with interface flag")
	ErrFinalAndAbstract            = errors.New("final and abstract flags both set")
	ErrAnnotationWithoutInterface  = errors.New("annotation flag without interface flag")
	ErrInvalidConstantPoolIndex    = errors.New("invalid constant pool index")
	ErrThisClassNotClass           = errors.New("this_class is not a class constant")
	ErrSuperClassNotClass          = errors.New("super_class is not a class constant")
	ErrDuplicateField              = errors.New("duplicate field")
	ErrDuplicateMethod             = errors.New("duplicate method")
	ErrInvalidFieldFlags           = errors.New("invalid field access flags")
	ErrInvalidInterfaceFieldFlags  = errors.New("invalid interface field access flags")
	ErrInvalidMethodFlags          = errors.New("invalid method access flags")
	ErrInvalidInterfaceMethodFlags = errors.New("invalid interface method access flags")
	ErrFieldNameNotUtf8            = errors.New("field name is not a Utf8 constant")
	ErrInvalidFieldDescriptor      = errors.New("invalid field descriptor")
	ErrInvalidFieldAttribute       = errors.New("attribute not allowed on field")
)

// Error reports the first rule a class file violated.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "check: " + e.Kind.Error()
	}
	return "check: " + e.Kind.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}
