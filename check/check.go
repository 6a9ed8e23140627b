// Package check enforces the structural rules a decoded class file must
// satisfy before a loader may trust it. Checks run in a fixed order and
// stop at the first violation.
package check

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javalyzer/classfile"
)

const (
	MinMajorVersion = 45
	MaxMajorVersion = 62
)

// logger is looked up per call so the backend chosen at startup applies.
func logger() commonlog.Logger { return commonlog.GetLogger("javalyzer.check") }

type options struct {
	nameOnlyMethodDuplicates bool
}

// Option configures a Checker.
type Option func(*options)

// WithNameOnlyMethodDuplicates rejects any two methods sharing a name,
// even when their descriptors differ.
func WithNameOnlyMethodDuplicates() Option {
	return func(o *options) { o.nameOnlyMethodDuplicates = true }
}

// Checker holds check options. It carries no per-class state and may be
// shared between goroutines.
type Checker struct {
	opts options
}

func New(opts ...Option) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Check runs every pass with a Checker built from opts.
func Check(cf *classfile.ClassFile, opts ...Option) error {
	return New(opts...).Check(cf)
}

// context is what the flag pass learns about the class. Later passes
// receive it by value.
type context struct {
	major       uint16
	isInterface bool
	isModule    bool
}

type pass struct {
	name string
	run  func(*Checker, *classfile.ClassFile, context) error
}

var passes = []pass{
	{"this_class", (*Checker).checkThisClass},
	{"super_class", (*Checker).checkSuperClass},
	{"interfaces", (*Checker).checkInterfaces},
	{"fields", (*Checker).checkFields},
	{"methods", (*Checker).checkMethods},
}

// Check returns nil when cf passes every rule, or an *Error for the
// first rule it breaks.
func (c *Checker) Check(cf *classfile.ClassFile) error {
	if err := checkVersion(cf); err != nil {
		return c.reject(cf, "version", err)
	}
	ctx, err := checkClassFlags(cf)
	if err != nil {
		return c.reject(cf, "access_flags", err)
	}
	for _, p := range passes {
		if err := p.run(c, cf, ctx); err != nil {
			return c.reject(cf, p.name, err)
		}
	}
	return nil
}

func (c *Checker) reject(cf *classfile.ClassFile, pass string, err error) error {
	logger().Debugf("%s: %s pass failed: %s", className(cf), pass, err)
	return err
}

// className is the class name for log lines; it tolerates a bad this_class.
func className(cf *classfile.ClassFile) string {
	if name := cf.ClassName(); name != "" {
		return name
	}
	return "<unknown class>"
}

func checkVersion(cf *classfile.ClassFile) error {
	major, minor := cf.MajorVersion, cf.MinorVersion
	if major < MinMajorVersion || major > MaxMajorVersion {
		return fail(ErrUnsupportedMajor, fmt.Sprintf("%d not in [%d, %d]", major, MinMajorVersion, MaxMajorVersion))
	}
	if major > 56 && minor != 0 && minor != 0xFFFF {
		return fail(ErrInvalidMinor, fmt.Sprintf("%d.%d", major, minor))
	}
	return nil
}

func checkClassFlags(cf *classfile.ClassFile) (context, error) {
	flags := cf.AccessFlags
	ctx := context{major: cf.MajorVersion}

	if flags.IsModule() {
		if flags != classfile.AccModule {
			return ctx, fail(ErrModuleFlagNotAlone, flags.Format(classfile.ClassFlags))
		}
		if ctx.major < 53 {
			return ctx, fail(ErrModuleFlagVersion, fmt.Sprintf("major version %d", ctx.major))
		}
		ctx.isModule = true
		return ctx, nil
	}

	if flags.IsInterface() {
		if !flags.IsAbstract() {
			return ctx, fail(ErrInterfaceWithoutAbstract, flags.Format(classfile.ClassFlags))
		}
		if flags&(classfile.AccFinal|classfile.AccSuper|classfile.AccEnum|classfile.AccModule) != 0 {
			return ctx, fail(ErrInvalidInterfaceFlags, flags.Format(classfile.ClassFlags))
		}
		ctx.isInterface = true
	}
	if flags.Has(classfile.AccAbstract | classfile.AccFinal) {
		return ctx, fail(ErrFinalAndAbstract, flags.Format(classfile.ClassFlags))
	}
	if flags.IsAnnotation() && !flags.IsInterface() {
		return ctx, fail(ErrAnnotationWithoutInterface, flags.Format(classfile.ClassFlags))
	}
	return ctx, nil
}

// classIndex resolves index to a Class constant. notClass is returned
// when the slot holds something else.
func classIndex(cp classfile.ConstantPool, index uint16, what string, notClass error) error {
	entry := cp.Entry(index)
	if entry == nil {
		return fail(ErrInvalidConstantPoolIndex, fmt.Sprintf("%s #%d", what, index))
	}
	if _, ok := entry.(*classfile.ConstantClassInfo); !ok {
		return fail(notClass, fmt.Sprintf("%s #%d is %s", what, index, entry.Tag()))
	}
	return nil
}

func (c *Checker) checkThisClass(cf *classfile.ClassFile, _ context) error {
	return classIndex(cf.ConstantPool, cf.ThisClass, "this_class", ErrThisClassNotClass)
}

// checkSuperClass accepts 0, which only java/lang/Object may use.
func (c *Checker) checkSuperClass(cf *classfile.ClassFile, _ context) error {
	if cf.SuperClass == 0 {
		return nil
	}
	return classIndex(cf.ConstantPool, cf.SuperClass, "super_class", ErrSuperClassNotClass)
}

func (c *Checker) checkInterfaces(cf *classfile.ClassFile, _ context) error {
	for i, index := range cf.Interfaces {
		err := classIndex(cf.ConstantPool, index, fmt.Sprintf("interfaces[%d]", i), ErrInvalidConstantPoolIndex)
		if err != nil {
			return err
		}
	}
	return nil
}
