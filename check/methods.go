package check

import (
	"fmt"

	"github.com/dhamidi/javalyzer/classfile"
)

const (
	interfaceForbidden = classfile.AccProtected | classfile.AccFinal | classfile.AccSynchronized | classfile.AccNative
	// legacyInterfaceAllowed is every flag a pre-Java-8 interface method
	// may carry; public and abstract are also required.
	legacyInterfaceAllowed = classfile.AccPublic | classfile.AccAbstract | classfile.AccBridge | classfile.AccVarargs | classfile.AccSynthetic
	abstractForbidden      = classfile.AccPrivate | classfile.AccStatic | classfile.AccFinal | classfile.AccSynchronized | classfile.AccNative
)

func (c *Checker) checkMethods(cf *classfile.ClassFile, ctx context) error {
	if err := c.checkMethodDuplicates(cf); err != nil {
		return err
	}
	for _, rule := range []func(*classfile.ClassFile, context) error{
		checkMethodVisibility,
		checkAbstractMethods,
	} {
		if err := rule(cf, ctx); err != nil {
			return err
		}
	}
	return nil
}

type methodKey struct {
	name       string
	descriptor string
}

// checkMethodDuplicates compares raw name bytes and, unless configured
// otherwise, raw descriptor bytes. Methods whose name is not Utf8 are
// skipped.
func (c *Checker) checkMethodDuplicates(cf *classfile.ClassFile) error {
	seen := make(map[methodKey]int, len(cf.Methods))
	for i, m := range cf.Methods {
		name, ok := cf.ConstantPool.Utf8Bytes(m.NameIndex)
		if !ok {
			continue
		}
		key := methodKey{name: string(name)}
		if !c.opts.nameOnlyMethodDuplicates {
			desc, _ := cf.ConstantPool.Utf8Bytes(m.DescriptorIndex)
			key.descriptor = string(desc)
		}
		if prev, dup := seen[key]; dup {
			what := cf.ConstantPool.GetUtf8(m.NameIndex)
			if !c.opts.nameOnlyMethodDuplicates {
				what += cf.ConstantPool.GetUtf8(m.DescriptorIndex)
			}
			return fail(ErrDuplicateMethod, fmt.Sprintf("%q (methods %d and %d)", what, prev, i))
		}
		seen[key] = i
	}
	return nil
}

func checkMethodVisibility(cf *classfile.ClassFile, ctx context) error {
	for i := range cf.Methods {
		m := &cf.Methods[i]
		flags := m.AccessFlags
		if !ctx.isInterface {
			if flags.Count(visibilityFlags) > 1 {
				return fail(ErrInvalidMethodFlags, methodDetail(cf, i))
			}
			continue
		}
		if flags&interfaceForbidden != 0 {
			return fail(ErrInvalidInterfaceMethodFlags, methodDetail(cf, i))
		}
		if ctx.major < 52 {
			if m.IsStaticInitializer(cf.ConstantPool) {
				continue
			}
			if !flags.Has(classfile.AccPublic|classfile.AccAbstract) || flags&^legacyInterfaceAllowed != 0 {
				return fail(ErrInvalidInterfaceMethodFlags, methodDetail(cf, i))
			}
			continue
		}
		if flags.Has(classfile.AccPublic | classfile.AccPrivate) {
			return fail(ErrInvalidInterfaceMethodFlags, methodDetail(cf, i))
		}
	}
	return nil
}

// checkAbstractMethods applies to classes and interfaces alike. strictfp
// only conflicts with abstract between major versions 46 and 60; before
// that the bit was unassigned and from 61 on it is ignored.
func checkAbstractMethods(cf *classfile.ClassFile, ctx context) error {
	forbidden := abstractForbidden
	if ctx.major >= 46 && ctx.major <= 60 {
		forbidden |= classfile.AccStrict
	}
	for i, m := range cf.Methods {
		if m.AccessFlags.IsAbstract() && m.AccessFlags&forbidden != 0 {
			return fail(ErrInvalidMethodFlags, methodDetail(cf, i))
		}
	}
	return nil
}

func methodDetail(cf *classfile.ClassFile, i int) string {
	m := cf.Methods[i]
	name := memberName(cf.ConstantPool, m.NameIndex, i)
	if _, ok := cf.ConstantPool.Utf8Bytes(m.DescriptorIndex); ok {
		name += cf.ConstantPool.GetUtf8(m.DescriptorIndex)
	}
	return fmt.Sprintf("method %s: %s", name, flagString(m.AccessFlags, classfile.MethodFlags))
}
