package classfile

import (
	"strings"
	"testing"
)

func TestValidFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want bool
	}{
		{"I", true},
		{"Z", true},
		{"Ljava/lang/Object;", true},
		{"[[I", true},
		{"[Ljava/lang/String;", true},
		{"Lpkg/Outer$Inner;", true},
		{strings.Repeat("[", 255) + "I", true},
		{"L;", false},
		{"[", false},
		{"", false},
		{"V", false},
		{"Q", false},
		{"II", false},
		{"Ljava/lang/Object;I", false},
		{"Ljava/lang/Object", false},
		{"Ljava.lang.Object;", false},
		{"Ljava//Object;", false},
		{"L/Object;", false},
		{"Ljava/lang/;", false},
		{"L[I;", false},
		{strings.Repeat("[", 256) + "I", false},
	}

	for _, tt := range tests {
		name := tt.desc
		if len(name) > 20 {
			name = name[:10] + "..." + name[len(name)-5:]
		}
		t.Run(name, func(t *testing.T) {
			if got := ValidFieldDescriptor(tt.desc); got != tt.want {
				t.Errorf("ValidFieldDescriptor(%q) = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}
}

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc       string
		baseType   string
		className  string
		arrayDepth int
		source     string
	}{
		{"I", "int", "", 0, "int"},
		{"Z", "boolean", "", 0, "boolean"},
		{"Ljava/lang/String;", "", "java/lang/String", 0, "java.lang.String"},
		{"[I", "int", "", 1, "int[]"},
		{"[[D", "double", "", 2, "double[][]"},
		{"[Ljava/lang/Object;", "", "java/lang/Object", 1, "java.lang.Object[]"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ft := ParseFieldDescriptor(tt.desc)
			if ft == nil {
				t.Fatalf("ParseFieldDescriptor(%q) returned nil", tt.desc)
			}
			if ft.BaseType != tt.baseType {
				t.Errorf("BaseType = %q, want %q", ft.BaseType, tt.baseType)
			}
			if ft.ClassName != tt.className {
				t.Errorf("ClassName = %q, want %q", ft.ClassName, tt.className)
			}
			if ft.ArrayDepth != tt.arrayDepth {
				t.Errorf("ArrayDepth = %d, want %d", ft.ArrayDepth, tt.arrayDepth)
			}
			if got := ft.String(); got != tt.source {
				t.Errorf("String() = %q, want %q", got, tt.source)
			}
		})
	}

	if ft := ParseFieldDescriptor("II"); ft != nil {
		t.Errorf("ParseFieldDescriptor(%q) = %+v, want nil", "II", ft)
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	tests := []struct {
		desc        string
		numParams   int
		returnsVoid bool
		returnType  string
	}{
		{"()V", 0, true, ""},
		{"()I", 0, false, "int"},
		{"(I)V", 1, true, ""},
		{"(II)I", 2, false, "int"},
		{"(Ljava/lang/String;)V", 1, true, ""},
		{"(IDLjava/lang/Thread;)Ljava/lang/Object;", 3, false, "java/lang/Object"},
		{"([[Ljava/lang/String;)[I", 1, false, "int"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md := ParseMethodDescriptor(tt.desc)
			if md == nil {
				t.Fatalf("ParseMethodDescriptor(%q) returned nil", tt.desc)
			}
			if len(md.Parameters) != tt.numParams {
				t.Errorf("len(Parameters) = %d, want %d", len(md.Parameters), tt.numParams)
			}
			if tt.returnsVoid {
				if md.ReturnType != nil {
					t.Error("Expected nil ReturnType for void")
				}
				return
			}
			if md.ReturnType == nil {
				t.Fatal("Expected non-nil ReturnType")
			}
			if got := md.ReturnType.BaseType + md.ReturnType.ClassName; got != tt.returnType {
				t.Errorf("ReturnType = %q, want %q", got, tt.returnType)
			}
		})
	}

	for _, bad := range []string{"", "V", "()", "(V)V", "(I", "()VV", "()II", "(L;)V"} {
		if md := ParseMethodDescriptor(bad); md != nil {
			t.Errorf("ParseMethodDescriptor(%q) = %v, want nil", bad, md)
		}
	}
}

func TestAccessFlagsStrings(t *testing.T) {
	tests := []struct {
		flags AccessFlags
		kind  FlagKind
		want  string
	}{
		{AccPublic | AccSuper, ClassFlags, "public super"},
		{AccPublic | AccInterface | AccAbstract, ClassFlags, "public interface abstract"},
		{AccPrivate | AccVolatile, FieldFlags, "private volatile"},
		{AccPublic | AccBridge | AccVarargs, MethodFlags, "public bridge varargs"},
		{AccSynchronized, MethodFlags, "synchronized"},
		{AccFinal | AccMandated, ParameterFlags, "final mandated"},
		{0, ClassFlags, ""},
	}

	for _, tt := range tests {
		if got := tt.flags.Format(tt.kind); got != tt.want {
			t.Errorf("AccessFlags(0x%04x).Format(%d) = %q, want %q", uint16(tt.flags), tt.kind, got, tt.want)
		}
	}

	if got := (AccPublic | AccPrivate | AccFinal).Count(AccPublic | AccPrivate | AccProtected); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if !(AccPublic | AccStatic | AccFinal).Has(AccPublic | AccStatic) {
		t.Error("Has() = false, want true")
	}
}
