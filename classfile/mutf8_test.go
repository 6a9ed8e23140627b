package classfile

import "testing"

func TestDecodeModifiedUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("java/lang/Object"), "java/lang/Object"},
		{"empty", nil, ""},
		{"two byte nul", []byte{'a', 0xC0, 0x80, 'b'}, "a\x00b"},
		{"two byte", []byte{0xC3, 0xA9}, "é"},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, "€"},
		{"surrogate pair", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "😀"},
		{"lone high surrogate", []byte{0xED, 0xA0, 0xBD, 'x'}, "�x"},
		{"truncated", []byte{'a', 0xE2, 0x82}, "a��"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeModifiedUTF8(tt.in); got != tt.want {
				t.Errorf("decodeModifiedUTF8(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidModifiedUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want bool
	}{
		{"ascii", []byte("Hello"), true},
		{"two byte nul", []byte{0xC0, 0x80}, true},
		{"surrogate pair", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, true},
		{"raw nul", []byte{'a', 0x00}, false},
		{"four byte form", []byte{0xF0, 0x9F, 0x98, 0x80}, false},
		{"truncated", []byte{0xE2, 0x82}, false},
		{"bad continuation", []byte{0xC3, 0x41}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidModifiedUTF8(tt.in); got != tt.want {
				t.Errorf("ValidModifiedUTF8(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
