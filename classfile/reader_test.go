package classfile

import (
	"errors"
	"testing"
)

func TestReader(t *testing.T) {
	r := newReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09})

	if got := r.readU1(); got != 0x01 {
		t.Errorf("readU1() = 0x%x, want 0x01", got)
	}
	if got := r.readU2(); got != 0x0203 {
		t.Errorf("readU2() = 0x%x, want 0x0203", got)
	}
	if got := r.readU4(); got != 0x04050607 {
		t.Errorf("readU4() = 0x%x, want 0x04050607", got)
	}
	if got := r.offset(); got != 7 {
		t.Errorf("offset() = %d, want 7", got)
	}
	if got := r.remaining(); got != 2 {
		t.Errorf("remaining() = %d, want 2", got)
	}
	if got := r.readU4(); got != 0 {
		t.Errorf("readU4() past end = 0x%x, want 0", got)
	}
	if !errors.Is(r.err, ErrUnexpectedEnd) {
		t.Fatalf("err = %v, want ErrUnexpectedEnd", r.err)
	}
	if got := r.offset(); got != 7 {
		t.Errorf("offset() after failed read = %d, want 7", got)
	}

	first := r.err
	if got := r.readU1(); got != 0 {
		t.Errorf("readU1() after failure = 0x%x, want 0", got)
	}
	if r.err != first {
		t.Error("error should be sticky")
	}
}

func TestReaderSub(t *testing.T) {
	r := newReader([]byte{0xAA, 0x00, 0x01, 0x00, 0x02, 0xBB})
	r.readU1()
	sub := r.sub(4)
	if sub.err != nil {
		t.Fatalf("sub() err = %v", sub.err)
	}
	if got := sub.readU2s(2); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("readU2s(2) = %v, want [1 2]", got)
	}
	if got := r.readU1(); got != 0xBB {
		t.Errorf("parent readU1() = 0x%x, want 0xBB", got)
	}

	sub.readU1()
	var de *DecodeError
	if !errors.As(sub.err, &de) {
		t.Fatalf("sub err = %v, want *DecodeError", sub.err)
	}
	if de.Offset != 5 {
		t.Errorf("Offset = %d, want 5", de.Offset)
	}

	r2 := newReader([]byte{0x00})
	if s := r2.sub(2); s.err == nil || r2.err == nil {
		t.Error("sub() past end should fail both readers")
	}
}

func TestReaderBytesAlias(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := newReader(data)
	b := r.readBytes(2)
	if cap(b) != 2 {
		t.Errorf("cap = %d, want 2", cap(b))
	}
	b = append(b, 9)
	if data[2] != 3 {
		t.Error("append through a view modified the input")
	}
	if r.readBytes(-1) != nil || r.err == nil {
		t.Error("negative length should fail")
	}
}
