package classfile

import "encoding/binary"

// reader is a forward-only big-endian cursor over an in-memory buffer.
// The first read past the end records ErrUnexpectedEnd; every later read
// returns a zero value without touching the buffer.
type reader struct {
	data []byte
	off  int
	base int
	err  error
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

// offset reports the absolute position in the original input.
func (r *reader) offset() int {
	return r.base + r.off
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) fail(n int) bool {
	if r.err != nil {
		return true
	}
	if n < 0 || r.remaining() < n {
		r.err = &DecodeError{Offset: r.offset(), Context: "read", Err: ErrUnexpectedEnd}
		return true
	}
	return false
}

func (r *reader) readU1() uint8 {
	if r.fail(1) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

func (r *reader) readU2() uint16 {
	if r.fail(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) readU4() uint32 {
	if r.fail(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

// readBytes returns a view of the next n bytes. The slice aliases the
// input buffer; its capacity is clipped so appends cannot clobber it.
func (r *reader) readBytes(n int) []byte {
	if r.fail(n) {
		return nil
	}
	v := r.data[r.off : r.off+n : r.off+n]
	r.off += n
	return v
}

// capacity bounds a preallocation for n entries by how many entries of at
// least size bytes the remaining input can hold, so a forged count cannot
// reserve more memory than the input justifies.
func (r *reader) capacity(n, size int) int {
	return min(n, r.remaining()/size)
}

func (r *reader) readU2s(n int) []uint16 {
	if r.fail(2 * n) {
		return nil
	}
	v := make([]uint16, n)
	for i := range v {
		v[i] = binary.BigEndian.Uint16(r.data[r.off:])
		r.off += 2
	}
	return v
}

// sub carves the next n bytes into a child reader that reports offsets
// relative to the original input.
func (r *reader) sub(n int) *reader {
	start := r.offset()
	data := r.readBytes(n)
	if r.err != nil {
		return &reader{base: start, err: r.err}
	}
	return &reader{data: data, base: start}
}
