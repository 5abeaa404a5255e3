// Package buffer provides a minimal read/write cursor over a byte slice:
// writes append, reads consume from the front, and the type is
// deliberately narrow rather than a general io.Reader/Writer adaptor.
package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer is returned by any Read method when fewer bytes remain
// than the read requires. Wire input is untrusted and can be truncated or
// malformed, so every read that can run off the end of buf must surface
// this instead of panicking.
var ErrShortBuffer = errors.New("buffer: not enough bytes remaining")

// Buffer is a read/write cursor over a byte slice. Write methods append to
// buf; Read methods consume from the front of buf.
type Buffer struct {
	buf []byte
}

// NewBuffer wraps b for reading and writing. b is not copied.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// Bytes returns the remaining unconsumed bytes.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the number of remaining unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

func (b *Buffer) WriteUint8(v uint8) {
	b.buf = append(b.buf, v)
}

func (b *Buffer) ReadUint8() (uint8, error) {
	if len(b.buf) < 1 {
		return 0, fmt.Errorf("%w: need 1 byte, have %d", ErrShortBuffer, len(b.buf))
	}
	v := b.buf[0]
	b.buf = b.buf[1:]
	return v, nil
}

func (b *Buffer) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Buffer) ReadUint32() (uint32, error) {
	if len(b.buf) < 4 {
		return 0, fmt.Errorf("%w: need 4 bytes, have %d", ErrShortBuffer, len(b.buf))
	}
	v := binary.BigEndian.Uint32(b.buf[:4])
	b.buf = b.buf[4:]
	return v, nil
}

func (b *Buffer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Buffer) ReadUint64() (uint64, error) {
	if len(b.buf) < 8 {
		return 0, fmt.Errorf("%w: need 8 bytes, have %d", ErrShortBuffer, len(b.buf))
	}
	v := binary.BigEndian.Uint64(b.buf[:8])
	b.buf = b.buf[8:]
	return v, nil
}

func (b *Buffer) WriteUint64Slice(s []uint64) {
	for _, v := range s {
		b.WriteUint64(v)
	}
}

func (b *Buffer) ReadUint64Slice(out []uint64) error {
	for i := range out {
		v, err := b.ReadUint64()
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

// WriteRawBytes appends p with no length prefix, for fields whose width
// is already fixed and known to the reader (a Scalar, Point, or PRG
// seed encoding).
func (b *Buffer) WriteRawBytes(p []byte) {
	b.buf = append(b.buf, p...)
}

// ReadRawBytes consumes and returns the next n bytes verbatim, with no
// length prefix to read. The returned slice aliases the buffer's backing
// array. Returns ErrShortBuffer if fewer than n bytes remain.
func (b *Buffer) ReadRawBytes(n int) ([]byte, error) {
	if len(b.buf) < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, len(b.buf))
	}
	p := b.buf[:n]
	b.buf = b.buf[n:]
	return p, nil
}

// WriteBytesWithLength writes a uint32 length prefix followed by p.
func (b *Buffer) WriteBytesWithLength(p []byte) {
	b.WriteUint32(uint32(len(p)))
	b.buf = append(b.buf, p...)
}

// ReadBytesWithLength reads a uint32 length prefix and returns that many
// following bytes. The returned slice aliases the buffer's backing array.
// Returns ErrShortBuffer if the prefix or the declared payload don't fit
// in what remains.
func (b *Buffer) ReadBytesWithLength() ([]byte, error) {
	n, err := b.ReadUint32()
	if err != nil {
		return nil, err
	}
	return b.ReadRawBytes(int(n))
}
