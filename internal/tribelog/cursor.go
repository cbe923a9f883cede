package tribelog

import (
	"encoding/binary"
	"fmt"
)

// Cursor reads little-endian values sequentially from an in-memory buffer.
// base is the absolute offset of buf[0] in the enclosing file, so errors
// raised on a sub-range still point at the right byte.
type Cursor struct {
	buf  []byte
	base int64
	pos  int64
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

func newCursorAt(buf []byte, base int64) *Cursor {
	return &Cursor{buf: buf, base: base}
}

// Offset returns the absolute position of the next unread byte.
func (c *Cursor) Offset() int64 { return c.base + c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int64 { return int64(len(c.buf)) - c.pos }

// ReadU32 reads a 4-byte integer, sign-extending it when signed is true.
func (c *Cursor) ReadU32(signed bool) (int64, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(b)
	if signed {
		return int64(int32(v)), nil
	}
	return int64(v), nil
}

// ReadU64 reads an 8-byte integer. Unsigned values above math.MaxInt64 wrap.
func (c *Cursor) ReadU64(signed bool) (int64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// ReadBytes returns the next n bytes without copying.
func (c *Cursor) ReadBytes(n int64) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		e := newError(ErrUnexpectedEOF, c.Offset(), "", "")
		e.Err = fmt.Errorf("need %d bytes, %d remain", n, c.Remaining())
		return nil, e
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}
