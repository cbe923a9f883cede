package tribelog

import (
	"bytes"
	"fmt"
)

const (
	arrayPropertyType = "ArrayProperty\x00"
	strPropertyType   = "StrProperty\x00"
)

// Frame is the bounded region of the buffer holding the log array payload.
// Entries starts with the 4-byte declared count, which is the first element
// of the array payload and is counted in ByteLength.
type Frame struct {
	ByteLength    int64
	DeclaredCount int32
	Start         int64
	End           int64
	Entries       []byte
}

// ReadFrame validates the ArrayProperty/StrProperty headers found at offset
// and returns the frame they describe.
func ReadFrame(buf []byte, offset int) (*Frame, error) {
	if offset < 0 || offset > len(buf) {
		return nil, newError(ErrUnexpectedEOF, int64(offset), "", "")
	}
	c := newCursorAt(buf[offset:], int64(offset))

	if err := expectHeader(c, arrayPropertyType); err != nil {
		return nil, err
	}
	size, err := c.ReadU64(true)
	if err != nil {
		return nil, err
	}
	if err := expectHeader(c, strPropertyType); err != nil {
		return nil, err
	}

	start := c.Offset()
	if size < 0 || size > c.Remaining() {
		e := newError(ErrUnexpectedEOF, start, "", "")
		e.Err = fmt.Errorf("array size %d exceeds %d remaining bytes", size, c.Remaining())
		return nil, e
	}
	entries := buf[start : start+size]

	fc := newCursorAt(entries, start)
	count, err := fc.ReadU32(true)
	if err != nil {
		return nil, err
	}
	return &Frame{
		ByteLength:    size,
		DeclaredCount: int32(count),
		Start:         start,
		End:           start + size,
		Entries:       entries,
	}, nil
}

// cursor returns a cursor over the entries that follow the declared count.
func (f *Frame) cursor() *Cursor {
	c := newCursorAt(f.Entries, f.Start)
	c.pos = 4
	return c
}

func expectHeader(c *Cursor, want string) error {
	at := c.Offset()
	n, err := c.ReadU32(false)
	if err != nil {
		return err
	}
	got, err := c.ReadBytes(n)
	if err != nil {
		return &DecodeError{Kind: ErrMalformedHeader, Offset: at, Expected: want, Err: err}
	}
	if !bytes.Equal(got, []byte(want)) {
		return newError(ErrMalformedHeader, at, want, string(got))
	}
	return nil
}
