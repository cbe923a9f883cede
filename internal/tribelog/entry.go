package tribelog

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// NarrowEncoding selects how single-byte entries are turned into text.
type NarrowEncoding string

const (
	// EncodingASCII rejects bytes above 0x7F.
	EncodingASCII NarrowEncoding = "ascii"
	// EncodingLatin1 maps every byte to the ISO 8859-1 code point.
	EncodingLatin1 NarrowEncoding = "latin1"
)

// Entry is one raw log string as stored in the frame. The sign of the length
// prefix selects the variant.
type Entry interface {
	// Offset is the absolute position of the entry's length prefix.
	Offset() int64
	// Text decodes the entry, including its trailing terminator.
	Text(enc NarrowEncoding) (string, error)
}

// NarrowEntry holds one byte per character.
type NarrowEntry struct {
	At  int64
	Raw []byte
}

// WideEntry holds UTF-16LE code units.
type WideEntry struct {
	At  int64
	Raw []byte
}

func (e NarrowEntry) Offset() int64 { return e.At }

func (e NarrowEntry) Text(enc NarrowEncoding) (string, error) {
	switch enc {
	case EncodingLatin1:
		s, err := charmap.ISO8859_1.NewDecoder().Bytes(e.Raw)
		if err != nil {
			return "", e.invalid(err)
		}
		return string(s), nil
	case EncodingASCII, "":
		for i, b := range e.Raw {
			if b >= utf8.RuneSelf {
				return "", e.invalid(fmt.Errorf("non-ASCII byte 0x%02x at index %d", b, i))
			}
		}
		return string(e.Raw), nil
	default:
		return "", e.invalid(fmt.Errorf("unknown narrow encoding %q", enc))
	}
}

func (e NarrowEntry) invalid(err error) error {
	return &DecodeError{Kind: ErrInvalidText, Offset: e.At, Err: err}
}

func (e WideEntry) Offset() int64 { return e.At }

// Text decodes UTF-16LE and rejects unpaired surrogates.
func (e WideEntry) Text(NarrowEncoding) (string, error) {
	units := make([]uint16, len(e.Raw)/2)
	for i := range units {
		units[i] = uint16(e.Raw[2*i]) | uint16(e.Raw[2*i+1])<<8
	}
	var sb strings.Builder
	sb.Grow(len(units))
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		if !utf16.IsSurrogate(u) {
			sb.WriteRune(u)
			continue
		}
		if i+1 < len(units) {
			if r := utf16.DecodeRune(u, rune(units[i+1])); r != utf8.RuneError {
				sb.WriteRune(r)
				i++
				continue
			}
		}
		return "", &DecodeError{
			Kind:   ErrInvalidText,
			Offset: e.At + 4 + int64(2*i),
			Err:    fmt.Errorf("unpaired surrogate 0x%04x", u),
		}
	}
	return sb.String(), nil
}

type entryState int

const (
	stateReadLength entryState = iota
	stateReadNarrow
	stateReadWide
	stateDone
)

// readEntries walks the frame's entry stream until a zero length prefix, or
// until the frame is exhausted exactly on an entry boundary.
func readEntries(c *Cursor) ([]Entry, error) {
	var (
		entries []Entry
		state   = stateReadLength
		at      int64
		n       int64
	)
	for state != stateDone {
		switch state {
		case stateReadLength:
			if c.Remaining() == 0 {
				state = stateDone
				continue
			}
			at = c.Offset()
			v, err := c.ReadU32(true)
			if err != nil {
				return nil, err
			}
			n = v
			switch {
			case n == 0:
				state = stateDone
			case n < 0:
				state = stateReadWide
			default:
				state = stateReadNarrow
			}
		case stateReadNarrow:
			raw, err := c.ReadBytes(n)
			if err != nil {
				return nil, err
			}
			entries = append(entries, NarrowEntry{At: at, Raw: raw})
			state = stateReadLength
		case stateReadWide:
			raw, err := c.ReadBytes(-n * 2)
			if err != nil {
				return nil, err
			}
			entries = append(entries, WideEntry{At: at, Raw: raw})
			state = stateReadLength
		}
	}
	return entries, nil
}

// stripTerminator drops the final character, whatever its width.
func stripTerminator(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
