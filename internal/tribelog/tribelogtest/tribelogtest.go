// Package tribelogtest builds synthetic save files for tests.
package tribelogtest

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// Header type names as written by the game, terminator included.
const (
	TribeLogName  = "TribeLog\x00"
	ArrayProperty = "ArrayProperty\x00"
	StrProperty   = "StrProperty\x00"
)

// Int32 encodes v little-endian.
func Int32(v int32) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(v))
}

// LengthPrefixed writes len(s) followed by s.
func LengthPrefixed(s string) []byte {
	return append(Int32(int32(len(s))), s...)
}

// Narrow encodes s as a one-byte-per-char entry with its terminator.
func Narrow(s string) []byte {
	return LengthPrefixed(s + "\x00")
}

// Wide encodes s as a UTF-16LE entry with its terminator.
func Wide(s string) []byte {
	units := append(utf16.Encode([]rune(s)), 0)
	out := Int32(-int32(len(units)))
	for _, u := range units {
		out = binary.LittleEndian.AppendUint16(out, u)
	}
	return out
}

// SaveFile describes a synthetic .arktribe image. Zero values produce a
// well-formed file.
type SaveFile struct {
	Declared   int32
	Entries    [][]byte
	Terminator bool
	ArrayType  string
	ElemType   string
	// SizeDelta is added to the correct array size.
	SizeDelta int64
	Trailing  []byte
}

// Lines builds a well-formed file with one narrow entry per line, in the
// order the game appends them.
func Lines(lines ...string) SaveFile {
	s := SaveFile{Declared: int32(len(lines)), Terminator: true}
	for _, l := range lines {
		s.Entries = append(s.Entries, Narrow(l))
	}
	return s
}

// Bytes renders the file.
func (s SaveFile) Bytes() []byte {
	arrayType, elemType := s.ArrayType, s.ElemType
	if arrayType == "" {
		arrayType = ArrayProperty
	}
	if elemType == "" {
		elemType = StrProperty
	}

	var payload bytes.Buffer
	payload.Write(Int32(s.Declared))
	for _, e := range s.Entries {
		payload.Write(e)
	}
	if s.Terminator {
		payload.Write(Int32(0))
	}

	var buf bytes.Buffer
	buf.WriteString("\x01\x02SaveGameHeader")
	buf.Write(LengthPrefixed(TribeLogName))
	buf.Write(LengthPrefixed(arrayType))
	buf.Write(binary.LittleEndian.AppendUint64(nil, uint64(int64(payload.Len())+s.SizeDelta)))
	buf.Write(LengthPrefixed(elemType))
	buf.Write(payload.Bytes())
	buf.Write(s.Trailing)
	return buf.Bytes()
}
