// Package tribelog decodes the tribe activity log embedded in an ARK
// .arktribe save file into styled text lines.
//
// Decoding is a pure function of the input bytes: nothing is cached between
// calls and the package never logs.
package tribelog

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DecodedLog holds the decoded lines, most recent entry first.
type DecodedLog []LogLine

type options struct {
	strictCount bool
	encoding    NarrowEncoding
	locate      Locator
	onMismatch  func(declared, actual int)
}

// Option configures a decode call.
type Option func(*options)

// WithStrictCount controls whether a difference between the declared and
// decoded entry counts fails the decode. Default: true.
func WithStrictCount(strict bool) Option {
	return func(o *options) {
		o.strictCount = strict
	}
}

// WithNarrowEncoding sets the encoding used for single-byte entries.
// Default: EncodingASCII.
func WithNarrowEncoding(enc NarrowEncoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// WithLocator replaces the marker search used to find the log property.
func WithLocator(l Locator) Option {
	return func(o *options) {
		if l != nil {
			o.locate = l
		}
	}
}

// WithCountMismatchHook is called when the counts differ and strict
// checking is off.
func WithCountMismatchHook(fn func(declared, actual int)) Option {
	return func(o *options) {
		o.onMismatch = fn
	}
}

func defaultOptions() options {
	return options{
		strictCount: true,
		encoding:    EncodingASCII,
		locate:      Locate,
	}
}

// Decode parses the tribe log out of a complete save file image.
func Decode(buf []byte, opts ...Option) (DecodedLog, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	offset, err := o.locate(buf)
	if err != nil {
		return nil, err
	}
	frame, err := ReadFrame(buf, offset)
	if err != nil {
		return nil, err
	}
	entries, err := readEntries(frame.cursor())
	if err != nil {
		return nil, err
	}

	lines := make([]LogLine, 0, len(entries))
	for _, e := range entries {
		text, err := e.Text(o.encoding)
		if err != nil {
			return nil, err
		}
		line, err := SegmentLine(stripTerminator(text))
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) && de.Offset == 0 {
				de.Offset = e.Offset()
			}
			return nil, err
		}
		lines = append(lines, line)
	}

	if len(lines) != int(frame.DeclaredCount) {
		if o.strictCount {
			return nil, &DecodeError{
				Kind:     ErrCountMismatch,
				Offset:   frame.Start,
				Expected: fmt.Sprint(frame.DeclaredCount),
				Actual:   fmt.Sprint(len(lines)),
			}
		}
		if o.onMismatch != nil {
			o.onMismatch(int(frame.DeclaredCount), len(lines))
		}
	}

	return newestFirst(lines), nil
}

// DecodeFile reads the whole file at path and decodes it.
func DecodeFile(path string, opts ...Option) (DecodedLog, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	return Decode(buf, opts...)
}

// DecodeReader reads r to EOF and decodes the result.
func DecodeReader(r io.Reader, opts ...Option) (DecodedLog, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read save data: %w", err)
	}
	return Decode(buf, opts...)
}

func newestFirst(lines []LogLine) DecodedLog {
	out := make(DecodedLog, len(lines))
	for i, l := range lines {
		out[len(lines)-1-i] = l
	}
	return out
}
