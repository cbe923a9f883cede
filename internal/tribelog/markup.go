package tribelog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	richColorOpen  = `<RichColor Color="`
	richColorStart = `">`
	richColorClose = `</>`
)

// Color is a RichColor value: three 8-bit channels followed by any further
// components (usually alpha) kept as written.
type Color struct {
	R, G, B uint8
	Extra   []float64
}

// Values returns the color as the flat tuple [r, g, b, extra...].
func (c Color) Values() []any {
	out := make([]any, 0, 3+len(c.Extra))
	out = append(out, int(c.R), int(c.G), int(c.B))
	for _, v := range c.Extra {
		out = append(out, v)
	}
	return out
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Values())
}

func (c Color) MarshalYAML() (any, error) {
	return c.Values(), nil
}

// CSS renders the color as an rgba() or rgb() function.
func (c Color) CSS() string {
	if len(c.Extra) == 0 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	parts := make([]string, 0, 3+len(c.Extra))
	parts = append(parts, strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)))
	for _, v := range c.Extra {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return "rgba(" + strings.Join(parts, ", ") + ")"
}

// Segment is a run of text with an optional color.
type Segment struct {
	Text  string `json:"text" yaml:"text"`
	Color *Color `json:"color" yaml:"color"`
}

// LogLine is one decoded entry split into segments. It always has at least
// one segment.
type LogLine []Segment

// Text returns the line with markup removed.
func (l LogLine) Text() string {
	var sb strings.Builder
	for _, s := range l {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// ParseColor converts a Color attribute such as "1.0,0.5,0,0.8".
// Channels are clamped to [0,1], scaled by 255 and truncated.
func ParseColor(spec string) (Color, error) {
	fields := strings.Split(spec, ",")
	if len(fields) < 3 {
		return Color{}, &DecodeError{Kind: ErrInvalidColorSpec, Actual: spec,
			Err: fmt.Errorf("need at least 3 components, got %d", len(fields))}
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Color{}, &DecodeError{Kind: ErrInvalidColorSpec, Actual: spec, Err: err}
		}
		values[i] = v
	}
	c := Color{R: channel(values[0]), G: channel(values[1]), B: channel(values[2])}
	if len(values) > 3 {
		c.Extra = values[3:]
	}
	return c, nil
}

func channel(v float64) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v * 255)
}

// SegmentLine splits line into plain and RichColor runs. Tags without a
// closing "</>" are left in place as plain text.
func SegmentLine(line string) (LogLine, error) {
	var out LogLine
	pos := 0
	for pos < len(line) {
		tag, ok := nextTag(line, pos)
		if !ok {
			break
		}
		color, err := ParseColor(tag.spec)
		if err != nil {
			return nil, err
		}
		if tag.open > pos {
			out = append(out, Segment{Text: line[pos:tag.open]})
		}
		out = append(out, Segment{Text: tag.inner, Color: &color})
		pos = tag.end
	}
	if pos < len(line) || len(out) == 0 {
		out = append(out, Segment{Text: line[pos:]})
	}
	return out, nil
}

type richTag struct {
	open  int
	spec  string
	inner string
	end   int
}

// nextTag finds the earliest complete RichColor tag starting at or after pos.
func nextTag(line string, pos int) (richTag, bool) {
	for from := pos; ; {
		i := strings.Index(line[from:], richColorOpen)
		if i < 0 {
			return richTag{}, false
		}
		open := from + i
		specStart := open + len(richColorOpen)
		specEnd := specStart
		for specEnd < len(line) && isSpecChar(line[specEnd]) {
			specEnd++
		}
		if specEnd > specStart && strings.HasPrefix(line[specEnd:], richColorStart) {
			innerStart := specEnd + len(richColorStart)
			j := strings.Index(line[innerStart:], richColorClose)
			if j < 0 {
				// no later tag can be closed either
				return richTag{}, false
			}
			return richTag{
				open:  open,
				spec:  line[specStart:specEnd],
				inner: line[innerStart : innerStart+j],
				end:   innerStart + j + len(richColorClose),
			}, true
		}
		from = open + 1
	}
}

func isSpecChar(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == ',' || b == ' '
}
