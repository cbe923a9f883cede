package tribelog

import (
	"bytes"
	"encoding/binary"
)

const tribeLogName = "TribeLog\x00"

var tribeLogMarker = func() []byte {
	m := binary.LittleEndian.AppendUint32(nil, uint32(len(tribeLogName)))
	return append(m, tribeLogName...)
}()

// Locator finds the offset at which the tribe log property headers begin.
type Locator func(buf []byte) (int, error)

// Locate returns the offset just past the first length-prefixed "TribeLog"
// name in buf. It is a raw byte search, not a structured parse.
func Locate(buf []byte) (int, error) {
	i := bytes.Index(buf, tribeLogMarker)
	if i < 0 {
		return 0, newError(ErrMarkerNotFound, 0, tribeLogName, "")
	}
	return i + len(tribeLogMarker), nil
}
