package maze

import (
	"encoding/binary"
	"math"
	"strings"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

// Format selects the width of the {width, height} header.
type Format uint8

const (
	// FormatCurrent stores width and height as 4-byte little-endian integers.
	FormatCurrent Format = iota
	// FormatLegacy stores width and height as single bytes, limiting both
	// to 255.
	FormatLegacy
)

// String returns "current" or "legacy".
func (f Format) String() string {
	switch f {
	case FormatCurrent:
		return "current"
	case FormatLegacy:
		return "legacy"
	}
	return "unknown"
}

// ParseFormat parses a format name. The empty string means [FormatCurrent].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "current":
		return FormatCurrent, nil
	case "legacy":
		return FormatLegacy, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidFormat, "unknown maze format %q (must be 'current' or 'legacy')", s)
}

// HeaderSize returns the header length in bytes for f, or 0 if f is unknown.
func HeaderSize(f Format) int {
	switch f {
	case FormatCurrent:
		return 8
	case FormatLegacy:
		return 2
	}
	return 0
}

// EncodedLen returns the size of an encoded width x height grid.
func EncodedLen(width, height int, f Format) int {
	return HeaderSize(f) + (width*height+1)/2
}

// DecodeHeader reads the width and height at the start of data without
// touching the payload. Errors match those of [Decode].
func DecodeHeader(data []byte, f Format) (width, height int, err error) {
	hs := HeaderSize(f)
	if hs == 0 {
		return 0, 0, errs.New(errs.ErrCodeInvalidFormat, "unknown maze format %d", f)
	}
	if len(data) < hs {
		return 0, 0, errs.New(errs.ErrCodeMalformedInput, "buffer of %d bytes is shorter than the %d-byte %s header", len(data), hs, f)
	}

	var w, h uint64
	switch f {
	case FormatCurrent:
		w = uint64(binary.LittleEndian.Uint32(data[0:4]))
		h = uint64(binary.LittleEndian.Uint32(data[4:8]))
	case FormatLegacy:
		w = uint64(data[0])
		h = uint64(data[1])
	}
	if w == 0 || h == 0 {
		return 0, 0, errs.New(errs.ErrCodeMalformedInput, "header declares empty %dx%d maze", w, h)
	}
	if w > math.MaxInt || h > math.MaxInt {
		return 0, 0, errs.New(errs.ErrCodeMalformedInput, "%dx%d maze does not fit in memory", w, h)
	}
	if err := checkDimensions(int(w), int(h)); err != nil {
		return 0, 0, errs.Wrap(errs.ErrCodeMalformedInput, err, "invalid header")
	}
	return int(w), int(h), nil
}

// Decode builds a grid from an encoded buffer. Every cell of the result is
// dirty. Bytes after the payload are ignored.
//
// It returns a MALFORMED_INPUT error when the buffer is shorter than the
// header plus ceil(width*height/2) payload bytes, or when a dimension is zero.
// An unknown f is a caller error and yields INVALID_FORMAT.
func Decode(data []byte, f Format) (*Grid, error) {
	w, h, err := DecodeHeader(data, f)
	if err != nil {
		return nil, err
	}

	payload := data[HeaderSize(f):]
	if need := (uint64(w)*uint64(h) + 1) / 2; uint64(len(payload)) < need {
		return nil, errs.New(errs.ErrCodeMalformedInput, "%dx%d maze needs %d payload bytes, got %d", w, h, need, len(payload))
	}

	g := newGrid(w, h)
	for i := range g.cells {
		b := payload[i/2]
		if i%2 == 0 {
			g.cells[i] = Cell(b >> 4)
		} else {
			g.cells[i] = Cell(b & 0x0f)
		}
	}
	return g, nil
}

// Encode serializes the grid in format f. It is the left inverse of
// [Decode]. The grid is left intact.
//
// The legacy format cannot represent dimensions above 255; such grids yield
// an INVALID_DIMENSIONS error instead of a truncated header.
func (g *Grid) Encode(f Format) ([]byte, error) {
	hs := HeaderSize(f)
	if hs == 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown maze format %d", f)
	}

	out := make([]byte, hs+(len(g.cells)+1)/2)
	switch f {
	case FormatCurrent:
		binary.LittleEndian.PutUint32(out[0:4], uint32(g.width))
		binary.LittleEndian.PutUint32(out[4:8], uint32(g.height))
	case FormatLegacy:
		if g.width > math.MaxUint8 || g.height > math.MaxUint8 {
			return nil, errs.New(errs.ErrCodeInvalidDimensions, "%dx%d maze does not fit the legacy header (max 255)", g.width, g.height)
		}
		out[0] = uint8(g.width)
		out[1] = uint8(g.height)
	}

	payload := out[hs:]
	for i, c := range g.cells {
		if i%2 == 0 {
			payload[i/2] = c.Raw() << 4
		} else {
			payload[i/2] |= c.Raw()
		}
	}
	return out, nil
}
