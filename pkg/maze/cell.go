package maze

import "math/bits"

// Cell is a single grid position's connectivity: four bits, one per
// direction. The zero value is walled in on all sides.
type Cell uint8

// Get reports whether the passage in direction d is open.
func (c Cell) Get(d Direction) bool {
	return uint8(c)&d.bit() != 0
}

// Set opens or closes the passage in direction d and returns the new value.
func (c *Cell) Set(d Direction, open bool) bool {
	if open {
		*c |= Cell(d.bit())
	} else {
		*c &^= Cell(d.bit())
	}
	return c.Get(d)
}

// Raw returns the packed nibble, north in bit 3 down to west in bit 0.
func (c Cell) Raw() uint8 {
	return uint8(c) & 0x0f
}

// Passages returns the number of open directions.
func (c Cell) Passages() int {
	return bits.OnesCount8(c.Raw())
}

// String returns the nibble as four binary digits in NESW order, e.g. "1010".
func (c Cell) String() string {
	var buf [4]byte
	for i, d := range Directions {
		buf[i] = '0'
		if c.Get(d) {
			buf[i] = '1'
		}
	}
	return string(buf[:])
}
