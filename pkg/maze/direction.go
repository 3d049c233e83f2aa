package maze

import "strconv"

// Direction is one of the four compass directions a passage can lead.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all directions in bit order, most significant first.
var Directions = [4]Direction{North, East, South, West}

var directionNames = [4]string{"north", "east", "south", "west"}

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d > West {
		return "invalid"
	}
	return directionNames[d]
}

// Opposite returns the direction pointing back the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the coordinate offset of one step in d.
// North decreases y; the origin is the top-left cell.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// bit returns the nibble mask for d: north 8, east 4, south 2, west 1.
func (d Direction) bit() uint8 {
	if d > West {
		return 0
	}
	return 1 << (3 - d)
}

// Point is a cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the point as "(x,y)".
func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// Step returns the point one cell away in direction d.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DirectionTo returns the direction from p to an adjacent point q.
// ok is false when the points are not 4-adjacent.
func (p Point) DirectionTo(q Point) (d Direction, ok bool) {
	for _, dir := range Directions {
		if p.Step(dir) == q {
			return dir, true
		}
	}
	return 0, false
}
