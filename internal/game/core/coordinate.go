package core

import "fmt"

// Coordinate represents an offset hex position on the board.
// X is the column, Y is the row. Odd rows are shifted half a hex east.
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a board array index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the coordinate to a board array index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// Axial converts the offset coordinate to axial (q, r).
func (c Coordinate) Axial() (q, r int) {
	return c.X - (c.Y-(c.Y&1))/2, c.Y
}

// DistanceTo returns the hex distance to another coordinate.
// Deltas with the same sign add up, opposite signs take the larger magnitude.
func (c Coordinate) DistanceTo(other Coordinate) int {
	q1, r1 := c.Axial()
	q2, r2 := other.Axial()
	dq := q2 - q1
	dr := r2 - r1

	if (dq >= 0) == (dr >= 0) {
		return abs(dq) + abs(dr)
	}
	return max(abs(dq), abs(dr))
}

// IsAdjacentTo checks if this coordinate shares a hex edge with another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return c.DirectionTo(other) != -1
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction represents one of the six hex edges
type Direction int

const (
	NorthEast Direction = iota
	East
	SouthEast
	SouthWest
	West
	NorthWest
)

// Directions lists every direction in neighbor order.
var Directions = [6]Direction{NorthEast, East, SouthEast, SouthWest, West, NorthWest}

func (d Direction) String() string {
	switch d {
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Offsets for even and odd rows, indexed by Direction.
var (
	evenRowOffsets = [6]Coordinate{
		{X: 0, Y: -1},  // NE
		{X: 1, Y: 0},   // E
		{X: 0, Y: 1},   // SE
		{X: -1, Y: 1},  // SW
		{X: -1, Y: 0},  // W
		{X: -1, Y: -1}, // NW
	}
	oddRowOffsets = [6]Coordinate{
		{X: 1, Y: -1}, // NE
		{X: 1, Y: 0},  // E
		{X: 1, Y: 1},  // SE
		{X: 0, Y: 1},  // SW
		{X: -1, Y: 0}, // W
		{X: 0, Y: -1}, // NW
	}
)

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(direction Direction) Coordinate {
	if direction < NorthEast || direction > NorthWest {
		return c
	}
	offsets := &evenRowOffsets
	if c.Y&1 == 1 {
		offsets = &oddRowOffsets
	}
	o := offsets[direction]
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y}
}

// Neighbors returns the six hex-adjacent coordinates in NE, E, SE, SW, W, NW order.
// Coordinates may fall outside any board.
func (c Coordinate) Neighbors() [6]Coordinate {
	var result [6]Coordinate
	for i, d := range Directions {
		result[i] = c.Move(d)
	}
	return result
}

// ValidNeighbors returns only the neighbors that are within the given bounds
func (c Coordinate) ValidNeighbors(width, height int) []Coordinate {
	valid := make([]Coordinate, 0, 6)
	for _, n := range c.Neighbors() {
		if n.IsValid(width, height) {
			valid = append(valid, n)
		}
	}
	return valid
}

// DirectionTo returns the direction from this coordinate to an adjacent coordinate.
// Returns -1 if the coordinates are not adjacent.
func (c Coordinate) DirectionTo(other Coordinate) Direction {
	for _, d := range Directions {
		if c.Move(d) == other {
			return d
		}
	}
	return -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
