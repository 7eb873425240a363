// Package piece defines the falling block shapes and the piece values built from them.
package piece

// TileCount is the number of cells every piece occupies.
const TileCount = 4

// RotationCount is the number of rotation states every shape has.
const RotationCount = 4

// IDCount is the size of the identity token range [0, IDCount).
const IDCount = RotationCount * TileCount

// Coord is a (row, col) pair. Rows grow downwards.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Rotation is the set of cells a shape covers in one rotation state,
// relative to the shape's local origin.
type Rotation [TileCount]Coord

// Shape identifies one of the catalog shapes.
type Shape int

const (
	Square Shape = iota
	ShapeT
	Line
	ShapeL
	Mirror
)

// NumShapes is the number of shapes in the catalog.
const NumShapes = 5

// Shapes lists every catalog shape in draw order.
var Shapes = [NumShapes]Shape{Square, ShapeT, Line, ShapeL, Mirror}

var rotations = [NumShapes][RotationCount]Rotation{
	Square: {
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	ShapeT: {
		{{0, 0}, {0, 1}, {0, 2}, {1, 1}},
		{{0, 0}, {1, 0}, {2, 0}, {1, 1}},
		{{1, 1}, {1, 2}, {1, 3}, {0, 2}},
		{{1, 1}, {0, 2}, {1, 2}, {2, 2}},
	},
	Line: {
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	},
	ShapeL: {
		{{0, 0}, {1, 0}, {2, 0}, {2, 1}},
		{{1, 1}, {1, 2}, {1, 3}, {0, 3}},
		{{0, 0}, {0, 1}, {1, 0}, {2, 0}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
	Mirror: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{2, 2}, {1, 2}, {1, 3}, {0, 3}},
		{{1, 1}, {1, 2}, {0, 2}, {0, 3}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
}

// Rotation returns the cells of the shape in rotation state r.
// r must be in [0, RotationCount).
func (s Shape) Rotation(r int) Rotation {
	return rotations[s][r]
}

// Valid reports whether s names a catalog shape.
func (s Shape) Valid() bool {
	return s >= 0 && s < NumShapes
}

func (s Shape) String() string {
	switch s {
	case Square:
		return "Square"
	case ShapeT:
		return "T"
	case Line:
		return "Line"
	case ShapeL:
		return "L"
	case Mirror:
		return "Mirror"
	default:
		return "Unknown"
	}
}
