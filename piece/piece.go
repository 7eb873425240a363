package piece

// Rand is the random source pieces are drawn from. *rand.Rand satisfies it,
// so a seeded source makes a whole game reproducible.
type Rand interface {
	Intn(n int) int
}

// Piece is one falling block: a shape, its current rotation state and a
// stable identity token used to pick its display color. Pieces are values;
// rotating returns a new piece.
type Piece struct {
	shape    Shape
	rotation int
	id       int
}

// New returns a piece of the given shape. rotation is reduced into
// [0, RotationCount); id is kept as given.
func New(shape Shape, rotation, id int) Piece {
	rotation %= RotationCount
	if rotation < 0 {
		rotation += RotationCount
	}
	return Piece{shape: shape, rotation: rotation, id: id}
}

// Random draws a shape, a rotation and an identity token, each uniformly and
// in that order.
func Random(r Rand) Piece {
	shape := Shapes[r.Intn(NumShapes)]
	rotation := r.Intn(RotationCount)
	id := r.Intn(IDCount)
	return Piece{shape: shape, rotation: rotation, id: id}
}

// Coords returns the cells of the current rotation state relative to the
// piece's origin.
func (p Piece) Coords() Rotation {
	return p.shape.Rotation(p.rotation)
}

// ID returns the identity token. It does not change when the piece rotates
// or is swapped into the hold slot.
func (p Piece) ID() int {
	return p.id
}

// Shape returns the piece's catalog shape.
func (p Piece) Shape() Shape {
	return p.shape
}

// RotationIndex returns the current rotation state in [0, RotationCount).
func (p Piece) RotationIndex() int {
	return p.rotation
}

// NextRotation returns a copy of p advanced by one rotation state, wrapping
// from the last state back to the first. Board legality is not checked.
func (p Piece) NextRotation() Piece {
	return Piece{shape: p.shape, rotation: (p.rotation + 1) % RotationCount, id: p.id}
}
