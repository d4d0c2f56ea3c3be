package board

// Direction is one of the eight single-step moves on the board.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
)

var directionDeltas = [8]struct{ file, rank int }{
	Up:        {0, 1},
	Down:      {0, -1},
	Left:      {-1, 0},
	Right:     {1, 0},
	UpLeft:    {-1, 1},
	UpRight:   {1, 1},
	DownLeft:  {-1, -1},
	DownRight: {1, -1},
}

var directionNames = [8]string{"up", "down", "left", "right", "up-left", "up-right", "down-left", "down-right"}

// Ray sets used by sliding pieces.
var (
	Diagonals   = []Direction{UpLeft, DownLeft, UpRight, DownRight}
	Orthogonals = []Direction{Up, Down, Right, Left}
)

// kingSteps is the order in which king moves are generated.
var kingSteps = []Direction{Up, UpLeft, UpRight, Left, Right, Down, DownLeft, DownRight}

// knightJumps composes each L-shape as a diagonal step followed by an orthogonal one.
var knightJumps = [8][2]Direction{
	{UpLeft, Up},
	{UpRight, Up},
	{UpLeft, Left},
	{DownLeft, Left},
	{DownLeft, Down},
	{DownRight, Down},
	{UpRight, Right},
	{DownRight, Right},
}

func (d Direction) String() string {
	if d > DownRight {
		return "invalid"
	}
	return directionNames[d]
}

// Step returns the neighbouring square in direction d, or NoSquare when
// stepping off the board. NoSquare steps to NoSquare.
func (sq Square) Step(d Direction) Square {
	if !sq.IsValid() || d > DownRight {
		return NoSquare
	}
	delta := directionDeltas[d]
	return MakeSquare(sq.File()+delta.file, sq.Rank()+delta.rank)
}

func (sq Square) Up() Square        { return sq.Step(Up) }
func (sq Square) Down() Square      { return sq.Step(Down) }
func (sq Square) Left() Square      { return sq.Step(Left) }
func (sq Square) Right() Square     { return sq.Step(Right) }
func (sq Square) UpLeft() Square    { return sq.Step(UpLeft) }
func (sq Square) UpRight() Square   { return sq.Step(UpRight) }
func (sq Square) DownLeft() Square  { return sq.Step(DownLeft) }
func (sq Square) DownRight() Square { return sq.Step(DownRight) }

// KnightTargets returns the eight knight destinations from sq. Off-board
// destinations are NoSquare.
func (sq Square) KnightTargets() [8]Square {
	var targets [8]Square
	for i, j := range knightJumps {
		targets[i] = sq.Step(j[0]).Step(j[1])
	}
	return targets
}

// forward is the direction pawns of color c advance in.
func forward(c Color) Direction {
	if c == White {
		return Up
	}
	return Down
}

var pawnCaptures = [2][2]Direction{
	Black: {DownLeft, DownRight},
	White: {UpLeft, UpRight},
}
