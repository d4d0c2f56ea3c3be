package board

// UpdateAttacks recomputes the attack map from scratch. A square is marked
// when a piece covers it, whether it is empty, enemy or friendly.
func (b *Board) UpdateAttacks() {
	for sq := range b {
		b[sq] = b[sq].withoutAttacks()
	}

	for sq := A1; sq < NoSquare; sq++ {
		f := b[sq]
		c := f.Color()
		switch f.Piece() {
		case Pawn:
			for _, d := range pawnCaptures[c] {
				b.mark(sq.Step(d), c)
			}
		case Knight:
			for _, to := range sq.KnightTargets() {
				b.mark(to, c)
			}
		case Bishop:
			b.markRays(sq, c, Diagonals)
		case Rook:
			b.markRays(sq, c, Orthogonals)
		case Queen:
			b.markRays(sq, c, Diagonals)
			b.markRays(sq, c, Orthogonals)
		case King:
			for _, d := range kingSteps {
				b.mark(sq.Step(d), c)
			}
		}
	}
}

func (b *Board) mark(sq Square, by Color) {
	if sq.IsValid() {
		b[sq] = b[sq].withAttack(by)
	}
}

// markRays walks each direction until the first occupied square, which is
// marked as well.
func (b *Board) markRays(from Square, by Color, dirs []Direction) {
	for _, d := range dirs {
		for sq := from.Step(d); sq.IsValid(); sq = sq.Step(d) {
			b[sq] = b[sq].withAttack(by)
			if !b[sq].IsEmpty() {
				break
			}
		}
	}
}

// IsKingUnderAttack reports whether c's king stands on a square attacked
// by the opponent. A side without a king is never in check.
func (b *Board) IsKingUnderAttack(c Color) bool {
	sq := b.KingSquare(c)
	if sq == NoSquare {
		return false
	}
	return b[sq].UnderAttack(c.Other())
}
