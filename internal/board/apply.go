package board

// ApplyMoveIfValid plays m on slot, which must hold the position before the
// move. It returns false if the mover's king is left under attack; slot is
// then left half-updated and must be discarded. On success the last move
// and castling rights are recorded as well.
func ApplyMoveIfValid(slot *Board, m Move) bool {
	return applyMove(slot, m, m.Piece)
}

// applyMove is ApplyMoveIfValid with the piece that ends up on the
// destination given separately, so a promotion is still recorded as a pawn move.
func applyMove(slot *Board, m Move, placed PieceType) bool {
	slot.Clear(m.From)
	slot.Put(m.To, m.Color, placed)

	slot.UpdateAttacks()
	if slot.IsKingUnderAttack(m.Color) {
		return false
	}

	slot.SetLastMove(m)
	slot.updateCastlingRights(m)
	return true
}
