package board

// MaxCandidates bounds the number of legal moves in any reachable position.
const MaxCandidates = 218

// AppendCandidateMoves appends every legal successor of b for color c to
// dst and returns the extended slice. Each candidate is a complete board
// carrying its own last move, castling rights and attack map. Nothing is
// allocated when dst has spare capacity for all candidates.
//
// Squares are scanned from A1 to H8 and each piece contributes its moves
// in a fixed order, so the output is deterministic.
func AppendCandidateMoves(dst []Board, b Board, c Color) []Board {
	b.UpdateAttacks()
	g := generator{dst: dst, board: &b, color: c}

	for sq := A1; sq < NoSquare; sq++ {
		f := b[sq]
		if !f.Owned(c) {
			continue
		}
		switch f.Piece() {
		case Pawn:
			g.pawn(sq)
		case Knight:
			g.knight(sq)
		case Bishop:
			g.slide(Bishop, sq, Diagonals)
		case Rook:
			g.slide(Rook, sq, Orthogonals)
		case Queen:
			g.slide(Queen, sq, Diagonals)
			g.slide(Queen, sq, Orthogonals)
		case King:
			g.king(sq)
		}
	}
	return g.dst
}

// CandidateMoves returns the legal successors of b for color c in a new slice.
func CandidateMoves(b Board, c Color) []Board {
	return AppendCandidateMoves(make([]Board, 0, 64), b, c)
}

type generator struct {
	dst   []Board
	board *Board
	color Color
}

// push appends a copy of the current board and returns it for editing.
// The pointer is valid until the next push.
func (g *generator) push() *Board {
	g.dst = append(g.dst, *g.board)
	return &g.dst[len(g.dst)-1]
}

// keep drops the last pushed board unless ok.
func (g *generator) keep(ok bool) {
	if !ok {
		g.dst = g.dst[:len(g.dst)-1]
	}
}

func (g *generator) emit(pt PieceType, from, to Square) {
	g.keep(applyMove(g.push(), Move{g.color, pt, from, to}, pt))
}

// regular emits a move onto an empty or enemy square. Kings may not step
// onto a square the opponent attacks.
func (g *generator) regular(pt PieceType, from, to Square) {
	if !to.IsValid() || g.board[to].Owned(g.color) {
		return
	}
	if pt == King && g.board[to].UnderAttack(g.color.Other()) {
		return
	}
	g.emit(pt, from, to)
}

func (g *generator) pawnTo(from, to Square) {
	if to.RelativeRank(g.color) != 7 {
		g.emit(Pawn, from, to)
		return
	}
	m := Move{g.color, Pawn, from, to}
	for _, promo := range PromotionPieces {
		g.keep(applyMove(g.push(), m, promo))
	}
}

func (g *generator) pawn(from Square) {
	c := g.color
	fwd := forward(c)

	if to := from.Step(fwd); to.IsValid() && g.board[to].IsEmpty() {
		g.pawnTo(from, to)
		if from.RelativeRank(c) == 1 {
			if to2 := to.Step(fwd); g.board[to2].IsEmpty() {
				g.emit(Pawn, from, to2)
			}
		}
	}

	for _, d := range pawnCaptures[c] {
		if to := from.Step(d); to.IsValid() && g.board[to].Owned(c.Other()) {
			g.pawnTo(from, to)
		}
	}

	if from.RelativeRank(c) != 4 {
		return
	}
	back := forward(c.Other())
	for _, d := range pawnCaptures[c] {
		to := from.Step(d)
		if !to.IsValid() {
			continue
		}
		// The enemy pawn must have just double-stepped past to, landing beside us.
		victim := to.Step(back)
		if !g.board.CheckLastMove(Move{c.Other(), Pawn, to.Step(fwd), victim}) {
			continue
		}
		slot := g.push()
		slot.Clear(victim)
		g.keep(applyMove(slot, Move{c, Pawn, from, to}, Pawn))
	}
}

func (g *generator) knight(from Square) {
	for _, to := range from.KnightTargets() {
		g.regular(Knight, from, to)
	}
}

// slide walks each ray, emitting quiet moves until the first occupied
// square, which is captured if it holds an enemy piece.
func (g *generator) slide(pt PieceType, from Square, dirs []Direction) {
	for _, d := range dirs {
		for to := from.Step(d); to.IsValid(); to = to.Step(d) {
			f := g.board[to]
			if f.IsEmpty() {
				g.emit(pt, from, to)
				continue
			}
			if f.Color() != g.color {
				g.emit(pt, from, to)
			}
			break
		}
	}
}

func (g *generator) king(from Square) {
	for _, d := range kingSteps {
		g.regular(King, from, from.Step(d))
	}
	for _, rule := range castleRules[g.color] {
		g.castle(from, rule)
	}
}

// castle emits the castling move described by r when the king and rook are
// home, the path is clear, the right is intact and the king neither starts,
// passes nor lands on an attacked square. The rook is moved first; only the
// king's move goes through the legality filter.
func (g *generator) castle(from Square, r castleRule) {
	b := g.board
	if from != r.king || b.CastlingRights().Lost(r.right) || !b[r.rook].Is(g.color, Rook) {
		return
	}
	for _, sq := range r.empty {
		if !b[sq].IsEmpty() {
			return
		}
	}
	for _, sq := range r.safe {
		if b[sq].UnderAttack(g.color.Other()) {
			return
		}
	}

	slot := g.push()
	slot.Clear(r.rook)
	slot.Put(r.rookTo, g.color, Rook)
	g.keep(applyMove(slot, Move{g.color, King, r.king, r.kingTo}, King))
}
