package board

// Board-wide metadata is striped two bits per square through the meta
// bits, least significant pair on the lowest square.
const (
	lastMoveFirst = A1 // squares 0-7
	lastMoveWidth = 16
	castlingFirst = A2 // squares 8-9
	castlingWidth = 4
)

func (b *Board) metaGet(first Square, width uint) uint16 {
	var v uint16
	for i := uint(0); i < width/2; i++ {
		v |= uint16(b[first+Square(i)].Meta()) << (2 * i)
	}
	return v
}

func (b *Board) metaSet(first Square, width uint, v uint16) {
	for i := uint(0); i < width/2; i++ {
		sq := first + Square(i)
		b[sq] = b[sq].WithMeta(uint8(v>>(2*i)) & 0b11)
	}
}

// CastlingRights returns the castling rights recorded in the board metadata.
func (b *Board) CastlingRights() CastlingRights {
	return CastlingRights(b.metaGet(castlingFirst, castlingWidth))
}

// SetCastlingRights records cr in the board metadata.
func (b *Board) SetCastlingRights(cr CastlingRights) {
	b.metaSet(castlingFirst, castlingWidth, uint16(cr))
}
