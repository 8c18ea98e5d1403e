/*
state.go defines the State structure and move application.  A State is a
plain value: applying a move copies the state and returns the successor, so
the search keeps no undo stack.
*/

package tempo

/*
State represents a chessboard state that can be converted to or parsed from
a FEN string.

The Pinned, Checkers, and Zobrist fields are derived from the rest of the
state and are kept consistent by [State.ApplyMove]: Pinned holds the pieces
of the side to move that are pinned against their king, Checkers holds the
enemy pieces currently giving check, and Zobrist is the incremental position
hash.
*/
type State struct {
	Board          Board
	ToPlay         Color
	CastlingRights CastlingRights
	// The square behind a pawn that just double-pushed, or [SquareNone].
	EnPassant      Square
	HalfmoveClock  uint8
	FullmoveCnt    uint16
	Pinned         uint64
	Checkers       uint64
	Zobrist        uint64
}

// castlingRightsLost maps a square to the castling rights that are lost when
// a piece moves from it or is captured on it.  Covers king moves, rook
// moves, and rook captures with a single lookup.
var castlingRightsLost = initCastlingRightsLost()

func initCastlingRightsLost() [64]CastlingRights {
	var lost [64]CastlingRights
	lost[SA1] = CastlingWhiteLong
	lost[SH1] = CastlingWhiteShort
	lost[SE1] = CastlingWhiteShort | CastlingWhiteLong
	lost[SA8] = CastlingBlackLong
	lost[SH8] = CastlingBlackShort
	lost[SE8] = CastlingBlackShort | CastlingBlackLong
	return lost
}

// InCheck reports whether the king of the side to move is in check.
func (s *State) InCheck() bool { return s.Checkers != 0 }

/*
ApplyMove returns the successor state produced by the specified move.  It is
the caller's responsibility to ensure that the move is legal; illegal moves
leave the returned state undefined.

Not only is the piece placement updated, but the entire position: castling
rights, en passant target, halfmove clock, fullmove counter, active color,
pins, checkers, and the Zobrist hash.
*/
func (s State) ApplyMove(m Move) State {
	from, to := m.From(), m.To()
	fromBB, toBB := SquareBB(from), SquareBB(to)
	us := s.ToPlay
	them := us ^ 1

	_, piece := s.Board.Get(from)
	_, captured := s.Board.Get(to)

	// The en passant target and castling rights contributions are replaced
	// wholesale, so remove the old ones up front.
	s.Zobrist ^= epKey(s.EnPassant) ^ castlingKeys[s.CastlingRights]

	// Remove the captured piece from the board.  This skips en passant
	// captures, since the captured pawn does not occupy the square the
	// capturing pawn moves to.
	if captured != PieceNone {
		s.Board.Clear(them, captured, to)
		s.Zobrist ^= pieceKeys[them][captured][to]
	}

	// Move the piece by toggling its origin and destination squares.
	s.Board.Xor(us, piece, fromBB|toBB)
	s.Zobrist ^= pieceKeys[us][piece][from] ^ pieceKeys[us][piece][to]

	// An en passant capture is a pawn move onto the en passant target; the
	// captured pawn stands one rank behind the destination.
	if piece == PiecePawn && to == s.EnPassant {
		epPawn := to - 8
		if us == ColorBlack {
			epPawn = to + 8
		}
		s.Board.Clear(them, PiecePawn, epPawn)
		s.Zobrist ^= pieceKeys[them][PiecePawn][epPawn]
	}

	// Castling is the two-square king move; bring the rook across the king.
	if piece == PieceKing && (to-from == 2 || from-to == 2) {
		var rookFrom, rookTo Square
		switch to {
		case SG1: // White O-O.
			rookFrom, rookTo = SH1, SF1
		case SC1: // White O-O-O.
			rookFrom, rookTo = SA1, SD1
		case SG8: // Black O-O.
			rookFrom, rookTo = SH8, SF8
		case SC8: // Black O-O-O.
			rookFrom, rookTo = SA8, SD8
		}
		s.Board.Xor(us, PieceRook, SquareBB(rookFrom)|SquareBB(rookTo))
		s.Zobrist ^= pieceKeys[us][PieceRook][rookFrom] ^
			pieceKeys[us][PieceRook][rookTo]
	}

	// A king or rook leaving its home square, or a rook being captured on
	// one, forfeits the corresponding rights.
	s.CastlingRights &^= castlingRightsLost[from] | castlingRightsLost[to]

	// Set the en passant target in case of a double pawn push, otherwise
	// reset it: the capture is only legal for one move.
	s.EnPassant = SquareNone
	if piece == PiecePawn && (to-from == 16 || from-to == 16) {
		s.EnPassant = (from + to) / 2
	}

	// Replace the pawn with the promotion piece.
	if promo := m.Promotion(); promo != PieceNone {
		s.Board.Clear(us, PiecePawn, to)
		s.Board.Add(us, promo, to)
		s.Zobrist ^= pieceKeys[us][PiecePawn][to] ^ pieceKeys[us][promo][to]
	}

	// The halfmove clock counts plies since the last pawn move or capture.
	if piece == PiecePawn || captured != PieceNone {
		s.HalfmoveClock = 0
	} else {
		s.HalfmoveClock++
	}

	// Increment the fullmove counter after black moves.
	if us == ColorBlack {
		s.FullmoveCnt++
	}

	// Switch the active color.  The white-to-move key toggles on every move.
	s.ToPlay = them
	s.Zobrist ^= whiteToMoveKey

	s.Zobrist ^= epKey(s.EnPassant) ^ castlingKeys[s.CastlingRights]

	s.computePinsCheckers()
	return s
}

/*
computePinsCheckers rebuilds the Pinned and Checkers bitboards for the side
to move.  A potential pinner is an enemy slider aligned with our king; with
no blockers between them it is a checker, with exactly one blocker of our
color that blocker is pinned.  Knights and pawns check by direct attack.
*/
func (s *State) computePinsCheckers() {
	us := s.ToPlay
	them := us ^ 1
	k := s.Board.KingSq(us)
	occupancy := s.Board.Union()

	s.Pinned = 0
	s.Checkers = 0

	queens := s.Board.Piece(PieceQueen)
	sliders := ((s.Board.Piece(PieceBishop)|queens)&bishopRays[k] |
		(s.Board.Piece(PieceRook)|queens)&rookRays[k]) &
		s.Board.Color(them)

	for sliders > 0 {
		slider := PopLSB(&sliders)
		blockers := between[slider][k] & occupancy
		switch CountBits(blockers) {
		case 0:
			s.Checkers |= SquareBB(slider)
		case 1:
			s.Pinned |= blockers & s.Board.Color(us)
		}
	}

	s.Checkers |= knightAttacks[k] & s.Board.ColorPiece(them, PieceKnight)
	// Our own attack pattern from the king square hits exactly the enemy
	// pawns that attack the king.
	s.Checkers |= pawnAttacks[us][k] & s.Board.ColorPiece(them, PiecePawn)
}

// IsFiftyMoveDraw reports whether fifty full moves passed without a pawn
// move or a capture.
func (s *State) IsFiftyMoveDraw() bool {
	return s.HalfmoveClock >= 100
}

/*
HasInsufficientMaterial returns true if one of the following statements is
true:
  - Both sides have a bare king.
  - One side has a king and a minor piece against a bare king.
  - Both sides have a king and a bishop, the bishops standing on the same
    color.
  - Both sides have a king and a knight.
*/
func (s *State) HasInsufficientMaterial() bool {
	if s.Board.Piece(PiecePawn)|s.Board.Piece(PieceRook)|
		s.Board.Piece(PieceQueen) != 0 {
		return false
	}

	knights := s.Board.Piece(PieceKnight)
	bishops := s.Board.Piece(PieceBishop)

	switch CountBits(knights | bishops) {
	case 0, 1:
		return true
	case 2:
		// Bitmask of all dark squares.
		const dark = uint64(0xAA55AA55AA55AA55)

		wb := bishops & s.Board.Color(ColorWhite)
		bb := bishops & s.Board.Color(ColorBlack)

		// Two bishops standing on same-colored squares cannot force mate.
		if wb != 0 && bb != 0 {
			return (wb&dark != 0) == (bb&dark != 0)
		}

		// Neither can a knight on each side.
		return knights&s.Board.Color(ColorWhite) != 0 &&
			knights&s.Board.Color(ColorBlack) != 0
	}
	return false
}
