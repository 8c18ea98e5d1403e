/*
movegen.go implements pseudo-legal and legal move generation.  Slider
attacks come from the magic bitboard tables; legality is decided directly
from the pin and checker bitboards maintained on the State, so no copy-make
verification pass is needed.
*/

package tempo

/*
PseudoLegalMoves generates the per-piece move chunks for the active color,
ignoring check and pin rules.  Castling and en passant are not included
here; both carry extra legality conditions and are handled by the legal
generator.
*/
func PseudoLegalMoves(s *State) MoveSet {
	var ms MoveSet

	pieces := s.Board.Color(s.ToPlay)
	for pieces > 0 {
		sq := PopLSB(&pieces)
		_, piece := s.Board.Get(sq)
		ms.Push(pseudoLegalChunk(s, piece, sq))
	}

	return ms
}

// pseudoLegalChunk generates the pseudo-legal destination set of a single
// piece.
func pseudoLegalChunk(s *State, piece Piece, sq Square) MoveSetChunk {
	us := s.ToPlay
	own := s.Board.Color(us)
	enemies := s.Board.Color(us ^ 1)
	occupancy := s.Board.Union()

	chunk := MoveSetChunk{Source: sq}

	switch piece {
	case PiecePawn:
		// Determine movement direction.
		dir := 8
		if us == ColorBlack {
			dir = -8
		}

		// If the pawn can move forward.
		fwd := SquareBB(sq + dir)
		if fwd&occupancy == 0 {
			chunk.Dests |= fwd
			// If the pawn is standing on its initial rank and can move
			// double forward.
			if RelativeRank(us, sq) == 1 {
				if dbl := SquareBB(sq + 2*dir); dbl&occupancy == 0 {
					chunk.Dests |= dbl
				}
			}
		}

		// Pawns capture only onto enemy-occupied squares.
		chunk.Dests |= pawnAttacks[us][sq] & enemies
		chunk.Promotion = RelativeRank(us, sq) == 6

	case PieceKnight:
		chunk.Dests = knightAttacks[sq] &^ own

	case PieceKing:
		chunk.Dests = kingAttacks[sq] &^ own

	case PieceBishop:
		chunk.Dests = lookupBishopAttacks(sq, occupancy) &^ own

	case PieceRook:
		chunk.Dests = lookupRookAttacks(sq, occupancy) &^ own

	case PieceQueen:
		chunk.Dests = lookupQueenAttacks(sq, occupancy) &^ own
	}

	return chunk
}

/*
LegalMoves generates all strictly legal moves for the active color:
  - With no checkers, pinned pieces are restricted to the line through
    their square and the king; everything else keeps its pseudo-legal set.
  - With a single checker, pinned pieces may not move and every other piece
    must capture the checker or block the checking ray.
  - With two or more checkers only the king may move.

The king destination set is filtered against the enemy attack bitboard
computed with our king removed from the occupancy, which also gates
castling.
*/
func LegalMoves(s *State) MoveSet {
	var ms MoveSet
	us := s.ToPlay
	k := s.Board.KingSq(us)

	ms.Push(kingChunk(s, k))

	checkerCnt := CountBits(s.Checkers)
	if checkerCnt >= 2 {
		return ms
	}

	// With a single checker every non-king move must land on this mask:
	// capture the checker or block the ray.
	checkMask := ^uint64(0)
	if checkerCnt == 1 {
		checkMask = between[BitScan(s.Checkers)][k] | s.Checkers
	}

	pieces := s.Board.Color(us) &^ SquareBB(k)
	for pieces > 0 {
		sq := PopLSB(&pieces)
		_, piece := s.Board.Get(sq)

		pinned := s.Pinned&SquareBB(sq) != 0
		if pinned && checkerCnt == 1 {
			continue
		}

		chunk := pseudoLegalChunk(s, piece, sq)
		chunk.Dests &= checkMask
		if pinned {
			// A pinned piece may only move along the pin.
			chunk.Dests &= lineThrough[sq][k]
		}
		if piece == PiecePawn {
			addEnPassant(s, sq, &chunk, checkMask)
		}

		ms.Push(chunk)
	}

	return ms
}

// GenLegalMoves flattens the legal move set into the specified move list.
func GenLegalMoves(s *State, l *MoveList) {
	l.LastMoveIndex = 0
	ms := LegalMoves(s)
	ms.AppendTo(l)
}

/*
addEnPassant appends the en passant capture to a pawn chunk when it is fully
legal.  Removing two pawns from one rank is the one move that can expose a
discovered check, so the capture is simulated on the occupancy bitboard and
every enemy slider aligned with our king is re-checked against it.
*/
func addEnPassant(s *State, sq Square, chunk *MoveSetChunk, checkMask uint64) {
	ep := s.EnPassant
	if ep == SquareNone || pawnAttacks[s.ToPlay][sq]&SquareBB(ep) == 0 {
		return
	}

	us := s.ToPlay
	them := us ^ 1

	epPawn := ep - 8
	if us == ColorBlack {
		epPawn = ep + 8
	}
	epPawnBB := SquareBB(epPawn)

	// The capture must still resolve any existing check: either the
	// double-pushed pawn is the checker being removed, or the capturing
	// pawn lands on the blocking mask.
	if s.Checkers != 0 && s.Checkers != epPawnBB &&
		SquareBB(ep)&checkMask == 0 {
		return
	}

	// Occupancy as it would be after the capture: both pawns gone, ours
	// standing on the target square.
	occupancy := (s.Board.Union() &^ SquareBB(sq) &^ epPawnBB) | SquareBB(ep)

	k := s.Board.KingSq(us)
	queens := s.Board.Piece(PieceQueen)

	if lookupRookAttacks(k, occupancy)&
		(s.Board.Piece(PieceRook)|queens)&s.Board.Color(them) != 0 {
		return
	}
	if lookupBishopAttacks(k, occupancy)&
		(s.Board.Piece(PieceBishop)|queens)&s.Board.Color(them) != 0 {
		return
	}

	chunk.Dests |= SquareBB(ep)
}

// kingChunk generates the legal moves of the king, castling included.
func kingChunk(s *State, k Square) MoveSetChunk {
	us := s.ToPlay
	them := us ^ 1
	kingBB := SquareBB(k)

	// The king must be excluded from the occupancy, otherwise it shadows
	// itself from slider attacks and appears able to step away along a
	// checking ray.
	attacked := genAttacks(&s.Board, them, s.Board.Union()&^kingBB)

	chunk := MoveSetChunk{
		Source: k,
		Dests:  kingAttacks[k] &^ attacked &^ s.Board.Color(us),
	}

	// Castling is only available when the king is not in check.
	if s.Checkers != 0 {
		return chunk
	}

	occupancy := s.Board.Union()
	rooks := s.Board.ColorPiece(us, PieceRook)

	if us == ColorWhite {
		if s.CastlingRights&CastlingWhiteShort != 0 && rooks&SquareBB(SH1) != 0 &&
			occupancy&castlingPath[0] == 0 && attacked&castlingAttackPath[0] == 0 {
			chunk.Dests |= SquareBB(SG1)
		}
		if s.CastlingRights&CastlingWhiteLong != 0 && rooks&SquareBB(SA1) != 0 &&
			occupancy&castlingPath[1] == 0 && attacked&castlingAttackPath[1] == 0 {
			chunk.Dests |= SquareBB(SC1)
		}
	} else {
		if s.CastlingRights&CastlingBlackShort != 0 && rooks&SquareBB(SH8) != 0 &&
			occupancy&castlingPath[2] == 0 && attacked&castlingAttackPath[2] == 0 {
			chunk.Dests |= SquareBB(SG8)
		}
		if s.CastlingRights&CastlingBlackLong != 0 && rooks&SquareBB(SA8) != 0 &&
			occupancy&castlingPath[3] == 0 && attacked&castlingAttackPath[3] == 0 {
			chunk.Dests |= SquareBB(SC8)
		}
	}

	return chunk
}

/*
genAttacks generates the bitboard of squares attacked by the pieces of the
specified color over the given occupancy.  The main purpose of this function
is to produce the set of squares the king is forbidden to move to, which is
why the occupancy is a parameter: the defending king must be removed from it
by the caller.
*/
func genAttacks(b *Board, c Color, occupancy uint64) (attacks uint64) {
	attacks = genPawnAttacks(b.ColorPiece(c, PiecePawn), c)
	attacks |= genKnightAttacks(b.ColorPiece(c, PieceKnight))
	attacks |= genKingAttacks(b.ColorPiece(c, PieceKing))

	queens := b.ColorPiece(c, PieceQueen)

	for sliders := b.ColorPiece(c, PieceBishop) | queens; sliders > 0; {
		attacks |= lookupBishopAttacks(PopLSB(&sliders), occupancy)
	}
	for sliders := b.ColorPiece(c, PieceRook) | queens; sliders > 0; {
		attacks |= lookupRookAttacks(PopLSB(&sliders), occupancy)
	}

	return attacks
}
