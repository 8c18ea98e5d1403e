/*
zobrist.go implements the Zobrist hashing scheme.  The hash is maintained
incrementally by [State.ApplyMove]; a full recomputation is kept around to
initialize parsed positions and to cross-check the incremental updates in
tests.
*/

package tempo

import "math/rand/v2"

/*
Keys are used to hash each possible position into a unique number.  The keys
are generated from a fixed-seed PCG stream, so the same position always
hashes to the same value across runs and builds.
*/
var (
	zobristRand = rand.New(rand.NewPCG(0x7265656B63657274, 0x6F67656863736568))

	pieceKeys = initPieceKeys()
	// Indexed by the file of the en passant target square.
	epFileKeys   = initEnPassantKeys()
	castlingKeys = initCastlingKeys()
	// Folded in only when white is the active color.
	whiteToMoveKey = zobristRand.Uint64()
)

// Initializes the piece placement keys for the Zobrist hashing scheme.
func initPieceKeys() [2][6][64]uint64 {
	var keys [2][6][64]uint64
	for c := ColorWhite; c <= ColorBlack; c++ {
		for p := PiecePawn; p <= PieceKing; p++ {
			for square := range 64 {
				keys[c][p][square] = zobristRand.Uint64()
			}
		}
	}
	return keys
}

// Initializes the en passant file keys for the Zobrist hashing scheme.
func initEnPassantKeys() [8]uint64 {
	var keys [8]uint64
	for file := range 8 {
		keys[file] = zobristRand.Uint64()
	}
	return keys
}

// Initializes the castling keys, one per rights combination.
func initCastlingKeys() [16]uint64 {
	var keys [16]uint64
	for i := range 16 {
		keys[i] = zobristRand.Uint64()
	}
	return keys
}

// epKey returns the hash contribution of the en passant target square, or 0
// when there is none.
func epKey(ep Square) uint64 {
	if ep == SquareNone {
		return 0
	}
	return epFileKeys[FileOf(ep)]
}

/*
zobristFull hashes the given state from scratch into a 64-bit unsigned
integer.  [State.ApplyMove] keeps the hash up to date incrementally; for
every legal move the two must agree.
*/
func zobristFull(s *State) (key uint64) {
	for c := ColorWhite; c <= ColorBlack; c++ {
		for p := PiecePawn; p <= PieceKing; p++ {
			pieces := s.Board.ColorPiece(c, p)
			for pieces > 0 {
				key ^= pieceKeys[c][p][PopLSB(&pieces)]
			}
		}
	}

	key ^= castlingKeys[s.CastlingRights]
	key ^= epKey(s.EnPassant)

	if s.ToPlay == ColorWhite {
		key ^= whiteToMoveKey
	}

	return key
}
