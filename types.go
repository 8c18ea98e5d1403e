// types.go contains declarations of custom types and predefined constants.

package tempo

// Color is an allias type to avoid bothersome conversion between int and Color.
type Color = int

const (
	ColorWhite Color = iota
	ColorBlack
)

// Piece is an allias type to avoid bothersome conversion between
// int and Piece.
type Piece = int

const (
	PiecePawn Piece = iota
	PieceRook
	PieceKnight
	PieceBishop
	PieceQueen
	PieceKing
	// To avoid magic numbers.
	PieceNone Piece = -1
)

// Square is an allias type to avoid bothersome conversion between
// int and Square.  Squares are indexed rank*8 + file, so a1 = 0 and h8 = 63.
type Square = int

// SquareNone marks a missing square, e.g. an unavailable en passant target.
const SquareNone Square = -1

// NewSquare builds a square index from its file and rank, both 0-7.
func NewSquare(file, rank int) Square { return rank*8 + file }

// FileOf returns the file of the square: 0 = a, ..., 7 = h.
func FileOf(sq Square) int { return sq & 7 }

// RankOf returns the rank of the square: 0 = first rank, ..., 7 = eighth.
func RankOf(sq Square) int { return sq >> 3 }

// RelativeRank returns the rank of the square as seen by the given color,
// so the second rank of black is rank index 6.
func RelativeRank(c Color, sq Square) int {
	if c == ColorWhite {
		return RankOf(sq)
	}
	return 7 - RankOf(sq)
}

/*
Move represents a chess move, encoded as a 16 bit unsigned integer:
  - 0-5:   To (destination) square index.
  - 6-11:  From (origin/source) square index.
  - 12-14: Promotion piece plus one, or 0 if the move is not a promotion.

Castling is encoded as the two-square king move (e1g1, e1c1, e8g8, e8c8) and
an en passant capture as the diagonal pawn move onto the en passant target
square.  The receiver classifies such moves from the position context, so no
dedicated flag bits are needed.
*/
type Move uint16

// NewMove creates a new non-promotion move.
func NewMove(from, to Square) Move {
	return Move(to | (from << 6))
}

// NewPromotionMove creates a new move promoting to the specified piece.
func NewPromotionMove(from, to Square, promotion Piece) Move {
	return Move(to | (from << 6) | ((promotion + 1) << 12))
}

func (m Move) To() Square   { return Square(m & 0x3F) }
func (m Move) From() Square { return Square(m>>6) & 0x3F }

// Promotion returns the promotion piece, or [PieceNone] if the move is not
// a promotion.
func (m Move) Promotion() Piece { return Piece(m>>12)&0x7 - 1 }

/*
MoveList is used to store moves.  The main idea behind it is to preallocate
an array with enough capacity to store all possible moves and avoid dynamic
memory allocations.
*/
type MoveList struct {
	// Maximum number of moves per chess position is equal to 218,
	// hence 218 elements.
	// See https://www.talkchess.com/forum/viewtopic.php?t=61792
	Moves [218]Move
	// To keep track of the next move index.
	LastMoveIndex byte
}

// Push adds the move to the end of the move list.
func (l *MoveList) Push(m Move) {
	l.Moves[l.LastMoveIndex] = m
	l.LastMoveIndex++
}

// Slice returns the filled prefix of the move list.
func (l *MoveList) Slice() []Move {
	return l.Moves[:l.LastMoveIndex]
}

/*
MoveSetChunk groups the moves of a single piece: the source square, the
bitboard of destination squares, and a promotion flag.  When the flag is set,
each destination yields the four promotion moves instead of one quiet move.
*/
type MoveSetChunk struct {
	Source    Square
	Dests     uint64
	Promotion bool
}

// Len returns the number of moves the chunk enumerates to.
func (c MoveSetChunk) Len() int {
	n := CountBits(c.Dests)
	if c.Promotion {
		return n * 4
	}
	return n
}

// promotionOrder fixes the enumeration order of promotion moves.
var promotionOrder = [4]Piece{PieceQueen, PieceRook, PieceBishop, PieceKnight}

// AppendTo flattens the chunk into the given move list.
func (c MoveSetChunk) AppendTo(l *MoveList) {
	dests := c.Dests
	for dests > 0 {
		to := PopLSB(&dests)
		if c.Promotion {
			for _, p := range promotionOrder {
				l.Push(NewPromotionMove(c.Source, to, p))
			}
		} else {
			l.Push(NewMove(c.Source, to))
		}
	}
}

/*
MoveSet is an ordered collection of per-piece move chunks.  A position has at
most sixteen pieces per side, hence sixteen chunk slots are preallocated.
*/
type MoveSet struct {
	Chunks         [16]MoveSetChunk
	LastChunkIndex byte
}

// Push adds a non-empty chunk to the end of the move set.
func (s *MoveSet) Push(c MoveSetChunk) {
	if c.Dests == 0 {
		return
	}
	s.Chunks[s.LastChunkIndex] = c
	s.LastChunkIndex++
}

// Len returns the total number of moves in the set.
func (s *MoveSet) Len() int {
	n := 0
	for i := range s.LastChunkIndex {
		n += s.Chunks[i].Len()
	}
	return n
}

// AppendTo flattens every chunk into the given move list.
func (s *MoveSet) AppendTo(l *MoveList) {
	for i := range s.LastChunkIndex {
		s.Chunks[i].AppendTo(l)
	}
}

// Contains reports whether the set enumerates the given move.
func (s *MoveSet) Contains(m Move) bool {
	for i := range s.LastChunkIndex {
		c := s.Chunks[i]
		if c.Source != m.From() || c.Dests&(1<<m.To()) == 0 {
			continue
		}
		if c.Promotion == (m.Promotion() != PieceNone) {
			return true
		}
	}
	return false
}

/*
CastlingRights defines the player's rights to perform castlings.
  - 0 bit: white king can O-O.
  - 1 bit: white king can O-O-O.
  - 2 bit: black king can O-O.
  - 3 bit: black king can O-O-O.
*/
type CastlingRights = int

const (
	CastlingWhiteShort CastlingRights = 1
	CastlingWhiteLong  CastlingRights = 2
	CastlingBlackShort CastlingRights = 4
	CastlingBlackLong  CastlingRights = 8

	CastlingAll CastlingRights = 15
)

var (
	// PieceSymbols maps each (color, piece) pair to its FEN symbol.
	PieceSymbols = [2][6]byte{
		{'P', 'R', 'N', 'B', 'Q', 'K'},
		{'p', 'r', 'n', 'b', 'q', 'k'},
	}
	// Square2String maps each board square to its string representation.
	Square2String = [64]string{
		"a1", "b1", "c1", "d1", "e1", "f1", "g1", "h1",
		"a2", "b2", "c2", "d2", "e2", "f2", "g2", "h2",
		"a3", "b3", "c3", "d3", "e3", "f3", "g3", "h3",
		"a4", "b4", "c4", "d4", "e4", "f4", "g4", "h4",
		"a5", "b5", "c5", "d5", "e5", "f5", "g5", "h5",
		"a6", "b6", "c6", "d6", "e6", "f6", "g6", "h6",
		"a7", "b7", "c7", "d7", "e7", "f7", "g7", "h7",
		"a8", "b8", "c8", "d8", "e8", "f8", "g8", "h8",
	}
)

// Standard initial chess position.
const InitialPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
