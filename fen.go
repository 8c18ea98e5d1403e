/*
fen.go implements conversions between Forsyth-Edwards Notation strings and
[State] values.  Parsing validates every field and fails without partial
mutation; formatting produces the canonical six-field form, so
FormatFEN(ParseFEN(s)) == s for any canonically formatted input.
*/

package tempo

import (
	"errors"
	"strconv"
	"strings"
)

// Each FEN string consists of six parts, separated by a space:
//  1. Piece placement, each rank described from the eighth down.
//  2. Active color: "w" or "b".
//  3. Castling rights, or "-" when neither side can castle.
//  4. En passant target square, or "-".
//  5. Halfmove clock: used for the fifty-move rule.
//  6. Fullmove number.
var (
	ErrFenMissingFields     = errors.New("fen: missing fields")
	ErrFenExcessFields      = errors.New("fen: excess fields")
	ErrFenInvalidPiece      = errors.New("fen: invalid piece placement char")
	ErrFenTooLargeRank      = errors.New("fen: rank describes more than 8 files")
	ErrFenInvalidColor      = errors.New("fen: invalid active color")
	ErrFenInvalidCastleChar = errors.New("fen: invalid castling rights char")
	ErrFenInvalidSquare     = errors.New("fen: invalid en passant square")
	ErrFenInvalidNumber     = errors.New("fen: invalid move counter")
	ErrFenNonAscii          = errors.New("fen: non-ascii input")
	ErrFenMissingKing       = errors.New("fen: each side needs exactly one king")
)

// parseSquare parses two bytes of algebraic notation into a square index,
// or [SquareNone] if they do not name a square.
func parseSquare(file, rank byte) Square {
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return SquareNone
	}
	return NewSquare(int(file-'a'), int(rank-'1'))
}

// fenPiece maps a FEN symbol to its color and piece type.
func fenPiece(char byte) (Color, Piece) {
	c := ColorWhite
	if char >= 'a' {
		c = ColorBlack
		char -= 'a' - 'A'
	}

	switch char {
	case 'P':
		return c, PiecePawn
	case 'R':
		return c, PieceRook
	case 'N':
		return c, PieceKnight
	case 'B':
		return c, PieceBishop
	case 'Q':
		return c, PieceQueen
	case 'K':
		return c, PieceKing
	}
	return c, PieceNone
}

// parsePlacement fills the board from the first FEN field.
func parsePlacement(placement string, b *Board) error {
	// Piece placement data describes each rank beginning from the eighth.
	rank, file := 7, 0

	for i := 0; i < len(placement); i++ {
		char := placement[i]

		switch {
		case char == '/': // Rank separator.
			if rank == 0 {
				return ErrFenTooLargeRank
			}
			rank--
			file = 0

		case char >= '1' && char <= '8': // Consecutive empty squares.
			file += int(char - '0')
			if file > 8 {
				return ErrFenTooLargeRank
			}

		default: // There is a piece on the square.
			c, p := fenPiece(char)
			if p == PieceNone {
				return ErrFenInvalidPiece
			}
			if file > 7 {
				return ErrFenTooLargeRank
			}
			b.Add(c, p, NewSquare(file, rank))
			file++
		}
	}

	return nil
}

// ParseFEN parses the given FEN string into a [State].  The derived fields
// (pins, checkers, zobrist) are computed before the state is returned.
func ParseFEN(fen string) (State, error) {
	var s State
	s.EnPassant = SquareNone

	for i := 0; i < len(fen); i++ {
		if fen[i] > 127 {
			return s, ErrFenNonAscii
		}
	}

	fields := strings.Split(fen, " ")
	if len(fields) < 6 {
		return s, ErrFenMissingFields
	}
	if len(fields) > 6 {
		return s, ErrFenExcessFields
	}

	// 1 field: piece placement.
	if err := parsePlacement(fields[0], &s.Board); err != nil {
		return State{}, err
	}

	// 2 field: active color.
	switch fields[1] {
	case "w":
		s.ToPlay = ColorWhite
	case "b":
		s.ToPlay = ColorBlack
	default:
		return State{}, ErrFenInvalidColor
	}

	// 3 field: castling rights.
	for i := 0; i < len(fields[2]); i++ {
		switch fields[2][i] {
		case 'K':
			s.CastlingRights |= CastlingWhiteShort
		case 'Q':
			s.CastlingRights |= CastlingWhiteLong
		case 'k':
			s.CastlingRights |= CastlingBlackShort
		case 'q':
			s.CastlingRights |= CastlingBlackLong
		case '-':
		default:
			return State{}, ErrFenInvalidCastleChar
		}
	}

	// 4 field: en passant target square.
	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return State{}, ErrFenInvalidSquare
		}
		s.EnPassant = parseSquare(fields[3][0], fields[3][1])
		if s.EnPassant == SquareNone {
			return State{}, ErrFenInvalidSquare
		}
	}

	// 5 field: the number of halfmoves.
	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 || halfmove > 255 {
		return State{}, ErrFenInvalidNumber
	}
	s.HalfmoveClock = uint8(halfmove)

	// 6 field: the number of fullmoves.
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 0 || fullmove > 65535 {
		return State{}, ErrFenInvalidNumber
	}
	s.FullmoveCnt = uint16(fullmove)

	// The derived fields are indexed by the king squares, so a kingless
	// placement must be rejected here rather than panic later.
	if CountBits(s.Board.ColorPiece(ColorWhite, PieceKing)) != 1 ||
		CountBits(s.Board.ColorPiece(ColorBlack, PieceKing)) != 1 {
		return State{}, ErrFenMissingKing
	}

	s.computePinsCheckers()
	s.Zobrist = zobristFull(&s)

	return s, nil
}

// FormatFEN serializes the specified [State] into a FEN string.
func FormatFEN(s *State) string {
	var fen strings.Builder
	fen.Grow(64)

	// 1 field: piece placement.
	for rank := 7; rank >= 0; rank-- {
		emptySquares := byte(0)
		for file := 0; file < 8; file++ {
			c, p := s.Board.Get(NewSquare(file, rank))

			if p == PieceNone { // Empty square.
				emptySquares++
				continue
			}

			if emptySquares > 0 {
				fen.WriteByte('0' + emptySquares)
				emptySquares = 0
			}
			fen.WriteByte(PieceSymbols[c][p])
		}
		if emptySquares > 0 {
			fen.WriteByte('0' + emptySquares)
		}
		if rank != 0 {
			fen.WriteByte('/')
		}
	}

	// 2 field: active color.
	if s.ToPlay == ColorWhite {
		fen.WriteString(" w ")
	} else {
		fen.WriteString(" b ")
	}

	// 3 field: castling rights.
	if s.CastlingRights == 0 {
		fen.WriteByte('-')
	} else {
		if s.CastlingRights&CastlingWhiteShort != 0 {
			fen.WriteByte('K')
		}
		if s.CastlingRights&CastlingWhiteLong != 0 {
			fen.WriteByte('Q')
		}
		if s.CastlingRights&CastlingBlackShort != 0 {
			fen.WriteByte('k')
		}
		if s.CastlingRights&CastlingBlackLong != 0 {
			fen.WriteByte('q')
		}
	}
	fen.WriteByte(' ')

	// 4 field: en passant target square.
	if s.EnPassant == SquareNone {
		fen.WriteString("- ")
	} else {
		fen.WriteString(Square2String[s.EnPassant])
		fen.WriteByte(' ')
	}

	// 5 field: the number of halfmoves.
	fen.WriteString(strconv.Itoa(int(s.HalfmoveClock)))
	fen.WriteByte(' ')

	// 6 field: the number of fullmoves.
	fen.WriteString(strconv.Itoa(int(s.FullmoveCnt)))

	return fen.String()
}
