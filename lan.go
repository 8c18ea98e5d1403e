/*
lan.go implements conversions between moves and long algebraic notation,
the move format spoken by UCI front ends: <from><to>[promo], e.g. e2e4,
e7e5, e1g1 (white short castling), e7e8q (promotion).
*/

package tempo

import (
	"errors"
	"strings"
)

var (
	ErrMoveMissingChars  = errors.New("move: fewer than four chars")
	ErrMoveNonAscii      = errors.New("move: non-ascii input")
	ErrMoveInvalidSquare = errors.New("move: invalid square")
	ErrMoveBadPromotion  = errors.New("move: bad promotion char")
)

// ParseMove parses a long algebraic notation string into a move.
func ParseMove(lan string) (Move, error) {
	if len(lan) < 4 {
		return 0, ErrMoveMissingChars
	}
	for i := 0; i < len(lan); i++ {
		if lan[i] > 127 {
			return 0, ErrMoveNonAscii
		}
	}

	from := parseSquare(lan[0], lan[1])
	to := parseSquare(lan[2], lan[3])
	if from == SquareNone || to == SquareNone {
		return 0, ErrMoveInvalidSquare
	}

	if len(lan) == 4 {
		return NewMove(from, to), nil
	}

	var promotion Piece
	switch lan[4] {
	case 'q':
		promotion = PieceQueen
	case 'r':
		promotion = PieceRook
	case 'b':
		promotion = PieceBishop
	case 'n':
		promotion = PieceKnight
	default:
		return 0, ErrMoveBadPromotion
	}

	return NewPromotionMove(from, to, promotion), nil
}

// String converts the move into its long algebraic notation.
func (m Move) String() string {
	var b strings.Builder
	b.Grow(5)

	b.WriteString(Square2String[m.From()])
	b.WriteString(Square2String[m.To()])

	switch m.Promotion() {
	case PieceQueen:
		b.WriteByte('q')
	case PieceRook:
		b.WriteByte('r')
	case PieceBishop:
		b.WriteByte('b')
	case PieceKnight:
		b.WriteByte('n')
	}

	return b.String()
}
