// Package cli provides functions to print bitboards and positions.
// It is used mainly to visualize the testing process.
package cli

import (
	"strings"

	"github.com/BelikovArtem/tempo"
)

// pieceSymbols is an array of chess piece runes, white pieces first.
var pieceSymbols = [2][6]rune{
	{'♙', '♖', '♘', '♗', '♕', '♔'},
	{'♟', '♜', '♞', '♝', '♛', '♚'},
}

// FormatBitboard formats a single bitboard into a string, marking the set
// squares with the symbol of the specified piece.
func FormatBitboard(bitboard uint64, c tempo.Color, p tempo.Piece) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + 1 + '0')
		b.WriteString("  ")

		for file := 0; file < 8; file++ {
			symbol := pieceSymbols[c][p]
			if bitboard&(1<<tempo.NewSquare(file, rank)) == 0 {
				symbol = '.'
			}

			b.WriteRune(symbol)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")

	return b.String()
}

// FormatPosition formats a full chess position into a string.
func FormatPosition(s *tempo.State) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + 1 + '0')
		b.WriteString("  ")

		for file := 0; file < 8; file++ {
			symbol := '.'
			if c, p := s.Board.Get(tempo.NewSquare(file, rank)); p != tempo.PieceNone {
				symbol = pieceSymbols[c][p]
			}

			b.WriteRune(symbol)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}

	b.WriteString("   a  b  c  d  e  f  g  h\nActive color: ")
	if s.ToPlay == tempo.ColorWhite {
		b.WriteString("white\nEn passant: ")
	} else {
		b.WriteString("black\nEn passant: ")
	}

	if s.EnPassant == tempo.SquareNone {
		b.WriteString("none\nCastling rights: ")
	} else {
		b.WriteString(tempo.Square2String[s.EnPassant])
		b.WriteString("\nCastling rights: ")
	}

	if s.CastlingRights&tempo.CastlingWhiteShort != 0 {
		b.WriteByte('K')
	}
	if s.CastlingRights&tempo.CastlingWhiteLong != 0 {
		b.WriteByte('Q')
	}
	if s.CastlingRights&tempo.CastlingBlackShort != 0 {
		b.WriteByte('k')
	}
	if s.CastlingRights&tempo.CastlingBlackLong != 0 {
		b.WriteByte('q')
	}
	if s.CastlingRights == 0 {
		b.WriteByte('-')
	}

	return b.String()
}
