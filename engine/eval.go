/*
eval.go implements the static evaluator.  Scores are centipawns from the
side-to-move perspective: material, a non-linear material ratio bonus, the
bishop pair, piece-square tables, and an endgame term that rewards driving
the enemy king to the board edge.
*/

package engine

import (
	"math"

	"github.com/BelikovArtem/tempo"
)

// Evaluation bounds and terminal scores.  Mate is folded with the ply
// distance by the search so that nearer mates score better.
const (
	PosInfinity int32 = math.MaxInt32 - 1024
	NegInfinity int32 = math.MinInt32 + 1024

	// The score if the current player has been mated.
	Mate int32 = NegInfinity / 2
	Draw int32 = 0
)

// The material value of each piece, indexed by piece type.
var pieceValues = [6]int32{100, 525, 350, 350, 1000, 0}

// PieceValue returns the material value of the piece in centipawns.
func PieceValue(p tempo.Piece) int32 { return pieceValues[p] }

// bishopPairBonus is awarded to a side holding two or more bishops.
const bishopPairBonus = 100

// Piece-square tables, in centipawns from white's perspective.  The first
// row of each literal is the first rank; black pieces read the tables with
// the rank mirrored.

var pawnSquareBonus = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	10, 10, 20, 30, 30, 20, 10, 10,
	15, 15, 20, 35, 35, 20, 15, 15,
	20, 20, 30, 40, 40, 30, 20, 20,
	30, 30, 40, 50, 50, 40, 30, 30,
	50, 50, 60, 70, 70, 60, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var rookSquareBonus = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	25, 25, 25, 25, 25, 25, 25, 25,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightSquareBonus = [64]int32{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopSquareBonus = [64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var queenSquareBonus = [64]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// The king table rewards centralization; together with the endgame term it
// steers won endings, at the cost of a castling incentive.
var kingSquareBonus = [64]int32{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -20, 0, 0, -20, -40, -30,
	-30, -30, 0, 20, 20, 0, -30, -30,
	-30, -30, 0, 20, 20, 0, -30, -30,
	-30, -40, -20, 0, 0, -20, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var pieceSquareBonus = [6]*[64]int32{
	&pawnSquareBonus,
	&rookSquareBonus,
	&knightSquareBonus,
	&bishopSquareBonus,
	&queenSquareBonus,
	&kingSquareBonus,
}

// endgameMaterialStart is the non-pawn material at which the endgame term
// begins to phase in; at zero non-pawn material it reaches full weight.
const endgameMaterialStart = 2*525 + 350 + 350

/*
Evaluate statically scores the state from the perspective of the side to
move.  It does not detect mates or stalemates; the search scores those from
the empty legal move list.
*/
func Evaluate(s *tempo.State) int32 {
	us := s.ToPlay
	them := us ^ 1

	ourMat := material(s, us)
	oppMat := material(s, them)

	score := ourMat - oppMat

	// A small non-linear bonus: the same material edge matters more when
	// less material is left on the board.
	if total := ourMat + oppMat; total > 0 {
		score += 100 * (ourMat - oppMat) / total
	}

	if tempo.CountBits(s.Board.ColorPiece(us, tempo.PieceBishop)) >= 2 {
		score += bishopPairBonus
	}
	if tempo.CountBits(s.Board.ColorPiece(them, tempo.PieceBishop)) >= 2 {
		score -= bishopPairBonus
	}

	score += pieceSquareScore(s, us) - pieceSquareScore(s, them)

	score += endgameScore(s, us) - endgameScore(s, them)

	return score
}

// material returns the summed piece values of the given color.
func material(s *tempo.State, c tempo.Color) int32 {
	var mat int32
	for p := tempo.PiecePawn; p <= tempo.PieceQueen; p++ {
		mat += int32(tempo.CountBits(s.Board.ColorPiece(c, p))) * pieceValues[p]
	}
	return mat
}

// pieceSquareScore sums the piece-square bonuses of the given color.  Black
// reads the tables with the rank mirrored.
func pieceSquareScore(s *tempo.State, c tempo.Color) int32 {
	var score int32
	for p := tempo.PiecePawn; p <= tempo.PieceKing; p++ {
		pieces := s.Board.ColorPiece(c, p)
		for pieces > 0 {
			sq := tempo.PopLSB(&pieces)
			if c == tempo.ColorBlack {
				sq ^= 56
			}
			score += pieceSquareBonus[p][sq]
		}
	}
	return score
}

/*
endgameScore rewards pushing the enemy king toward the board edge.  The term
is weighted by how far our non-pawn material has fallen below the endgame
reference: with a full army the weight is zero, with a bare king it is one.
*/
func endgameScore(s *tempo.State, c tempo.Color) int32 {
	var nonPawn int32
	for p := tempo.PieceRook; p <= tempo.PieceQueen; p++ {
		nonPawn += int32(tempo.CountBits(s.Board.ColorPiece(c, p))) * pieceValues[p]
	}

	if nonPawn >= endgameMaterialStart {
		return 0
	}

	oppKing := s.Board.KingSq(c ^ 1)
	edgeDist := int32(centerManhattanDist(oppKing))

	// Scale by the [0,1] endgame weight without leaving integer math.
	return edgeDist * 10 * (endgameMaterialStart - nonPawn) / endgameMaterialStart
}

// centerManhattanDist returns the Manhattan distance from the square to the
// nearest of the four central squares, between 0 and 6.
func centerManhattanDist(sq tempo.Square) int {
	file, rank := tempo.FileOf(sq), tempo.RankOf(sq)

	df := max(3-file, file-4)
	dr := max(3-rank, rank-4)

	return df + dr
}
