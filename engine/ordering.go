/*
ordering.go implements move ordering.  Searching the likely-best move first
makes the alpha-beta window collapse sooner, so captures are ranked by
victim-minus-attacker value, promotions by the promoted piece, and the
transposition-table hint above everything else.
*/

package engine

import (
	"sort"

	"github.com/BelikovArtem/tempo"
)

const (
	// captureBonus lifts every capture above every quiet move: at the
	// queen value plus ten it outweighs the worst victim-attacker
	// difference (a queen taking a pawn, -900).
	captureBonus = 1010
	// hashMoveBonus puts the transposition-table hint ahead of any
	// predicted score.
	hashMoveBonus = 10000
)

// predictedScore ranks a move without searching it.
func predictedScore(s *tempo.State, m tempo.Move,
	hashMove tempo.Move, hasHash bool) int32 {

	var score int32

	if _, victim := s.Board.Get(m.To()); victim != tempo.PieceNone {
		// Capturing a high value piece with a low value piece is best.
		_, attacker := s.Board.Get(m.From())
		score += PieceValue(victim) - PieceValue(attacker) + captureBonus
	}

	if promo := m.Promotion(); promo != tempo.PieceNone {
		score += PieceValue(promo)
	}

	if hasHash && m == hashMove {
		score += hashMoveBonus
	}

	return score
}

/*
OrderMoves stable-sorts the move list by descending predicted score.  The
transposition-table hint is a soft suggestion: if the stored move does not
appear in the list (a colliding key, say), nothing is promoted and the
ordering falls back to the predicted scores alone.
*/
func OrderMoves(s *tempo.State, moves []tempo.Move, t *TranspositionTable) {
	hashMove, hasHash := t.BestMove(s.Zobrist)

	type scoredMove struct {
		move  tempo.Move
		score int32
	}

	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{m, predictedScore(s, m, hashMove, hasHash)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	for i := range scored {
		moves[i] = scored[i].move
	}
}
