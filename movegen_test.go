package tempo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft walks the legal move tree to the given depth and counts the leaf
// nodes.  See https://www.chessprogramming.org/Perft_Results
func perft(s *State, depth int) uint64 {
	var l MoveList
	GenLegalMoves(s, &l)

	if depth == 1 {
		return uint64(l.LastMoveIndex)
	}

	var nodes uint64
	for _, m := range l.Slice() {
		next := s.ApplyMove(m)
		nodes += perft(&next, depth-1)
	}

	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		expected []uint64
	}{
		{
			"initial position",
			InitialPos,
			[]uint64{20, 400, 8902, 197281, 4865609},
		},
		{
			"kiwipete",
			"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			[]uint64{48, 2039, 97862},
		},
		{
			// Exercises the en passant discovered check rejection.
			"en passant trap",
			"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			[]uint64{14, 191, 2812, 43238, 674624},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseFEN(tt.fen)
			require.NoError(t, err)

			for depth, expected := range tt.expected {
				require.Equal(t, expected, perft(&s, depth+1),
					"depth %d", depth+1)
			}
		})
	}
}

func TestPerftDepth6(t *testing.T) {
	if testing.Short() {
		t.Skip("depth 6 walks 119M nodes")
	}

	s, err := ParseFEN(InitialPos)
	require.NoError(t, err)
	require.Equal(t, uint64(119060324), perft(&s, 6))
}

func TestPseudoLegalMoves(t *testing.T) {
	s, err := ParseFEN(InitialPos)
	require.NoError(t, err)

	ms := PseudoLegalMoves(&s)
	assert.Equal(t, 20, ms.Len())
}

func TestCastlingLegality(t *testing.T) {
	t.Run("both sides available", func(t *testing.T) {
		s, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		require.NoError(t, err)

		ms := LegalMoves(&s)
		assert.True(t, ms.Contains(NewMove(SE1, SG1)))
		assert.True(t, ms.Contains(NewMove(SE1, SC1)))
	})

	t.Run("attacked pass-through square", func(t *testing.T) {
		// The rook on f8 covers f1, so only the long castling remains.
		s, err := ParseFEN("r4rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
		require.NoError(t, err)

		ms := LegalMoves(&s)
		assert.False(t, ms.Contains(NewMove(SE1, SG1)))
		assert.True(t, ms.Contains(NewMove(SE1, SC1)))
	})

	t.Run("blocked path", func(t *testing.T) {
		s, err := ParseFEN("r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1")
		require.NoError(t, err)

		ms := LegalMoves(&s)
		assert.False(t, ms.Contains(NewMove(SE1, SG1)))
		assert.False(t, ms.Contains(NewMove(SE1, SC1)))
	})

	t.Run("no castling while in check", func(t *testing.T) {
		s, err := ParseFEN("r3k2r/8/8/8/8/4r3/8/R3K2R w KQkq - 0 1")
		require.NoError(t, err)

		require.True(t, s.InCheck())
		ms := LegalMoves(&s)
		assert.False(t, ms.Contains(NewMove(SE1, SG1)))
		assert.False(t, ms.Contains(NewMove(SE1, SC1)))
	})
}

func TestPinnedPieceMayNotLeaveTheLine(t *testing.T) {
	// The bishop on e2 is pinned on the e-file and has no move at all.
	s, err := ParseFEN("4k3/8/8/8/8/4r3/4B3/4K3 w - - 0 1")
	require.NoError(t, err)

	e2 := NewSquare(4, 1)
	require.NotZero(t, s.Pinned&SquareBB(e2))

	var l MoveList
	GenLegalMoves(&s, &l)
	for _, m := range l.Slice() {
		assert.NotEqual(t, e2, m.From(), "pinned bishop moved: %s", m)
	}

	// A pinned rook keeps its moves along the pin line.
	s, err = ParseFEN("4k3/8/8/8/8/4r3/4R3/4K3 w - - 0 1")
	require.NoError(t, err)

	ms := LegalMoves(&s)
	assert.True(t, ms.Contains(NewMove(e2, NewSquare(4, 2))))
	assert.False(t, ms.Contains(NewMove(e2, NewSquare(3, 1))))
}

func TestEnPassantDiscoveredCheck(t *testing.T) {
	e4, d3 := NewSquare(4, 3), NewSquare(3, 2)

	// Capturing en passant would strip both pawns off the fourth rank and
	// expose the black king to the h4 rook.
	s, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	require.NoError(t, err)
	ms := LegalMoves(&s)
	assert.False(t, ms.Contains(NewMove(e4, d3)))

	// Without the rook the same capture is legal.
	s, err = ParseFEN("8/8/8/8/k2Pp3/8/8/4K3 b - d3 0 1")
	require.NoError(t, err)
	ms = LegalMoves(&s)
	assert.True(t, ms.Contains(NewMove(e4, d3)))
}

func TestEnPassantResolvesCheck(t *testing.T) {
	// The double-pushed pawn on d4 is the only checker; capturing it en
	// passant is the rare non-king answer.
	s, err := ParseFEN("8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1")
	require.NoError(t, err)

	require.NotZero(t, s.Checkers)
	ms := LegalMoves(&s)
	assert.True(t, ms.Contains(NewMove(NewSquare(4, 3), NewSquare(3, 2))))
}

func TestNoLegalMoves(t *testing.T) {
	t.Run("checkmate", func(t *testing.T) {
		// Fool's mate.
		s, err := ParseFEN(
			"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
		require.NoError(t, err)

		assert.True(t, s.InCheck())
		ms := LegalMoves(&s)
		assert.Equal(t, 0, ms.Len())
	})

	t.Run("stalemate", func(t *testing.T) {
		s, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
		require.NoError(t, err)

		assert.False(t, s.InCheck())
		ms := LegalMoves(&s)
		assert.Equal(t, 0, ms.Len())
	})
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Rook on e8 and bishop on b4 both give check.
	s, err := ParseFEN("4r1k1/8/8/8/1b6/3Q4/8/4K3 w - - 0 1")
	require.NoError(t, err)

	require.Equal(t, 2, CountBits(s.Checkers))

	var l MoveList
	GenLegalMoves(&s, &l)
	require.NotZero(t, l.LastMoveIndex)
	for _, m := range l.Slice() {
		assert.Equal(t, SE1, m.From())
	}
}

func BenchmarkGenLegalMoves(b *testing.B) {
	s, _ := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	for b.Loop() {
		lm := MoveList{}
		GenLegalMoves(&s, &lm)
	}
}

func BenchmarkApplyMove(b *testing.B) {
	s, _ := ParseFEN(InitialPos)
	m, _ := ParseMove("e2e4")

	for b.Loop() {
		s.ApplyMove(m)
	}
}

func BenchmarkPerft3(b *testing.B) {
	s, _ := ParseFEN(InitialPos)

	for b.Loop() {
		perft(&s, 3)
	}
}
