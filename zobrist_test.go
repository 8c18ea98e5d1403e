package tempo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZobristDistinguishesPositions(t *testing.T) {
	fens := []string{
		InitialPos,
		// Same placement, black to move.
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1",
		// Same placement, no castling rights.
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		// Same placement, en passant target set.
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3",
	}

	seen := make(map[uint64]string, len(fens))
	for _, fen := range fens {
		s, err := ParseFEN(fen)
		require.NoError(t, err)

		if prev, ok := seen[s.Zobrist]; ok {
			t.Fatalf("hash collision between %q and %q", prev, fen)
		}
		seen[s.Zobrist] = fen
	}
}

func TestZobristDeterministic(t *testing.T) {
	// The keys come from a fixed-seed stream: parsing the same position
	// twice must yield the same hash.
	a, err := ParseFEN(InitialPos)
	require.NoError(t, err)
	b, err := ParseFEN(InitialPos)
	require.NoError(t, err)

	assert.Equal(t, a.Zobrist, b.Zobrist)
	assert.Equal(t, zobristFull(&a), a.Zobrist)
}

func TestZobristClockIndependent(t *testing.T) {
	// The move counters do not participate in the hash: transpositions
	// reached after a different number of quiet moves must collide.
	a, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 40 60")
	require.NoError(t, err)

	assert.Equal(t, a.Zobrist, b.Zobrist)
}

func TestZobristTransposition(t *testing.T) {
	// Two move orders reaching the same position hash identically.
	s, err := ParseFEN(InitialPos)
	require.NoError(t, err)

	path1 := s
	for _, lan := range []string{"g1f3", "g8f6", "b1c3", "b8c6"} {
		m, err := ParseMove(lan)
		require.NoError(t, err)
		path1 = path1.ApplyMove(m)
	}

	path2 := s
	for _, lan := range []string{"b1c3", "b8c6", "g1f3", "g8f6"} {
		m, err := ParseMove(lan)
		require.NoError(t, err)
		path2 = path2.ApplyMove(m)
	}

	assert.Equal(t, path1.Zobrist, path2.Zobrist)
	assert.Equal(t, FormatFEN(&path1), FormatFEN(&path2))
}
