package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BelikovArtem/tempo"
)

// testOptions keeps unit searches small and fast.
func testOptions() Options {
	return Options{
		TTCapacity:     1 << 16,
		MaxDepth:       4,
		MoveTimeMillis: 5000,
	}
}

func searchFEN(t *testing.T, fen string, limits Limits) (tempo.Move, error) {
	t.Helper()

	s, err := tempo.ParseFEN(fen)
	require.NoError(t, err)

	e := New(testOptions())
	e.SetPosition(s)

	return e.SearchBestMove(limits, Controls{Stop: &atomic.Bool{}})
}

func TestSearchReturnsLegalMove(t *testing.T) {
	for depth := 1; depth <= 3; depth++ {
		m, err := searchFEN(t, tempo.InitialPos, Limits{MaxDepth: depth})
		require.NoError(t, err, "depth %d", depth)

		s, _ := tempo.ParseFEN(tempo.InitialPos)
		ms := tempo.LegalMoves(&s)
		assert.True(t, ms.Contains(m), "depth %d returned %s", depth, m)
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		mate string
	}{
		{
			"back rank mate",
			"6k1/5ppp/8/8/8/8/8/R6K w - - 0 1",
			"a1a8",
		},
		{
			"promotion mate",
			"5k2/2P5/5K2/8/8/8/8/8 w - - 0 1",
			"c7c8q",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for depth := 1; depth <= 3; depth++ {
				m, err := searchFEN(t, tt.fen, Limits{MaxDepth: depth})
				require.NoError(t, err)
				assert.Equal(t, tt.mate, m.String(), "depth %d", depth)
			}
		})
	}
}

func TestSearchPrefersNearerMate(t *testing.T) {
	// With mate on the board, deeper search must not wander off to a
	// slower win.
	m, err := searchFEN(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1",
		Limits{MaxDepth: 4})
	require.NoError(t, err)
	assert.Equal(t, "a1a8", m.String())
}

func TestSearchEarlyStop(t *testing.T) {
	s, err := tempo.ParseFEN(tempo.InitialPos)
	require.NoError(t, err)

	e := New(testOptions())
	e.SetPosition(s)

	var stop atomic.Bool
	stop.Store(true)

	_, err = e.SearchBestMove(Limits{MaxDepth: 4}, Controls{Stop: &stop})
	assert.ErrorIs(t, err, ErrEarlyStop)
}

func TestSearchNoState(t *testing.T) {
	e := New(testOptions())
	_, err := e.SearchBestMove(Limits{}, Controls{})
	assert.ErrorIs(t, err, ErrNoState)
}

func TestSearchNoMoves(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"},
		{"checkmate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := searchFEN(t, tt.fen, Limits{MaxDepth: 2})
			assert.ErrorIs(t, err, ErrNoMoves)
		})
	}
}

func TestSearchAvoidsHangingCapture(t *testing.T) {
	// Taking the defended pawn with the queen loses her; at depth 2 the
	// search must see the recapture.
	s, err := tempo.ParseFEN("4k3/3p4/4p3/8/8/4Q3/8/4K3 w - - 0 1")
	require.NoError(t, err)

	e := New(testOptions())
	e.SetPosition(s)

	m, err := e.SearchBestMove(Limits{MaxDepth: 2}, Controls{Stop: &atomic.Bool{}})
	require.NoError(t, err)
	assert.NotEqual(t, "e3e6", m.String())
}

func TestSearchEmitsPerfRecords(t *testing.T) {
	s, err := tempo.ParseFEN(tempo.InitialPos)
	require.NoError(t, err)

	e := New(testOptions())
	e.SetPosition(s)

	perf := make(chan PerfInfo, 4)
	m, err := e.SearchBestMove(Limits{MaxDepth: 3},
		Controls{Stop: &atomic.Bool{}, PerfSink: perf})
	require.NoError(t, err)
	require.NotZero(t, m)

	// The final record is always emitted when the search returns.
	select {
	case info := <-perf:
		assert.NotZero(t, info.Nodes)
	default:
		t.Fatal("expected at least one perf record")
	}
}

func TestSearchRespectsTimeBudget(t *testing.T) {
	s, err := tempo.ParseFEN(tempo.InitialPos)
	require.NoError(t, err)

	opts := testOptions()
	opts.MoveTimeMillis = 50
	opts.MaxDepth = 64

	e := New(opts)
	e.SetPosition(s)

	start := time.Now()
	_, err = e.SearchBestMove(
		Limits{Timings: Timings{WhiteRemaining: time.Second}},
		Controls{Stop: &atomic.Bool{}},
	)
	require.NoError(t, err)

	// Budget is min(remaining/10, move time) = 50ms; the iteration in
	// flight when it expires may overshoot, but not run away to depth 64.
	assert.Less(t, time.Since(start), 15*time.Second)
}

func TestStopFlagEndsInfiniteSearch(t *testing.T) {
	s, err := tempo.ParseFEN(tempo.InitialPos)
	require.NoError(t, err)

	e := New(testOptions())
	e.SetPosition(s)

	var stop atomic.Bool
	go func() {
		time.Sleep(50 * time.Millisecond)
		stop.Store(true)
	}()

	done := make(chan struct{})
	var m tempo.Move
	var searchErr error
	go func() {
		m, searchErr = e.SearchBestMove(Limits{Infinite: true},
			Controls{Stop: &stop})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("search did not observe the stop flag")
	}

	if searchErr == nil {
		st, _ := tempo.ParseFEN(tempo.InitialPos)
		ms := tempo.LegalMoves(&st)
		assert.True(t, ms.Contains(m))
	} else {
		assert.ErrorIs(t, searchErr, ErrEarlyStop)
	}
}

func BenchmarkSearchDepth4(b *testing.B) {
	s, _ := tempo.ParseFEN(
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	for b.Loop() {
		searcher := NewSearcher(testOptions(), Controls{Stop: &atomic.Bool{}})
		if _, err := searcher.Search(&s, Limits{MaxDepth: 4, Infinite: true}); err != nil {
			b.Fatal(err)
		}
	}
}
