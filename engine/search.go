/*
search.go implements the iterative-deepening negamax search with alpha-beta
pruning, quiescence, and transposition caching.  One Searcher owns one
transposition table for the duration of a search; the only shared state it
touches are the atomic stop flag and the optional perf channel.
*/

package engine

import (
	"time"

	"github.com/BelikovArtem/tempo"
)

// Searcher runs searches for a single caller.  Not safe for concurrent use.
type Searcher struct {
	tt       *TranspositionTable
	controls Controls
	opts     Options

	// Moment the current call to Search started.
	searchStart time.Time
	// Moment the last performance record was emitted.
	lastPerfInfo time.Time

	// The number of nodes visited by negamax, transposition table hits
	// included; quiescence nodes are not counted.
	nodes uint64

	// Latched once the stop flag has been observed true.
	stopped bool
	sendErr error
}

// NewSearcher creates a searcher with a fresh transposition table sized per
// the options.  Unset options fall back to their defaults.
func NewSearcher(opts Options, controls Controls) *Searcher {
	defaults := DefaultOptions()
	if opts.TTCapacity <= 0 {
		opts.TTCapacity = defaults.TTCapacity
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaults.MaxDepth
	}
	if opts.MoveTimeMillis <= 0 {
		opts.MoveTimeMillis = defaults.MoveTimeMillis
	}

	return &Searcher{
		tt:       NewTranspositionTable(opts.TTCapacity),
		controls: controls,
		opts:     opts,
	}
}

/*
Search runs iterative deepening from depth 1 and returns the best move of
the deepest iteration that searched at least one root move.

The search stops when the stop flag is observed, when the wall clock
exceeds a budget of min(remaining/10, the configured move time) - unless
Infinite is requested - or when the depth or advisory node limit is
reached.  An iteration cut short by the stop flag after at least one root
move keeps the best root move it found so far; one stopped before any root
move is discarded.  If no root move was ever searched the result is
[ErrEarlyStop], and an empty legal move list at the root is [ErrNoMoves].
*/
func (s *Searcher) Search(state *tempo.State, limits Limits) (tempo.Move, error) {
	s.searchStart = time.Now()
	s.lastPerfInfo = s.searchStart
	s.stopped = false

	budget := s.timeBudget(state, limits)

	maxDepth := limits.MaxDepth
	if maxDepth <= 0 {
		maxDepth = s.opts.MaxDepth
	}

	var rootMoves tempo.MoveList
	tempo.GenLegalMoves(state, &rootMoves)

	var best tempo.Move
	haveBest := false

	for depth := 1; ; depth++ {
		if depth > maxDepth {
			break
		}
		if !limits.Infinite && time.Since(s.searchStart) > budget {
			break
		}
		// The node limit is advisory: it is only consulted between
		// iterations, never inside one.
		if limits.MaxNodes > 0 && s.nodes >= limits.MaxNodes {
			break
		}
		if s.shouldStop(0, depth) {
			break
		}

		m, completed := s.searchRoot(state, depth)
		if !completed {
			// The stop flag fired before any root move finished at this
			// depth; its partial result is discarded.
			break
		}
		best, haveBest = m, true
	}

	if err := s.emitPerfInfo(); err != nil {
		return 0, err
	}

	switch {
	case haveBest:
		return best, nil
	case rootMoves.LastMoveIndex == 0:
		return 0, ErrNoMoves
	case s.stopped:
		return 0, ErrEarlyStop
	default:
		return 0, ErrNoMoves
	}
}

// timeBudget derives the wall-clock budget for this move from the remaining
// clock time of the side to play.
func (s *Searcher) timeBudget(state *tempo.State, limits Limits) time.Duration {
	remaining := limits.Timings.WhiteRemaining
	if state.ToPlay == tempo.ColorBlack {
		remaining = limits.Timings.BlackRemaining
	}
	if remaining <= 0 {
		remaining = time.Minute
	}

	return min(remaining/10, time.Duration(s.opts.MoveTimeMillis)*time.Millisecond)
}

// searchRoot runs one full-window iteration at the given depth and reports
// whether at least one root move was searched to completion.
func (s *Searcher) searchRoot(state *tempo.State, depth int) (tempo.Move, bool) {
	moves := s.orderedLegalMoves(state)
	if len(moves) == 0 {
		return 0, false
	}

	alpha, beta := NegInfinity, PosInfinity
	var best tempo.Move
	haveBest := false

	for _, m := range moves {
		next := state.ApplyMove(m)
		score := -s.negamax(&next, 1, depth, -beta, -alpha)

		if s.stopped && !haveBest {
			return 0, false
		}

		if score > alpha {
			alpha = score
			best = m
			haveBest = true
		}

		if s.shouldStop(0, depth) {
			break
		}
	}

	s.tt.Insert(state.Zobrist, uint8(depth), alpha, BoundExact, best, haveBest)
	return best, haveBest
}

/*
negamax searches the subtree below state.  ply is the distance from the
root; once it exceeds maxDepth the node is handed to quiescence.  Searched
nodes return a value clamped to the [alpha, beta] window; transposition
table hits return the stored value and terminal nodes return the mate or
draw score, both without clamping.
*/
func (s *Searcher) negamax(state *tempo.State, ply, maxDepth int,
	alpha, beta int32) int32 {

	s.nodes++

	if ply > maxDepth {
		return s.quiescence(state, alpha, beta)
	}
	depthRemaining := uint8(maxDepth - ply)

	// Check the transposition table in case we've been here before.
	if entry, ok := s.tt.Probe(state.Zobrist, depthRemaining, alpha, beta); ok {
		return entry.Value
	}

	moves := s.orderedLegalMoves(state)
	if len(moves) == 0 {
		if state.InCheck() {
			// Folding the ply into the mate score makes nearer mates
			// preferable to distant ones.
			return Mate + int32(ply)
		}
		return Draw
	}

	bound := BoundUpper
	var best tempo.Move
	haveBest := false

	for _, m := range moves {
		next := state.ApplyMove(m)
		score := -s.negamax(&next, ply+1, maxDepth, -beta, -alpha)

		// The move was too good: the opponent won't allow this position to
		// be reached in the first place.
		if score >= beta {
			s.tt.Insert(state.Zobrist, depthRemaining, beta, BoundLower, m, true)
			return beta
		}

		if score > alpha {
			alpha = score
			bound = BoundExact
			best = m
			haveBest = true
		}

		s.maybeEmitPerfInfo(ply, maxDepth)
		if s.shouldStop(ply, maxDepth) {
			break
		}
	}

	s.tt.Insert(state.Zobrist, depthRemaining, alpha, bound, best, haveBest)
	return alpha
}

/*
quiescence keeps expanding capture moves past the nominal depth so that the
returned score never sits in the middle of a capture sequence.  The static
evaluation stands pat as a lower bound.
*/
func (s *Searcher) quiescence(state *tempo.State, alpha, beta int32) int32 {
	standPat := Evaluate(state)
	if standPat >= beta {
		return beta
	}
	alpha = max(alpha, standPat)

	var list tempo.MoveList
	tempo.GenLegalMoves(state, &list)

	captures := list.Moves[:0]
	for _, m := range list.Slice() {
		if _, victim := state.Board.Get(m.To()); victim != tempo.PieceNone {
			captures = append(captures, m)
		}
	}
	OrderMoves(state, captures, s.tt)

	for _, m := range captures {
		next := state.ApplyMove(m)
		score := -s.quiescence(&next, -beta, -alpha)
		if score >= beta {
			return beta
		}
		alpha = max(alpha, score)
	}

	return alpha
}

// orderedLegalMoves generates and orders the legal moves of the state.
func (s *Searcher) orderedLegalMoves(state *tempo.State) []tempo.Move {
	var list tempo.MoveList
	tempo.GenLegalMoves(state, &list)

	moves := list.Slice()
	OrderMoves(state, moves, s.tt)
	return moves
}

/*
shouldStop polls the stop flag.  Polling every node is wasteful, so the
atomic read happens only at the root and at plies with at least four levels
of remaining depth; the flag is monotonic, so once observed it stays
latched for the rest of the search.
*/
func (s *Searcher) shouldStop(ply, maxDepth int) bool {
	if s.stopped {
		return true
	}
	if ply == 0 || maxDepth-ply >= 4 {
		if s.controls.Stop != nil && s.controls.Stop.Load() {
			s.stopped = true
		}
	}
	return s.stopped
}

// maybeEmitPerfInfo rate-limits performance records to one every few
// seconds, checked only at shallow plies to keep the hot path clean.
func (s *Searcher) maybeEmitPerfInfo(ply, maxDepth int) {
	if maxDepth-ply >= 4 && time.Since(s.lastPerfInfo) > 3*time.Second {
		s.sendErr = s.emitPerfInfo()
	}
}

// emitPerfInfo sends a performance record to the sink, if any.  The send
// never blocks the search; a closed sink surfaces as [ErrSendError].
func (s *Searcher) emitPerfInfo() (err error) {
	if s.controls.PerfSink == nil {
		return s.sendErr
	}

	defer func() {
		if recover() != nil {
			err = ErrSendError
		}
	}()

	elapsed := time.Since(s.searchStart).Seconds()
	info := PerfInfo{
		TranspositionLoad: s.tt.Load(),
		Nodes:             s.nodes,
		TableHitRate:      s.tt.HitRate(),
	}
	if elapsed > 0 {
		info.NodesPerSecond = float64(s.nodes) / elapsed
	}

	select {
	case s.controls.PerfSink <- info:
	default:
	}

	s.lastPerfInfo = time.Now()
	return s.sendErr
}
