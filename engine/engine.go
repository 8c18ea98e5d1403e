/*
Package engine implements the search half of the chess engine: static
evaluation, move ordering, a transposition table, and an
iterative-deepening negamax search with alpha-beta pruning and quiescence.

The package never writes to stdout or the filesystem; failures surface as
sentinel errors and performance records go to a caller-supplied channel.
*/
package engine

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/BelikovArtem/tempo"
)

var (
	// ErrNoState is returned when a search is requested before a position
	// was set.
	ErrNoState = errors.New("engine: no position set")
	// ErrNoMoves is returned when the legal move set is empty at the root.
	ErrNoMoves = errors.New("engine: no legal moves")
	// ErrEarlyStop is returned when the search is cancelled before any
	// root move has been searched.
	ErrEarlyStop = errors.New("engine: stopped before first result")
	// ErrSendError is returned when the perf sink is closed mid-search.
	ErrSendError = errors.New("engine: failed to emit perf record")
)

// Timings carries the chess clock as reported by the front end.  A zero
// remaining duration means the clock is not running.
type Timings struct {
	WhiteRemaining time.Duration
	BlackRemaining time.Duration
	WhiteIncrement time.Duration
	BlackIncrement time.Duration
}

// Limits bounds a single search.  MaxNodes is advisory: the searcher
// consults it between iterative-deepening iterations only.  A zero MaxDepth
// falls back to the configured default.
type Limits struct {
	Infinite bool
	MaxDepth int
	MaxNodes uint64
	Timings  Timings
}

// Controls connects a running search to its caller: a monotonic stop flag
// and an optional outlet for periodic performance records.
type Controls struct {
	Stop     *atomic.Bool
	PerfSink chan PerfInfo
}

// PerfInfo is a snapshot of the mechanical performance of the engine.
type PerfInfo struct {
	// Value between 0 and 1 representing how full the transposition
	// table is.
	TranspositionLoad float64
	// The number of nodes visited during the current search.
	Nodes uint64
	// Nodes searched per second since the start of the current search.
	NodesPerSecond float64
	// The fraction of transposition probes that hit.
	TableHitRate float64
}

// Engine holds a current position and answers best-move queries against it.
type Engine struct {
	state *tempo.State
	opts  Options
}

// New creates an engine with the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// SetPosition replaces the current position.
func (e *Engine) SetPosition(s tempo.State) {
	e.state = &s
}

// Position returns the current position, if one has been set.
func (e *Engine) Position() (tempo.State, bool) {
	if e.state == nil {
		return tempo.State{}, false
	}
	return *e.state, true
}

/*
SearchBestMove searches the current position within the given limits.  Each
call owns a fresh searcher and transposition table, released when the call
returns on every path.
*/
func (e *Engine) SearchBestMove(limits Limits, controls Controls) (tempo.Move, error) {
	if e.state == nil {
		return 0, ErrNoState
	}

	searcher := NewSearcher(e.opts, controls)
	return searcher.Search(e.state, limits)
}
